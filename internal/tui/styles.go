package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	faintStyle = lipgloss.NewStyle().Faint(true)

	statLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	statValueStyle = lipgloss.NewStyle().Bold(true)

	headerCellStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	selectedRow     = lipgloss.NewStyle().Background(lipgloss.Color("236")).Bold(true)

	activeBadge   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	inactiveBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	emptyStateStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("243"))

	toastBase = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())
	toastSuccess = toastBase.Copy().BorderForeground(lipgloss.Color("42"))
	toastError   = toastBase.Copy().BorderForeground(lipgloss.Color("196")).Foreground(lipgloss.Color("203"))

	fieldLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	fieldFocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	dangerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

func renderModalBox(screenWidth int, title, body string) string {
	w := screenWidth - 12
	if w < 30 {
		w = 30
	}
	if w > 72 {
		w = 72
	}

	header := lipgloss.NewStyle().Bold(true).Render(title)
	content := header + "\n\n" + body

	box := lipgloss.NewStyle().
		Width(w).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62"))
	return box.Render(content)
}
