package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foxxcyber/itemdesk/internal/controller"
	"github.com/foxxcyber/itemdesk/internal/models"
)

type formField int

const (
	fieldName formField = iota
	fieldDescription
	fieldPrice
	fieldActive
	fieldCount
)

const (
	colID    = 6
	colName  = 22
	colDesc  = 30
	colPrice = 11
	colState = 10
	colDate  = 14
)

// Model is the bubbletea model of the item console
type Model struct {
	ctx  context.Context
	ctrl *controller.Controller

	width  int
	height int

	rows   []*models.Item
	cursor int
	stats  controller.Stats
	page   controller.PageInfo

	search    textinput.Model
	searching bool

	modalOpen bool
	form      controller.Form
	inputs    [fieldActive]textinput.Model
	active    bool
	focus     formField

	deleteName *string

	toasts []controller.Toast
}

// NewModel creates the console model driving ctrl
func NewModel(ctx context.Context, ctrl *controller.Controller) Model {
	m := Model{
		ctx:  ctx,
		ctrl: ctrl,
		page: ctrl.PageInfo(),
	}

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "Search this page"
	m.search.CharLimit = 100
	m.search.Width = 40

	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Width = 40
		m.inputs[i] = in
	}
	m.inputs[fieldName].Placeholder = "Item name"
	m.inputs[fieldName].CharLimit = 255
	m.inputs[fieldDescription].Placeholder = "Optional description"
	m.inputs[fieldPrice].Placeholder = "0.00"
	m.inputs[fieldPrice].CharLimit = 32

	return m
}

// run wraps a controller call so it executes off the event loop. Failures
// reach the user as toasts, so the error itself is dropped here.
func (m Model) run(f func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		_ = f(ctx)
		return nil
	}
}

func (m Model) do(f func()) tea.Cmd {
	return func() tea.Msg {
		f()
		return nil
	}
}

func (m Model) Init() tea.Cmd {
	return m.run(m.ctrl.Init)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tableMsg:
		m.rows = msg.items
		if m.cursor >= len(m.rows) {
			m.cursor = max(len(m.rows)-1, 0)
		}
		return m, nil

	case statsMsg:
		m.stats = msg.stats
		return m, nil

	case pageMsg:
		m.page = msg.info
		return m, nil

	case showModalMsg:
		cmd := m.openModal(msg.form)
		return m, cmd

	case hideModalMsg:
		m.modalOpen = false
		m.form = controller.Form{}
		for i := range m.inputs {
			m.inputs[i].SetValue("")
			m.inputs[i].Blur()
		}
		return m, nil

	case showDeleteMsg:
		name := msg.name
		m.deleteName = &name
		return m, nil

	case hideDeleteMsg:
		m.deleteName = nil
		return m, nil

	case toastMsg:
		m.toasts = append(m.toasts, msg.toast)
		return m, nil

	case fadeToastMsg:
		for i := range m.toasts {
			if m.toasts[i].ID == msg.id {
				m.toasts[i].Fading = true
			}
		}
		return m, nil

	case removeToastMsg:
		for i := range m.toasts {
			if m.toasts[i].ID == msg.id {
				m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
				break
			}
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.modalOpen:
			return m.updateModal(msg)
		case m.deleteName != nil:
			return m.updateDelete(msg)
		case m.searching:
			return m.updateSearch(msg)
		}
		return m.updateTable(msg)
	}

	return m, nil
}

func (m *Model) openModal(form controller.Form) tea.Cmd {
	m.modalOpen = true
	m.form = form
	m.active = form.Active
	m.focus = fieldName
	m.inputs[fieldName].SetValue(form.Name)
	m.inputs[fieldDescription].SetValue(form.Description)
	m.inputs[fieldPrice].SetValue(form.Price)
	return m.focusField()
}

func (m *Model) focusField() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.inputs {
		if formField(i) == m.focus {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// currentForm merges the edited values into the form that opened the dialog
func (m Model) currentForm() controller.Form {
	f := m.form
	f.Name = m.inputs[fieldName].Value()
	f.Description = m.inputs[fieldDescription].Value()
	f.Price = m.inputs[fieldPrice].Value()
	f.Active = m.active
	return f
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.do(m.ctrl.Escape)
	case "tab", "down":
		m.focus = (m.focus + 1) % fieldCount
		cmd := m.focusField()
		return m, cmd
	case "shift+tab", "up":
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		cmd := m.focusField()
		return m, cmd
	case "enter", "ctrl+s":
		form := m.currentForm()
		return m, m.run(func(ctx context.Context) error {
			return m.ctrl.Submit(ctx, form)
		})
	case " ", "space":
		if m.focus == fieldActive {
			m.active = !m.active
			return m, nil
		}
	}

	if m.focus == fieldActive {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		return m, m.run(m.ctrl.ConfirmDelete)
	case "esc", "n":
		return m, m.do(m.ctrl.CloseDelete)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.ctrl.SetSearch(m.search.Value())
	}
	return m, cmd
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case "n":
		return m, m.do(m.ctrl.OpenCreate)
	case "e", "enter":
		if item := m.selected(); item != nil {
			id := item.ID
			return m, m.run(func(ctx context.Context) error {
				return m.ctrl.OpenEdit(ctx, id)
			})
		}
	case "d", "delete":
		if item := m.selected(); item != nil {
			id, name := item.ID, item.Name
			return m, m.do(func() { m.ctrl.OpenDelete(id, name) })
		}
	case "left", "h":
		if !m.page.PrevDisabled {
			return m, m.run(m.ctrl.PrevPage)
		}
	case "right", "l":
		if !m.page.NextDisabled {
			return m, m.run(m.ctrl.NextPage)
		}
	case "r":
		return m, m.run(m.ctrl.LoadItems)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "esc":
		return m, m.do(m.ctrl.Escape)
	}
	return m, nil
}

func (m Model) selected() *models.Item {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

func (m Model) View() string {
	var body string
	switch {
	case m.modalOpen:
		body = m.viewModal()
	case m.deleteName != nil:
		body = m.viewDelete()
	default:
		body = m.viewTable()
	}

	parts := []string{body}
	if toasts := m.viewToasts(); toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, faintStyle.Render(m.footerText()))
	return strings.Join(parts, "\n\n")
}

func (m Model) viewTable() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Items"))
	b.WriteString("   ")
	b.WriteString(statLabelStyle.Render("Total ") + statValueStyle.Render(fmt.Sprint(m.stats.Total)))
	b.WriteString("   ")
	b.WriteString(statLabelStyle.Render("Active ") + statValueStyle.Render(fmt.Sprint(m.stats.Active)))
	b.WriteString("   ")
	b.WriteString(statLabelStyle.Render("Inactive ") + statValueStyle.Render(fmt.Sprint(m.stats.Inactive)))
	b.WriteString("\n\n")

	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(emptyStateStyle.Render("No items found\nPress n to create one."))
	} else {
		b.WriteString(headerCellStyle.Render(formatRow("ID", "Name", "Description", "Price", "Status", "Created")))
		for i, item := range m.rows {
			b.WriteString("\n")
			b.WriteString(renderItemRow(item, i == m.cursor))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.viewPagination())
	return b.String()
}

func formatRow(id, name, desc, price, status, created string) string {
	return fmt.Sprintf("%-*s %-*s %-*s %*s  %-*s %-*s",
		colID, truncate(id, colID),
		colName, truncate(name, colName),
		colDesc, truncate(desc, colDesc),
		colPrice, truncate(price, colPrice),
		colState, status,
		colDate, created,
	)
}

func renderItemRow(item *models.Item, selected bool) string {
	desc := "—"
	if item.Description != nil && *item.Description != "" {
		desc = *item.Description
	}
	status := inactiveBadge.Render(fmt.Sprintf("%-*s", colState, "Inactive"))
	if item.IsActive {
		status = activeBadge.Render(fmt.Sprintf("%-*s", colState, "Active"))
	}

	row := fmt.Sprintf("%-*s %-*s %-*s %*s  ",
		colID, truncate(fmt.Sprintf("#%d", item.ID), colID),
		colName, truncate(item.Name, colName),
		colDesc, truncate(desc, colDesc),
		colPrice, fmt.Sprintf("$%.2f", item.Price),
	)
	created := fmt.Sprintf("%-*s", colDate, formatDate(item))

	if selected {
		return selectedRow.Render(row) + status + selectedRow.Render(" "+created)
	}
	return row + status + " " + mutedStyle.Render(created)
}

func formatDate(item *models.Item) string {
	if item.CreatedAt.IsZero() {
		return ""
	}
	return item.CreatedAt.Local().Format("Jan 2, 2006")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func (m Model) viewPagination() string {
	prev := "← prev"
	next := "next →"
	if m.page.PrevDisabled {
		prev = faintStyle.Render(prev)
	}
	if m.page.NextDisabled {
		next = faintStyle.Render(next)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, prev, "   ", mutedStyle.Render(m.page.Label), "   ", next)
}

func (m Model) viewModal() string {
	labels := []string{"Name", "Description", "Price"}

	var lines []string
	for i, label := range labels {
		style := fieldLabelStyle
		if m.focus == formField(i) {
			style = fieldFocusedStyle
		}
		lines = append(lines, style.Render(label), m.inputs[i].View(), "")
	}

	toggle := "[ ] Inactive"
	if m.active {
		toggle = "[x] Active"
	}
	if m.focus == fieldActive {
		toggle = fieldFocusedStyle.Render(toggle)
	}
	lines = append(lines, toggle, "")
	lines = append(lines, fmt.Sprintf("enter: %s   tab: next field   space: toggle active   esc: cancel", strings.ToLower(m.form.SubmitLabel)))

	box := renderModalBox(m.width, m.form.Title, strings.Join(lines, "\n"))
	return m.center(box)
}

func (m Model) viewDelete() string {
	body := strings.Join([]string{
		"Delete " + dangerStyle.Render(*m.deleteName) + "?",
		"This cannot be undone.",
		"",
		"enter/y: delete   esc/n: cancel",
	}, "\n")
	return m.center(renderModalBox(m.width, "Delete Item", body))
}

func (m Model) center(s string) string {
	if m.width == 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

func (m Model) viewToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		style := toastSuccess
		if t.Kind == controller.ToastError {
			style = toastError
		}
		if t.Fading {
			style = style.Copy().Faint(true)
		}
		rendered = append(rendered, style.Render(t.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func (m Model) footerText() string {
	switch {
	case m.modalOpen, m.deleteName != nil:
		return "ctrl+c: quit"
	case m.searching:
		return "type to filter   enter/esc: done"
	}
	return "/: search   n: new   e: edit   d: delete   ←/→: page   r: reload   q: quit"
}

// Run starts the console against api and blocks until the user quits
func Run(ctx context.Context, api controller.ItemAPI, opts ...tea.ProgramOption) error {
	bridge := NewBridge()
	ctrl := controller.New(api, bridge)
	defer ctrl.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewModel(ctx, ctrl), opts...)
	bridge.Attach(p)

	_, err := p.Run()
	return err
}
