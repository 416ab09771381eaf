package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foxxcyber/itemdesk/internal/controller"
	"github.com/foxxcyber/itemdesk/internal/models"
)

type tableMsg struct{ items []*models.Item }

type statsMsg struct{ stats controller.Stats }

type pageMsg struct{ info controller.PageInfo }

type showModalMsg struct{ form controller.Form }

type hideModalMsg struct{}

type showDeleteMsg struct{ name string }

type hideDeleteMsg struct{}

type toastMsg struct{ toast controller.Toast }

type fadeToastMsg struct{ id string }

type removeToastMsg struct{ id string }

// Bridge implements controller.View by posting messages to a running tea
// program. Controller calls that render must therefore run inside a tea.Cmd,
// never directly from Update.
type Bridge struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach routes messages to p. Messages posted before Attach are dropped.
func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = p.Send
}

func (b *Bridge) post(msg tea.Msg) {
	b.mu.RLock()
	send := b.send
	b.mu.RUnlock()

	if send != nil {
		send(msg)
	}
}

func (b *Bridge) RenderTable(items []*models.Item) { b.post(tableMsg{items: items}) }
func (b *Bridge) RenderStats(stats controller.Stats) { b.post(statsMsg{stats: stats}) }
func (b *Bridge) RenderPagination(info controller.PageInfo) { b.post(pageMsg{info: info}) }
func (b *Bridge) ShowModal(form controller.Form) { b.post(showModalMsg{form: form}) }
func (b *Bridge) HideModal() { b.post(hideModalMsg{}) }
func (b *Bridge) ShowDeleteConfirm(name string) { b.post(showDeleteMsg{name: name}) }
func (b *Bridge) HideDeleteConfirm() { b.post(hideDeleteMsg{}) }
func (b *Bridge) ShowToast(t controller.Toast) { b.post(toastMsg{toast: t}) }
func (b *Bridge) FadeToast(id string) { b.post(fadeToastMsg{id: id}) }
func (b *Bridge) RemoveToast(id string) { b.post(removeToastMsg{id: id}) }
