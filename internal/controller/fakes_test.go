package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/foxxcyber/itemdesk/internal/client"
	"github.com/foxxcyber/itemdesk/internal/models"
)

type apiCall struct {
	op      string
	id      int
	skip    int
	limit   int
	payload *models.ItemPayload
}

type fakeAPI struct {
	mu    sync.Mutex
	items []*models.Item
	calls []apiCall

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeAPI(n int) *fakeAPI {
	api := &fakeAPI{}
	for i := 1; i <= n; i++ {
		desc := fmt.Sprintf("description %d", i)
		api.items = append(api.items, &models.Item{
			ID:          i,
			Name:        fmt.Sprintf("Item %d", i),
			Description: &desc,
			Price:       float64(i),
			IsActive:    i%3 != 0,
		})
	}
	return api
}

func (f *fakeAPI) record(c apiCall) {
	f.calls = append(f.calls, c)
}

func (f *fakeAPI) List(ctx context.Context, skip, limit int) (*models.ItemPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(apiCall{op: "list", skip: skip, limit: limit})
	if f.listErr != nil {
		return nil, f.listErr
	}
	items := []*models.Item{}
	for i := skip; i < len(f.items) && i < skip+limit; i++ {
		items = append(items, f.items[i])
	}
	return &models.ItemPage{Items: items, Total: len(f.items), Skip: skip, Limit: limit}, nil
}

func (f *fakeAPI) Get(ctx context.Context, id int) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(apiCall{op: "get", id: id})
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, &client.APIError{StatusCode: 404, Detail: fmt.Sprintf("Item with id '%d' not found", id)}
}

func (f *fakeAPI) Create(ctx context.Context, payload *models.ItemPayload) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(apiCall{op: "create", payload: payload})
	if f.createErr != nil {
		return nil, f.createErr
	}
	item := &models.Item{ID: len(f.items) + 1, Name: payload.Name, Description: payload.Description, IsActive: payload.IsActive}
	if payload.Price != nil {
		item.Price = *payload.Price
	}
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeAPI) Update(ctx context.Context, id int, payload *models.ItemPayload) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(apiCall{op: "update", id: id, payload: payload})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for _, item := range f.items {
		if item.ID == id {
			item.Name = payload.Name
			return item, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeAPI) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(apiCall{op: "delete", id: id})
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return &client.APIError{StatusCode: 404, Detail: "not found"}
}

func (f *fakeAPI) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, len(f.calls))
	for i, c := range f.calls {
		ops[i] = c.op
	}
	return ops
}

func (f *fakeAPI) callsOf(op string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

type recordingView struct {
	mu sync.Mutex

	tables      [][]*models.Item
	stats       []Stats
	pages       []PageInfo
	modal       *Form
	deleteName  *string
	toasts      []Toast
	faded       []string
	removed     []string
	modalShown  int
	modalHidden int
}

func (v *recordingView) RenderTable(items []*models.Item) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tables = append(v.tables, items)
}

func (v *recordingView) RenderStats(stats Stats) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stats = append(v.stats, stats)
}

func (v *recordingView) RenderPagination(info PageInfo) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pages = append(v.pages, info)
}

func (v *recordingView) ShowModal(form Form) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modal = &form
	v.modalShown++
}

func (v *recordingView) HideModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modal = nil
	v.modalHidden++
}

func (v *recordingView) ShowDeleteConfirm(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.deleteName = &name
}

func (v *recordingView) HideDeleteConfirm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.deleteName = nil
}

func (v *recordingView) ShowToast(t Toast) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.toasts = append(v.toasts, t)
}

func (v *recordingView) FadeToast(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.faded = append(v.faded, id)
}

func (v *recordingView) RemoveToast(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.removed = append(v.removed, id)
}

func (v *recordingView) lastTable() []*models.Item {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.tables) == 0 {
		return nil
	}
	return v.tables[len(v.tables)-1]
}

func (v *recordingView) tableCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.tables)
}

func (v *recordingView) lastToast() (Toast, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.toasts) == 0 {
		return Toast{}, false
	}
	return v.toasts[len(v.toasts)-1], true
}

// manualClock fires timers only when Advance is called
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward by d, running due callbacks in order. Callbacks
// run without the clock lock so they may schedule new timers.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var next *manualTimer
		for _, t := range c.timers {
			if t.stopped || t.fired || t.at > target {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.fired = true
		c.now = next.at
		c.mu.Unlock()

		next.f()
	}
}

func (c *manualClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func newTestController(n int) (*Controller, *fakeAPI, *recordingView, *manualClock) {
	api := newFakeAPI(n)
	view := &recordingView{}
	clock := &manualClock{}
	return New(api, view, WithClock(clock)), api, view, clock
}
