package controller

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/foxxcyber/itemdesk/internal/models"
)

const (
	PageSize       = 10
	SearchDebounce = 200 * time.Millisecond
	ToastDuration  = 3 * time.Second
	ToastExitDelay = 300 * time.Millisecond
)

// ItemAPI is the remote item store; *client.Client implements it
type ItemAPI interface {
	List(ctx context.Context, skip, limit int) (*models.ItemPage, error)
	Get(ctx context.Context, id int) (*models.Item, error)
	Create(ctx context.Context, payload *models.ItemPayload) (*models.Item, error)
	Update(ctx context.Context, id int, payload *models.ItemPayload) (*models.Item, error)
	Delete(ctx context.Context, id int) error
}

// View renders controller state. Methods are called from whichever goroutine
// ran the controller operation, never while the controller lock is held.
type View interface {
	// RenderTable shows the rows that pass the search filter; an empty
	// slice means the empty state.
	RenderTable(items []*models.Item)
	RenderStats(stats Stats)
	RenderPagination(info PageInfo)
	ShowModal(form Form)
	HideModal()
	ShowDeleteConfirm(name string)
	HideDeleteConfirm()
	ShowToast(toast Toast)
	FadeToast(id string)
	RemoveToast(id string)
}

// ModalMode is the state of the create/edit dialog
type ModalMode int

const (
	ModalClosed ModalMode = iota
	ModalCreate
	ModalEdit
)

func (m ModalMode) String() string {
	switch m {
	case ModalCreate:
		return "create"
	case ModalEdit:
		return "edit"
	default:
		return "closed"
	}
}

// State is a point-in-time copy of the controller state
type State struct {
	Page         int
	Total        int
	Items        []*models.Item
	Search       string
	DeleteTarget *int
	DeleteName   string
	Modal        ModalMode
	Form         Form
	Toasts       []Toast
}

// Controller owns the console's transient state and mediates between the
// item API and the view. Operations may overlap; nothing is deduplicated or
// cancelled, so a slow response can land after the user has moved on.
type Controller struct {
	api   ItemAPI
	view  View
	clock Clock

	mu           sync.Mutex
	currentPage  int
	totalItems   int
	allItems     []*models.Item
	searchTerm   string
	searchTimer  Timer
	deleteTarget *int
	deleteName   string
	modal        ModalMode
	form         Form
	toasts       []Toast
	toastTimers  map[string]Timer
}

// Option configures a Controller
type Option func(*Controller)

// WithClock replaces the wall clock used for debounce and toast timers
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// New creates a controller rendering into view
func New(api ItemAPI, view View, opts ...Option) *Controller {
	c := &Controller{
		api:         api,
		view:        view,
		clock:       SystemClock{},
		allItems:    []*models.Item{},
		toastTimers: make(map[string]Timer),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init performs the first page load
func (c *Controller) Init(ctx context.Context) error {
	return c.LoadItems(ctx)
}

// LoadItems fetches the current page. On failure the cached page is left as
// it was and an error toast is shown.
func (c *Controller) LoadItems(ctx context.Context) error {
	c.mu.Lock()
	page := c.currentPage
	c.mu.Unlock()

	res, err := c.api.List(ctx, page*PageSize, PageSize)
	if err != nil {
		log.Printf("Failed to load items (page %d): %v", page, err)
		c.Notify("Failed to load items", ToastError)
		return err
	}

	items := res.Items
	if items == nil {
		items = []*models.Item{}
	}

	c.mu.Lock()
	c.allItems = items
	c.totalItems = res.Total
	filtered := filterItems(c.allItems, c.searchTerm)
	stats := computeStats(c.allItems, c.totalItems)
	info := computePageInfo(c.currentPage, c.totalItems)
	c.mu.Unlock()

	c.view.RenderTable(filtered)
	c.view.RenderStats(stats)
	c.view.RenderPagination(info)
	return nil
}

// NextPage moves one page forward and reloads. Bounds are enforced by the
// view through PageInfo.NextDisabled.
func (c *Controller) NextPage(ctx context.Context) error {
	c.mu.Lock()
	c.currentPage++
	c.mu.Unlock()
	return c.LoadItems(ctx)
}

// PrevPage moves one page back and reloads
func (c *Controller) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	c.currentPage--
	c.mu.Unlock()
	return c.LoadItems(ctx)
}

// Escape closes both the item dialog and the delete confirmation
func (c *Controller) Escape() {
	c.CloseModal()
	c.CloseDelete()
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Page:       c.currentPage,
		Total:      c.totalItems,
		Items:      append([]*models.Item(nil), c.allItems...),
		Search:     c.searchTerm,
		DeleteName: c.deleteName,
		Modal:      c.modal,
		Form:       c.form,
		Toasts:     append([]Toast(nil), c.toasts...),
	}
	if c.deleteTarget != nil {
		id := *c.deleteTarget
		s.DeleteTarget = &id
	}
	return s
}

// PageInfo returns the pagination data for the current state
func (c *Controller) PageInfo() PageInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return computePageInfo(c.currentPage, c.totalItems)
}

// Close stops the pending debounce and toast timers
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.searchTimer != nil {
		c.searchTimer.Stop()
		c.searchTimer = nil
	}
	for id, t := range c.toastTimers {
		t.Stop()
		delete(c.toastTimers, id)
	}
}
