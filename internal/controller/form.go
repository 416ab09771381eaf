package controller

import (
	"context"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/foxxcyber/itemdesk/internal/models"
)

// Form is the content of the create/edit dialog. ID is zero when creating.
type Form struct {
	ID          int
	Title       string
	SubmitLabel string
	Name        string
	Description string
	Price       string
	Active      bool
}

// IsEdit reports whether the form targets an existing item
func (f Form) IsEdit() bool {
	return f.ID != 0
}

func newItemForm() Form {
	return Form{
		Title:       "New Item",
		SubmitLabel: "Create",
		Active:      true,
	}
}

func editItemForm(item *models.Item) Form {
	form := Form{
		ID:          item.ID,
		Title:       "Edit Item",
		SubmitLabel: "Save",
		Name:        item.Name,
		Price:       strconv.FormatFloat(item.Price, 'f', -1, 64),
		Active:      item.IsActive,
	}
	if item.Description != nil {
		form.Description = *item.Description
	}
	return form
}

var pricePrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParsePrice reads the leading decimal number of s, ignoring anything after
// it ("12.5kg" is 12.5). It returns nil when s does not start with a finite
// number; nil is sent to the server as JSON null.
func ParsePrice(s string) *float64 {
	m := pricePrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// Payload builds the request body for form
func (f Form) Payload() *models.ItemPayload {
	p := &models.ItemPayload{
		Name:     strings.TrimSpace(f.Name),
		Price:    ParsePrice(f.Price),
		IsActive: f.Active,
	}
	if desc := strings.TrimSpace(f.Description); desc != "" {
		p.Description = &desc
	}
	return p
}

// OpenCreate opens an empty dialog for a new item
func (c *Controller) OpenCreate() {
	form := newItemForm()

	c.mu.Lock()
	c.modal = ModalCreate
	c.form = form
	c.mu.Unlock()

	c.view.ShowModal(form)
}

// OpenEdit fetches item id and opens the dialog with its current values.
// The cached row is never reused.
func (c *Controller) OpenEdit(ctx context.Context, id int) error {
	item, err := c.api.Get(ctx, id)
	if err != nil {
		log.Printf("Failed to load item %d: %v", id, err)
		c.Notify("Failed to load item", ToastError)
		return err
	}

	form := editItemForm(item)

	c.mu.Lock()
	c.modal = ModalEdit
	c.form = form
	c.mu.Unlock()

	c.view.ShowModal(form)
	return nil
}

// Submit sends form as an update when it carries an ID, otherwise as a
// create. On success the dialog closes and the current page reloads; on
// failure the dialog stays open and the error is shown.
func (c *Controller) Submit(ctx context.Context, form Form) error {
	payload := form.Payload()

	var err error
	message := "Item created"
	if form.IsEdit() {
		_, err = c.api.Update(ctx, form.ID, payload)
		message = "Item updated"
	} else {
		_, err = c.api.Create(ctx, payload)
	}
	if err != nil {
		log.Printf("Failed to save item: %v", err)
		c.Notify(errorMessage(err), ToastError)
		return err
	}

	c.Notify(message, ToastSuccess)
	c.CloseModal()
	c.LoadItems(ctx)
	return nil
}

// CloseModal closes the dialog and resets the form
func (c *Controller) CloseModal() {
	c.mu.Lock()
	c.modal = ModalClosed
	c.form = Form{}
	c.mu.Unlock()

	c.view.HideModal()
}
