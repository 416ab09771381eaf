package controller

import (
	"errors"

	"github.com/google/uuid"

	"github.com/foxxcyber/itemdesk/internal/client"
)

const unreachableMessage = "Could not reach the server"

// ToastKind selects the toast style
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification
type Toast struct {
	ID      string
	Message string
	Kind    ToastKind
	Fading  bool
}

// errorMessage is the toast text for a failed request: the API detail when
// the server answered, a short generic text otherwise
func errorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return unreachableMessage
}

// Notify shows a toast that fades after ToastDuration and is removed
// ToastExitDelay later. Toasts stack and identical messages are not merged.
func (c *Controller) Notify(message string, kind ToastKind) {
	t := Toast{
		ID:      uuid.NewString(),
		Message: message,
		Kind:    kind,
	}

	c.mu.Lock()
	c.toasts = append(c.toasts, t)
	c.toastTimers[t.ID] = c.clock.AfterFunc(ToastDuration, func() { c.fadeToast(t.ID) })
	c.mu.Unlock()

	c.view.ShowToast(t)
}

func (c *Controller) fadeToast(id string) {
	c.mu.Lock()
	for i := range c.toasts {
		if c.toasts[i].ID == id {
			c.toasts[i].Fading = true
		}
	}
	c.toastTimers[id] = c.clock.AfterFunc(ToastExitDelay, func() { c.removeToast(id) })
	c.mu.Unlock()

	c.view.FadeToast(id)
}

func (c *Controller) removeToast(id string) {
	c.mu.Lock()
	delete(c.toastTimers, id)
	for i := range c.toasts {
		if c.toasts[i].ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	c.view.RemoveToast(id)
}
