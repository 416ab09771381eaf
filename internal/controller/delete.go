package controller

import (
	"context"
	"log"
)

// OpenDelete asks for confirmation before deleting item id
func (c *Controller) OpenDelete(id int, name string) {
	c.mu.Lock()
	c.deleteTarget = &id
	c.deleteName = name
	c.mu.Unlock()

	c.view.ShowDeleteConfirm(name)
}

// CloseDelete dismisses the confirmation and forgets the target
func (c *Controller) CloseDelete() {
	c.mu.Lock()
	c.deleteTarget = nil
	c.deleteName = ""
	c.mu.Unlock()

	c.view.HideDeleteConfirm()
}

// ConfirmDelete deletes the pending target. The target is cleared whether or
// not the request succeeds; the current page is reloaded only on success and
// is never moved back, even when it ends up empty.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	target := c.deleteTarget
	c.mu.Unlock()

	if target == nil {
		return nil
	}

	err := c.api.Delete(ctx, *target)
	if err != nil {
		log.Printf("Failed to delete item %d: %v", *target, err)
		c.Notify(errorMessage(err), ToastError)
	} else {
		c.Notify("Item deleted", ToastSuccess)
	}

	c.CloseDelete()

	if err != nil {
		return err
	}
	c.LoadItems(ctx)
	return nil
}
