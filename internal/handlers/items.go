package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/itemdesk/internal/database"
	"github.com/foxxcyber/itemdesk/internal/middleware"
	"github.com/foxxcyber/itemdesk/internal/models"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// RegisterItemRoutes mounts the item endpoints on router
func (h *Handler) RegisterItemRoutes(router fiber.Router) {
	router.Get("/", h.ListItems)
	router.Get("/:id", h.GetItem)
	router.Post("/", h.CreateItem)
	router.Put("/:id", h.UpdateItem)
	router.Delete("/:id", h.DeleteItem)
}

func notFound(c *fiber.Ctx, id int) error {
	return Error(c, fiber.StatusNotFound, fmt.Sprintf("Item with id '%d' not found", id))
}

func parseItemID(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// actor names the token subject behind a write, if write auth is on
func actor(c *fiber.Ctx) string {
	if sub := middleware.GetTokenSubject(c); sub != "" {
		return sub
	}
	return "anonymous"
}

func invalidItemID(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnprocessableEntity, "id: value is not a valid integer")
}

func queryInt(c *fiber.Ctx, key string, defaultValue int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ListItems returns one page of items
func (h *Handler) ListItems(c *fiber.Ctx) error {
	skip, ok := queryInt(c, "skip", 0)
	if !ok || skip < 0 {
		return Error(c, fiber.StatusUnprocessableEntity, "skip: must be an integer >= 0")
	}
	limit, ok := queryInt(c, "limit", defaultListLimit)
	if !ok || limit < 1 || limit > maxListLimit {
		return Error(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("limit: must be an integer between 1 and %d", maxListLimit))
	}

	params := &models.ItemListParams{Skip: skip, Limit: limit}
	items, total, err := h.store.ListItems(c.Context(), params)
	if err != nil {
		log.Printf("Failed to list items: %v", err)
		return Error(c, fiber.StatusInternalServerError, "failed to list items")
	}

	return c.JSON(models.ItemPage{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	})
}

// GetItem returns a single item by ID
func (h *Handler) GetItem(c *fiber.Ctx) error {
	id, ok := parseItemID(c)
	if !ok {
		return invalidItemID(c)
	}

	item, err := h.store.GetItemByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return notFound(c, id)
		}
		log.Printf("Failed to get item %d: %v", id, err)
		return Error(c, fiber.StatusInternalServerError, "failed to get item")
	}

	return c.JSON(item)
}

// CreateItem creates a new item
func (h *Handler) CreateItem(c *fiber.Ctx) error {
	var req models.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusUnprocessableEntity, "invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if detail := validationDetail(&req); detail != "" {
		return Error(c, fiber.StatusUnprocessableEntity, detail)
	}

	item, err := h.store.CreateItem(c.Context(), &req)
	if err != nil {
		log.Printf("Failed to create item: %v", err)
		return Error(c, fiber.StatusInternalServerError, "failed to create item")
	}
	log.Printf("Item %d created by %s", item.ID, actor(c))

	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItem applies the non-null fields of the body to an existing item
func (h *Handler) UpdateItem(c *fiber.Ctx) error {
	id, ok := parseItemID(c)
	if !ok {
		return invalidItemID(c)
	}

	var req models.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusUnprocessableEntity, "invalid request body")
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if detail := validationDetail(&req); detail != "" {
		return Error(c, fiber.StatusUnprocessableEntity, detail)
	}

	item, err := h.store.UpdateItem(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return notFound(c, id)
		}
		log.Printf("Failed to update item %d: %v", id, err)
		return Error(c, fiber.StatusInternalServerError, "failed to update item")
	}
	log.Printf("Item %d updated by %s", id, actor(c))

	return c.JSON(item)
}

// DeleteItem permanently removes an item
func (h *Handler) DeleteItem(c *fiber.Ctx) error {
	id, ok := parseItemID(c)
	if !ok {
		return invalidItemID(c)
	}

	if err := h.store.DeleteItem(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return notFound(c, id)
		}
		log.Printf("Failed to delete item %d: %v", id, err)
		return Error(c, fiber.StatusInternalServerError, "failed to delete item")
	}
	log.Printf("Item %d deleted by %s", id, actor(c))

	return c.SendStatus(fiber.StatusNoContent)
}
