package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/itemdesk/internal/middleware"
	"github.com/foxxcyber/itemdesk/internal/models"
)

// ItemStore is the persistence the item handlers need; *database.DB implements it
type ItemStore interface {
	ListItems(ctx context.Context, params *models.ItemListParams) ([]*models.Item, int, error)
	GetItemByID(ctx context.Context, id int) (*models.Item, error)
	CreateItem(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error)
	UpdateItem(ctx context.Context, id int, req *models.UpdateItemRequest) (*models.Item, error)
	DeleteItem(ctx context.Context, id int) error
}

// Handler holds all handler dependencies
type Handler struct {
	store ItemStore
}

// New creates a new Handler instance
func New(store ItemStore) *Handler {
	return &Handler{store: store}
}

// Mount registers the health check and the v1 item routes on app.
// Writes are guarded by verifier when it is non-nil.
func (h *Handler) Mount(app *fiber.App, verifier middleware.TokenVerifier) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")
	items := v1.Group("/items", middleware.WriteAuth(verifier))
	h.RegisterItemRoutes(items)
}

// ErrorHandler renders every unhandled error as {"detail": "..."}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return Error(c, code, message)
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Error returns an error response
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{Detail: message})
}
