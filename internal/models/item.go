package models

import (
	"time"
)

// Item is a catalogue entry managed through the /api/v1/items endpoints
type Item struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemPage is one page of the item collection
type ItemPage struct {
	Items []*Item `json:"items"`
	Total int     `json:"total"`
	Skip  int     `json:"skip"`
	Limit int     `json:"limit"`
}

// CreateItemRequest is the request body for creating an item
type CreateItemRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"required,gt=0"`
	IsActive    *bool    `json:"is_active"`
}

// UpdateItemRequest is the request body for updating an item.
// Nil fields are left untouched.
type UpdateItemRequest struct {
	Name        *string  `json:"name" validate:"omitnil,min=1,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitnil,gt=0"`
	IsActive    *bool    `json:"is_active"`
}

// ItemPayload is what the console sends on create and update. Every key is
// always present; Price is nil when the entered text is not a number.
type ItemPayload struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	IsActive    bool     `json:"is_active"`
}

// ItemListParams contains parameters for listing items
type ItemListParams struct {
	Skip  int
	Limit int
}
