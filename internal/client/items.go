package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/foxxcyber/itemdesk/internal/models"
)

func itemPath(id int) string {
	return itemsPath + "/" + strconv.Itoa(id)
}

// List fetches one page of items
func (c *Client) List(ctx context.Context, skip, limit int) (*models.ItemPage, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var page models.ItemPage
	if err := c.do(ctx, http.MethodGet, itemsPath+"/?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []*models.Item{}
	}
	return &page, nil
}

// Get fetches a single item
func (c *Client) Get(ctx context.Context, id int) (*models.Item, error) {
	var item models.Item
	if err := c.do(ctx, http.MethodGet, itemPath(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create posts a new item
func (c *Client) Create(ctx context.Context, payload *models.ItemPayload) (*models.Item, error) {
	var item models.Item
	if err := c.do(ctx, http.MethodPost, itemsPath+"/", payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update replaces the fields of item id
func (c *Client) Update(ctx context.Context, id int, payload *models.ItemPayload) (*models.Item, error) {
	var item models.Item
	if err := c.do(ctx, http.MethodPut, itemPath(id), payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes item id
func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, itemPath(id), nil, nil)
}
