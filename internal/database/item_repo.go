package database

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/foxxcyber/itemdesk/internal/models"
)

var (
	ErrItemNotFound = errors.New("item not found")
)

const itemColumns = `id, name, description, price, is_active, created_at, updated_at`

func scanItem(row pgx.Row) (*models.Item, error) {
	item := &models.Item{}
	err := row.Scan(
		&item.ID, &item.Name, &item.Description, &item.Price,
		&item.IsActive, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns one page of items ordered by id, plus the collection size
func (db *DB) ListItems(ctx context.Context, params *models.ItemListParams) ([]*models.Item, int, error) {
	var total int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`, params.Limit, params.Skip)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetItemByID retrieves an item by ID
func (db *DB) GetItemByID(ctx context.Context, id int) (*models.Item, error) {
	item, err := scanItem(db.Pool.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// CreateItem creates a new item. IsActive defaults to true.
func (db *DB) CreateItem(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return scanItem(db.Pool.QueryRow(ctx, `
		INSERT INTO items (name, description, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING `+itemColumns,
		strings.TrimSpace(req.Name), req.Description, *req.Price, active,
	))
}

// UpdateItem updates the non-nil fields of an existing item
func (db *DB) UpdateItem(ctx context.Context, id int, req *models.UpdateItemRequest) (*models.Item, error) {
	var name *string
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		name = &trimmed
	}

	item, err := scanItem(db.Pool.QueryRow(ctx, `
		UPDATE items
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    price = COALESCE($4, price),
		    is_active = COALESCE($5, is_active),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+itemColumns,
		id, name, req.Description, req.Price, req.IsActive,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// DeleteItem deletes an item by ID
func (db *DB) DeleteItem(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}
