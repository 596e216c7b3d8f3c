// Package store provides data storage interfaces and implementations.
package store

import (
	"context"
	"errors"

	"itemsvc/internal/model"
)

// Store errors.
var (
	ErrNotFound = errors.New("item not found")
	ErrNilInput = errors.New("input cannot be nil")
)

// Store defines the interface for item storage operations.
type Store interface {
	// List returns all items in insertion order.
	List(ctx context.Context) ([]model.Item, error)

	// Get retrieves an item by its ID.
	Get(ctx context.Context, id int) (*model.Item, error)

	// Create adds a new item to the store and returns it with its
	// allocated ID. A missing description falls back to the default.
	Create(ctx context.Context, in *model.ItemInput) (*model.Item, error)

	// Update applies a partial update to an existing item. Fields
	// absent from the input keep their stored values.
	Update(ctx context.Context, id int, in *model.ItemInput) (*model.Item, error)

	// Delete removes an item by its ID and returns the removed item.
	Delete(ctx context.Context, id int) (*model.Item, error)
}
