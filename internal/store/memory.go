package store

import (
	"context"
	"fmt"
	"sync"

	"itemsvc/internal/model"
)

// MemoryStore implements Store with an in-memory ordered collection.
// IDs are allocated from a monotonic counter, so an ID is never reused
// within a process lifetime even after the item holding it is deleted.
type MemoryStore struct {
	mu     sync.RWMutex
	items  []model.Item
	nextID int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// NewSeededStore creates a MemoryStore preloaded with the three
// default items served by a fresh instance.
func NewSeededStore() *MemoryStore {
	return &MemoryStore{
		items: []model.Item{
			{ID: 1, Name: "First Item", Description: "This is the first item"},
			{ID: 2, Name: "Second Item", Description: "This is the second item"},
			{ID: 3, Name: "Third Item", Description: "This is the third item"},
		},
		nextID: 4,
	}
}

// List returns all items in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list items: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Item, len(s.items))
	copy(items, s.items)

	return items, nil
}

// Get retrieves an item by its ID.
func (s *MemoryStore) Get(ctx context.Context, id int) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get item: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	item := s.items[idx]
	return &item, nil
}

// Create adds a new item to the store and returns it with its allocated ID.
func (s *MemoryStore) Create(ctx context.Context, in *model.ItemInput) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("create item: %w", ctx.Err())
	default:
	}

	if in == nil {
		return nil, ErrNilInput
	}

	if err := in.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := model.Item{
		ID:          s.nextID,
		Name:        *in.Name,
		Description: model.DefaultDescription,
	}
	if in.Description != nil {
		item.Description = *in.Description
	}

	s.nextID++
	s.items = append(s.items, item)

	return &item, nil
}

// Update applies a partial update to an existing item. A nil field
// preserves the stored value; a non-nil description is applied even
// when empty.
func (s *MemoryStore) Update(ctx context.Context, id int, in *model.ItemInput) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("update item: %w", ctx.Err())
	default:
	}

	if in == nil {
		return nil, ErrNilInput
	}

	if err := in.ValidateUpdate(); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	if in.Name != nil {
		s.items[idx].Name = *in.Name
	}
	if in.Description != nil {
		s.items[idx].Description = *in.Description
	}

	item := s.items[idx]
	return &item, nil
}

// Delete removes an item by its ID and returns the removed item.
func (s *MemoryStore) Delete(ctx context.Context, id int) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("delete item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	item := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)

	return &item, nil
}

// indexOf returns the position of the item with the given ID, or -1.
// The caller must hold the lock.
func (s *MemoryStore) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
