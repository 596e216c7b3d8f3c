// Package model defines data structures used throughout the application.
package model

import (
	"errors"
	"time"
)

// ErrEmptyName is returned when an item name is missing or empty.
var ErrEmptyName = errors.New("name cannot be empty")

// DefaultDescription is applied when an item is created without one.
const DefaultDescription = "No description provided"

// Item represents a managed resource in the system.
type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ItemInput is the request payload for create and update operations.
// Pointer fields distinguish a key that is absent from the payload
// from one that is present with an empty value, so partial updates
// can preserve fields the client did not send.
type ItemInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// HasName reports whether the payload carries a non-empty name.
func (in *ItemInput) HasName() bool {
	return in.Name != nil && *in.Name != ""
}

// ValidateCreate checks that the input is acceptable for item creation.
func (in *ItemInput) ValidateCreate() error {
	if !in.HasName() {
		return ErrEmptyName
	}
	return nil
}

// ValidateUpdate checks that the input is acceptable for a partial
// update. A nil name preserves the stored name, but an explicit empty
// name is rejected since names must stay non-empty.
func (in *ItemInput) ValidateUpdate() error {
	if in.Name != nil && *in.Name == "" {
		return ErrEmptyName
	}
	return nil
}

// ItemEvent represents a change notification sent over the watch stream.
type ItemEvent struct {
	Type      string    `json:"type"`
	Item      Item      `json:"item"`
	Timestamp time.Time `json:"timestamp"`
}

// Item event types.
const (
	EventItemCreated = "item_created"
	EventItemUpdated = "item_updated"
	EventItemDeleted = "item_deleted"
)

// NewItemEvent creates a change event for the given item.
func NewItemEvent(eventType string, item Item) ItemEvent {
	return ItemEvent{
		Type:      eventType,
		Item:      item,
		Timestamp: time.Now().UTC(),
	}
}
