package model

import (
	"errors"
	"testing"
)

func strPtr(s string) *string {
	return &s
}

func TestItemInput_HasName(t *testing.T) {
	tests := []struct {
		name  string
		input ItemInput
		want  bool
	}{
		{"name present", ItemInput{Name: strPtr("Widget")}, true},
		{"name empty", ItemInput{Name: strPtr("")}, false},
		{"name absent", ItemInput{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.HasName(); got != tt.want {
				t.Errorf("HasName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItemInput_ValidateCreate(t *testing.T) {
	tests := []struct {
		name    string
		input   ItemInput
		wantErr error
	}{
		{
			name:    "valid input",
			input:   ItemInput{Name: strPtr("Widget"), Description: strPtr("A widget")},
			wantErr: nil,
		},
		{
			name:    "missing description is fine",
			input:   ItemInput{Name: strPtr("Widget")},
			wantErr: nil,
		},
		{
			name:    "missing name",
			input:   ItemInput{Description: strPtr("A widget")},
			wantErr: ErrEmptyName,
		},
		{
			name:    "empty name",
			input:   ItemInput{Name: strPtr("")},
			wantErr: ErrEmptyName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			err := tt.input.ValidateCreate()

			// Assert
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCreate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestItemInput_ValidateUpdate(t *testing.T) {
	tests := []struct {
		name    string
		input   ItemInput
		wantErr error
	}{
		{
			name:    "both fields absent",
			input:   ItemInput{},
			wantErr: nil,
		},
		{
			name:    "name present",
			input:   ItemInput{Name: strPtr("Widget")},
			wantErr: nil,
		},
		{
			name:    "empty description is a real update",
			input:   ItemInput{Description: strPtr("")},
			wantErr: nil,
		},
		{
			name:    "explicit empty name rejected",
			input:   ItemInput{Name: strPtr("")},
			wantErr: ErrEmptyName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			err := tt.input.ValidateUpdate()

			// Assert
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateUpdate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewItemEvent(t *testing.T) {
	// Arrange
	item := Item{ID: 7, Name: "Widget", Description: "A widget"}

	// Act
	event := NewItemEvent(EventItemCreated, item)

	// Assert
	if event.Type != EventItemCreated {
		t.Errorf("Type = %s, want %s", event.Type, EventItemCreated)
	}
	if event.Item != item {
		t.Errorf("Item = %+v, want %+v", event.Item, item)
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}
