package repository

import "truemirror/internal/model"

// EventRepository defines the interface for analytics event operations.
type EventRepository interface {
	// Create operations
	Insert(event *model.Event) (int64, error)

	// Read operations
	Recent(limit int) ([]model.Event, error)
	CountByName(name string) (int, error)
	Stats() (*model.EventStats, error)

	// Delete operations
	DeleteAll() error
}
