package sqlite

import (
	"fmt"
	"time"

	"truemirror/internal/model"
)

// EventRepository implements repository.EventRepository for SQLite.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new SQLite event repository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Insert adds a new event record to the database.
func (r *EventRepository) Insert(event *model.Event) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	result, err := r.db.Conn().Exec(`
		INSERT INTO events (name, camera, mirror, width, height, filename, outcome, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, event.Name, event.Camera, event.Mirror, event.Width, event.Height, event.Filename, event.Outcome, event.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read event id: %w", err)
	}
	event.ID = id
	return id, nil
}

// Recent returns the newest events first.
func (r *EventRepository) Recent(limit int) ([]model.Event, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Conn().Query(`
		SELECT id, name, camera, mirror, width, height, filename, outcome, created_at
		FROM events
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Camera, &e.Mirror, &e.Width, &e.Height, &e.Filename, &e.Outcome, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// CountByName returns how many events with the given name were recorded.
func (r *EventRepository) CountByName(name string) (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM events WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// Stats returns totals per event name and per outcome.
func (r *EventRepository) Stats() (*model.EventStats, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	stats := &model.EventStats{
		PerName:    make(map[string]int),
		PerOutcome: make(map[string]int),
	}

	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM events`).Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM events WHERE mirror = 1`).Scan(&stats.Mirrored); err != nil {
		return nil, fmt.Errorf("failed to count mirrored events: %w", err)
	}

	if err := r.countGrouped(`SELECT name, COUNT(*) FROM events GROUP BY name`, stats.PerName); err != nil {
		return nil, err
	}

	if err := r.countGrouped(`SELECT outcome, COUNT(*) FROM events WHERE outcome != '' GROUP BY outcome`, stats.PerOutcome); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *EventRepository) countGrouped(query string, into map[string]int) error {
	rows, err := r.db.Conn().Query(query)
	if err != nil {
		return fmt.Errorf("failed to group events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("failed to scan group: %w", err)
		}
		into[key] = count
	}
	return rows.Err()
}

// DeleteAll removes all events.
func (r *EventRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM events`); err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	return nil
}
