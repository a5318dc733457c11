package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"truemirror/internal/model"
)

// ========================================
// Test Setup Helpers
// ========================================

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tempDir := t.TempDir()
	db, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	cleanup := func() {
		db.Close()
	}
	return db, cleanup
}

// ========================================
// Database Tests
// ========================================

func TestDatabase_Connection(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file should exist")
	}
}

func TestDatabase_MigrateTwice(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	db.Close()

	db, err = New(dbPath)
	if err != nil {
		t.Fatalf("Reopening database failed: %v", err)
	}
	db.Close()
}

// ========================================
// Event Repository Tests
// ========================================

func TestEventRepository_Insert(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewEventRepository(db)

	event := &model.Event{
		Name:     model.EventFrameCaptured,
		Camera:   "camera0",
		Mirror:   true,
		Width:    640,
		Height:   480,
		Filename: "true-mirror-2024-05-01T12-34-56-789Z.png",
		Outcome:  "ok",
	}

	id, err := repo.Insert(event)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}
	if event.ID != id {
		t.Errorf("Expected event ID to be set to %d, got %d", id, event.ID)
	}
	if event.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be filled in")
	}
}

func TestEventRepository_Recent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewEventRepository(db)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := repo.Insert(&model.Event{
			Name:      model.EventFrameCaptured,
			Width:     100 + i,
			Height:    50,
			Outcome:   "ok",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Insert %d failed: %v", i, err)
		}
	}

	events, err := repo.Recent(3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].Width != 104 {
		t.Errorf("Expected newest event first (width 104), got width %d", events[0].Width)
	}
	if !events[0].CreatedAt.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("Expected timestamp %v, got %v", base.Add(4*time.Minute), events[0].CreatedAt)
	}
}

func TestEventRepository_Stats(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewEventRepository(db)
	events := []model.Event{
		{Name: model.EventFrameCaptured, Mirror: true, Outcome: "ok"},
		{Name: model.EventFrameCaptured, Mirror: false, Outcome: "ok"},
		{Name: model.EventCaptureFailed, Mirror: true, Outcome: "source_unavailable"},
		{Name: model.EventViewerJoined},
	}
	for i := range events {
		if _, err := repo.Insert(&events[i]); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	stats, err := repo.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.Total != 4 {
		t.Errorf("Expected 4 events, got %d", stats.Total)
	}
	if stats.Mirrored != 2 {
		t.Errorf("Expected 2 mirrored events, got %d", stats.Mirrored)
	}
	if stats.PerName[model.EventFrameCaptured] != 2 {
		t.Errorf("Expected 2 captures, got %d", stats.PerName[model.EventFrameCaptured])
	}
	if stats.PerOutcome["source_unavailable"] != 1 {
		t.Errorf("Expected 1 source_unavailable outcome, got %d", stats.PerOutcome["source_unavailable"])
	}
	if _, ok := stats.PerOutcome[""]; ok {
		t.Error("Empty outcomes should not be counted")
	}

	count, err := repo.CountByName(model.EventCaptureFailed)
	if err != nil {
		t.Fatalf("CountByName failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 failed capture, got %d", count)
	}
}

func TestEventRepository_DeleteAll(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewEventRepository(db)
	if _, err := repo.Insert(&model.Event{Name: model.EventFrameCaptured}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := repo.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}

	events, err := repo.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Expected no events, got %d", len(events))
	}
}
