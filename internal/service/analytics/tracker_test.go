package analytics

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"truemirror/internal/capture"
	"truemirror/internal/config"
	"truemirror/internal/logger"
	"truemirror/internal/model"
)

type memoryRepo struct {
	mu     sync.Mutex
	events []model.Event
	fail   bool
}

func (r *memoryRepo) Insert(event *model.Event) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return 0, errors.New("disk full")
	}
	event.ID = int64(len(r.events) + 1)
	r.events = append(r.events, *event)
	return event.ID, nil
}

func (r *memoryRepo) Recent(limit int) ([]model.Event, error) { return r.events, nil }
func (r *memoryRepo) CountByName(name string) (int, error)   { return 0, nil }
func (r *memoryRepo) Stats() (*model.EventStats, error)      { return &model.EventStats{Total: len(r.events)}, nil }

func (r *memoryRepo) DeleteAll() error {
	r.events = nil
	return nil
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.NewLogger(&config.Config{LogDirectory: t.TempDir()})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	t.Cleanup(l.Close)
	return l
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{nil, OutcomeOK},
		{capture.ErrSourceUnavailable, OutcomeSourceUnavailable},
		{fmt.Errorf("%w: boom", capture.ErrNoContext), OutcomeNoContext},
		{capture.ErrEncodeFailed, OutcomeEncodeFailed},
		{capture.ErrNoDeliverer, OutcomeNoDeliverer},
		{errors.New("disk full"), OutcomeDeliveryFailed},
	}

	for _, tt := range tests {
		if got := Outcome(tt.err); got != tt.expected {
			t.Errorf("Outcome(%v) = %q, expected %q", tt.err, got, tt.expected)
		}
	}
}

func TestTracker_TrackCapture(t *testing.T) {
	repo := &memoryRepo{}
	tracker := NewTracker(repo, newTestLogger(t))

	tracker.TrackCapture("camera0", capture.Result{Filename: "a.png", Width: 4, Height: 2, Mirrored: true})
	tracker.TrackCapture("camera0", capture.Result{Mirrored: false, Err: capture.ErrSourceUnavailable})

	if len(repo.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(repo.events))
	}

	ok := repo.events[0]
	if ok.Name != model.EventFrameCaptured || ok.Outcome != OutcomeOK || !ok.Mirror || ok.Filename != "a.png" {
		t.Errorf("Unexpected capture event: %+v", ok)
	}

	failed := repo.events[1]
	if failed.Name != model.EventCaptureFailed || failed.Outcome != OutcomeSourceUnavailable {
		t.Errorf("Unexpected failure event: %+v", failed)
	}
}

func TestTracker_Disabled(t *testing.T) {
	tracker := NewTracker(nil, newTestLogger(t))

	if tracker.Enabled() {
		t.Fatal("Tracker without repository should be disabled")
	}

	tracker.Track(&model.Event{Name: model.EventViewerJoined})

	stats, err := tracker.Stats()
	if err != nil || stats != nil {
		t.Errorf("Expected nil stats from disabled tracker, got %+v, %v", stats, err)
	}
}

func TestTracker_StorageErrorIsSwallowed(t *testing.T) {
	repo := &memoryRepo{fail: true}
	tracker := NewTracker(repo, newTestLogger(t))

	tracker.Track(&model.Event{Name: model.EventFrameCaptured})

	if len(repo.events) != 0 {
		t.Errorf("Expected no stored events, got %d", len(repo.events))
	}
}
