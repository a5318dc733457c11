package analytics

import (
	"errors"

	"truemirror/internal/capture"
	"truemirror/internal/logger"
	"truemirror/internal/model"
	"truemirror/internal/repository"
)

// Outcomes stored with capture events.
const (
	OutcomeOK                = "ok"
	OutcomeSourceUnavailable = "source_unavailable"
	OutcomeNoContext         = "no_context"
	OutcomeEncodeFailed      = "encode_failed"
	OutcomeNoDeliverer       = "no_deliverer"
	OutcomeDeliveryFailed    = "delivery_failed"
)

// Tracker records usage events. A Tracker without a repository is disabled
// and drops every event.
type Tracker struct {
	repo   repository.EventRepository
	logger *logger.Logger
}

func NewTracker(repo repository.EventRepository, logger *logger.Logger) *Tracker {
	return &Tracker{repo: repo, logger: logger}
}

// Enabled reports whether events are stored.
func (t *Tracker) Enabled() bool {
	return t != nil && t.repo != nil
}

// Track stores an event. Storage errors are logged, never returned, so that
// analytics cannot break a capture.
func (t *Tracker) Track(event *model.Event) {
	if !t.Enabled() {
		return
	}
	if _, err := t.repo.Insert(event); err != nil {
		t.logger.Error("Failed to record %s event: %v", event.Name, err)
	}
}

// TrackCapture records the result of one capture.
func (t *Tracker) TrackCapture(camera string, res capture.Result) {
	event := &model.Event{
		Name:     model.EventFrameCaptured,
		Camera:   camera,
		Mirror:   res.Mirrored,
		Width:    res.Width,
		Height:   res.Height,
		Filename: res.Filename,
		Outcome:  Outcome(res.Err),
	}
	if !res.OK() {
		event.Name = model.EventCaptureFailed
	}
	t.Track(event)
}

// Outcome classifies a capture error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, capture.ErrSourceUnavailable):
		return OutcomeSourceUnavailable
	case errors.Is(err, capture.ErrNoContext):
		return OutcomeNoContext
	case errors.Is(err, capture.ErrEncodeFailed):
		return OutcomeEncodeFailed
	case errors.Is(err, capture.ErrNoDeliverer):
		return OutcomeNoDeliverer
	default:
		return OutcomeDeliveryFailed
	}
}

// Stats returns the recorded totals, or nil when tracking is disabled.
func (t *Tracker) Stats() (*model.EventStats, error) {
	if !t.Enabled() {
		return nil, nil
	}
	return t.repo.Stats()
}

// Recent returns the newest events, or nil when tracking is disabled.
func (t *Tracker) Recent(limit int) ([]model.Event, error) {
	if !t.Enabled() {
		return nil, nil
	}
	return t.repo.Recent(limit)
}
