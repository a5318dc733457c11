package model

import "time"

// Event names recorded by the tracker.
const (
	EventFrameCaptured = "frame_captured"
	EventCaptureFailed = "capture_failed"
	EventViewerJoined  = "viewer_joined"
)

// Event represents one analytics event. Events carry capture metadata only,
// never image data.
type Event struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Camera    string    `json:"camera"`
	Mirror    bool      `json:"mirror"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Filename  string    `json:"filename,omitempty"`
	Outcome   string    `json:"outcome"`
	CreatedAt time.Time `json:"created_at"`
}

// EventStats summarizes recorded events.
type EventStats struct {
	Total      int            `json:"total"`
	PerName    map[string]int `json:"per_name"`
	PerOutcome map[string]int `json:"per_outcome"`
	Mirrored   int            `json:"mirrored"`
}
