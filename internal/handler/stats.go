package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"truemirror/internal/logger"
	"truemirror/internal/model"
	"truemirror/internal/service"
)

// StatsResponse is the payload of the stats endpoint.
type StatsResponse struct {
	Enabled bool              `json:"enabled"`
	Viewers int               `json:"viewers"`
	Frame   FrameInfo         `json:"frame"`
	Stats   *model.EventStats `json:"stats,omitempty"`
	Recent  []model.Event     `json:"recent,omitempty"`
}

// FrameInfo describes the current live frame.
type FrameInfo struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// StatsHandler reports the live feed state and recorded usage events.
func StatsHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := atoiDefault(r.URL.Query().Get("limit"), 20)
		tracker := manager.GetTracker()
		frames := manager.GetFrames()

		resp := StatsResponse{
			Enabled: tracker.Enabled(),
			Frame: FrameInfo{
				Width:  frames.VideoWidth(),
				Height: frames.VideoHeight(),
			},
		}
		if hub := manager.GetWebsocketService(); hub != nil {
			resp.Viewers = hub.GetClientCount()
		}
		if ts := frames.UpdatedAt(); !ts.IsZero() {
			resp.Frame.UpdatedAt = ts.UTC().Format("2006-01-02T15:04:05.000Z")
		}

		var err error
		if resp.Stats, err = tracker.Stats(); err != nil {
			logger.Error("Error reading event stats: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if resp.Recent, err = tracker.Recent(limit); err != nil {
			logger.Error("Error reading recent events: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}

// atoiDefault converts string to int or returns a default when conversion fails or value <= 0.
func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
