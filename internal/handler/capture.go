package handler

import (
	"net/http"
	"strconv"
	"truemirror/internal/download"
	"truemirror/internal/logger"
	"truemirror/internal/service"
)

// CaptureHandler captures the current frame and sends it as a PNG attachment.
// The "mirror" query parameter selects the flip; without it the configured
// default applies. When no frame can be captured the response is 204 with no
// body, so the browser starts no download.
func CaptureHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mirror := manager.DefaultMirror()
		if v := r.URL.Query().Get("mirror"); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "Invalid mirror parameter", http.StatusBadRequest)
				return
			}
			mirror = parsed
		}

		buf := download.NewBuffer(manager.GetRegistry())

		select {
		case res := <-manager.Capture(mirror, buf):
			if !res.OK() {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		case <-r.Context().Done():
			logger.Warning("Capture request cancelled: %v", r.Context().Err())
			return
		}

		if err := buf.WriteAttachment(w); err != nil {
			logger.Error("Error writing capture: %v", err)
		}
	}
}
