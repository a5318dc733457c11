package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"truemirror/internal/logger"

	"github.com/gorilla/mux"
)

// ShowLogsHandler serves the log file of the level named in the route.
func ShowLogsHandler(l *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level, err := logger.ParseLevel(mux.Vars(r)["level"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		serveLogFile(w, r, l.Dir(), level.FileName())
	}
}

// ClearLogsHandler truncates the log file of the level named in the route.
func ClearLogsHandler(l *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level, err := logger.ParseLevel(mux.Vars(r)["level"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err := l.CleanLogs(level); err != nil {
			l.Error("Error clearing logs: %v", err)
			http.Error(w, "Unable to clear logs", http.StatusInternalServerError)
			return
		}
		l.Info("File %s has been cleared.", level.FileName())
		w.WriteHeader(http.StatusNoContent)
	}
}

// serveLogFile serves a single log file as plain text.
func serveLogFile(w http.ResponseWriter, r *http.Request, logDir, filename string) {
	filePath := filepath.Join(logDir, filename)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Log file not found: " + filename))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	http.ServeFile(w, r, filePath)
}
