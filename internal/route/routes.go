package route

import (
	"net/http"
	"os"
	"path/filepath"
	"truemirror/internal/config"
	"truemirror/internal/handler"
	"truemirror/internal/logger"
	"truemirror/internal/service"

	"github.com/gorilla/mux"
)

// pageHandler serves /path as <static>/path.html if the file exists; otherwise 404.
func pageHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := mux.Vars(r)["page"]
		if path == "" {
			path = "index"
		}

		filePath := filepath.Join(staticDir, filepath.Base(path)+".html")

		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

// SetupRoutes registers the capture API, the live feed, log endpoints and
// static pages.
func SetupRoutes(manager *service.Manager, cfg *config.Config, logger *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Static files
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDirectory))))

	// API endpoints
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/capture", handler.CaptureHandler(manager, logger)).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/view", handler.ViewWebsocketHandler(manager, logger)).Methods(http.MethodGet)
	api.HandleFunc("/stats", handler.StatsHandler(manager, logger)).Methods(http.MethodGet)

	// Log endpoints
	r.HandleFunc("/logs/{level}", handler.ShowLogsHandler(logger)).Methods(http.MethodGet)
	r.HandleFunc("/logs/{level}/clear", handler.ClearLogsHandler(logger)).Methods(http.MethodPost)

	// Automatic HTML handler mapping for example: /about -> /static/about.html
	pages := pageHandler(cfg.StaticDirectory)
	r.HandleFunc("/", pages).Methods(http.MethodGet)
	r.HandleFunc("/{page}", pages).Methods(http.MethodGet)

	return r
}
