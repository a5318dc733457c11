package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"
	"truemirror/internal/blob"
	"truemirror/internal/camera"
	"truemirror/internal/capture"
	"truemirror/internal/config"
	"truemirror/internal/logger"
	"truemirror/internal/repository/sqlite"
	"truemirror/internal/route"
	"truemirror/internal/service"
	"truemirror/internal/service/analytics"
	"truemirror/internal/service/websocket"
)

type App struct {
	config     *config.Config
	logger     *logger.Logger
	db         *sqlite.DB
	camera     *camera.Device
	hubService *websocket.HubService
	manager    *service.Manager
}

func NewApp() (*App, error) {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	var db *sqlite.DB
	var tracker *analytics.Tracker
	if cfg.AnalyticsDBPath != "" {
		db, err = sqlite.New(cfg.AnalyticsDBPath)
		if err != nil {
			log.Close()
			return nil, fmt.Errorf("failed to open analytics database: %w", err)
		}
		tracker = analytics.NewTracker(sqlite.NewEventRepository(db), log)
	} else {
		tracker = analytics.NewTracker(nil, log)
	}

	device, err := camera.Open(cfg, log)
	if err != nil {
		if db != nil {
			db.Close()
		}
		log.Close()
		return nil, err
	}

	// Server captures are only ever streamed back to the requesting browser.
	capturer := capture.New(blob.NewRegistry(), nil)
	hub := websocket.NewHubService(log)
	mng := service.NewManager(capturer, hub, tracker, cfg, log)

	return &App{
		config:     cfg,
		logger:     log,
		db:         db,
		camera:     device,
		hubService: hub,
		manager:    mng,
	}, nil
}

// Run serves until SIGINT or SIGTERM, then shuts down the feed and server.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer a.close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.hubService.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		err := a.camera.Run(ctx, func(f camera.Frame) {
			a.manager.HandleFrame(f.Camera, f.Image, f.JPEG)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("Camera loop stopped: %v", err)
		}
		a.manager.CameraLost()
	}()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.Port),
		Handler:           route.SetupRoutes(a.manager, a.config, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("🪞 True Mirror\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("📷 Camera: %s\n", a.camera.Name())
	if a.db != nil {
		fmt.Printf("📊 Analytics: %s\n", a.config.AnalyticsDBPath)
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		stop()
		wg.Wait()
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := server.Shutdown(shutdownCtx)

	wg.Wait()
	a.manager.Wait()
	return err
}

func (a *App) close() {
	if err := a.camera.Close(); err != nil {
		a.logger.Error("Error closing camera: %v", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("Error closing analytics database: %v", err)
		}
	}
	a.logger.Close()
}
