package service

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"sync"
	"truemirror/internal/blob"
	"truemirror/internal/capture"
	"truemirror/internal/config"
	"truemirror/internal/frame"
	"truemirror/internal/logger"
	"truemirror/internal/model"
	"truemirror/internal/service/analytics"
	"truemirror/internal/service/websocket"
)

// Manager connects the camera feed to viewers and to frame captures.
type Manager struct {
	frames           *frame.Buffer
	capturer         *capture.Capturer
	websocketService *websocket.HubService
	tracker          *analytics.Tracker
	logger           *logger.Logger

	camera            string
	frameCounter      int
	broadcastEveryNth int // Wysyłaj co N-tą klatkę do viewerów
	defaultMirror     bool

	frameCounterMu sync.Mutex
	wg             sync.WaitGroup // captures waiting for their result
}

// ViewerMessage is the JSON payload pushed to viewers for every frame.
type ViewerMessage struct {
	Camera string `json:"camera"`
	Image  string `json:"image"` // base64 JPEG
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func NewManager(capturer *capture.Capturer, websocketService *websocket.HubService, tracker *analytics.Tracker, config *config.Config, logger *logger.Logger) *Manager {
	everyNth := config.BroadcastInterval
	if everyNth < 1 {
		everyNth = 1
	}

	manager := &Manager{
		frames:            frame.NewBuffer(),
		capturer:          capturer,
		websocketService:  websocketService,
		tracker:           tracker,
		logger:            logger,
		broadcastEveryNth: everyNth,
		defaultMirror:     config.DefaultMirror,
	}

	manager.logger.Info("🎬 Manager started - broadcasting every %d frame(s)", manager.broadcastEveryNth)
	return manager
}

// HandleFrame makes img the current frame and forwards its JPEG encoding
// to viewers.
func (m *Manager) HandleFrame(camera string, img image.Image, jpeg []byte) {
	m.frames.Update(img)

	m.frameCounterMu.Lock()
	m.camera = camera
	m.frameCounter++
	frameCount := m.frameCounter
	if frameCount >= m.broadcastEveryNth {
		m.frameCounter = 0
	}
	m.frameCounterMu.Unlock()

	if frameCount < m.broadcastEveryNth || len(jpeg) == 0 {
		return
	}

	bounds := img.Bounds()
	m.SendToViewers(jpeg, camera, bounds.Dx(), bounds.Dy())
}

// CameraLost clears the current frame so captures stop until the feed is back.
func (m *Manager) CameraLost() {
	m.frames.Reset()
}

func (m *Manager) SendToViewers(jpeg []byte, camera string, width, height int) {
	msg, err := json.Marshal(ViewerMessage{
		Camera: camera,
		Image:  base64.StdEncoding.EncodeToString(jpeg),
		Width:  width,
		Height: height,
	})
	if err != nil {
		m.logger.Error("Failed to encode viewer message: %v", err)
		return
	}

	if m.websocketService != nil {
		m.websocketService.Broadcast(msg)
	}
}

// Capture captures the current frame and hands it to d. The result is
// logged and tracked before it is passed on.
func (m *Manager) Capture(mirror bool, d capture.Deliverer) <-chan capture.Result {
	out := make(chan capture.Result, 1)
	camera := m.cameraName()

	m.wg.Add(1)
	results := m.capturer.CaptureTo(m.frames.Snapshot(), mirror, d)
	go func() {
		defer m.wg.Done()

		res := <-results
		switch {
		case res.OK():
			m.logger.Info("📸 Captured %s (%dx%d, mirror=%t)", res.Filename, res.Width, res.Height, res.Mirrored)
		case errors.Is(res.Err, capture.ErrSourceUnavailable):
			m.logger.Warning("Capture skipped: %v", res.Err)
		default:
			m.logger.Error("Capture failed: %v", res.Err)
		}
		m.tracker.TrackCapture(camera, res)

		out <- res
		close(out)
	}()

	return out
}

// ViewerJoined records a new viewer.
func (m *Manager) ViewerJoined() {
	m.tracker.Track(&model.Event{Name: model.EventViewerJoined, Camera: m.cameraName()})
}

// Wait blocks until every pending capture has finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}

func (m *Manager) cameraName() string {
	m.frameCounterMu.Lock()
	defer m.frameCounterMu.Unlock()
	return m.camera
}

func (m *Manager) DefaultMirror() bool {
	return m.defaultMirror
}

func (m *Manager) GetFrames() *frame.Buffer {
	return m.frames
}

func (m *Manager) GetRegistry() *blob.Registry {
	return m.capturer.Registry()
}

func (m *Manager) GetWebsocketService() *websocket.HubService {
	return m.websocketService
}

func (m *Manager) GetTracker() *analytics.Tracker {
	return m.tracker
}
