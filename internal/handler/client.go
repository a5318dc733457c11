package handler

import (
	"net/http"
	"time"
	"truemirror/internal/logger"
	"truemirror/internal/service"

	"github.com/gorilla/websocket"
)

const (
	// pongWait is how long a viewer may stay silent before it is dropped.
	pongWait = 60 * time.Second
)

// Upgrader upgrades HTTP connections to WebSocket; CheckOrigin allows all origins.
var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ViewWebsocketHandler handles viewer connections over WebSocket and
// registers them in the HubService to receive the live feed.
func ViewWebsocketHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadLimit(512)
		connection.SetReadDeadline(time.Now().Add(pongWait))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		manager.GetWebsocketService().Register(connection)
		defer manager.GetWebsocketService().Unregister(connection)
		manager.ViewerJoined()

		for {
			_, _, err := connection.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Info("Viewer disconnected normally")
				} else {
					logger.Warning("Viewer disconnected with error: %v", err)
				}
				break
			}
			// Any message from the viewer counts as a keepalive.
			connection.SetReadDeadline(time.Now().Add(pongWait))
		}
	}
}
