package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/logger"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// stateMessage is the websocket payload.
type stateMessage struct {
	State     app.Snapshot `json:"state"`
	Timestamp int64        `json:"timestamp"`
}

// StateHandler pushes the loop state to websocket clients: once on connect,
// then on every decision change.
type StateHandler struct {
	source Source

	mu      sync.Mutex
	clients int
}

// NewStateHandler creates a new StateHandler reading from source.
func NewStateHandler(source Source) *StateHandler {
	return &StateHandler{source: source}
}

// Clients returns the number of connected clients.
func (h *StateHandler) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clients
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithName(r.Context(), "ws")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WarnKV(ctx, "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.source.Subscribe()
	defer cancel()

	h.mu.Lock()
	h.clients++
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		h.clients--
		h.mu.Unlock()
	}()

	// Reading is only used to notice the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := send(conn, h.source.Snapshot()); err != nil {
		logger.DebugKV(ctx, "websocket write failed", "error", err)
		return
	}

	for {
		select {
		case <-closed:
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := send(conn, snap); err != nil {
				logger.DebugKV(ctx, "websocket write failed", "error", err)
				return
			}
		}
	}
}

func send(conn *websocket.Conn, snap app.Snapshot) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(stateMessage{State: snap, Timestamp: time.Now().UnixMilli()})
}
