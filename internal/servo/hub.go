package servo

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans servo state updates out to connected websocket viewers.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

// Handler upgrades a viewer connection and sends it the current state of
// the given controller. The connection stays registered until its read
// loop fails.
func (h *Hub) Handler(controller *Controller) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
		if err != nil {
			slog.Error("servo hub: upgrade failed", "error", err)
			return err
		}

		// Send the current state before registering so the initial write
		// cannot race a concurrent Broadcast on the same connection.
		if err := conn.WriteJSON(controller.State()); err != nil {
			conn.Close()
			return nil
		}

		h.mu.Lock()
		h.clients[conn] = true
		h.mu.Unlock()

		// Viewers never send data; the read loop only detects closure.
		go func() {
			defer h.remove(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		return nil
	}
}

// Broadcast sends a state update to every connected viewer, dropping
// connections that fail.
func (h *Hub) Broadcast(state State) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(state); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount reports the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}
