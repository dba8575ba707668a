package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gameroom-backend/internal/room"
)

// Hub tracks every live connection by its ID and delivers outbound events
// into each connection's send queue.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[string]*Client),
	}
}

// Emit queues an event for one connection. Rooms call this under their own
// mutex, so it must never block: a queue that has fallen sendBufferSize
// behind drops the event instead.
func (that *Hub) Emit(connID string, event room.Event) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	client, ok := that.clients[connID]
	if !ok {
		return
	}

	select {
	case client.send <- event:
	default:
		that.logger.Warn("dropping event for slow connection", "method", "Emit", "connID", connID, "event", event.Action)
	}
}

func (that *Hub) register(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[client.ID] = client
}

// unregister removes the client and closes its send queue. Closing under
// the write lock keeps Emit from racing a send against the close.
func (that *Hub) unregister(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.clients[client.ID]; !ok {
		return
	}

	delete(that.clients, client.ID)
	close(client.send)
}
