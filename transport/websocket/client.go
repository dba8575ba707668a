package websocket

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gameroom-backend/internal/room"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024

	sendBufferSize = 32
)

// Client is one WebSocket connection. Its ID is the opaque participant
// handle every room operation keys on.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan room.Event

	// rooms this connection belongs to; touched only by the read loop.
	rooms map[string]struct{}
}

func newClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:    id,
		conn:  conn,
		send:  make(chan room.Event, sendBufferSize),
		rooms: make(map[string]struct{}),
	}
}

// writePump drains the send queue onto the connection and keeps the peer
// alive with pings. It exits when the queue closes or a write fails.
func (that *Client) writePump(logger *slog.Logger) {
	log := logger.With("method", "writePump", "connID", that.ID)

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		that.conn.Close()
	}()

	for {
		select {
		case event, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteJSON(event); err != nil {
				log.Debug("failed to write event", "error", err)
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
