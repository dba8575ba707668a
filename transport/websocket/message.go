package websocket

import "encoding/json"

// Inbound actions a connection may send.
const (
	actionJoinRoom = "join-room"
	actionPlay     = "play"
	actionRestart  = "restart"
)

// Message represents an inbound WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type JoinRoomPayload struct {
	RoomKey string `json:"roomKey"`
}

type PlayPayload struct {
	RoomKey string `json:"roomKey"`
	Index   *int   `json:"index"`
}

type RestartPayload struct {
	RoomKey string `json:"roomKey"`
}
