package room

import (
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

// Outbound event actions. These are the wire names every client sees.
const (
	ActionJoined      = "joined"
	ActionBoardUpdate = "board-update"
	ActionRoomFull    = "room-full"
	ActionInvalid     = "invalid"
	ActionGameOver    = "game-over"
	ActionRestarted   = "restarted"
)

// Player slots as they appear on the wire. The first joiner plays X and is
// "first", the second plays O and is "second".
const (
	SlotFirst  = "first"
	SlotSecond = "second"
)

const (
	msgWaitingForSecond   = "Waiting for second player..."
	msgGameStarted        = "Game started"
	msgGameRestarted      = "Game restarted"
	msgPlayerDisconnected = "a player disconnected"
)

// Event is one outbound message. The transport delivers it as-is.
type Event struct {
	Action  string `json:"action"`
	Payload any    `json:"payload"`
}

type JoinedPayload struct {
	Player  string       `json:"player"`
	Board   entity.Board `json:"board"`
	Message string       `json:"message"`
}

type BoardUpdatePayload struct {
	Board   entity.Board `json:"board"`
	Message string       `json:"message"`
}

type RoomFullPayload struct{}

type InvalidPayload struct {
	Reason string `json:"reason"`
}

// GameOverPayload carries the winning slot, or null for a draw.
type GameOverPayload struct {
	Winner *string      `json:"winner"`
	Board  entity.Board `json:"board"`
}

type RestartedPayload struct {
	Board   entity.Board `json:"board"`
	Message string       `json:"message"`
}

// Emitter delivers an event to a single connection. Rooms call it while
// holding their own mutex, so per-room delivery order matches the order in
// which operations were applied. Implementations must not block.
type Emitter interface {
	Emit(connID string, event Event)
}

func slotName(mark entity.Cell) string {
	if mark == entity.PlayerX {
		return SlotFirst
	}

	return SlotSecond
}
