package entity

import "time"

const (
	OutcomeFirst  = "first"
	OutcomeSecond = "second"
	OutcomeDraw   = "draw"
)

// GameResult is the record written to the journal once a game reaches a
// terminal state. It describes the outcome only; the live room state is
// never persisted.
type GameResult struct {
	RoomKey    string    `json:"room_key"`
	Winner     string    `json:"winner"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}
