package apperror

import "errors"

// Sentinel errors for every rejected room action. The messages double as
// the reason strings sent back to the offending connection, so they are
// user-facing text rather than the usual lowercase convention.
var (
	ErrRoomFull     = errors.New("Room is full")
	ErrNotYourTurn  = errors.New("Not your turn")
	ErrCellOccupied = errors.New("Cell occupied")
	ErrGameFinished = errors.New("Game is finished")
	ErrInvalidCell  = errors.New("Invalid cell")

	ErrAlreadyJoined = errors.New("Already in this room")
)
