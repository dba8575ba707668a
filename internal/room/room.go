package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

const recordTimeout = 5 * time.Second

// ErrRoomClosed reports that the room was destroyed by the registry after
// the caller resolved it. The caller should get-or-create again.
var ErrRoomClosed = errors.New("room is closed")

// ResultRecorder persists the outcome of a finished game.
type ResultRecorder interface {
	Record(ctx context.Context, result *entity.GameResult) error
}

// Participant is one connection's membership in a room.
type Participant struct {
	ConnID string
	Mark   entity.Cell
}

// Room is the authoritative state of one game. Every operation takes the
// room mutex, mutates, and emits its outbound events before releasing it,
// so all participants observe the same event sequence.
type Room struct {
	logger   *slog.Logger
	key      string
	emitter  Emitter
	recorder ResultRecorder

	mu           sync.Mutex
	board        entity.Board
	participants []Participant
	turn         entity.Cell
	finished     bool
	closed       bool
	moves        int
}

func newRoom(logger *slog.Logger, key string, emitter Emitter, recorder ResultRecorder) *Room {
	return &Room{
		logger:   logger,
		key:      key,
		emitter:  emitter,
		recorder: recorder,
		turn:     entity.PlayerX,
	}
}

// Join adds the connection as a participant. The first joiner plays X and
// waits; a second joiner resets the room to a fresh game and starts it.
// A full room rejects the joiner without touching any state.
func (that *Room) Join(connID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "Join", "roomKey", that.key)

	if that.closed {
		return ErrRoomClosed
	}

	if _, ok := that.participantLocked(connID); ok {
		that.emitInvalid(connID, apperror.ErrAlreadyJoined)
		return apperror.ErrAlreadyJoined
	}

	switch len(that.participants) {
	case 0:
		that.participants = append(that.participants, Participant{ConnID: connID, Mark: entity.PlayerX})

		that.emitter.Emit(connID, Event{
			Action:  ActionJoined,
			Payload: JoinedPayload{Player: SlotFirst, Board: that.board, Message: msgWaitingForSecond},
		})

		log.Info("participant joined", "slot", SlotFirst)

		return nil
	case 1:
		// A rejoin after the room emptied down to one always starts fresh.
		that.resetLocked()

		that.participants[0].Mark = entity.PlayerX
		that.participants = append(that.participants, Participant{ConnID: connID, Mark: entity.PlayerO})

		that.emitter.Emit(connID, Event{
			Action:  ActionJoined,
			Payload: JoinedPayload{Player: SlotSecond, Board: that.board, Message: msgGameStarted},
		})

		that.broadcastLocked(Event{
			Action:  ActionBoardUpdate,
			Payload: BoardUpdatePayload{Board: that.board, Message: msgGameStarted},
		})

		log.Info("participant joined, game started", "slot", SlotSecond)

		return nil
	default:
		that.emitter.Emit(connID, Event{Action: ActionRoomFull, Payload: RoomFullPayload{}})

		log.Info("join rejected, room is full")

		return apperror.ErrRoomFull
	}
}

// Move places the requester's mark on the given cell. Rejections go back
// to the requester alone and never mutate the board; an unknown requester
// is ignored entirely.
func (that *Room) Move(connID string, cell int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	participant, ok := that.participantLocked(connID)
	if !ok {
		return nil
	}

	if that.finished {
		that.emitInvalid(connID, apperror.ErrGameFinished)
		return apperror.ErrGameFinished
	}

	if that.turn != participant.Mark {
		that.emitInvalid(connID, apperror.ErrNotYourTurn)
		return apperror.ErrNotYourTurn
	}

	if err := that.board.Place(cell, participant.Mark); err != nil {
		that.emitInvalid(connID, err)
		return err
	}

	that.moves++

	moved := BoardUpdatePayload{
		Board:   that.board,
		Message: fmt.Sprintf("Player %s moved", participant.Mark),
	}

	switch winner := that.board.Winner(); {
	case winner != entity.EmptyCell:
		that.finished = true

		that.broadcastLocked(Event{Action: ActionBoardUpdate, Payload: moved})

		slot := slotName(winner)
		that.broadcastLocked(Event{Action: ActionGameOver, Payload: GameOverPayload{Winner: &slot, Board: that.board}})

		that.recordResult(slot)
	case that.board.IsDraw():
		that.finished = true

		that.broadcastLocked(Event{Action: ActionBoardUpdate, Payload: moved})
		that.broadcastLocked(Event{Action: ActionGameOver, Payload: GameOverPayload{Winner: nil, Board: that.board}})

		that.recordResult(entity.OutcomeDraw)
	default:
		that.turn = entity.ToggleMark(that.turn)

		that.broadcastLocked(Event{Action: ActionBoardUpdate, Payload: moved})
	}

	return nil
}

// Restart clears the board and hands the turn back to X. Any participant
// may request it; requests from strangers are ignored.
func (that *Room) Restart(connID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.participantLocked(connID); !ok {
		return
	}

	that.resetLocked()

	that.broadcastLocked(Event{
		Action:  ActionRestarted,
		Payload: RestartedPayload{Board: that.board, Message: msgGameRestarted},
	})

	that.logger.Info("game restarted", "method", "Restart", "roomKey", that.key)
}

// Leave removes the participant and tells the remaining one. It reports
// whether the room is now empty so the registry can destroy it.
func (that *Room) Leave(connID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	idx := -1
	for i, p := range that.participants {
		if p.ConnID == connID {
			idx = i
			break
		}
	}

	if idx == -1 {
		return len(that.participants) == 0
	}

	that.participants = append(that.participants[:idx], that.participants[idx+1:]...)

	that.broadcastLocked(Event{
		Action:  ActionBoardUpdate,
		Payload: BoardUpdatePayload{Board: that.board, Message: msgPlayerDisconnected},
	})

	that.logger.Info("participant left", "method", "Leave", "roomKey", that.key, "remaining", len(that.participants))

	return len(that.participants) == 0
}

// Status reports which of the three lifecycle states the room is in.
func (that *Room) Status() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch {
	case that.finished:
		return StatusFinished
	case len(that.participants) < 2:
		return StatusWaiting
	default:
		return StatusOngoing
	}
}

// Board returns a copy of the current grid.
func (that *Room) Board() entity.Board {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board
}

// Empty reports whether the room has no participants left.
func (that *Room) Empty() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.participants) == 0
}

// closeIfEmpty marks the room dead so late joiners holding a stale
// pointer retry against the registry. Only empty rooms close.
func (that *Room) closeIfEmpty() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.participants) > 0 {
		return false
	}

	that.closed = true

	return true
}

func (that *Room) participantLocked(connID string) (Participant, bool) {
	for _, p := range that.participants {
		if p.ConnID == connID {
			return p, true
		}
	}

	return Participant{}, false
}

func (that *Room) resetLocked() {
	that.board = entity.Board{}
	that.turn = entity.PlayerX
	that.finished = false
	that.moves = 0
}

func (that *Room) broadcastLocked(event Event) {
	for _, p := range that.participants {
		that.emitter.Emit(p.ConnID, event)
	}
}

func (that *Room) emitInvalid(connID string, err error) {
	that.emitter.Emit(connID, Event{Action: ActionInvalid, Payload: InvalidPayload{Reason: reasonOf(err)}})
}

// reasonOf maps a rejection back to its bare sentinel message so wrapped
// context never leaks onto the wire.
func reasonOf(err error) string {
	sentinels := []error{
		apperror.ErrNotYourTurn,
		apperror.ErrCellOccupied,
		apperror.ErrGameFinished,
		apperror.ErrInvalidCell,
		apperror.ErrAlreadyJoined,
		apperror.ErrRoomFull,
	}

	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return err.Error()
}

// recordResult journals the finished game. The write happens off the room
// mutex so a slow store never stalls gameplay.
func (that *Room) recordResult(outcome string) {
	result := &entity.GameResult{
		RoomKey:    that.key,
		Winner:     outcome,
		Moves:      that.moves,
		FinishedAt: time.Now().UTC(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := that.recorder.Record(ctx, result); err != nil {
			that.logger.Error("failed to record game result", "method", "recordResult", "roomKey", that.key, "error", err)
		}
	}()
}
