package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/room"
)

var errMissingRoomKey = errors.New("roomKey is required")

func (that *Server) handleJoinRoom(_ context.Context, client *Client, payload json.RawMessage) error {
	var req JoinRoomPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if req.RoomKey == "" {
		that.hub.Emit(client.ID, room.Event{Action: room.ActionInvalid, Payload: room.InvalidPayload{Reason: errMissingRoomKey.Error()}})
		return nil
	}

	// a resolved room can be closed by a concurrent Remove before Join
	// takes its lock, so retry against the registry until the join lands
	// in a live room
	var err error
	for {
		target := that.registry.GetOrCreate(req.RoomKey)

		err = target.Join(client.ID)
		if !errors.Is(err, room.ErrRoomClosed) {
			break
		}
	}

	if errors.Is(err, apperror.ErrRoomFull) || errors.Is(err, apperror.ErrAlreadyJoined) {
		// rejection already went to the joiner
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	client.rooms[req.RoomKey] = struct{}{}

	return nil
}

func (that *Server) handlePlay(_ context.Context, client *Client, payload json.RawMessage) error {
	var req PlayPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if req.Index == nil {
		that.hub.Emit(client.ID, room.Event{Action: room.ActionInvalid, Payload: room.InvalidPayload{Reason: apperror.ErrInvalidCell.Error()}})
		return nil
	}

	// a missing room means it was just destroyed by a concurrent leave,
	// treated as a no-op rather than an error
	target, ok := that.registry.Get(req.RoomKey)
	if !ok {
		return nil
	}

	// rejections are emitted to the sender inside the room
	_ = target.Move(client.ID, *req.Index)

	return nil
}

func (that *Server) handleRestart(_ context.Context, client *Client, payload json.RawMessage) error {
	var req RestartPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	target, ok := that.registry.Get(req.RoomKey)
	if !ok {
		return nil
	}

	target.Restart(client.ID)

	return nil
}
