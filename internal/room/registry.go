package room

import (
	"log/slog"
	"sync"
)

// Registry owns the process-wide map of room key to Room. The map itself
// is guarded here; each Room serializes its own operations, so distinct
// rooms make progress independently.
type Registry struct {
	logger   *slog.Logger
	emitter  Emitter
	recorder ResultRecorder

	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry(logger *slog.Logger, emitter Emitter, recorder ResultRecorder) *Registry {
	return &Registry{
		logger:   logger,
		emitter:  emitter,
		recorder: recorder,
		rooms:    make(map[string]*Room),
	}
}

// GetOrCreate returns the room for the key, creating it atomically on
// first use. Two concurrent first-joiners of the same key always land in
// the same room.
func (that *Registry) GetOrCreate(key string) *Room {
	that.mu.Lock()
	defer that.mu.Unlock()

	if existing, ok := that.rooms[key]; ok {
		return existing
	}

	created := newRoom(that.logger, key, that.emitter, that.recorder)
	that.rooms[key] = created

	that.logger.Info("room created", "method", "GetOrCreate", "roomKey", key)

	return created
}

func (that *Registry) Get(key string) (*Room, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	existing, ok := that.rooms[key]

	return existing, ok
}

// Remove destroys the room if it is still empty. A joiner that slipped in
// between the last leave and this call keeps the room alive. The room is
// closed before it leaves the map, so a joiner holding a stale pointer
// gets ErrRoomClosed instead of landing in an orphaned room.
func (that *Registry) Remove(key string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	existing, ok := that.rooms[key]
	if !ok || !existing.closeIfEmpty() {
		return
	}

	delete(that.rooms, key)

	that.logger.Info("room destroyed", "method", "Remove", "roomKey", key)
}

// Count reports how many rooms are live.
func (that *Registry) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms)
}
