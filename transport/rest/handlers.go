package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

const defaultResultsLimit = 20

type resultsRepository interface {
	RecentByRoom(ctx context.Context, roomKey string, limit int64) ([]entity.GameResult, error)
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// resultsHandler - returns the journal of finished games for a room,
// newest first.
func (that *Server) resultsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "resultsHandler")

	roomKey := r.URL.Query().Get("room")
	if roomKey == "" {
		http.Error(w, "room query parameter is required", http.StatusBadRequest)
		return
	}

	results, err := that.results.RecentByRoom(r.Context(), roomKey, defaultResultsLimit)
	if err != nil {
		log.Error("failed to read results", "roomKey", roomKey, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(results); err != nil {
		log.Error("failed to encode results", "error", err)
	}
}
