package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResults struct {
	results []entity.GameResult
	err     error
}

func (that *stubResults) RecentByRoom(_ context.Context, _ string, _ int64) ([]entity.GameResult, error) {
	return that.results, that.err
}

func newTestHandler(results resultsRepository) *Server {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), results)
}

func TestPingHandler(t *testing.T) {
	recorder := httptest.NewRecorder()

	pingHandler(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestResultsHandler(t *testing.T) {
	t.Run("Returns the journal for a room", func(t *testing.T) {
		// Given: a repository with one recorded game
		stored := []entity.GameResult{{
			RoomKey:    "abc",
			Winner:     entity.OutcomeFirst,
			Moves:      5,
			FinishedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		}}
		server := newTestHandler(&stubResults{results: stored})

		// When: requesting the room's results
		recorder := httptest.NewRecorder()
		server.resultsHandler(recorder, httptest.NewRequest(http.MethodGet, "/results?room=abc", nil))

		// Then: the journal comes back as JSON
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

		var got []entity.GameResult
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		assert.Equal(t, stored, got)
	})

	t.Run("Missing room parameter is a bad request", func(t *testing.T) {
		server := newTestHandler(&stubResults{})

		recorder := httptest.NewRecorder()
		server.resultsHandler(recorder, httptest.NewRequest(http.MethodGet, "/results", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Repository failure is an internal error", func(t *testing.T) {
		server := newTestHandler(&stubResults{err: errors.New("redis is down")})

		recorder := httptest.NewRecorder()
		server.resultsHandler(recorder, httptest.NewRequest(http.MethodGet, "/results?room=abc", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
