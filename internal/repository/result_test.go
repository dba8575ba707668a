package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (context.Context, ResultRepository) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return context.Background(), NewResultRepository(client)
}

func TestResultRepository_Record(t *testing.T) {
	ctx, repo := newTestRepository(t)

	// Given: a finished game
	result := &entity.GameResult{
		RoomKey:    "abc",
		Winner:     entity.OutcomeFirst,
		Moves:      5,
		FinishedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	// When: recording it
	err := repo.Record(ctx, result)

	// Then: it is readable back, unchanged
	require.NoError(t, err)

	results, err := repo.RecentByRoom(ctx, "abc", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, *result, results[0])
}

func TestResultRepository_RecentByRoom(t *testing.T) {
	t.Run("Returns newest first and honors the limit", func(t *testing.T) {
		ctx, repo := newTestRepository(t)

		// Given: three recorded games in one room
		outcomes := []string{entity.OutcomeFirst, entity.OutcomeSecond, entity.OutcomeDraw}
		for i, outcome := range outcomes {
			err := repo.Record(ctx, &entity.GameResult{
				RoomKey:    "abc",
				Winner:     outcome,
				Moves:      5 + i,
				FinishedAt: time.Now().UTC().Truncate(time.Second),
			})
			require.NoError(t, err)
		}

		// When: reading the latest two
		results, err := repo.RecentByRoom(ctx, "abc", 2)

		// Then: the most recent outcomes come back, newest first
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, entity.OutcomeDraw, results[0].Winner)
		assert.Equal(t, entity.OutcomeSecond, results[1].Winner)
	})

	t.Run("Unknown room yields an empty journal", func(t *testing.T) {
		ctx, repo := newTestRepository(t)

		results, err := repo.RecentByRoom(ctx, "missing", 10)

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestResultRepository_TotalByOutcome(t *testing.T) {
	ctx, repo := newTestRepository(t)

	// Given: two first-player wins and a draw across rooms
	for _, result := range []*entity.GameResult{
		{RoomKey: "abc", Winner: entity.OutcomeFirst, Moves: 5, FinishedAt: time.Now().UTC()},
		{RoomKey: "def", Winner: entity.OutcomeFirst, Moves: 7, FinishedAt: time.Now().UTC()},
		{RoomKey: "abc", Winner: entity.OutcomeDraw, Moves: 9, FinishedAt: time.Now().UTC()},
	} {
		require.NoError(t, repo.Record(ctx, result))
	}

	// When/Then: counters reflect the recorded outcomes
	firsts, err := repo.TotalByOutcome(ctx, entity.OutcomeFirst)
	require.NoError(t, err)
	assert.EqualValues(t, 2, firsts)

	draws, err := repo.TotalByOutcome(ctx, entity.OutcomeDraw)
	require.NoError(t, err)
	assert.EqualValues(t, 1, draws)

	seconds, err := repo.TotalByOutcome(ctx, entity.OutcomeSecond)
	require.NoError(t, err)
	assert.Zero(t, seconds)
}
