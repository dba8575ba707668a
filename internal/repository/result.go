package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

// historyLimit caps the per-room journal so an eternal rematch pair can't
// grow a list without bound.
const historyLimit = 100

type ResultRepository interface {
	Record(ctx context.Context, result *entity.GameResult) error
	RecentByRoom(ctx context.Context, roomKey string, limit int64) ([]entity.GameResult, error)
	TotalByOutcome(ctx context.Context, outcome string) (int64, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

func (that *dbResult) Record(ctx context.Context, result *entity.GameResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	historyKey := "results:" + result.RoomKey
	totalKey := "results:total:" + result.Winner

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, historyKey, resultJSON)
		pipe.LTrim(ctx, historyKey, 0, historyLimit-1)
		pipe.Incr(ctx, totalKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}

// RecentByRoom returns the room's finished games, newest first.
func (that *dbResult) RecentByRoom(ctx context.Context, roomKey string, limit int64) ([]entity.GameResult, error) {
	historyKey := "results:" + roomKey

	entries, err := that.client.LRange(ctx, historyKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}

	results := make([]entity.GameResult, 0, len(entries))
	for _, entry := range entries {
		var result entity.GameResult
		if err = json.Unmarshal([]byte(entry), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}

		results = append(results, result)
	}

	return results, nil
}

func (that *dbResult) TotalByOutcome(ctx context.Context, outcome string) (int64, error) {
	totalKey := "results:total:" + outcome

	total, err := that.client.Get(ctx, totalKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to read total: %w", err)
	}

	return total, nil
}
