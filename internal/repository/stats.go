package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/playrooms/tictactoe-server/internal/entity"
)

const (
	winsXKey     = "stats:wins:X"
	winsOKey     = "stats:wins:O"
	drawsKey     = "stats:draws"
	abandonedKey = "stats:abandoned"
)

// Summary aggregates the lifetime match outcomes recorded by the server.
type Summary struct {
	WinsX     int64 `json:"wins_x"`
	WinsO     int64 `json:"wins_o"`
	Draws     int64 `json:"draws"`
	Abandoned int64 `json:"abandoned"`
}

// StatsRepository counts terminal match outcomes. Only counters are stored;
// live room state never leaves the process.
type StatsRepository interface {
	RecordWin(ctx context.Context, mark string) error
	RecordDraw(ctx context.Context) error
	RecordAbandoned(ctx context.Context) error
	GetSummary(ctx context.Context) (*Summary, error)
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func (that *dbStats) RecordWin(ctx context.Context, mark string) error {
	key := winsXKey
	if mark == entity.MarkO {
		key = winsOKey
	}

	if err := that.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to record win: %w", err)
	}

	return nil
}

func (that *dbStats) RecordDraw(ctx context.Context) error {
	if err := that.client.Incr(ctx, drawsKey).Err(); err != nil {
		return fmt.Errorf("failed to record draw: %w", err)
	}

	return nil
}

func (that *dbStats) RecordAbandoned(ctx context.Context) error {
	if err := that.client.Incr(ctx, abandonedKey).Err(); err != nil {
		return fmt.Errorf("failed to record abandoned match: %w", err)
	}

	return nil
}

func (that *dbStats) GetSummary(ctx context.Context) (*Summary, error) {
	values, err := that.client.MGet(ctx, winsXKey, winsOKey, drawsKey, abandonedKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats summary: %w", err)
	}

	summary := &Summary{}
	counters := []*int64{&summary.WinsX, &summary.WinsO, &summary.Draws, &summary.Abandoned}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue // key not set yet
		}

		count, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("failed to parse stats counter: %w", parseErr)
		}

		*counters[i] = count
	}

	return summary, nil
}
