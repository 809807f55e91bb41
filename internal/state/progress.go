package state

import (
	"context"
	"fmt"

	"goldapple/parser/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	StatusRunning  = "running"
	StatusFinished = "finished"
	StatusFailed   = "failed"
)

// ProgressTracker publishes run counters for monitoring. It is never read back
// to resume a run.
type ProgressTracker interface {
	SaveProgress(ctx context.Context, stats domain.RunStats, status string) error
}

type redisProgressTracker struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisProgressTracker(redisClient *redis.Client) ProgressTracker {
	return &redisProgressTracker{
		redisClient: redisClient,
		keyPrefix:   "goldapple:progress:",
	}
}

func (s *redisProgressTracker) SaveProgress(ctx context.Context, stats domain.RunStats, status string) error {
	key := s.keyPrefix + stats.RunID
	err := s.redisClient.HSet(ctx, key,
		"pages", stats.Pages,
		"items", stats.Items,
		"rows", stats.Rows,
		"status", status,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to save progress for run %s: %w", stats.RunID, err)
	}
	return nil
}

type noopProgressTracker struct{}

// NewNoopProgressTracker is used when Redis is disabled.
func NewNoopProgressTracker() ProgressTracker {
	return noopProgressTracker{}
}

func (noopProgressTracker) SaveProgress(context.Context, domain.RunStats, string) error {
	return nil
}
