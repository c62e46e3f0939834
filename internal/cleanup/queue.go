// Package cleanup holds the retry-later list for remote image deletions.
// Cascade and replace operations treat the image host as best-effort; public
// ids whose deletion failed land here instead of being silently dropped, and
// a background worker retries them until the host accepts the delete.
package cleanup

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devister/devister/internal/logger"
)

const queueKey = "images:cleanup"

// Remover deletes images on the external host.
type Remover interface {
	RemoveMany(ctx context.Context, publicIDs []string) error
}

// Queue is a redis-backed list of image public ids pending deletion.
type Queue struct {
	rdb     *redis.Client
	remover Remover
}

// NewQueue creates a Queue over the given redis client and image remover.
func NewQueue(rdb *redis.Client, remover Remover) *Queue {
	return &Queue{rdb: rdb, remover: remover}
}

// Enqueue records public ids for later deletion. Errors are logged, not
// returned: the queue itself is best-effort on top of a best-effort policy.
func (q *Queue) Enqueue(ctx context.Context, publicIDs ...string) {
	if len(publicIDs) == 0 {
		return
	}

	values := make([]interface{}, 0, len(publicIDs))
	for _, id := range publicIDs {
		values = append(values, id)
	}

	if err := q.rdb.RPush(ctx, queueKey, values...).Err(); err != nil {
		logger.Log.Errorw("failed to enqueue image cleanup", "ids", publicIDs, "error", err)
		return
	}

	logger.Log.Infow("enqueued image cleanup", "ids", publicIDs)
}

// Len returns the number of pending public ids.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, queueKey).Result()
}

// DrainOnce pops every pending id and asks the host to delete them. Ids whose
// deletion fails again are re-queued. Returns the number of ids attempted.
func (q *Queue) DrainOnce(ctx context.Context) (int, error) {
	ids, err := q.rdb.LPopCount(ctx, queueKey, 100).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := q.remover.RemoveMany(ctx, ids); err != nil {
		logger.Log.Errorw("image cleanup retry failed", "ids", ids, "error", err)
		q.Enqueue(ctx, ids...)
		return len(ids), err
	}

	logger.Log.Infow("image cleanup done", "count", len(ids))
	return len(ids), nil
}

// Run retries pending deletions on the given interval until ctx is done.
func (q *Queue) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := q.DrainOnce(ctx); err != nil {
				logger.Log.Errorw("image cleanup pass failed", "error", err)
			}
		}
	}
}
