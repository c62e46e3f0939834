package cleanup

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type stubRemover struct {
	calls [][]string
	err   error
}

func (s *stubRemover) RemoveMany(ctx context.Context, publicIDs []string) error {
	s.calls = append(s.calls, publicIDs)
	return s.err
}

func setupRedisContainer(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	assert.NoError(t, rdb.Ping(ctx).Err())

	teardown := func() {
		rdb.Close()
		redisC.Terminate(ctx)
	}
	return rdb, teardown
}

func TestQueue_EnqueueAndDrain(t *testing.T) {
	rdb, teardown := setupRedisContainer(t)
	defer teardown()

	ctx := context.Background()
	remover := &stubRemover{}
	queue := NewQueue(rdb, remover)

	t.Run("empty queue drains nothing", func(t *testing.T) {
		attempted, err := queue.DrainOnce(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, attempted)
		assert.Empty(t, remover.calls)
	})

	t.Run("enqueue accumulates ids", func(t *testing.T) {
		queue.Enqueue(ctx, "images/2025/1/2/abc")
		queue.Enqueue(ctx, "images/2025/1/2/def", "images/2025/1/2/ghi")

		length, err := queue.Len(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), length)
	})

	t.Run("enqueue with no ids is a no-op", func(t *testing.T) {
		queue.Enqueue(ctx)

		length, err := queue.Len(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), length)
	})

	t.Run("drain deletes everything pending", func(t *testing.T) {
		attempted, err := queue.DrainOnce(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 3, attempted)
		assert.Equal(t, [][]string{{"images/2025/1/2/abc", "images/2025/1/2/def", "images/2025/1/2/ghi"}}, remover.calls)

		length, err := queue.Len(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), length)
	})
}

func TestQueue_RequeueOnFailure(t *testing.T) {
	rdb, teardown := setupRedisContainer(t)
	defer teardown()

	ctx := context.Background()
	remover := &stubRemover{err: errors.New("host unavailable")}
	queue := NewQueue(rdb, remover)

	queue.Enqueue(ctx, "images/2025/1/2/abc", "images/2025/1/2/def")

	attempted, err := queue.DrainOnce(ctx)
	assert.Error(t, err)
	assert.Equal(t, 2, attempted)

	// Failed ids go back on the queue for the next pass.
	length, err := queue.Len(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), length)

	remover.err = nil
	attempted, err = queue.DrainOnce(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, attempted)

	length, err = queue.Len(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), length)
}
