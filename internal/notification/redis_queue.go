package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultQueueKey is the redis list holding pending jobs.
const DefaultQueueKey = "listing-admin:notifications"

// DefaultJobTTL is how long the pending list outlives its last enqueue.
// Jobs carry temporary passwords, so an undrained list must not persist indefinitely.
const DefaultJobTTL = 24 * time.Hour

// RedisQueue is a FIFO queue on a redis list (LPUSH producers, BRPOP consumers).
// Pending jobs survive a process restart until the list expires.
type RedisQueue struct {
	client redis.UniversalClient
	key    string
	poll   time.Duration
	ttl    time.Duration
}

// NewRedisQueue creates a queue on key. An empty key uses DefaultQueueKey.
func NewRedisQueue(client redis.UniversalClient, key string) *RedisQueue {
	if key == "" {
		key = DefaultQueueKey
	}
	return &RedisQueue{client: client, key: key, poll: time.Second, ttl: DefaultJobTTL}
}

// WithTTL overrides DefaultJobTTL.
func (q *RedisQueue) WithTTL(ttl time.Duration) *RedisQueue {
	if ttl > 0 {
		q.ttl = ttl
	}
	return q
}

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	_, err = q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, q.key, payload)
		pipe.Expire(ctx, q.key, q.ttl)
		return nil
	})
	return err
}

func (q *RedisQueue) Dequeue(ctx context.Context) (Job, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Job{}, err
		}
		res, err := q.client.BRPop(ctx, q.poll, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Job{}, ctxErr
			}
			return Job{}, err
		}
		if len(res) != 2 {
			return Job{}, fmt.Errorf("unexpected BRPOP reply of %d elements", len(res))
		}

		var job Job
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			return Job{}, fmt.Errorf("decode job: %w", err)
		}
		return job, nil
	}
}

// Len reports the number of pending jobs.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}

// SelectQueue returns the queue for driver. The redis driver falls back to mem, along with
// the ping error, when the server cannot be reached.
func SelectQueue(ctx context.Context, driver string, client redis.UniversalClient, mem *MemoryQueue) (Queue, error) {
	if driver != "redis" {
		return mem, nil
	}
	if client == nil {
		return mem, errors.New("redis client not configured")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return mem, err
	}
	return NewRedisQueue(client, DefaultQueueKey), nil
}
