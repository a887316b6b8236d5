package metrics

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const incrementTimeout = 2 * time.Second

// RedisSink implements Sink on top of Redis INCR. Counters live under the
// "metrics:" key prefix so they can be scraped or reset independently of
// other application keys.
type RedisSink struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRedisSink creates a Redis-backed counter sink.
func NewRedisSink(client *redis.Client, log *zap.Logger) *RedisSink {
	return &RedisSink{client: client, log: log}
}

// Increment bumps the named counter. Errors are logged and swallowed; the
// caller's operation must not observe them.
func (s *RedisSink) Increment(ctx context.Context, name string) {
	// Detach from the caller's deadline so an almost-expired request
	// context cannot turn counter emission into a failure.
	emitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), incrementTimeout)
	defer cancel()

	if err := s.client.Incr(emitCtx, "metrics:"+name).Err(); err != nil {
		s.log.Warn("failed to increment counter",
			zap.String("counter", name),
			zap.Error(err),
		)
	}
}
