package db

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

const (
	connectAttempts = 5
	connectDelay    = 500 * time.Millisecond
)

// withRetry retries a connection attempt with backoff while the backing
// service comes up.
func withRetry(ctx context.Context, what string, log *zap.Logger, connect func() error) error {
	return retry.Do(connect,
		retry.Context(ctx),
		retry.Attempts(connectAttempts),
		retry.Delay(connectDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("connection attempt failed", zap.String("target", what), zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
}
