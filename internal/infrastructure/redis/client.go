package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iho/bankist/internal/infrastructure/retry"
)

// NewClient creates a Redis client and waits for the server to answer PING.
// A nil retrier pings exactly once.
func NewClient(ctx context.Context, redisURL string, retrier *retry.Retrier) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ping := func() error { return client.Ping(ctx).Err() }
	if retrier != nil {
		err = retrier.Retry(ctx, "redis.ping", ping)
	} else {
		err = ping()
	}
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
