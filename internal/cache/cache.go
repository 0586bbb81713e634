package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe: a nil or unreachable client
// behaves like an empty cache.
type Client struct {
	client *redis.Client
}

// New returns nil when addr is empty so callers can run without redis.
func New(addr, password string, db int) *Client {
	if addr == "" {
		return nil
	}
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (c *Client) Enabled() bool { return c != nil && c.client != nil }

func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Set stores value with TTL. Without redis it is a no-op; a configured but
// failing redis is reported so writes are never lost silently.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Exists reports false on a miss or when redis is unavailable.
func (c *Client) Exists(ctx context.Context, key string) bool {
	if !c.Enabled() {
		return false
	}
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false
	}
	return n > 0
}

func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
