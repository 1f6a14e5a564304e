package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned by strict writes when no Redis is configured.
var ErrUnavailable = errors.New("cache unavailable")

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil *Client behaves as an always-empty cache.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client, or returns nil when no address is configured.
func New(addr, password string, db int) *Client {
	if addr == "" {
		return nil
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Enabled reports whether a Redis server is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Ping checks connectivity. Unlike the data methods it reports the error.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.Enabled() {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil or outage: behave like a cache miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

// SetStrict stores value with TTL and reports every failure, including a
// missing Redis configuration.
func (c *Client) SetStrict(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.Enabled() {
		return ErrUnavailable
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}
	_ = c.client.Del(ctx, key).Err()
	return nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
