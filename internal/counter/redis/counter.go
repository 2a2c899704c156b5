// Package redis implements port.InvoiceCounter on a shared Redis key so that
// several server processes never hand out the same invoice number.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis key holding the last reserved counter value.
const DefaultKey = "gstbill:invoice:counter"

// reserveScript raises the counter to the floor if it lags behind, then
// increments it. Both steps run atomically on the server.
var reserveScript = goredis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local floor = tonumber(ARGV[1])
if current < floor then
	redis.call('SET', KEYS[1], floor)
end
return redis.call('INCR', KEYS[1])
`)

// Counter reserves invoice counter values in Redis.
type Counter struct {
	client goredis.Cmdable
	key    string
}

// NewCounter creates a Counter. An empty key uses DefaultKey.
func NewCounter(client goredis.Cmdable, key string) *Counter {
	if key == "" {
		key = DefaultKey
	}
	return &Counter{client: client, key: key}
}

// Reserve returns a value greater than floor and greater than any value
// previously reserved under the same key.
func (c *Counter) Reserve(ctx context.Context, floor int) (int, error) {
	n, err := reserveScript.Run(ctx, c.client, []string{c.key}, floor).Int()
	if err != nil {
		return 0, fmt.Errorf("redisCounter.Reserve: %w", err)
	}
	return n, nil
}

// Peek returns the value Reserve would hand out for floor without taking it.
func (c *Counter) Peek(ctx context.Context, floor int) (int, error) {
	current, err := c.client.Get(ctx, c.key).Int()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return 0, fmt.Errorf("redisCounter.Peek: %w", err)
	}
	return max(current, floor) + 1, nil
}

// Reset stores value as the last reserved counter value.
func (c *Counter) Reset(ctx context.Context, value int) error {
	if err := c.client.Set(ctx, c.key, max(value, 0), 0).Err(); err != nil {
		return fmt.Errorf("redisCounter.Reset: %w", err)
	}
	return nil
}

// Connect opens a client from a redis:// URL and verifies it with PING.
func Connect(ctx context.Context, url string) (*goredis.Client, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.MaxRetries = 3

	client := goredis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
