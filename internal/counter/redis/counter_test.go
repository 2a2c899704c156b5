package redis

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCounter(t *testing.T, key string) (*Counter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCounter(client, key), mr
}

func storedValue(t *testing.T, mr *miniredis.Miniredis, key string) int {
	t.Helper()
	raw, err := mr.Get(key)
	require.NoError(t, err)
	n, err := strconv.Atoi(raw)
	require.NoError(t, err)
	return n
}

func TestCounter_Reserve(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCounter(t, "")

	n, err := c.Reserve(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// floor above the stored value raises it first
	n, err = c.Reserve(ctx, 41)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	// a stale floor never moves the counter backwards
	n, err = c.Reserve(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 43, n)
	assert.Equal(t, 43, storedValue(t, mr, DefaultKey))
}

func TestCounter_ReserveIsMonotonicAcrossClients(t *testing.T) {
	ctx := context.Background()
	first, mr := newTestCounter(t, "")
	other := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = other.Close() })
	second := NewCounter(other, "")

	const workers = 20
	results := make(chan int, 2*workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		for _, c := range []*Counter{first, second} {
			wg.Add(1)
			go func(c *Counter) {
				defer wg.Done()
				n, err := c.Reserve(ctx, 5)
				assert.NoError(t, err)
				results <- n
			}(c)
		}
	}
	wg.Wait()
	close(results)

	seen := map[int]bool{}
	for n := range results {
		assert.False(t, seen[n], "value %d reserved twice", n)
		assert.Greater(t, n, 5)
		seen[n] = true
	}
	assert.Len(t, seen, 2*workers)
	assert.Equal(t, 5+2*workers, storedValue(t, mr, DefaultKey))
}

func TestCounter_CustomKey(t *testing.T) {
	c, mr := newTestCounter(t, "branch:a")

	_, err := c.Reserve(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 6, storedValue(t, mr, "branch:a"))
	assert.False(t, mr.Exists(DefaultKey))
}

func TestCounter_Peek(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCounter(t, "")

	n, err := c.Peek(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "missing key peeks as zero")
	assert.False(t, mr.Exists(DefaultKey), "peek never writes")

	_, err = c.Reserve(ctx, 7)
	require.NoError(t, err)

	n, err = c.Peek(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	n, err = c.Peek(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, 21, n)

	n, err = c.Reserve(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
}

func TestCounter_Reset(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCounter(t, "")
	_, err := c.Reserve(ctx, 99)
	require.NoError(t, err)

	require.NoError(t, c.Reset(ctx, 3))
	assert.Equal(t, 3, storedValue(t, mr, DefaultKey))

	n, err := c.Reserve(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestCounter_ServerDown(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCounter(t, "")
	mr.Close()

	_, err := c.Reserve(ctx, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redisCounter.Reserve")

	_, err = c.Peek(ctx, 0)
	assert.ErrorContains(t, err, "redisCounter.Peek")

	assert.ErrorContains(t, c.Reset(ctx, 1), "redisCounter.Reset")
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	_, err = Connect(context.Background(), "not a url")
	assert.Error(t, err)
}
