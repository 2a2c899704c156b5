package sequence

import (
	"context"
	"sync"
)

// LocalCounter is an in-process counter for single-instance deployments.
type LocalCounter struct {
	mu   sync.Mutex
	last int
}

// NewLocalCounter returns a counter starting at zero.
func NewLocalCounter() *LocalCounter {
	return &LocalCounter{}
}

// Reserve returns max(floor, last) + 1 and remembers it.
func (c *LocalCounter) Reserve(_ context.Context, floor int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = max(c.last, floor) + 1
	return c.last, nil
}

// Peek returns max(floor, last) + 1 without remembering it.
func (c *LocalCounter) Peek(_ context.Context, floor int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return max(c.last, floor) + 1, nil
}

// Reset moves the counter to value, backwards included.
func (c *LocalCounter) Reset(_ context.Context, value int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = max(value, 0)
	return nil
}
