package prefs

import (
	"context"
	"sync"
	"time"
)

// writeQueue serializes backend writes per key. A newer value for a key
// replaces any value still waiting, so the last value issued lands last.
type writeQueue struct {
	write   func(ctx context.Context, key, value string) error
	done    func(key, value string, err error)
	timeout time.Duration
	mu      sync.Mutex
	pending map[string]string
	active  map[string]bool
	waiters []chan struct{}
	closed  bool
}

func newWriteQueue(write func(ctx context.Context, key, value string) error, done func(key, value string, err error)) *writeQueue {
	return &writeQueue{
		write:   write,
		done:    done,
		pending: make(map[string]string),
		active:  make(map[string]bool),
	}
}

// enqueue schedules a write and reports false once the queue is closed.
func (q *writeQueue) enqueue(key, value string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.pending[key] = value
	if q.active[key] {
		return true
	}
	q.active[key] = true
	go q.drain(key)
	return true
}

func (q *writeQueue) drain(key string) {
	for {
		q.mu.Lock()
		value, ok := q.pending[key]
		if !ok {
			delete(q.active, key)
			if len(q.active) == 0 {
				for _, w := range q.waiters {
					close(w)
				}
				q.waiters = nil
			}
			q.mu.Unlock()
			return
		}
		delete(q.pending, key)
		q.mu.Unlock()

		ctx := context.Background()
		cancel := func() {}
		if q.timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, q.timeout)
		}
		err := q.write(ctx, key, value)
		cancel()

		q.done(key, value, err)
	}
}

// wait blocks until no key has a write in flight or ctx ends.
func (q *writeQueue) wait(ctx context.Context) error {
	q.mu.Lock()
	if len(q.active) == 0 {
		q.mu.Unlock()
		return nil
	}
	idle := make(chan struct{})
	q.waiters = append(q.waiters, idle)
	q.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *writeQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}
