package realtime

import (
	"context"
	"sync"
	"time"
)

// Queue is an unbounded FIFO handing values from producers to a consumer that
// waits with a deadline. Every value is received at most once.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	signal chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		signal: make(chan struct{}, 1),
	}
}

// Push appends v and wakes a waiting consumer.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
	q.notify()
}

// Reset drops every pending value and enqueues seed.
func (q *Queue[T]) Reset(seed T) {
	q.mu.Lock()
	q.items = append(q.items[:0], seed)
	q.mu.Unlock()
	q.notify()
}

// Drain discards pending values and returns how many were dropped.
func (q *Queue[T]) Drain() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items)
	clear(q.items)
	q.items = q.items[:0]
	return n
}

// Len reports the number of pending values.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// TryPop removes the oldest value without blocking.
func (q *Queue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, true
}

// Pop waits up to timeout for a value. It returns false when the timeout
// elapses or ctx is done first.
func (q *Queue[T]) Pop(ctx context.Context, timeout time.Duration) (T, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		if v, ok := q.TryPop(); ok {
			// Another consumer may still be parked on the signal.
			if q.Len() > 0 {
				q.notify()
			}
			return v, true
		}
		select {
		case <-q.signal:
		case <-timer.C:
			return q.TryPop()
		case <-ctx.Done():
			var zero T
			return zero, false
		}
	}
}

func (q *Queue[T]) notify() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}
