package bus

import (
	"context"
	"errors"
	"sync/atomic"

	"marketwire/internal/schema"
)

var (
	ErrQueueFull   = errors.New("record queue full")
	ErrQueueClosed = errors.New("record queue closed")
)

// Queue is a bounded FIFO of decoded records. A single producer and a
// single consumer preserve delivery order end to end.
type Queue struct {
	ch     chan schema.Record
	closed uint32
}

// NewQueue allocates a queue with the given capacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{ch: make(chan schema.Record, capacity)}
}

// Publish enqueues a record, blocking until there is room or ctx is done.
func (q *Queue) Publish(ctx context.Context, rec schema.Record) error {
	if atomic.LoadUint32(&q.closed) != 0 {
		return ErrQueueClosed
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case q.ch <- rec:
		return nil
	}
}

// TryPublish enqueues a record without blocking.
func (q *Queue) TryPublish(rec schema.Record) error {
	if atomic.LoadUint32(&q.closed) != 0 {
		return ErrQueueClosed
	}
	select {
	case q.ch <- rec:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops the queue from accepting new records. Records already queued
// are still delivered.
func (q *Queue) Close() {
	if atomic.CompareAndSwapUint32(&q.closed, 0, 1) {
		close(q.ch)
	}
}

// Run consumes records in order until the context is done or the queue is
// closed and drained.
func (q *Queue) Run(ctx context.Context, handler func(schema.Record)) {
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-q.ch:
			if !ok {
				return
			}
			handler(rec)
		}
	}
}
