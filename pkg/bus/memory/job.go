package memory

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cuemby/relay/pkg/bus"
)

const defaultMaxPending = 256

// jobQueue is a bounded, at-least-once job queue: an unacknowledged job is
// redelivered automatically when its MaxWait elapses, or immediately on
// Nack.
type jobQueue struct {
	name    string
	filters []string
	pending chan bus.RawMessage
	maxWait time.Duration
}

func (t *Transport) getOrCreateQueue(q bus.QueueDescriptor) *jobQueue {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.queues[q.Name]; ok {
		return existing
	}
	maxPending := q.MaxPending
	if maxPending <= 0 {
		maxPending = defaultMaxPending
	}
	jq := &jobQueue{
		name:    q.Name,
		filters: q.Filters,
		pending: make(chan bus.RawMessage, maxPending),
		maxWait: q.MaxWait,
	}
	t.queues[q.Name] = jq
	return jq
}

// Push enqueues a message for at-least-once delivery, dropping it if the
// queue is at capacity.
func (q *jobQueue) push(msg bus.RawMessage) bool {
	select {
	case q.pending <- msg:
		return true
	default:
		return false
	}
}

func (q *jobQueue) requeue(msg bus.RawMessage) {
	select {
	case q.pending <- msg:
	default:
	}
}

type pullSubscription struct {
	q      *jobQueue
	closed atomic.Bool
}

// Pull creates the named queue on first use and returns a scoped stream of
// jobs over it.
func (t *Transport) Pull(ctx context.Context, q bus.QueueDescriptor) (bus.RawJobSubscription, error) {
	jq := t.getOrCreateQueue(q)
	return &pullSubscription{q: jq}, nil
}

func (s *pullSubscription) Next(ctx context.Context) (bus.RawJob, error) {
	if s.closed.Load() {
		return bus.RawJob{}, bus.ErrClosed
	}
	select {
	case msg, ok := <-s.q.pending:
		if !ok {
			return bus.RawJob{}, bus.ErrClosed
		}
		return s.wrap(msg), nil
	case <-ctx.Done():
		return bus.RawJob{}, ctx.Err()
	}
}

func (s *pullSubscription) wrap(msg bus.RawMessage) bus.RawJob {
	resolved := &atomic.Bool{}
	var timer *time.Timer
	if s.q.maxWait > 0 {
		timer = time.AfterFunc(s.q.maxWait, func() {
			if resolved.CompareAndSwap(false, true) {
				s.q.requeue(msg)
			}
		})
	}
	return bus.RawJob{
		RawMessage: msg,
		Ack: func() error {
			if resolved.CompareAndSwap(false, true) && timer != nil {
				timer.Stop()
			}
			return nil
		},
		Nack: func(delayMillis int64) error {
			if !resolved.CompareAndSwap(false, true) {
				return nil
			}
			if timer != nil {
				timer.Stop()
			}
			if delayMillis > 0 {
				time.AfterFunc(time.Duration(delayMillis)*time.Millisecond, func() {
					s.q.requeue(msg)
				})
			} else {
				s.q.requeue(msg)
			}
			return nil
		},
		Term: func() error {
			if resolved.CompareAndSwap(false, true) && timer != nil {
				timer.Stop()
			}
			return nil
		},
	}
}

// Close marks the queue's subscription closed. The queue itself, and any
// jobs already pending in it, outlive one subscription: a new Pull can
// resume consuming them.
func (s *pullSubscription) Close() error {
	s.closed.Store(true)
	return nil
}
