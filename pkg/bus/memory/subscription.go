package memory

import (
	"context"
	"sync"

	"github.com/cuemby/relay/pkg/bus"
)

type subRecord struct {
	filter string
	queue  string
	ch     chan bus.RawMessage
}

type respRecord struct {
	filter string
	queue  string
	ch     chan bus.RawRequest
}

type subscription struct {
	t    *Transport
	rec  *subRecord
	once sync.Once
}

// Subscribe allocates a new bounded inbox, appends a subscription record,
// and returns a scoped stream over it.
func (t *Transport) Subscribe(ctx context.Context, filter string, queue string) (bus.RawSubscription, error) {
	rec := &subRecord{filter: filter, queue: queue, ch: make(chan bus.RawMessage, t.inboxSize)}
	t.mu.Lock()
	t.subs = append(t.subs, rec)
	t.mu.Unlock()
	return &subscription{t: t, rec: rec}, nil
}

func (s *subscription) Next(ctx context.Context) (bus.RawMessage, error) {
	select {
	case msg, ok := <-s.rec.ch:
		if !ok {
			return bus.RawMessage{}, bus.ErrClosed
		}
		return msg, nil
	case <-ctx.Done():
		return bus.RawMessage{}, ctx.Err()
	}
}

// Close removes this subscription's record so Publish stops routing to it.
// It deliberately does not close rec.ch: a Publish goroutine may have
// already snapshotted this record and be about to send on it, and a send
// on a closed channel panics. Next unblocks via ctx.Done() instead, which
// every actor loop already treats the same as a closed scope.
func (s *subscription) Close() error {
	s.once.Do(func() {
		s.t.removeSub(s.rec)
	})
	return nil
}

type respSubscription struct {
	t    *Transport
	rec  *respRecord
	once sync.Once
}

// Serve allocates a new bounded inbox of requests and returns a scoped
// stream over it.
func (t *Transport) Serve(ctx context.Context, filter string, queue string) (bus.RawRequestSubscription, error) {
	rec := &respRecord{filter: filter, queue: queue, ch: make(chan bus.RawRequest, t.inboxSize)}
	t.mu.Lock()
	t.responders = append(t.responders, rec)
	t.mu.Unlock()
	return &respSubscription{t: t, rec: rec}, nil
}

func (s *respSubscription) Next(ctx context.Context) (bus.RawRequest, error) {
	select {
	case req, ok := <-s.rec.ch:
		if !ok {
			return bus.RawRequest{}, bus.ErrClosed
		}
		return req, nil
	case <-ctx.Done():
		return bus.RawRequest{}, ctx.Err()
	}
}

// Close removes this subscription's record; see subscription.Close for why
// rec.ch is never closed here.
func (s *respSubscription) Close() error {
	s.once.Do(func() {
		s.t.removeResponder(s.rec)
	})
	return nil
}
