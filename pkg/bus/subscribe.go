package bus

import (
	"context"

	"github.com/cuemby/relay/pkg/event"
)

// Closer is anything with a release step — satisfied by every scoped
// acquisition this package returns (Subscription, ServeSubscription,
// PullSubscription). Play keeps a LIFO stack of Closers and drains it on
// teardown.
type Closer interface {
	Close() error
}

// Subscription is a scoped stream of typed messages matching one spec.
type Subscription[S any, D any, M any] struct {
	raw  RawSubscription
	spec *event.Spec[S, D, M, event.Empty]
	bus  *Bus
}

// Next blocks until the next matching message is available, ctx is
// cancelled, or the subscription is closed.
func (s *Subscription[S, D, M]) Next(ctx context.Context) (*Message[S, D, M], error) {
	raw, err := s.raw.Next(ctx)
	if err != nil {
		return nil, err
	}
	return newMessage(s.spec, raw, s.bus.Codec), nil
}

// Close releases the subscription.
func (s *Subscription[S, D, M]) Close() error {
	return s.raw.Close()
}

// Subscribe opens a scoped subscription to spec, optionally joining queue
// group queue. Each subscriber outside a queue group gets its own copy of
// every matching message; within a group, at most one member receives it.
func Subscribe[S any, D any, M any](ctx context.Context, b *Bus, spec *event.Spec[S, D, M, event.Empty], queue string) (*Subscription[S, D, M], error) {
	raw, err := b.Transport.Subscribe(ctx, spec.Filter(), queue)
	if err != nil {
		return nil, err
	}
	return &Subscription[S, D, M]{raw: raw, spec: spec, bus: b}, nil
}
