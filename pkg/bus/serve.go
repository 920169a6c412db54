package bus

import (
	"context"

	"github.com/cuemby/relay/pkg/event"
)

// ServeSubscription is a scoped stream of typed requests matching one
// request/reply spec.
type ServeSubscription[S any, D any, M any, R any] struct {
	raw  RawRequestSubscription
	spec *event.Spec[S, D, M, R]
	bus  *Bus
}

// Next blocks until the next matching request is available, ctx is
// cancelled, or the subscription is closed.
func (s *ServeSubscription[S, D, M, R]) Next(ctx context.Context) (*Request[S, D, M, R], error) {
	raw, err := s.raw.Next(ctx)
	if err != nil {
		return nil, err
	}
	return newRequest(s.spec, raw, s.bus.Codec), nil
}

// Close releases the subscription.
func (s *ServeSubscription[S, D, M, R]) Close() error {
	return s.raw.Close()
}

// Serve opens a scoped subscription to a request/reply spec, optionally
// joining queue group queue.
func Serve[S any, D any, M any, R any](ctx context.Context, b *Bus, spec *event.Spec[S, D, M, R], queue string) (*ServeSubscription[S, D, M, R], error) {
	raw, err := b.Transport.Serve(ctx, spec.Filter(), queue)
	if err != nil {
		return nil, err
	}
	return &ServeSubscription[S, D, M, R]{raw: raw, spec: spec, bus: b}, nil
}
