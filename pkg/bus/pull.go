package bus

import (
	"context"

	"github.com/cuemby/relay/pkg/event"
)

// PullSubscription is a scoped stream of typed jobs pulled from one queue.
type PullSubscription[S any, D any, M any] struct {
	raw  RawJobSubscription
	spec *event.Spec[S, D, M, event.Empty]
	bus  *Bus
}

// Next blocks until the next job is available, ctx is cancelled, or the
// subscription is closed.
func (s *PullSubscription[S, D, M]) Next(ctx context.Context) (*Job[S, D, M], error) {
	raw, err := s.raw.Next(ctx)
	if err != nil {
		return nil, err
	}
	return newJob(s.spec, raw, s.bus.Codec), nil
}

// Close releases the subscription.
func (s *PullSubscription[S, D, M]) Close() error {
	return s.raw.Close()
}

// Pull opens a scoped stream of jobs from the queue described by q,
// creating it in the transport on first use. spec describes the shape of
// every job the queue is expected to carry, used to decode its scope,
// payload and metadata.
func Pull[S any, D any, M any](ctx context.Context, b *Bus, spec *event.Spec[S, D, M, event.Empty], q QueueDescriptor) (*PullSubscription[S, D, M], error) {
	raw, err := b.Transport.Pull(ctx, q)
	if err != nil {
		return nil, err
	}
	return &PullSubscription[S, D, M]{raw: raw, spec: spec, bus: b}, nil
}
