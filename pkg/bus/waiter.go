package bus

import (
	"context"
	"errors"
	"time"

	"github.com/cuemby/relay/pkg/event"
)

// Waiter opens a subscription at construction and exposes a one-shot Wait
// for the first delivered message, bounded by an optional timeout. The
// in-process transport's Request does not use it: it waits on its own raw
// reply record.
type Waiter[S any, D any, M any] struct {
	sub *Subscription[S, D, M]
}

// NewWaiter subscribes to spec and returns a Waiter over that subscription.
func NewWaiter[S any, D any, M any](ctx context.Context, b *Bus, spec *event.Spec[S, D, M, event.Empty], queue string) (*Waiter[S, D, M], error) {
	sub, err := Subscribe(ctx, b, spec, queue)
	if err != nil {
		return nil, err
	}
	return &Waiter[S, D, M]{sub: sub}, nil
}

// Wait blocks for the first matching message. When timeout is non-zero and
// expires first, it closes the underlying subscription and returns
// ErrTimeout.
func (w *Waiter[S, D, M]) Wait(ctx context.Context, timeout time.Duration) (*Message[S, D, M], error) {
	waitCtx := ctx
	cancel := func() {}
	if timeout > 0 {
		waitCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	msg, err := w.sub.Next(waitCtx)
	if err != nil {
		if errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
			_ = w.sub.Close()
			return nil, ErrTimeout
		}
		return nil, err
	}
	return msg, nil
}

// Close releases the underlying subscription.
func (w *Waiter[S, D, M]) Close() error {
	return w.sub.Close()
}
