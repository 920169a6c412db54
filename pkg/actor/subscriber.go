package actor

import (
	"context"
	"errors"

	"github.com/cuemby/relay/pkg/bus"
	"github.com/cuemby/relay/pkg/event"
)

// Subscriber runs Handler once per message matching Spec, fire-and-forget.
type Subscriber[S any, D any, M any] struct {
	name    string
	spec    *event.Spec[S, D, M, event.Empty]
	handler func(ctx context.Context, msg *bus.Message[S, D, M]) error
}

// NewSubscriber builds a Subscriber actor named name, dispatching every
// message matching spec to handler.
func NewSubscriber[S any, D any, M any](
	name string,
	spec *event.Spec[S, D, M, event.Empty],
	handler func(ctx context.Context, msg *bus.Message[S, D, M]) error,
) *Subscriber[S, D, M] {
	return &Subscriber[S, D, M]{name: name, spec: spec, handler: handler}
}

// Name identifies the actor for logging and instrumentation.
func (a *Subscriber[S, D, M]) Name() string { return a.name }

func (a *Subscriber[S, D, M]) start(ctx context.Context, b *bus.Bus, queue string, hooks Hooks) (bus.Closer, <-chan error) {
	hooks.starting(a.name)
	errCh := make(chan error, 1)
	sub, err := bus.Subscribe(ctx, b, a.spec, queue)
	if err != nil {
		errCh <- err
		close(errCh)
		return nil, errCh
	}
	hooks.started(a.name)

	go func() {
		defer close(errCh)
		for {
			msg, err := sub.Next(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, bus.ErrClosed) {
					hooks.cancelled(a.name)
					return
				}
				hooks.failed(a.name, "", err)
				errCh <- err
				return
			}
			hooks.processing(a.name, msg.Subject())
			if err := a.handler(ctx, msg); err != nil {
				hooks.failed(a.name, msg.Subject(), err)
				errCh <- err
				return
			}
			hooks.processed(a.name, msg.Subject())
		}
	}()
	return sub, errCh
}
