package actor

import (
	"context"
	"errors"

	"github.com/cuemby/relay/pkg/bus"
	"github.com/cuemby/relay/pkg/event"
)

// Responder runs Handler once per request matching Spec and replies with
// its result. A handler error never produces a reply: the caller of
// bus.Call only observes a timeout, matching spec.md's "a failed handler
// does not reply".
type Responder[S any, D any, M any, R any] struct {
	name    string
	spec    *event.Spec[S, D, M, R]
	handler func(ctx context.Context, req *bus.Request[S, D, M, R]) (R, error)
}

// NewResponder builds a Responder actor named name, answering every
// request matching spec with handler's result.
func NewResponder[S any, D any, M any, R any](
	name string,
	spec *event.Spec[S, D, M, R],
	handler func(ctx context.Context, req *bus.Request[S, D, M, R]) (R, error),
) *Responder[S, D, M, R] {
	return &Responder[S, D, M, R]{name: name, spec: spec, handler: handler}
}

// Name identifies the actor for logging and instrumentation.
func (a *Responder[S, D, M, R]) Name() string { return a.name }

func (a *Responder[S, D, M, R]) start(ctx context.Context, b *bus.Bus, queue string, hooks Hooks) (bus.Closer, <-chan error) {
	hooks.starting(a.name)
	errCh := make(chan error, 1)
	sub, err := bus.Serve(ctx, b, a.spec, queue)
	if err != nil {
		errCh <- err
		close(errCh)
		return nil, errCh
	}
	hooks.started(a.name)

	go func() {
		defer close(errCh)
		for {
			req, err := sub.Next(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, bus.ErrClosed) {
					hooks.cancelled(a.name)
					return
				}
				hooks.failed(a.name, "", err)
				errCh <- err
				return
			}
			hooks.processing(a.name, req.Subject())
			result, err := a.handler(ctx, req)
			if err != nil {
				hooks.failed(a.name, req.Subject(), err)
				errCh <- err
				return
			}
			if err := req.Reply(result); err != nil {
				hooks.failed(a.name, req.Subject(), err)
				errCh <- err
				return
			}
			hooks.processed(a.name, req.Subject())
		}
	}()
	return sub, errCh
}
