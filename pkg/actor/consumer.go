package actor

import (
	"context"
	"errors"

	"github.com/cuemby/relay/pkg/bus"
	"github.com/cuemby/relay/pkg/event"
)

// Consumer runs Handler once per job pulled from Queue. Unlike Subscriber
// and Responder, a Consumer ignores any cohort-wide queue group name Play
// is given: a Job already carries its own Ack/Nack/Term, so the handler —
// not the actor loop — owns acknowledgement and redelivery decisions.
type Consumer[S any, D any, M any] struct {
	name    string
	spec    *event.Spec[S, D, M, event.Empty]
	queue   bus.QueueDescriptor
	handler func(ctx context.Context, job *bus.Job[S, D, M]) error
}

// NewConsumer builds a Consumer actor named name, dispatching every job
// pulled from queue to handler.
func NewConsumer[S any, D any, M any](
	name string,
	spec *event.Spec[S, D, M, event.Empty],
	queue bus.QueueDescriptor,
	handler func(ctx context.Context, job *bus.Job[S, D, M]) error,
) *Consumer[S, D, M] {
	return &Consumer[S, D, M]{name: name, spec: spec, queue: queue, handler: handler}
}

// Name identifies the actor for logging and instrumentation.
func (a *Consumer[S, D, M]) Name() string { return a.name }

func (a *Consumer[S, D, M]) start(ctx context.Context, b *bus.Bus, _ string, hooks Hooks) (bus.Closer, <-chan error) {
	hooks.starting(a.name)
	errCh := make(chan error, 1)
	sub, err := bus.Pull(ctx, b, a.spec, a.queue)
	if err != nil {
		errCh <- err
		close(errCh)
		return nil, errCh
	}
	hooks.started(a.name)

	go func() {
		defer close(errCh)
		for {
			job, err := sub.Next(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, bus.ErrClosed) {
					hooks.cancelled(a.name)
					return
				}
				hooks.failed(a.name, "", err)
				errCh <- err
				return
			}
			hooks.processing(a.name, job.Subject())
			if err := a.handler(ctx, job); err != nil {
				hooks.failed(a.name, job.Subject(), err)
				errCh <- err
				return
			}
			hooks.processed(a.name, job.Subject())
		}
	}()
	return sub, errCh
}
