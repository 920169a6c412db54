package play

import (
	"context"
	"fmt"
	"sync"

	"github.com/cuemby/relay/pkg/actor"
	"github.com/cuemby/relay/pkg/bus"
)

// Play runs a cohort of actors as one supervised unit: coordinated
// startup, fail-fast cancellation of every other actor on the first
// non-cancellation failure, and LIFO teardown of every subscription the
// cohort opened.
type Play struct {
	name  string
	bus   *bus.Bus
	queue string
	instr Instrumentation

	mu      sync.Mutex
	actors  []actor.Actor
	stack   []bus.Closer
	cancel  context.CancelFunc
	errs    []error
	started bool
	stopped bool

	wg      sync.WaitGroup
	allDone chan struct{}
}

// New constructs a Play named name over b running actors. When queue is
// non-empty, every Subscriber and Responder in the cohort joins that queue
// group on Start; Consumers ignore it, since a pull queue already
// delivers each job to exactly one puller regardless of any group name.
func New(name string, b *bus.Bus, instr Instrumentation, queue string, actors ...actor.Actor) *Play {
	return &Play{name: name, bus: b, queue: queue, instr: instr, actors: append([]actor.Actor(nil), actors...)}
}

// Name identifies the play for logging and instrumentation.
func (p *Play) Name() string { return p.name }

// Extend adds actors to the cohort. It fails with ErrPrecondition once the
// play has started, mirroring Play.extend in
// _examples/original_source/src/synopsys/concurrency/play.py.
func (p *Play) Extend(actors ...actor.Actor) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return fmt.Errorf("%w: cannot extend a play after it has started", ErrPrecondition)
	}
	p.actors = append(p.actors, actors...)
	return nil
}

// Started reports whether Start has been called.
func (p *Play) Started() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// Start opens every actor's subscription and runs its handler loop in its
// own goroutine. Start is idempotent: calling it again on an already
// started play is a no-op.
func (p *Play) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return nil
	}
	p.started = true
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.allDone = make(chan struct{})
	actors := append([]actor.Actor(nil), p.actors...)
	p.mu.Unlock()

	p.instr.playStarting(p)

	for _, a := range actors {
		closer, errCh := a.start(runCtx, p.bus, p.queue, p.instr.hooks())
		if closer != nil {
			p.mu.Lock()
			p.stack = append(p.stack, closer)
			p.mu.Unlock()
		}
		p.wg.Add(1)
		go p.watch(errCh)
	}

	go func() {
		p.wg.Wait()
		close(p.allDone)
	}()

	p.instr.playStarted(p)
	return nil
}

// watch waits for the one error (if any) an actor's loop reports, and
// cancels the whole cohort on the first one it sees. A cancelled actor
// closes its error channel without sending, so watch returns cleanly.
func (p *Play) watch(errCh <-chan error) {
	defer p.wg.Done()
	err, ok := <-errCh
	if !ok || err == nil {
		return
	}
	p.mu.Lock()
	p.errs = append(p.errs, err)
	cancel := p.cancel
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until every actor goroutine has exited or ctx is cancelled.
func (p *Play) Wait(ctx context.Context) error {
	p.mu.Lock()
	started := p.started
	done := p.allDone
	p.mu.Unlock()
	if !started {
		return fmt.Errorf("%w: play was never started", ErrPrecondition)
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done reports whether every actor goroutine has exited.
func (p *Play) Done() bool {
	p.mu.Lock()
	started := p.started
	done := p.allDone
	p.mu.Unlock()
	if !started {
		return false
	}
	select {
	case <-done:
		return true
	default:
		return false
	}
}

// Errors returns every non-cancellation error raised by the cohort so far.
func (p *Play) Errors() []error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]error(nil), p.errs...)
}

// Stop cancels the cohort, closes every subscription the cohort opened in
// the reverse order it was opened, and waits for every actor goroutine to
// exit (bounded by ctx). It returns a *FailureError aggregating every
// actor failure observed during the run.
func (p *Play) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return fmt.Errorf("%w: play was never started", ErrPrecondition)
	}
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	cancel := p.cancel
	stack := append([]bus.Closer(nil), p.stack...)
	done := p.allDone
	p.mu.Unlock()

	p.instr.playStopping(p)

	cancel()
	for i := len(stack) - 1; i >= 0; i-- {
		_ = stack[i].Close()
	}

	select {
	case <-done:
	case <-ctx.Done():
	}

	errs := p.Errors()
	if len(errs) > 0 {
		p.instr.playFailed(p, errs)
		p.instr.playStopped(p)
		return &FailureError{Errors: errs}
	}
	p.instr.playStopped(p)
	return nil
}
