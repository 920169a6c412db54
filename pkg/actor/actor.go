package actor

import (
	"context"

	"github.com/cuemby/relay/pkg/bus"
)

// Actor is the common, type-erased interface of Subscriber, Responder and
// Consumer. start is unexported: only this package can produce a value
// satisfying Actor, so Play can hold a heterogeneous cohort without ever
// needing to know the concrete scope/data/metadata/reply types underneath.
type Actor interface {
	// Name identifies the actor for logging and instrumentation.
	Name() string
	start(ctx context.Context, b *bus.Bus, queue string, hooks Hooks) (bus.Closer, <-chan error)
}
