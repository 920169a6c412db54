package play

import (
	"context"

	"github.com/cuemby/relay/pkg/bus"
	"github.com/cuemby/relay/pkg/event"
)

// Waiter blocks a Play's caller on the first message matching one spec —
// typically a readiness or acknowledgement event published by one of the
// cohort's own actors once Start returns. The decode/timeout logic lives
// in pkg/bus alongside Subscribe; this is a thin re-export so assembling a
// Play needs only this package.
type Waiter[S any, D any, M any] = bus.Waiter[S, D, M]

// NewWaiter subscribes to spec on b and returns a Waiter over it.
func NewWaiter[S any, D any, M any](ctx context.Context, b *bus.Bus, spec *event.Spec[S, D, M, event.Empty], queue string) (*Waiter[S, D, M], error) {
	return bus.NewWaiter[S, D, M](ctx, b, spec, queue)
}
