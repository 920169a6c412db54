package bus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cuemby/relay/pkg/event"
)

// Call performs the bus's request/reply operation: it renders scope into
// spec's address, sends payload and metadata, and decodes the single
// reply. It realizes the request() operation of the data model; the name
// Call avoids colliding with the Request envelope type. timeout, when
// non-zero, bounds the total round trip and surfaces ErrTimeout on expiry.
func Call[S any, D any, M any, R any](ctx context.Context, b *Bus, spec *event.Spec[S, D, M, R], scope S, payload D, metadata M, timeout time.Duration) (R, error) {
	var zero R
	subject, err := spec.GetSubject(scope)
	if err != nil {
		return zero, err
	}
	data, headers, err := encode(b.Codec, payload, metadata)
	if err != nil {
		return zero, err
	}
	raw, err := b.Transport.Request(ctx, subject, data, headers, timeout)
	if err != nil {
		if errors.Is(err, ErrTimeout) || errors.Is(err, ErrNoReply) {
			return zero, err
		}
		return zero, fmt.Errorf("bus: request: %w", err)
	}
	var reply R
	if err := b.Codec.Decode(raw.Data, &reply); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return reply, nil
}
