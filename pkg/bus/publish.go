package bus

import (
	"context"
	"fmt"
	"time"

	"github.com/cuemby/relay/pkg/codec"
	"github.com/cuemby/relay/pkg/event"
)

// Publish renders scope into spec's address, encodes payload and metadata,
// and hands the result to the transport. timeout, when non-zero, bounds
// how long Publish waits for the transport to accept or flush the message.
func Publish[S any, D any, M any](ctx context.Context, b *Bus, spec *event.Spec[S, D, M, event.Empty], scope S, payload D, metadata M, timeout time.Duration) error {
	subject, err := spec.GetSubject(scope)
	if err != nil {
		return err
	}
	data, headers, err := encode(b.Codec, payload, metadata)
	if err != nil {
		return err
	}
	return b.Transport.Publish(ctx, subject, data, headers, timeout)
}

func encode[D any, M any](c codec.Codec, payload D, metadata M) ([]byte, map[string]string, error) {
	data, err := c.Encode(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("bus: encode payload: %w", err)
	}
	headers, err := c.EncodeHeaders(metadata)
	if err != nil {
		return nil, nil, fmt.Errorf("bus: encode metadata: %w", err)
	}
	return data, headers, nil
}
