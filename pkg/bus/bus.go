package bus

import (
	"context"

	"github.com/cuemby/relay/pkg/codec"
)

// Bus bundles a Transport with the Codec used to encode and decode
// everything that crosses it. The typed Publish/Call/Subscribe/Serve/
// Pull functions in this package take a *Bus as their first collaborator.
type Bus struct {
	Transport Transport
	Codec     codec.Codec
}

// New returns a Bus backed by transport, encoding and decoding with c.
func New(transport Transport, c codec.Codec) *Bus {
	return &Bus{Transport: transport, Codec: c}
}

// Connect establishes the underlying transport connection.
func (b *Bus) Connect(ctx context.Context) error {
	return b.Transport.Connect(ctx)
}

// Close tears down the underlying transport connection.
func (b *Bus) Close(ctx context.Context) error {
	return b.Transport.Close(ctx)
}
