package bus

import (
	"fmt"
	"sync"

	"github.com/cuemby/relay/pkg/codec"
	"github.com/cuemby/relay/pkg/event"
)

// Message is an immutable, lazily-decoded envelope delivered by Subscribe.
// Scope, data and metadata are decoded on first access and cached; a
// decoding failure is returned from that accessor, wrapping ErrDecode, and
// does not prevent the other accessors from succeeding independently.
type Message[S any, D any, M any] struct {
	spec  *event.Spec[S, D, M, event.Empty]
	raw   RawMessage
	codec codec.Codec

	scopeOnce sync.Once
	scope     S
	scopeErr  error

	dataOnce sync.Once
	data     D
	dataErr  error

	metaOnce sync.Once
	meta     M
	metaErr  error
}

func newMessage[S any, D any, M any](spec *event.Spec[S, D, M, event.Empty], raw RawMessage, c codec.Codec) *Message[S, D, M] {
	return &Message[S, D, M]{spec: spec, raw: raw, codec: c}
}

// Subject returns the concrete subject the message was delivered on.
func (m *Message[S, D, M]) Subject() string { return m.raw.Subject }

// Spec returns the event specification the message was received against.
func (m *Message[S, D, M]) Spec() *event.Spec[S, D, M, event.Empty] { return m.spec }

// Scope extracts the typed scope from the message's concrete subject.
func (m *Message[S, D, M]) Scope() (S, error) {
	m.scopeOnce.Do(func() {
		scope, err := m.spec.ExtractScope(m.raw.Subject)
		if err != nil {
			m.scopeErr = fmt.Errorf("%w: %v", ErrDecode, err)
			return
		}
		m.scope = scope
	})
	return m.scope, m.scopeErr
}

// Data decodes the message payload.
func (m *Message[S, D, M]) Data() (D, error) {
	m.dataOnce.Do(func() {
		if err := m.codec.Decode(m.raw.Data, &m.data); err != nil {
			m.dataErr = fmt.Errorf("%w: %v", ErrDecode, err)
		}
	})
	return m.data, m.dataErr
}

// Metadata decodes the message headers into the metadata schema.
func (m *Message[S, D, M]) Metadata() (M, error) {
	m.metaOnce.Do(func() {
		if err := m.codec.ParseHeaders(m.raw.Headers, &m.meta); err != nil {
			m.metaErr = fmt.Errorf("%w: %v", ErrDecode, err)
		}
	})
	return m.meta, m.metaErr
}
