package bus

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cuemby/relay/pkg/codec"
	"github.com/cuemby/relay/pkg/event"
)

// Request is a Message that must be answered exactly once via Reply. A
// second call to Reply returns ErrAlreadyReplied; a Responder handler that
// returns an error never calls Reply at all, so the caller of Request
// observes only a timeout.
type Request[S any, D any, M any, R any] struct {
	spec  *event.Spec[S, D, M, R]
	raw   RawRequest
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

	replied atomic.Bool
}

func newRequest[S any, D any, M any, R any](spec *event.Spec[S, D, M, R], raw RawRequest, c codec.Codec) *Request[S, D, M, R] {
	return &Request[S, D, M, R]{spec: spec, raw: raw, codec: c}
}

// Subject returns the concrete subject the request was delivered on.
func (r *Request[S, D, M, R]) Subject() string { return r.raw.Subject }

// Spec returns the event specification the request was received against.
func (r *Request[S, D, M, R]) Spec() *event.Spec[S, D, M, R] { return r.spec }

// Scope extracts the typed scope from the request's concrete subject.
func (r *Request[S, D, M, R]) Scope() (S, error) {
	r.scopeOnce.Do(func() {
		scope, err := r.spec.ExtractScope(r.raw.Subject)
		if err != nil {
			r.scopeErr = fmt.Errorf("%w: %v", ErrDecode, err)
			return
		}
		r.scope = scope
	})
	return r.scope, r.scopeErr
}

// Data decodes the request payload.
func (r *Request[S, D, M, R]) Data() (D, error) {
	r.dataOnce.Do(func() {
		if err := r.codec.Decode(r.raw.Data, &r.data); err != nil {
			r.dataErr = fmt.Errorf("%w: %v", ErrDecode, err)
		}
	})
	return r.data, r.dataErr
}

// Metadata decodes the request headers into the metadata schema.
func (r *Request[S, D, M, R]) Metadata() (M, error) {
	r.metaOnce.Do(func() {
		if err := r.codec.ParseHeaders(r.raw.Headers, &r.meta); err != nil {
			r.metaErr = fmt.Errorf("%w: %v", ErrDecode, err)
		}
	})
	return r.meta, r.metaErr
}

// Reply encodes payload and sends it back to the requester. It may be
// called at most once.
func (r *Request[S, D, M, R]) Reply(payload R) error {
	if !r.replied.CompareAndSwap(false, true) {
		return ErrAlreadyReplied
	}
	data, err := r.codec.Encode(payload)
	if err != nil {
		return fmt.Errorf("bus: encode reply: %w", err)
	}
	return r.raw.Reply(data, nil)
}
