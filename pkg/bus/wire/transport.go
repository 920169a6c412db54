package wire

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/cuemby/relay/pkg/bus"
)

// Transport is a bus.Transport backed by a real NATS connection. The zero
// value is not usable; construct one with New and call Connect before
// passing it to bus.New.
type Transport struct {
	url  string
	opts []nats.Option

	nc *nats.Conn
	js nats.JetStreamContext

	mu      sync.Mutex
	streams map[string]struct{}
}

// Option configures a Transport before Connect.
type Option func(*Transport)

// WithURL overrides the default NATS server URL (nats.DefaultURL).
func WithURL(url string) Option {
	return func(t *Transport) { t.url = url }
}

// WithNATSOptions appends raw nats.Option values, for TLS, credentials,
// reconnect tuning and anything else this package does not wrap directly.
func WithNATSOptions(opts ...nats.Option) Option {
	return func(t *Transport) { t.opts = append(t.opts, opts...) }
}

// New constructs a Transport. Connect must be called before it is used.
func New(opts ...Option) *Transport {
	t := &Transport{
		url:     nats.DefaultURL,
		streams: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Connect dials the NATS server and opens a JetStream context.
func (t *Transport) Connect(ctx context.Context) error {
	nc, err := nats.Connect(t.url, t.opts...)
	if err != nil {
		return fmt.Errorf("wire: connect: %w", err)
	}
	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return fmt.Errorf("wire: jetstream context: %w", err)
	}
	t.nc = nc
	t.js = js
	return nil
}

// Close drains in-flight publishes and closes the connection.
func (t *Transport) Close(ctx context.Context) error {
	if t.nc == nil {
		return nil
	}
	if err := t.nc.Drain(); err != nil {
		return fmt.Errorf("wire: drain: %w", err)
	}
	return nil
}

// Publish sends data to subj over core NATS. When timeout is non-zero it
// also flushes the connection, waiting up to timeout for the server to
// confirm everything sent so far.
func (t *Transport) Publish(ctx context.Context, subj string, data []byte, headers map[string]string, timeout time.Duration) error {
	msg := nats.NewMsg(subj)
	msg.Data = data
	setHeaders(msg, headers)
	if err := t.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("wire: publish: %w", err)
	}
	if timeout > 0 {
		if err := t.nc.FlushTimeout(timeout); err != nil {
			return fmt.Errorf("wire: flush: %w", err)
		}
	}
	return nil
}

// Request sends data to subj and waits for exactly one reply using NATS's
// native inbox-based request/reply.
func (t *Transport) Request(ctx context.Context, subj string, data []byte, headers map[string]string, timeout time.Duration) (bus.RawMessage, error) {
	msg := nats.NewMsg(subj)
	msg.Data = data
	setHeaders(msg, headers)

	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	reply, err := t.nc.RequestMsgWithContext(reqCtx, msg)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// The caller's own context ended the wait, not our timeout:
			// the reply scope closed with no reply, not a deadline.
			return bus.RawMessage{}, bus.ErrNoReply
		}
		if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
			return bus.RawMessage{}, bus.ErrTimeout
		}
		return bus.RawMessage{}, fmt.Errorf("wire: request: %w", err)
	}
	return bus.RawMessage{Subject: reply.Subject, Data: reply.Data, Headers: headerMap(reply.Header)}, nil
}

// Subscribe opens a core NATS subscription, fanning messages into a
// buffered channel that Next reads from.
func (t *Transport) Subscribe(ctx context.Context, filter string, queue string) (bus.RawSubscription, error) {
	ch := make(chan *nats.Msg, 64)
	sub, err := t.chanSubscribe(filter, queue, ch)
	if err != nil {
		return nil, fmt.Errorf("wire: subscribe: %w", err)
	}
	return &subscription{sub: sub, ch: ch}, nil
}

// Serve opens a core NATS subscription for request/reply, honoring queue
// the same way Subscribe does.
func (t *Transport) Serve(ctx context.Context, filter string, queue string) (bus.RawRequestSubscription, error) {
	ch := make(chan *nats.Msg, 64)
	sub, err := t.chanSubscribe(filter, queue, ch)
	if err != nil {
		return nil, fmt.Errorf("wire: serve: %w", err)
	}
	return &requestSubscription{sub: sub, ch: ch}, nil
}

func (t *Transport) chanSubscribe(filter, queue string, ch chan *nats.Msg) (*nats.Subscription, error) {
	if queue != "" {
		return t.nc.ChanQueueSubscribe(filter, queue, ch)
	}
	return t.nc.ChanSubscribe(filter, ch)
}

func setHeaders(msg *nats.Msg, headers map[string]string) {
	if len(headers) == 0 {
		return
	}
	if msg.Header == nil {
		msg.Header = nats.Header{}
	}
	for k, v := range headers {
		msg.Header.Set(k, v)
	}
}

func headerMap(h nats.Header) map[string]string {
	if len(h) == 0 {
		return nil
	}
	out := make(map[string]string, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	return out
}
