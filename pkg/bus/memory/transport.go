package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cuemby/relay/pkg/bus"
	"github.com/cuemby/relay/pkg/subject"
)

// replyHeaderKey carries the per-request reply subject through the
// transport's internal header map. It is stripped before the request
// envelope reaches the responder so it never leaks into decoded metadata.
const replyHeaderKey = "\x00relay-reply-to"

const defaultInboxSize = 64

// Transport is an in-process bus.Transport. The zero value is not usable;
// construct one with New.
type Transport struct {
	syntax    subject.Syntax
	inboxSize int
	onDrop    func(filter string)
	onPublish func(subject string)
	onDeliver func(filter string)
	onRequest func(subject string, dur time.Duration, timedOut bool)

	mu         sync.Mutex
	subs       []*subRecord
	responders []*respRecord
	queues     map[string]*jobQueue
}

// Option configures a Transport at construction time.
type Option func(*Transport)

// WithSyntax overrides the default "." / "*" / ">" address syntax.
func WithSyntax(s subject.Syntax) Option {
	return func(t *Transport) { t.syntax = s }
}

// WithInboxSize sets the bounded channel capacity for every new
// subscription (default 64).
func WithInboxSize(n int) Option {
	return func(t *Transport) {
		if n > 0 {
			t.inboxSize = n
		}
	}
}

// WithDropHandler registers a callback invoked whenever a delivery is
// dropped because a subscriber's inbox was full. filter is the matched
// subscription's filter, not the concrete subject, since that is what
// identifies the saturated consumer.
func WithDropHandler(fn func(filter string)) Option {
	return func(t *Transport) { t.onDrop = fn }
}

// WithPublishHandler registers a callback invoked once per Publish call
// that reaches the transport, before fan-out to any subscriber or queue.
func WithPublishHandler(fn func(subject string)) Option {
	return func(t *Transport) { t.onPublish = fn }
}

// WithDeliverHandler registers a callback invoked once per successful
// delivery to a subscriber's inbox, a responder's inbox, or a queue.
func WithDeliverHandler(fn func(filter string)) Option {
	return func(t *Transport) { t.onDeliver = fn }
}

// WithRequestHandler registers a callback invoked once per Request call
// that resolves, reporting its round-trip duration and whether it ended in
// ErrTimeout rather than a reply.
func WithRequestHandler(fn func(subject string, dur time.Duration, timedOut bool)) Option {
	return func(t *Transport) { t.onRequest = fn }
}

// New returns an in-process Transport.
func New(opts ...Option) *Transport {
	t := &Transport{
		syntax:    subject.Default,
		inboxSize: defaultInboxSize,
		queues:    make(map[string]*jobQueue),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Connect is a no-op: there is nothing to connect to in process.
func (t *Transport) Connect(ctx context.Context) error { return nil }

// Close is a no-op: there is no external connection to tear down.
func (t *Transport) Close(ctx context.Context) error { return nil }

func (t *Transport) drop(filter string) {
	if t.onDrop != nil {
		t.onDrop(filter)
	}
}

func (t *Transport) publish(subj string) {
	if t.onPublish != nil {
		t.onPublish(subj)
	}
}

func (t *Transport) deliver(filter string) {
	if t.onDeliver != nil {
		t.onDeliver(filter)
	}
}

func (t *Transport) request(subj string, dur time.Duration, timedOut bool) {
	if t.onRequest != nil {
		t.onRequest(subj, dur, timedOut)
	}
}

// Publish delivers data to every non-grouped subscriber whose filter
// matches subject, and to at most one member of each matching queue group.
func (t *Transport) Publish(ctx context.Context, subj string, data []byte, headers map[string]string, timeout time.Duration) error {
	t.publish(subj)
	t.mu.Lock()
	subsSnapshot := append([]*subRecord(nil), t.subs...)
	queuesSnapshot := make([]*jobQueue, 0, len(t.queues))
	for _, jq := range t.queues {
		queuesSnapshot = append(queuesSnapshot, jq)
	}
	t.mu.Unlock()

	queuesProcessed := map[string]bool{}
	for _, rec := range subsSnapshot {
		if rec.queue != "" && queuesProcessed[rec.queue] {
			continue
		}
		ok, err := subject.Match(rec.filter, subj, t.syntax)
		if err != nil || !ok {
			continue
		}
		msg := bus.RawMessage{Subject: subj, Data: data, Headers: headers}
		select {
		case rec.ch <- msg:
			if rec.queue != "" {
				queuesProcessed[rec.queue] = true
			}
			t.deliver(rec.filter)
		default:
			t.drop(rec.filter)
		}
	}

	for _, jq := range queuesSnapshot {
		if !t.queueMatches(jq, subj) {
			continue
		}
		if !jq.push(bus.RawMessage{Subject: subj, Data: data, Headers: headers}) {
			t.drop(jq.name)
		} else {
			t.deliver(jq.name)
		}
	}
	return nil
}

func (t *Transport) queueMatches(jq *jobQueue, subj string) bool {
	if len(jq.filters) == 0 {
		return true
	}
	for _, filter := range jq.filters {
		if ok, err := subject.Match(filter, subj, t.syntax); err == nil && ok {
			return true
		}
	}
	return false
}

// Request publishes to subject and waits for exactly one reply delivered
// on a fresh reply subject, exactly as the in-process request() of the
// source does: a transient opaque subject, not a transport-level inbox.
func (t *Transport) Request(ctx context.Context, subj string, data []byte, headers map[string]string, timeout time.Duration) (bus.RawMessage, error) {
	replySubject := "_reply." + uuid.NewString()

	waitCh := make(chan bus.RawMessage, 1)
	replyRec := &subRecord{filter: replySubject, ch: waitCh}
	t.mu.Lock()
	t.subs = append(t.subs, replyRec)
	t.mu.Unlock()
	defer t.removeSub(replyRec)

	h := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		h[k] = v
	}
	h[replyHeaderKey] = replySubject

	start := time.Now()
	t.notifyResponders(subj, data, h)

	waitCtx := ctx
	cancel := func() {}
	if timeout > 0 {
		waitCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	select {
	case msg := <-waitCh:
		t.request(subj, time.Since(start), false)
		return msg, nil
	case <-waitCtx.Done():
		dur := time.Since(start)
		if ctx.Err() != nil {
			// The caller's own context ended the wait, not our timeout:
			// the reply scope closed with no reply, not a deadline.
			t.request(subj, dur, false)
			return bus.RawMessage{}, bus.ErrNoReply
		}
		t.request(subj, dur, true)
		return bus.RawMessage{}, bus.ErrTimeout
	}
}

func (t *Transport) notifyResponders(subj string, data []byte, headers map[string]string) {
	t.mu.Lock()
	snapshot := append([]*respRecord(nil), t.responders...)
	t.mu.Unlock()

	replyTo := headers[replyHeaderKey]
	cleanHeaders := make(map[string]string, len(headers))
	for k, v := range headers {
		if k == replyHeaderKey {
			continue
		}
		cleanHeaders[k] = v
	}

	queuesProcessed := map[string]bool{}
	for _, rec := range snapshot {
		if rec.queue != "" && queuesProcessed[rec.queue] {
			continue
		}
		ok, err := subject.Match(rec.filter, subj, t.syntax)
		if err != nil || !ok {
			continue
		}
		req := bus.RawRequest{
			RawMessage: bus.RawMessage{Subject: subj, Data: data, Headers: cleanHeaders},
			Reply: func(replyData []byte, _ map[string]string) error {
				return t.Publish(context.Background(), replyTo, replyData, nil, 0)
			},
		}
		select {
		case rec.ch <- req:
			if rec.queue != "" {
				queuesProcessed[rec.queue] = true
			}
			t.deliver(rec.filter)
		default:
			t.drop(rec.filter)
		}
	}
}

func (t *Transport) removeSub(rec *subRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, r := range t.subs {
		if r == rec {
			t.subs = append(t.subs[:i], t.subs[i+1:]...)
			break
		}
	}
}

func (t *Transport) removeResponder(rec *respRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, r := range t.responders {
		if r == rec {
			t.responders = append(t.responders[:i], t.responders[i+1:]...)
			break
		}
	}
}
