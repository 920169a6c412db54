package wire

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/cuemby/relay/pkg/bus"
)

const defaultAckWait = 30 * time.Second
const defaultMaxPending = 256

// Pull binds a JetStream pull consumer to q, provisioning the backing
// stream on first use. Redelivery of an unacknowledged job is left to
// JetStream's own AckWait timer; Nack with a positive delay asks for an
// explicit redelivery delay instead of waiting out AckWait.
func (t *Transport) Pull(ctx context.Context, q bus.QueueDescriptor) (bus.RawJobSubscription, error) {
	streamName := q.Stream
	if streamName == "" {
		streamName = q.Name
	}
	subjects := q.Filters
	if len(subjects) == 0 {
		return nil, fmt.Errorf("wire: pull %q: QueueDescriptor.Filters must not be empty", q.Name)
	}
	if err := t.ensureStream(streamName, subjects); err != nil {
		return nil, err
	}

	ackWait := q.MaxWait
	if ackWait <= 0 {
		ackWait = defaultAckWait
	}
	maxPending := q.MaxPending
	if maxPending <= 0 {
		maxPending = defaultMaxPending
	}

	opts := []nats.SubOpt{
		nats.ManualAck(),
		nats.AckWait(ackWait),
		nats.MaxAckPending(maxPending),
		nats.BindStream(streamName),
		deliverPolicyOpt(q.DeliveryPolicy),
	}
	if q.InactiveThreshold > 0 {
		opts = append(opts, nats.InactiveThreshold(q.InactiveThreshold))
	}

	sub, err := t.js.PullSubscribe(subjects[0], q.Name, opts...)
	if err != nil {
		return nil, fmt.Errorf("wire: pull subscribe %q: %w", q.Name, err)
	}
	return &jobSubscription{sub: sub}, nil
}

func deliverPolicyOpt(p bus.DeliveryPolicy) nats.SubOpt {
	switch p {
	case bus.DeliverLast:
		return nats.DeliverLast()
	case bus.DeliverNew:
		return nats.DeliverNew()
	default:
		return nats.DeliverAll()
	}
}

func (t *Transport) ensureStream(name string, subjects []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.streams[name]; ok {
		return nil
	}
	if _, err := t.js.StreamInfo(name); err == nil {
		t.streams[name] = struct{}{}
		return nil
	} else if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("wire: stream info %q: %w", name, err)
	}

	_, err := t.js.AddStream(&nats.StreamConfig{
		Name:      name,
		Subjects:  subjects,
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		return fmt.Errorf("wire: add stream %q: %w", name, err)
	}
	t.streams[name] = struct{}{}
	return nil
}

// jobSubscription adapts a JetStream pull subscription to
// bus.RawJobSubscription, fetching one message at a time so Next's blocking
// behavior matches the in-memory transport's.
type jobSubscription struct {
	sub *nats.Subscription
}

func (s *jobSubscription) Next(ctx context.Context) (bus.RawJob, error) {
	msgs, err := s.sub.Fetch(1, nats.Context(ctx))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return bus.RawJob{}, ctx.Err()
		}
		if errors.Is(err, nats.ErrTimeout) {
			return bus.RawJob{}, ctx.Err()
		}
		return bus.RawJob{}, fmt.Errorf("wire: fetch: %w", err)
	}
	msg := msgs[0]
	return bus.RawJob{
		RawMessage: bus.RawMessage{Subject: msg.Subject, Data: msg.Data, Headers: headerMap(msg.Header)},
		Ack:        func() error { return msg.Ack() },
		Nack: func(delayMillis int64) error {
			if delayMillis > 0 {
				return msg.NakWithDelay(time.Duration(delayMillis) * time.Millisecond)
			}
			return msg.Nak()
		},
		Term: func() error { return msg.Term() },
	}, nil
}

func (s *jobSubscription) Close() error {
	return s.sub.Unsubscribe()
}
