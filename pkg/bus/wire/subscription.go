package wire

import (
	"context"

	"github.com/nats-io/nats.go"

	"github.com/cuemby/relay/pkg/bus"
)

// subscription adapts a core NATS subscription to bus.RawSubscription.
type subscription struct {
	sub *nats.Subscription
	ch  chan *nats.Msg
}

func (s *subscription) Next(ctx context.Context) (bus.RawMessage, error) {
	select {
	case msg, ok := <-s.ch:
		if !ok {
			return bus.RawMessage{}, bus.ErrClosed
		}
		return bus.RawMessage{Subject: msg.Subject, Data: msg.Data, Headers: headerMap(msg.Header)}, nil
	case <-ctx.Done():
		return bus.RawMessage{}, ctx.Err()
	}
}

func (s *subscription) Close() error {
	return s.sub.Unsubscribe()
}

// requestSubscription adapts a core NATS subscription to
// bus.RawRequestSubscription, replying through the inbound message's own
// reply subject.
type requestSubscription struct {
	sub *nats.Subscription
	ch  chan *nats.Msg
}

func (s *requestSubscription) Next(ctx context.Context) (bus.RawRequest, error) {
	select {
	case msg, ok := <-s.ch:
		if !ok {
			return bus.RawRequest{}, bus.ErrClosed
		}
		return bus.RawRequest{
			RawMessage: bus.RawMessage{Subject: msg.Subject, Data: msg.Data, Headers: headerMap(msg.Header)},
			Reply: func(data []byte, headers map[string]string) error {
				reply := nats.NewMsg(msg.Reply)
				reply.Data = data
				setHeaders(reply, headers)
				return msg.RespondMsg(reply)
			},
		}, nil
	case <-ctx.Done():
		return bus.RawRequest{}, ctx.Err()
	}
}

func (s *requestSubscription) Close() error {
	return s.sub.Unsubscribe()
}
