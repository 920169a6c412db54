package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cuemby/relay/pkg/bus"
	"github.com/cuemby/relay/pkg/codec"
	"github.com/cuemby/relay/pkg/event"
)

type orderScope struct {
	ID string `scope:"id"`
}

func newOrderBus(t *testing.T, opts ...Option) *bus.Bus {
	t.Helper()
	return bus.New(New(opts...), codec.NewJSONCodec())
}

func TestPublishSubscribeRoundTrip(t *testing.T) {
	b := newOrderBus(t)
	spec, err := event.NewSpec[orderScope, string, event.Empty, event.Empty]("order.created", "orders.{id}.created")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	ctx := context.Background()
	sub, err := bus.Subscribe(ctx, b, spec, "")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Close()

	if err := bus.Publish(ctx, b, spec, orderScope{ID: "o1"}, "hello", event.Empty{}, 0); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msg, err := sub.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	data, err := msg.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if data != "hello" {
		t.Errorf("Data() = %q, want %q", data, "hello")
	}
	scope, err := msg.Scope()
	if err != nil {
		t.Fatalf("Scope: %v", err)
	}
	if scope.ID != "o1" {
		t.Errorf("Scope().ID = %q, want %q", scope.ID, "o1")
	}
}

func TestQueueGroupDeliversToExactlyOneMember(t *testing.T) {
	b := newOrderBus(t)
	spec, err := event.NewSpec[orderScope, string, event.Empty, event.Empty]("order.created", "orders.{id}.created")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	ctx := context.Background()
	subA, err := bus.Subscribe(ctx, b, spec, "workers")
	if err != nil {
		t.Fatalf("Subscribe A: %v", err)
	}
	defer subA.Close()
	subB, err := bus.Subscribe(ctx, b, spec, "workers")
	if err != nil {
		t.Fatalf("Subscribe B: %v", err)
	}
	defer subB.Close()

	if err := bus.Publish(ctx, b, spec, orderScope{ID: "o1"}, "hello", event.Empty{}, 0); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	recvCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()

	delivered := 0
	var wg sync.WaitGroup
	var mu sync.Mutex
	wg.Add(2)
	tryRecv := func(s *bus.Subscription[orderScope, string, event.Empty]) {
		defer wg.Done()
		if _, err := s.Next(recvCtx); err == nil {
			mu.Lock()
			delivered++
			mu.Unlock()
		}
	}
	go tryRecv(subA)
	go tryRecv(subB)
	wg.Wait()

	if delivered != 1 {
		t.Errorf("delivered = %d, want exactly 1", delivered)
	}
}

func TestRequestReplyRoundTrip(t *testing.T) {
	b := newOrderBus(t)
	spec, err := event.NewSpec[orderScope, string, event.Empty, string]("order.total", "orders.{id}.total")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	ctx := context.Background()
	serveSub, err := bus.Serve(ctx, b, spec, "")
	if err != nil {
		t.Fatalf("Serve: %v", err)
	}
	defer serveSub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		req, err := serveSub.Next(ctx)
		if err != nil {
			t.Errorf("serve Next: %v", err)
			return
		}
		data, err := req.Data()
		if err != nil {
			t.Errorf("req.Data: %v", err)
			return
		}
		if err := req.Reply("total:" + data); err != nil {
			t.Errorf("Reply: %v", err)
		}
	}()

	reply, err := bus.Call(ctx, b, spec, orderScope{ID: "o1"}, "42", event.Empty{}, time.Second)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if reply != "total:42" {
		t.Errorf("reply = %q, want %q", reply, "total:42")
	}
	<-done
}

func TestRequestTimesOutWithNoResponder(t *testing.T) {
	b := newOrderBus(t)
	spec, err := event.NewSpec[orderScope, string, event.Empty, string]("order.total", "orders.{id}.total")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	ctx := context.Background()
	_, err = bus.Call(ctx, b, spec, orderScope{ID: "o1"}, "42", event.Empty{}, 20*time.Millisecond)
	if err != bus.ErrTimeout {
		t.Errorf("Call error = %v, want ErrTimeout", err)
	}
}

func TestSubscriptionCloseDuringConcurrentPublishDoesNotPanic(t *testing.T) {
	b := newOrderBus(t)
	spec, err := event.NewSpec[orderScope, string, event.Empty, event.Empty]("order.created", "orders.{id}.created")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 50; i++ {
		sub, err := bus.Subscribe(ctx, b, spec, "")
		if err != nil {
			t.Fatalf("Subscribe: %v", err)
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = bus.Publish(ctx, b, spec, orderScope{ID: "o1"}, "x", event.Empty{}, 0)
		}()
		go func() {
			defer wg.Done()
			_ = sub.Close()
		}()
		wg.Wait()
	}
}

func TestRequestCanceledContextReturnsErrNoReply(t *testing.T) {
	b := newOrderBus(t)
	spec, err := event.NewSpec[orderScope, string, event.Empty, string]("order.total", "orders.{id}.total")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bus.Call(ctx, b, spec, orderScope{ID: "o1"}, "42", event.Empty{}, time.Second)
	if err != bus.ErrNoReply {
		t.Errorf("Call error = %v, want ErrNoReply", err)
	}
}

func TestPublishDeliverAndRequestHandlersAreInvoked(t *testing.T) {
	var published []string
	var delivered []string
	var requests int
	var timeouts int
	var mu sync.Mutex
	b := newOrderBus(t,
		WithPublishHandler(func(subject string) {
			mu.Lock()
			published = append(published, subject)
			mu.Unlock()
		}),
		WithDeliverHandler(func(filter string) {
			mu.Lock()
			delivered = append(delivered, filter)
			mu.Unlock()
		}),
		WithRequestHandler(func(subject string, dur time.Duration, timedOut bool) {
			mu.Lock()
			requests++
			if timedOut {
				timeouts++
			}
			mu.Unlock()
		}),
	)
	spec, err := event.NewSpec[orderScope, string, event.Empty, event.Empty]("order.created", "orders.{id}.created")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	ctx := context.Background()
	sub, err := bus.Subscribe(ctx, b, spec, "")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Close()

	if err := bus.Publish(ctx, b, spec, orderScope{ID: "o1"}, "hello", event.Empty{}, 0); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, err := sub.Next(ctx); err != nil {
		t.Fatalf("Next: %v", err)
	}

	mu.Lock()
	gotPublished := len(published)
	gotDelivered := len(delivered)
	mu.Unlock()
	if gotPublished != 1 {
		t.Errorf("published events = %d, want 1", gotPublished)
	}
	if gotDelivered != 1 {
		t.Errorf("delivered events = %d, want 1", gotDelivered)
	}

	reqSpec, err := event.NewSpec[orderScope, string, event.Empty, string]("order.total", "orders.{id}.total")
	if err != nil {
		t.Fatalf("NewSpec request: %v", err)
	}
	if _, err := bus.Call(ctx, b, reqSpec, orderScope{ID: "o1"}, "42", event.Empty{}, 20*time.Millisecond); err != bus.ErrTimeout {
		t.Fatalf("Call error = %v, want ErrTimeout", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if requests != 1 {
		t.Errorf("request handler invocations = %d, want 1", requests)
	}
	if timeouts != 1 {
		t.Errorf("timed out requests = %d, want 1", timeouts)
	}
}

func TestFullInboxDropsAndInvokesOnDrop(t *testing.T) {
	var dropped []string
	var mu sync.Mutex
	b := newOrderBus(t,
		WithInboxSize(1),
		WithDropHandler(func(filter string) {
			mu.Lock()
			dropped = append(dropped, filter)
			mu.Unlock()
		}),
	)
	spec, err := event.NewSpec[orderScope, string, event.Empty, event.Empty]("order.created", "orders.{id}.created")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	ctx := context.Background()
	sub, err := bus.Subscribe(ctx, b, spec, "")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Close()

	for i := 0; i < 3; i++ {
		if err := bus.Publish(ctx, b, spec, orderScope{ID: "o1"}, "x", event.Empty{}, 0); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	mu.Lock()
	n := len(dropped)
	mu.Unlock()
	if n == 0 {
		t.Error("expected at least one dropped delivery, got none")
	}
}
