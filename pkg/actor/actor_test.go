package actor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cuemby/relay/pkg/bus"
	"github.com/cuemby/relay/pkg/bus/memory"
	"github.com/cuemby/relay/pkg/codec"
	"github.com/cuemby/relay/pkg/event"
)

type widgetScope struct {
	ID string `scope:"id"`
}

func newTestBus() *bus.Bus {
	return bus.New(memory.New(), codec.NewJSONCodec())
}

func TestSubscriberDispatchesMatchingMessages(t *testing.T) {
	b := newTestBus()
	spec, err := event.NewSpec[widgetScope, string, event.Empty, event.Empty]("widget.created", "widgets.{id}.created")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	received := make(chan string, 1)
	sub := NewSubscriber("logger", spec, func(ctx context.Context, msg *bus.Message[widgetScope, string, event.Empty]) error {
		data, err := msg.Data()
		if err != nil {
			return err
		}
		received <- data
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	closer, errCh := sub.start(ctx, b, "", Hooks{})
	defer closer.Close()

	if err := bus.Publish(ctx, b, spec, widgetScope{ID: "w1"}, "hi", event.Empty{}, 0); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case got := <-received:
		if got != "hi" {
			t.Errorf("received = %q, want %q", got, "hi")
		}
	case err := <-errCh:
		t.Fatalf("unexpected actor error: %v", err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestSubscriberHandlerErrorStopsLoop(t *testing.T) {
	b := newTestBus()
	spec, err := event.NewSpec[widgetScope, string, event.Empty, event.Empty]("widget.created", "widgets.{id}.created")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}
	boom := errors.New("boom")
	sub := NewSubscriber("logger", spec, func(ctx context.Context, msg *bus.Message[widgetScope, string, event.Empty]) error {
		return boom
	})

	ctx := context.Background()
	closer, errCh := sub.start(ctx, b, "", Hooks{})
	defer closer.Close()

	if err := bus.Publish(ctx, b, spec, widgetScope{ID: "w1"}, "hi", event.Empty{}, 0); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, boom) {
			t.Errorf("actor error = %v, want boom", err)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for actor error")
	}
}

func TestResponderRepliesWithHandlerResult(t *testing.T) {
	b := newTestBus()
	spec, err := event.NewSpec[widgetScope, string, event.Empty, string]("widget.total", "widgets.{id}.total")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}
	resp := NewResponder("totals", spec, func(ctx context.Context, req *bus.Request[widgetScope, string, event.Empty, string]) (string, error) {
		data, err := req.Data()
		if err != nil {
			return "", err
		}
		return "total:" + data, nil
	})

	ctx := context.Background()
	closer, errCh := resp.start(ctx, b, "", Hooks{})
	defer closer.Close()

	replyCh := make(chan string, 1)
	go func() {
		reply, err := bus.Call(ctx, b, spec, widgetScope{ID: "w1"}, "5", event.Empty{}, time.Second)
		if err != nil {
			t.Errorf("Call: %v", err)
			return
		}
		replyCh <- reply
	}()

	select {
	case reply := <-replyCh:
		if reply != "total:5" {
			t.Errorf("reply = %q, want %q", reply, "total:5")
		}
	case err := <-errCh:
		t.Fatalf("unexpected actor error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reply")
	}
}

func TestConsumerProcessesPulledJobs(t *testing.T) {
	b := newTestBus()
	spec, err := event.NewSpec[widgetScope, string, event.Empty, event.Empty]("widget.enqueued", "widgets.{id}.enqueued")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	processed := make(chan string, 1)
	consumer := NewConsumer("worker", spec, bus.QueueDescriptor{Name: "workers"}, func(ctx context.Context, job *bus.Job[widgetScope, string, event.Empty]) error {
		data, err := job.Data()
		if err != nil {
			return err
		}
		if err := job.Ack(); err != nil {
			return err
		}
		processed <- data
		return nil
	})

	ctx := context.Background()
	closer, errCh := consumer.start(ctx, b, "ignored", Hooks{})
	defer closer.Close()

	if err := bus.Publish(ctx, b, spec, widgetScope{ID: "w1"}, "payload", event.Empty{}, 0); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case got := <-processed:
		if got != "payload" {
			t.Errorf("processed = %q, want %q", got, "payload")
		}
	case err := <-errCh:
		t.Fatalf("unexpected actor error: %v", err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for job processing")
	}
}

func TestHooksObserveStartAndProcessed(t *testing.T) {
	b := newTestBus()
	spec, err := event.NewSpec[widgetScope, string, event.Empty, event.Empty]("widget.created", "widgets.{id}.created")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}
	sub := NewSubscriber("logger", spec, func(ctx context.Context, msg *bus.Message[widgetScope, string, event.Empty]) error {
		return nil
	})

	started := make(chan struct{}, 1)
	processing := make(chan struct{}, 1)
	processed := make(chan struct{}, 1)
	hooks := Hooks{
		Started:    func(name string) { started <- struct{}{} },
		Processing: func(name, subject string) { processing <- struct{}{} },
		Processed:  func(name, subject string) { processed <- struct{}{} },
	}

	ctx := context.Background()
	closer, errCh := sub.start(ctx, b, "", hooks)
	defer closer.Close()

	select {
	case <-started:
	default:
		t.Error("expected Started hook to fire synchronously before start returns")
	}

	if err := bus.Publish(ctx, b, spec, widgetScope{ID: "w1"}, "hi", event.Empty{}, 0); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case <-processing:
	case err := <-errCh:
		t.Fatalf("unexpected actor error: %v", err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Processing hook")
	}

	select {
	case <-processed:
	case err := <-errCh:
		t.Fatalf("unexpected actor error: %v", err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Processed hook")
	}
}
