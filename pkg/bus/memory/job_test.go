package memory

import (
	"context"
	"testing"
	"time"

	"github.com/cuemby/relay/pkg/bus"
	"github.com/cuemby/relay/pkg/event"
)

type jobScope struct {
	ID string `scope:"id"`
}

func TestPullDeliversPublishedJob(t *testing.T) {
	b := newOrderBus(t)
	spec, err := event.NewSpec[jobScope, string, event.Empty, event.Empty]("job.enqueued", "jobs.{id}.enqueued")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	ctx := context.Background()
	pull, err := bus.Pull(ctx, b, spec, bus.QueueDescriptor{Name: "workers", Filters: []string{spec.Filter()}})
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	defer pull.Close()

	if err := bus.Publish(ctx, b, spec, jobScope{ID: "j1"}, "payload", event.Empty{}, 0); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	job, err := pull.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	data, err := job.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if data != "payload" {
		t.Errorf("Data() = %q, want %q", data, "payload")
	}
	if err := job.Ack(); err != nil {
		t.Errorf("Ack: %v", err)
	}
}

func TestPullIgnoresNonMatchingSubject(t *testing.T) {
	b := newOrderBus(t)
	jobSpec, err := event.NewSpec[jobScope, string, event.Empty, event.Empty]("job.enqueued", "jobs.{id}.enqueued")
	if err != nil {
		t.Fatalf("NewSpec job: %v", err)
	}
	otherSpec, err := event.NewSpec[orderScope, string, event.Empty, event.Empty]("order.created", "orders.{id}.created")
	if err != nil {
		t.Fatalf("NewSpec other: %v", err)
	}

	ctx := context.Background()
	pull, err := bus.Pull(ctx, b, jobSpec, bus.QueueDescriptor{Name: "workers", Filters: []string{jobSpec.Filter()}})
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	defer pull.Close()

	if err := bus.Publish(ctx, b, otherSpec, orderScope{ID: "o1"}, "x", event.Empty{}, 0); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	recvCtx, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
	defer cancel()
	if _, err := pull.Next(recvCtx); err == nil {
		t.Error("expected no job to be delivered to a queue with a non-matching filter")
	}
}

func TestNackRedeliversImmediately(t *testing.T) {
	b := newOrderBus(t)
	spec, err := event.NewSpec[jobScope, string, event.Empty, event.Empty]("job.enqueued", "jobs.{id}.enqueued")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	ctx := context.Background()
	pull, err := bus.Pull(ctx, b, spec, bus.QueueDescriptor{Name: "retries"})
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	defer pull.Close()

	if err := bus.Publish(ctx, b, spec, jobScope{ID: "j1"}, "payload", event.Empty{}, 0); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	job, err := pull.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if err := job.Nack(0); err != nil {
		t.Fatalf("Nack: %v", err)
	}

	redelivered, err := pull.Next(ctx)
	if err != nil {
		t.Fatalf("Next after Nack: %v", err)
	}
	data, err := redelivered.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if data != "payload" {
		t.Errorf("redelivered Data() = %q, want %q", data, "payload")
	}
}

func TestUnackedJobRedeliveredAfterMaxWait(t *testing.T) {
	b := newOrderBus(t)
	spec, err := event.NewSpec[jobScope, string, event.Empty, event.Empty]("job.enqueued", "jobs.{id}.enqueued")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	ctx := context.Background()
	pull, err := bus.Pull(ctx, b, spec, bus.QueueDescriptor{Name: "timeouts", MaxWait: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	defer pull.Close()

	if err := bus.Publish(ctx, b, spec, jobScope{ID: "j1"}, "payload", event.Empty{}, 0); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if _, err := pull.Next(ctx); err != nil {
		t.Fatalf("first Next: %v", err)
	}

	redeliverCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	if _, err := pull.Next(redeliverCtx); err != nil {
		t.Fatalf("expected redelivery after MaxWait, got error: %v", err)
	}
}

func TestAckedJobIsNotRedelivered(t *testing.T) {
	b := newOrderBus(t)
	spec, err := event.NewSpec[jobScope, string, event.Empty, event.Empty]("job.enqueued", "jobs.{id}.enqueued")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	ctx := context.Background()
	pull, err := bus.Pull(ctx, b, spec, bus.QueueDescriptor{Name: "acked", MaxWait: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	defer pull.Close()

	if err := bus.Publish(ctx, b, spec, jobScope{ID: "j1"}, "payload", event.Empty{}, 0); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	job, err := pull.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if err := job.Ack(); err != nil {
		t.Fatalf("Ack: %v", err)
	}

	recvCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	if _, err := pull.Next(recvCtx); err == nil {
		t.Error("expected no redelivery of an acked job")
	}
}
