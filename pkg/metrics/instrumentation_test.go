package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/cuemby/relay/pkg/actor"
	"github.com/cuemby/relay/pkg/bus"
	"github.com/cuemby/relay/pkg/bus/memory"
	"github.com/cuemby/relay/pkg/codec"
	"github.com/cuemby/relay/pkg/event"
	"github.com/cuemby/relay/pkg/play"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstrumentationTracksPlaysRunning(t *testing.T) {
	instr := Instrumentation()
	b := bus.New(memory.New(), codec.NewJSONCodec())
	p := play.New("metrics-running-play", b, instr, "")

	before := testutil.ToFloat64(PlaysRunning)

	ctx := context.Background()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	during := testutil.ToFloat64(PlaysRunning)
	if during != before+1 {
		t.Errorf("PlaysRunning after Start = %v, want %v", during, before+1)
	}

	if err := p.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	after := testutil.ToFloat64(PlaysRunning)
	if after != before {
		t.Errorf("PlaysRunning after Stop = %v, want %v", after, before)
	}
}

func TestInstrumentationDoesNotCountCleanStopAsPlayFailure(t *testing.T) {
	instr := Instrumentation()
	b := bus.New(memory.New(), codec.NewJSONCodec())
	p := play.New("metrics-failing-play", b, instr, "")
	ctx := context.Background()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	before := testutil.ToFloat64(PlayFailuresTotal.WithLabelValues("metrics-failing-play"))
	if err := p.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	after := testutil.ToFloat64(PlayFailuresTotal.WithLabelValues("metrics-failing-play"))
	if after != before {
		t.Errorf("PlayFailuresTotal changed for a play with no actor failures: before=%v after=%v", before, after)
	}
}

type widgetScope struct {
	ID string `scope:"id"`
}

func TestInstrumentationObservesEventProcessingDuration(t *testing.T) {
	instr := Instrumentation()
	b := bus.New(memory.New(), codec.NewJSONCodec())
	spec, err := event.NewSpec[widgetScope, string, event.Empty, event.Empty]("widget.created", "widgets.{id}.created")
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	done := make(chan struct{})
	sub := actor.NewSubscriber("widget-logger", spec, func(ctx context.Context, msg *bus.Message[widgetScope, string, event.Empty]) error {
		defer close(done)
		return nil
	})

	p := play.New("metrics-duration-play", b, instr, "", sub)
	ctx := context.Background()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Stop(ctx)

	before := testutil.CollectAndCount(EventProcessingDuration)

	if err := bus.Publish(ctx, b, spec, widgetScope{ID: "w1"}, "hello", event.Empty{}, 0); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for handler to run")
	}

	// Give the Processed hook a moment to run after the handler returns.
	time.Sleep(10 * time.Millisecond)

	count := testutil.ToFloat64(EventsProcessedTotal.WithLabelValues("widget-logger", "widgets.w1.created"))
	if count != 1 {
		t.Errorf("EventsProcessedTotal = %v, want 1", count)
	}

	after := testutil.CollectAndCount(EventProcessingDuration)
	if after != before+1 {
		t.Errorf("EventProcessingDuration series count = %d, want %d", after, before+1)
	}
}
