package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cuemby/relay/pkg/actor"
	"github.com/cuemby/relay/pkg/bus"
	"github.com/cuemby/relay/pkg/bus/memory"
	"github.com/cuemby/relay/pkg/bus/wire"
	"github.com/cuemby/relay/pkg/codec"
	"github.com/cuemby/relay/pkg/event"
	"github.com/cuemby/relay/pkg/metrics"
	"github.com/cuemby/relay/pkg/play"
	"github.com/cuemby/relay/pkg/relaylog"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo cohort until interrupted",
	RunE:  runRun,
}

var runInterval time.Duration

func init() {
	runCmd.Flags().DurationVar(&runInterval, "heartbeat-interval", 2*time.Second, "interval between published heartbeats")
}

func newTransport() (bus.Transport, error) {
	switch cfg.Transport.Kind {
	case "nats":
		return wire.New(wire.WithURL(cfg.Transport.URL)), nil
	case "memory", "":
		return memory.New(
			memory.WithPublishHandler(func(subject string) {
				metrics.BusPublishedTotal.WithLabelValues(subject).Inc()
			}),
			memory.WithDeliverHandler(func(filter string) {
				metrics.BusDeliveredTotal.WithLabelValues(filter).Inc()
			}),
			memory.WithDropHandler(func(filter string) {
				metrics.BusDroppedTotal.WithLabelValues(filter).Inc()
			}),
			memory.WithRequestHandler(func(subject string, dur time.Duration, timedOut bool) {
				metrics.BusRequestDuration.WithLabelValues(subject).Observe(dur.Seconds())
				if timedOut {
					metrics.BusRequestTimeoutsTotal.WithLabelValues(subject).Inc()
				}
			}),
		), nil
	default:
		return nil, fmt.Errorf("relayctl: unknown transport kind %q", cfg.Transport.Kind)
	}
}

// logInstrumentation reports every actor/play lifecycle event through
// relaylog, alongside whatever metrics.Instrumentation() already reports.
func logInstrumentation() play.Instrumentation {
	return play.Instrumentation{
		ActorStarted: func(name string) {
			relaylog.WithActor(name).Info().Msg("actor started")
		},
		ActorCancelled: func(name string) {
			relaylog.WithActor(name).Info().Msg("actor cancelled")
		},
		ActorFailed: func(name, subject string, err error) {
			relaylog.WithActor(name).Error().Err(err).Str("subject", subject).Msg("actor failed")
		},
		PlayStarted: func(p *play.Play) {
			relaylog.WithPlay(p.Name()).Info().Msg("play started")
		},
		PlayStopped: func(p *play.Play) {
			relaylog.WithPlay(p.Name()).Info().Msg("play stopped")
		},
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transport, err := newTransport()
	if err != nil {
		return err
	}
	b := bus.New(transport, codec.NewJSONCodec())
	if err := b.Connect(ctx); err != nil {
		return fmt.Errorf("relayctl: connect: %w", err)
	}
	defer b.Close(context.Background())

	heartbeat, err := heartbeatSpec()
	if err != nil {
		return err
	}

	received := 0
	logger := actor.NewSubscriber("heartbeat-logger", heartbeat, func(ctx context.Context, msg *bus.Message[event.Empty, string, event.Empty]) error {
		data, err := msg.Data()
		if err != nil {
			return err
		}
		received++
		relaylog.WithSubject(msg.Subject()).Info().Str("payload", data).Msg("heartbeat received")
		return nil
	})

	instr := metrics.Instrumentation().Merge(logInstrumentation())
	p := play.New(cfg.Play, b, instr, "", logger)
	if err := p.Start(ctx); err != nil {
		return fmt.Errorf("relayctl: start play: %w", err)
	}

	go publishHeartbeats(ctx, b, heartbeat, runInterval)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigCh:
		relaylog.Info("shutting down")
	case <-ctx.Done():
	}

	cancel()
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := p.Stop(stopCtx); err != nil {
		return fmt.Errorf("relayctl: play stopped with errors: %w", err)
	}
	fmt.Printf("processed %d heartbeats\n", received)
	return nil
}

func publishHeartbeats(ctx context.Context, b *bus.Bus, spec *event.Spec[event.Empty, string, event.Empty, event.Empty], interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			payload := now.Format(time.RFC3339)
			if err := bus.Publish(ctx, b, spec, event.Empty{}, payload, event.Empty{}, 0); err != nil {
				relaylog.Errorf("publish heartbeat failed", err)
			}
		}
	}
}
