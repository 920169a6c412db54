/*
Package metrics provides Prometheus metrics collection and exposition for
the bus and play runtime.

Metrics are registered at package init via MustRegister and exposed through
Handler() for scraping.

# Metrics Catalog

Bus:

  - relay_bus_published_total{event}: events published
  - relay_bus_delivered_total{event}: messages delivered to a subscriber
  - relay_bus_dropped_messages_total{event}: messages dropped on a full inbox
  - relay_bus_request_duration_seconds{event}: request/reply round trip
  - relay_bus_request_timeouts_total{event}: requests that timed out

Actors:

  - relay_actors_running{actor}: actors currently running
  - relay_events_processed_total{actor,event}: successful handler calls
  - relay_events_failed_total{actor,event}: handler calls returning an error
  - relay_event_processing_duration_seconds{actor,event}: handler duration

Play lifecycle:

  - relay_plays_running: plays currently in the running state
  - relay_play_start_duration_seconds{play}: time to start every actor
  - relay_play_failures_total{play}: plays stopped by actor failure

# Usage

	import "github.com/cuemby/relay/pkg/metrics"

	metrics.BusPublishedTotal.WithLabelValues("page.updated").Inc()

	timer := metrics.NewTimer()
	err := handler(ctx, msg)
	timer.ObserveDurationVec(metrics.EventProcessingDuration, actorName, eventName)

	http.Handle("/metrics", metrics.Handler())

This package implements a play.Instrumentation (see pkg/play) so a Play can
be wired to report through these metrics without any other package needing
to import prometheus directly.
*/
package metrics
