package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Bus metrics
	BusPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_bus_published_total",
			Help: "Total number of events published, by subject",
		},
		[]string{"event"},
	)

	BusDeliveredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_bus_delivered_total",
			Help: "Total number of messages delivered to a subscriber, by subscription filter",
		},
		[]string{"event"},
	)

	BusDroppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_bus_dropped_messages_total",
			Help: "Total number of messages dropped because a subscriber's inbox was full",
		},
		[]string{"event"},
	)

	BusRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_bus_request_duration_seconds",
			Help:    "Request/reply round-trip duration in seconds, by subject",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"event"},
	)

	BusRequestTimeoutsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_bus_request_timeouts_total",
			Help: "Total number of requests that timed out waiting for a reply",
		},
		[]string{"event"},
	)

	// Actor metrics
	ActorsRunning = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "relay_actors_running",
			Help: "Number of actors currently running, by actor name",
		},
		[]string{"actor"},
	)

	EventsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_processed_total",
			Help: "Total number of events processed successfully by an actor",
		},
		[]string{"actor", "event"},
	)

	EventsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_failed_total",
			Help: "Total number of events whose handler returned an error",
		},
		[]string{"actor", "event"},
	)

	EventProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_event_processing_duration_seconds",
			Help:    "Handler execution duration in seconds, by actor",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"actor", "event"},
	)

	// Play lifecycle metrics
	PlaysRunning = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "relay_plays_running",
			Help: "Number of plays currently in the running state",
		},
	)

	PlayStartDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_play_start_duration_seconds",
			Help:    "Time taken for a play to start all of its actors",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"play"},
	)

	PlayFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_play_failures_total",
			Help: "Total number of plays that stopped due to actor failure",
		},
		[]string{"play"},
	)
)

func init() {
	prometheus.MustRegister(BusPublishedTotal)
	prometheus.MustRegister(BusDeliveredTotal)
	prometheus.MustRegister(BusDroppedTotal)
	prometheus.MustRegister(BusRequestDuration)
	prometheus.MustRegister(BusRequestTimeoutsTotal)

	prometheus.MustRegister(ActorsRunning)
	prometheus.MustRegister(EventsProcessedTotal)
	prometheus.MustRegister(EventsFailedTotal)
	prometheus.MustRegister(EventProcessingDuration)

	prometheus.MustRegister(PlaysRunning)
	prometheus.MustRegister(PlayStartDuration)
	prometheus.MustRegister(PlayFailuresTotal)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
