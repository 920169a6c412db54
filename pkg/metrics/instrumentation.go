package metrics

import (
	"sync"

	"github.com/cuemby/relay/pkg/play"
)

// Instrumentation builds a play.Instrumentation backed by this package's
// Prometheus collectors: actor lifecycle events adjust ActorsRunning and
// the play's own lifecycle adjusts PlaysRunning/PlayFailuresTotal/
// PlayStartDuration. The subject an actor last processed or failed on is
// used as the "event" label, since that is the only identifier a
// play.Hooks callback receives. EventProcessingDuration is timed between
// EventProcessing (just before a handler runs) and whichever of
// EventProcessed/ActorFailed observes its outcome; an actor runs its
// dispatch loop on one goroutine, so at most one timer is ever in flight
// per actor name.
func Instrumentation() play.Instrumentation {
	var mu sync.Mutex
	starting := map[*play.Play]*Timer{}
	processing := map[string]*Timer{}

	return play.Instrumentation{
		ActorStarted: func(actorName string) {
			ActorsRunning.WithLabelValues(actorName).Inc()
		},
		ActorCancelled: func(actorName string) {
			ActorsRunning.WithLabelValues(actorName).Dec()
		},
		ActorFailed: func(actorName, subject string, err error) {
			ActorsRunning.WithLabelValues(actorName).Dec()
			EventsFailedTotal.WithLabelValues(actorName, subject).Inc()
			mu.Lock()
			timer := processing[actorName]
			delete(processing, actorName)
			mu.Unlock()
			if timer != nil {
				timer.ObserveDurationVec(EventProcessingDuration, actorName, subject)
			}
		},
		EventProcessing: func(actorName, subject string) {
			mu.Lock()
			processing[actorName] = NewTimer()
			mu.Unlock()
		},
		EventProcessed: func(actorName, subject string) {
			EventsProcessedTotal.WithLabelValues(actorName, subject).Inc()
			mu.Lock()
			timer := processing[actorName]
			delete(processing, actorName)
			mu.Unlock()
			if timer != nil {
				timer.ObserveDurationVec(EventProcessingDuration, actorName, subject)
			}
		},
		PlayStarting: func(p *play.Play) {
			mu.Lock()
			starting[p] = NewTimer()
			mu.Unlock()
		},
		PlayStarted: func(p *play.Play) {
			mu.Lock()
			timer := starting[p]
			delete(starting, p)
			mu.Unlock()
			if timer != nil {
				timer.ObserveDurationVec(PlayStartDuration, p.Name())
			}
			PlaysRunning.Inc()
		},
		PlayFailed: func(p *play.Play, errs []error) {
			PlayFailuresTotal.WithLabelValues(p.Name()).Inc()
		},
		PlayStopped: func(p *play.Play) {
			PlaysRunning.Dec()
		},
	}
}
