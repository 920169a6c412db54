package play

import "github.com/cuemby/relay/pkg/actor"

// Instrumentation configures how a Play reports its own lifecycle and the
// lifecycle of the actors it runs. Every field defaults to a no-op, so a
// zero-value Instrumentation is usable as-is. It is grounded on
// PlayInstrumentation in
// _examples/original_source/src/synopsys/instrumentation/play.py, with the
// actor-scoped fields split out into actor.Hooks so pkg/actor never needs
// to import this package. pkg/metrics implements this struct over
// Prometheus collectors.
type Instrumentation struct {
	ActorStarting   func(actorName string)
	ActorStarted    func(actorName string)
	ActorCancelled  func(actorName string)
	ActorFailed     func(actorName string, subject string, err error)
	EventProcessing func(actorName string, subject string)
	EventProcessed  func(actorName string, subject string)

	PlayStarting func(p *Play)
	PlayStarted  func(p *Play)
	PlayStopping func(p *Play)
	PlayFailed   func(p *Play, errs []error)
	PlayStopped  func(p *Play)
}

// Merge returns an Instrumentation that invokes both i's and other's
// callbacks for every field, i first. A nil field on either side is
// skipped, so merging with a partially-populated Instrumentation never
// panics.
func (i Instrumentation) Merge(other Instrumentation) Instrumentation {
	return Instrumentation{
		ActorStarting:  mergeActorFn(i.ActorStarting, other.ActorStarting),
		ActorStarted:   mergeActorFn(i.ActorStarted, other.ActorStarted),
		ActorCancelled: mergeActorFn(i.ActorCancelled, other.ActorCancelled),
		ActorFailed: func(actorName, subject string, err error) {
			if i.ActorFailed != nil {
				i.ActorFailed(actorName, subject, err)
			}
			if other.ActorFailed != nil {
				other.ActorFailed(actorName, subject, err)
			}
		},
		EventProcessing: mergeEventFn(i.EventProcessing, other.EventProcessing),
		EventProcessed:  mergeEventFn(i.EventProcessed, other.EventProcessed),
		PlayStarting:    mergePlayFn(i.PlayStarting, other.PlayStarting),
		PlayStarted:     mergePlayFn(i.PlayStarted, other.PlayStarted),
		PlayStopping:    mergePlayFn(i.PlayStopping, other.PlayStopping),
		PlayFailed: func(p *Play, errs []error) {
			if i.PlayFailed != nil {
				i.PlayFailed(p, errs)
			}
			if other.PlayFailed != nil {
				other.PlayFailed(p, errs)
			}
		},
		PlayStopped: mergePlayFn(i.PlayStopped, other.PlayStopped),
	}
}

func mergeActorFn(a, b func(string)) func(string) {
	return func(name string) {
		if a != nil {
			a(name)
		}
		if b != nil {
			b(name)
		}
	}
}

func mergeEventFn(a, b func(string, string)) func(string, string) {
	return func(actorName, subject string) {
		if a != nil {
			a(actorName, subject)
		}
		if b != nil {
			b(actorName, subject)
		}
	}
}

func mergePlayFn(a, b func(*Play)) func(*Play) {
	return func(p *Play) {
		if a != nil {
			a(p)
		}
		if b != nil {
			b(p)
		}
	}
}

func (i Instrumentation) hooks() actor.Hooks {
	return actor.Hooks{
		Starting:   i.ActorStarting,
		Started:    i.ActorStarted,
		Cancelled:  i.ActorCancelled,
		Processing: i.EventProcessing,
		Processed:  i.EventProcessed,
		Failed:     i.ActorFailed,
	}
}

func (i Instrumentation) playStarting(p *Play) {
	if i.PlayStarting != nil {
		i.PlayStarting(p)
	}
}

func (i Instrumentation) playStarted(p *Play) {
	if i.PlayStarted != nil {
		i.PlayStarted(p)
	}
}

func (i Instrumentation) playStopping(p *Play) {
	if i.PlayStopping != nil {
		i.PlayStopping(p)
	}
}

func (i Instrumentation) playFailed(p *Play, errs []error) {
	if i.PlayFailed != nil {
		i.PlayFailed(p, errs)
	}
}

func (i Instrumentation) playStopped(p *Play) {
	if i.PlayStopped != nil {
		i.PlayStopped(p)
	}
}
