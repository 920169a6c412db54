package actor

// Hooks observes one actor's lifecycle and per-message outcomes. It is the
// actor-scoped slice of a larger instrumentation struct (play.Instrumentation
// carries these fields plus play-level ones); Play builds a Hooks value from
// its own Instrumentation before starting each actor, so this package never
// needs to import pkg/play. A nil field is a no-op, matching the
// lambda-default fields of PlayInstrumentation in
// _examples/original_source/src/synopsys/instrumentation/play.py.
type Hooks struct {
	// Starting observes an actor about to open its subscription.
	Starting func(name string)
	// Started observes an actor's subscription successfully opened.
	Started func(name string)
	// Cancelled observes an actor's loop exiting because ctx was cancelled.
	Cancelled func(name string)
	// Processing observes a handler about to be invoked for one message,
	// immediately before the call. Paired with Processed or Failed, it lets
	// an observer time handler execution.
	Processing func(name string, subject string)
	// Processed observes a handler invocation that completed without error.
	Processed func(name string, subject string)
	// Failed observes a handler invocation that returned an error, or a
	// stream error from the underlying subscription.
	Failed func(name string, subject string, err error)
}

func (h Hooks) starting(name string) {
	if h.Starting != nil {
		h.Starting(name)
	}
}

func (h Hooks) started(name string) {
	if h.Started != nil {
		h.Started(name)
	}
}

func (h Hooks) cancelled(name string) {
	if h.Cancelled != nil {
		h.Cancelled(name)
	}
}

func (h Hooks) processing(name, subject string) {
	if h.Processing != nil {
		h.Processing(name, subject)
	}
}

func (h Hooks) processed(name, subject string) {
	if h.Processed != nil {
		h.Processed(name, subject)
	}
}

func (h Hooks) failed(name, subject string, err error) {
	if h.Failed != nil {
		h.Failed(name, subject, err)
	}
}
