package bus

import (
	"fmt"
	"sync"

	"github.com/cuemby/relay/pkg/codec"
	"github.com/cuemby/relay/pkg/event"
)

// Job is a Message delivered through a pull queue. Acknowledgement is the
// handler's responsibility: the runtime never calls Ack/Nack/Term on the
// handler's behalf, so the handler decides retry semantics.
type Job[S any, D any, M any] struct {
	spec  *event.Spec[S, D, M, event.Empty]
	raw   RawJob
	codec codec.Codec

	scopeOnce sync.Once
	scope     S
	scopeErr  error

	dataOnce sync.Once
	data     D
	dataErr  error

	metaOnce sync.Once
	meta     M
	metaErr  error
}

func newJob[S any, D any, M any](spec *event.Spec[S, D, M, event.Empty], raw RawJob, c codec.Codec) *Job[S, D, M] {
	return &Job[S, D, M]{spec: spec, raw: raw, codec: c}
}

// Subject returns the concrete subject the job was delivered on.
func (j *Job[S, D, M]) Subject() string { return j.raw.Subject }

// Spec returns the event specification the job was received against.
func (j *Job[S, D, M]) Spec() *event.Spec[S, D, M, event.Empty] { return j.spec }

// Scope extracts the typed scope from the job's concrete subject.
func (j *Job[S, D, M]) Scope() (S, error) {
	j.scopeOnce.Do(func() {
		scope, err := j.spec.ExtractScope(j.raw.Subject)
		if err != nil {
			j.scopeErr = fmt.Errorf("%w: %v", ErrDecode, err)
			return
		}
		j.scope = scope
	})
	return j.scope, j.scopeErr
}

// Data decodes the job payload.
func (j *Job[S, D, M]) Data() (D, error) {
	j.dataOnce.Do(func() {
		if err := j.codec.Decode(j.raw.Data, &j.data); err != nil {
			j.dataErr = fmt.Errorf("%w: %v", ErrDecode, err)
		}
	})
	return j.data, j.dataErr
}

// Metadata decodes the job headers into the metadata schema.
func (j *Job[S, D, M]) Metadata() (M, error) {
	j.metaOnce.Do(func() {
		if err := j.codec.ParseHeaders(j.raw.Headers, &j.meta); err != nil {
			j.metaErr = fmt.Errorf("%w: %v", ErrDecode, err)
		}
	})
	return j.meta, j.metaErr
}

// Ack acknowledges successful processing of the job.
func (j *Job[S, D, M]) Ack() error { return j.raw.Ack() }

// Nack signals that the job should be redelivered, optionally after delay.
func (j *Job[S, D, M]) Nack(delayMillis int64) error { return j.raw.Nack(delayMillis) }

// Term terminates the job: it will not be redelivered.
func (j *Job[S, D, M]) Term() error { return j.raw.Term() }
