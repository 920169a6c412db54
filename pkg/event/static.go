package event

// NewStaticSpec constructs a Spec whose subject carries no scope: address
// must be a literal subject with no placeholders. This is the common case
// of an event (or, with a non-Empty R, a service) that is not addressed
// per-entity.
func NewStaticSpec[D any, M any, R any](name, address string, opts ...Option) (*Spec[Empty, D, M, R], error) {
	return NewSpec[Empty, D, M, R](name, address, opts...)
}
