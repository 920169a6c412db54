package event

// Empty is the unit type used wherever an EventSpec omits a type
// parameter: no scope, no metadata, or no reply. Codecs must encode Empty
// as the zero-length byte string and decode the zero-length byte string
// back into Empty.
type Empty struct{}
