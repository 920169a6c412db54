package subject

// Syntax configures the characters used to separate subject tokens and to
// express wildcards in a filter. It is fixed per bus instance; NATS-style
// defaults are used when a bus does not override it.
type Syntax struct {
	// Sep separates tokens within a subject.
	Sep string
	// MatchOne matches exactly one token at its position.
	MatchOne string
	// MatchAll matches one or more remaining tokens; valid only as the
	// final token of a filter.
	MatchAll string
}

// Default is the NATS-compatible syntax: "." separated, "*" and ">".
var Default = Syntax{Sep: ".", MatchOne: "*", MatchAll: ">"}

func (s Syntax) sep() string {
	if s.Sep == "" {
		return Default.Sep
	}
	return s.Sep
}

func (s Syntax) matchOne() string {
	if s.MatchOne == "" {
		return Default.MatchOne
	}
	return s.MatchOne
}

func (s Syntax) matchAll() string {
	if s.MatchAll == "" {
		return Default.MatchAll
	}
	return s.MatchAll
}
