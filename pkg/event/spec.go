package event

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/cuemby/relay/pkg/subject"
)

// Spec is an immutable, typed event declaration: a name, a subject
// template, and the schemas of everything carried by messages addressed
// with it. S is the scope extracted from (or rendered into) the subject's
// placeholders, D is the payload, M is the optional metadata, and R is the
// optional reply — R's presence is what turns an event into a
// request/reply service elsewhere in this module.
type Spec[S any, D any, M any, R any] struct {
	name        string
	title       string
	description string

	template *subject.Template
}

// AnySpec is the type-erased view of a Spec used by code that must hold a
// heterogeneous collection of specs with different scope/payload/metadata/
// reply types, such as relayctl's event catalog.
type AnySpec interface {
	Name() string
	Filter() string
	MatchSubject(subj string) bool
}

// Option configures optional fields of a Spec at construction time.
type Option func(*options)

type options struct {
	title       string
	description string
	syntax      subject.Syntax
}

// WithTitle sets a human-readable title, defaulting to Name.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithDescription sets a short free-text description.
func WithDescription(description string) Option {
	return func(o *options) { o.description = description }
}

// WithSyntax overrides the default "." / "*" / ">" address syntax.
func WithSyntax(syntax subject.Syntax) Option {
	return func(o *options) { o.syntax = syntax }
}

// NewSpec constructs an event specification. It rejects an empty name or
// address, a placeholder that does not occupy a whole token, and a
// mismatch between the address template's placeholders and the scope
// type's `scope:"..."` tagged fields.
func NewSpec[S any, D any, M any, R any](name, address string, opts ...Option) (*Spec[S, D, M, R], error) {
	if name == "" {
		return nil, fmt.Errorf("event: name cannot be empty")
	}
	if address == "" {
		return nil, fmt.Errorf("event: address cannot be empty")
	}
	cfg := options{syntax: subject.Default}
	for _, opt := range opts {
		opt(&cfg)
	}
	tpl, err := subject.Parse(address, cfg.syntax)
	if err != nil {
		return nil, fmt.Errorf("event %q: %w", name, err)
	}
	var zero S
	fields, err := scopeFields(reflect.TypeOf(zero))
	if err != nil {
		return nil, fmt.Errorf("event %q: %w", name, err)
	}
	if err := requireSameKeys(tpl.Placeholders, fields); err != nil {
		return nil, fmt.Errorf("event %q: %w", name, err)
	}
	title := cfg.title
	if title == "" {
		title = name
	}
	return &Spec[S, D, M, R]{
		name:        name,
		title:       title,
		description: cfg.description,
		template:    tpl,
	}, nil
}

// Name returns the event's unique human identifier.
func (s *Spec[S, D, M, R]) Name() string { return s.name }

// Title returns the event's title, defaulting to Name.
func (s *Spec[S, D, M, R]) Title() string { return s.title }

// Description returns the event's free-text description, if any.
func (s *Spec[S, D, M, R]) Description() string { return s.description }

func requireSameKeys(placeholders map[string]int, fields map[string]int) error {
	if len(placeholders) == len(fields) {
		match := true
		for name := range placeholders {
			if _, ok := fields[name]; !ok {
				match = false
				break
			}
		}
		if match {
			return nil
		}
	}
	missingInAddress := diffKeys(fields, placeholders)
	unexpectedInAddress := diffKeys(placeholders, fields)
	return fmt.Errorf(
		"scope/address mismatch: missing placeholders in address %v, unexpected placeholders in address %v",
		missingInAddress, unexpectedInAddress,
	)
}

func diffKeys(a, b map[string]int) []string {
	out := []string{}
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Address returns the original address template this spec was created
// with, placeholders and all.
func (s *Spec[S, D, M, R]) Address() string { return s.template.Source }

// Filter returns the normalized wildcard filter used to match concrete
// subjects against this spec.
func (s *Spec[S, D, M, R]) Filter() string { return s.template.Filter }

// Syntax returns the address syntax this spec was parsed with.
func (s *Spec[S, D, M, R]) Syntax() subject.Syntax { return s.template.Syntax }

// MatchSubject reports whether subj matches this spec's filter.
func (s *Spec[S, D, M, R]) MatchSubject(subj string) bool {
	return s.template.Match(subj)
}

// GetSubject renders a concrete subject from scope, substituting every
// placeholder positionally. It fails naming any placeholder scope does not
// supply.
func (s *Spec[S, D, M, R]) GetSubject(scope S) (string, error) {
	values, err := scopeToMap(scope)
	if err != nil {
		return "", fmt.Errorf("event %q: %w", s.name, err)
	}
	subj, err := s.template.Render(values)
	if err != nil {
		return "", fmt.Errorf("event %q: %w", s.name, err)
	}
	return subj, nil
}

// ExtractScope reads the concrete token at each placeholder index of subj
// and populates a scope value of type S. A subject too short to cover the
// template's placeholders fails naming the first missing key.
func (s *Spec[S, D, M, R]) ExtractScope(subj string) (S, error) {
	var zero S
	values, err := s.template.Extract(subj)
	if err != nil {
		return zero, fmt.Errorf("event %q: %w", s.name, err)
	}
	scope, err := mapToScope[S](values)
	if err != nil {
		return zero, fmt.Errorf("event %q: %w", s.name, err)
	}
	return scope, nil
}

// String implements fmt.Stringer for log and error messages.
func (s *Spec[S, D, M, R]) String() string {
	return fmt.Sprintf("Event(name=%q, address=%q)", s.name, s.Address())
}
