package subject

import "errors"

// ErrEmptySubject is returned by Match when either the subject or the
// filter is the empty string.
var ErrEmptySubject = errors.New("subject: subject or filter cannot be empty")

// ErrPlaceholderToken is returned when parsing a template whose placeholder
// does not occupy a whole token, e.g. "pre{x}" or "{x}suf".
var ErrPlaceholderToken = errors.New("subject: placeholder must occupy a whole token")

// ErrMissingPlaceholder is returned by Template.Render when scope does not
// supply a value for every placeholder.
var ErrMissingPlaceholder = errors.New("subject: missing placeholder")

// ErrSubjectTooShort is returned by Template.Extract when the subject has
// fewer tokens than the template requires.
var ErrSubjectTooShort = errors.New("subject: subject too short")
