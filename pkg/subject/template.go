package subject

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([^{}]*)\}`)

// Template is a subject in which some tokens are named placeholders of the
// form "{name}". Parsing a template normalizes it to a Filter (placeholders
// replaced by the wildcard MatchOne) and records each placeholder's token
// index, so scopes can later be rendered into, or extracted out of,
// concrete subjects.
type Template struct {
	Source       string
	Filter       string
	Tokens       []string
	Placeholders map[string]int
	Syntax       Syntax
}

// Parse validates and normalizes an address template. A placeholder that
// does not occupy a whole token returns ErrPlaceholderToken.
func Parse(address string, syntax Syntax) (*Template, error) {
	if address == "" {
		return nil, ErrEmptySubject
	}
	sep := syntax.sep()
	tokens := strings.Split(address, sep)
	placeholders := make(map[string]int, len(tokens))
	for idx, tok := range tokens {
		matches := placeholderPattern.FindStringSubmatch(tok)
		if matches == nil {
			continue
		}
		if matches[0] != tok {
			return nil, fmt.Errorf("%w: %q in %q", ErrPlaceholderToken, tok, address)
		}
		placeholders[matches[1]] = idx
	}
	filterTokens := make([]string, len(tokens))
	copy(filterTokens, tokens)
	for name, idx := range placeholders {
		filterTokens[idx] = syntax.matchOne()
		_ = name
	}
	return &Template{
		Source:       address,
		Filter:       strings.Join(filterTokens, sep),
		Tokens:       tokens,
		Placeholders: placeholders,
		Syntax:       syntax,
	}, nil
}

// PlaceholderNames returns the template's placeholder names, sorted for
// deterministic error messages.
func (t *Template) PlaceholderNames() []string {
	names := make([]string, 0, len(t.Placeholders))
	for name := range t.Placeholders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Match reports whether subj matches the template's normalized filter.
func (t *Template) Match(subj string) bool {
	ok, err := Match(t.Filter, subj, t.Syntax)
	return err == nil && ok
}

// Render substitutes placeholders positionally using scope, producing a
// concrete subject. It fails naming every placeholder missing from scope.
func (t *Template) Render(scope map[string]string) (string, error) {
	tokens := make([]string, len(t.Tokens))
	copy(tokens, t.Tokens)
	remaining := make(map[string]int, len(t.Placeholders))
	for name, idx := range t.Placeholders {
		remaining[name] = idx
	}
	for name, value := range scope {
		if idx, ok := remaining[name]; ok {
			tokens[idx] = value
			delete(remaining, name)
		}
	}
	if len(remaining) > 0 {
		missing := make([]string, 0, len(remaining))
		for name := range remaining {
			missing = append(missing, name)
		}
		sort.Strings(missing)
		return "", fmt.Errorf("%w: %v", ErrMissingPlaceholder, missing)
	}
	return strings.Join(tokens, t.Syntax.sep()), nil
}

// Extract reads the concrete token at each placeholder index of subj,
// producing a scope. A subject too short to cover every placeholder fails
// naming the first missing key.
func (t *Template) Extract(subj string) (map[string]string, error) {
	tokens := strings.Split(subj, t.Syntax.sep())
	scope := make(map[string]string, len(t.Placeholders))
	names := t.PlaceholderNames()
	for _, name := range names {
		idx := t.Placeholders[name]
		if idx >= len(tokens) {
			return nil, fmt.Errorf("%w: missing placeholder %q at index %d", ErrSubjectTooShort, name, idx)
		}
		scope[name] = tokens[idx]
	}
	return scope, nil
}
