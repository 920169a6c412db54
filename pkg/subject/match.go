package subject

import "strings"

// Match reports whether filter matches subject, evaluating tokens
// left-to-right: equal tokens advance, MatchOne consumes exactly one
// present token, and MatchAll consumes the remaining suffix (the subject
// must have at least one remaining token). A MatchOne in the final
// position never matches a subject with additional trailing tokens.
func Match(filter, subj string, syntax Syntax) (bool, error) {
	if subj == "" || filter == "" {
		return false, ErrEmptySubject
	}
	if subj == filter {
		return true, nil
	}
	sep := syntax.sep()
	one := syntax.matchOne()
	all := syntax.matchAll()

	subjTokens := strings.Split(subj, sep)
	filterTokens := strings.Split(filter, sep)

	for idx, tok := range filterTokens {
		if idx < len(subjTokens) && tok == subjTokens[idx] {
			continue
		}
		switch tok {
		case all:
			if idx >= len(subjTokens) {
				return false, nil
			}
			return true, nil
		case one:
			if idx >= len(subjTokens) {
				return false, nil
			}
			if idx == len(filterTokens)-1 && len(subjTokens)-idx > 1 {
				return false, nil
			}
		default:
			return false, nil
		}
	}
	return len(filterTokens) == len(subjTokens), nil
}
