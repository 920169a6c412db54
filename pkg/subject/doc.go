/*
Package subject implements the address syntax shared by every Warren Relay
bus: tokenized, dot-separated subjects, wildcard filters, and placeholder
templates used to render and extract typed scopes.

# Syntax

A subject is a sequence of tokens joined by a separator ("." by default).
A filter is a subject in which some tokens are wildcards:

  - "*" matches exactly one token at its position.
  - ">" matches one or more remaining tokens, and may only appear as the
    final token of a filter.

A template is a subject in which some tokens are named placeholders of the
form "{name}". A placeholder must occupy an entire token — "pre{x}" and
"{x}suf" are rejected when the template is parsed. Parsing a template
produces both its filter form (placeholders replaced by "*") and a map
from placeholder name to token index, so a concrete subject can later be
rendered from a scope, or a scope can be extracted back out of a concrete
subject.
*/
package subject
