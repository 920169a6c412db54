/*
Package event declares typed, named event specifications — the domain-level
vocabulary that producers and handlers target instead of raw subjects.

An EventSpec binds together:

  - a subject template, normalized at construction into a wildcard filter
    plus a placeholder-to-token-index map (see pkg/subject);
  - a scope type S, the typed record of values substituted into (or read
    out of) the template's placeholders;
  - a payload type D and an optional metadata type M;
  - an optional reply type R — its presence is what distinguishes a plain
    event from a request/reply service in the rest of this module.

Scope types are plain Go structs whose fields carry a `scope:"name"` tag
naming the placeholder they bind to. The set of tagged fields on S must
equal, one for one, the set of placeholders in the address template;
NewSpec rejects any mismatch. An event with no scope at all uses Empty as
its S type argument, the same dedicated unit type used for "no metadata"
and "no reply".
*/
package event
