/*
Package bus defines the transport-agnostic event bus: publish, request,
subscribe, serve and pull, plus the envelope types (Message, Request, Job)
delivered through them.

Transport is the one interface a backing must implement, and it speaks only
in raw bytes and string headers — Go has no generic interface methods, so
the typed surface (Publish, Call, Subscribe, Serve, Pull) is a set of
free functions parameterized over an event.Spec's four type arguments, each
built on top of a Bus that bundles a Transport with a codec.Codec.

pkg/bus/memory and pkg/bus/wire provide the two Transport implementations:
in-process queues, and a NATS-backed wire transport.
*/
package bus
