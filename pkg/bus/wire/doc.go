/*
Package wire is the NATS-backed bus.Transport: Publish, Request, Subscribe
and Serve ride core NATS subjects and queue groups, and Pull is backed by a
JetStream durable pull consumer bound to a stream the transport provisions
on first use.

Core NATS gives at-most-once delivery with no server-side retry; that is
the right fit for Subscribe/Serve, which already sit behind the in-memory
inbox's own backpressure semantics at the bus layer. JetStream gives
at-least-once delivery with per-message Ack/Nack/Term, which is what Pull's
QueueDescriptor promises regardless of which transport backs it.

A Transport must be Connect'd before use and Close'd to drain in-flight
publishes and release its subscriptions.
*/
package wire
