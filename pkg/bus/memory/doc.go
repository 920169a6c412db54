/*
Package memory implements bus.Transport entirely in process, with no
external broker. It is grounded on InMemoryEventBus in
synopsys/adapters/memory/bus.py: subscriptions are bounded channels kept in
a slice guarded by a mutex; publish walks that slice once per call,
skipping queue-group members that have already been satisfied by an
earlier member in the same publish.

A full inbox is backpressure, not a fatal error: delivery to that one
subscriber is dropped and publish continues to the rest, exactly as the
source's __notify_event_observers does on QueueFull. An optional drop
handler (WithDropHandler) observes these drops without changing delivery semantics.

Unlike the source, this package also implements Pull: a bounded,
at-least-once job queue with redelivery on Nack or a MaxWait timeout,
because spec.md's EventQueue is defined as a first-class part of the data
model and needs an end-to-end exercise that does not require a live NATS
server.
*/
package memory
