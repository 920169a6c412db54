/*
Package actor provides the three actor shapes a Play can run: Subscriber,
Responder and Consumer, grounded on the Subscriber/Responder/Consumer
classes of _examples/original_source/src/synopsys/core/actors.py.

Each shape wraps one bus interaction mode (Subscribe, Serve, Pull) and a
typed handler. Actor is a sealed interface: its start method is
unexported, so only this package's three types can satisfy it. This
replaces the source's isinstance type-switch in Play.start
(_examples/original_source/src/synopsys/concurrency/play.py) with
ordinary interface dispatch — Play never needs to know which concrete
shape it is running.

A handler error stops that actor's loop and is reported on the channel
start returns; it never turns into an error reply. The actor loops do not
recover panics, so a panicking handler is not reported on that channel. This mirrors the fail-fast design of the source's
_process_*_iterator wrappers, which let a handler exception propagate out
of the task so Play's done-callback can cancel the rest of the cohort.
*/
package actor
