/*
Package play supervises a cohort of actors as one unit: coordinated
startup, fail-fast cancellation on the first actor failure, and ordered
teardown of every subscription the cohort opened.

It is grounded on Play in
_examples/original_source/src/synopsys/concurrency/play.py. The
AsyncExitStack there becomes a LIFO stack of bus.Closer values; the
asyncio.Task-per-actor plus done-callback cancellation becomes one
goroutine per actor (opened by actor.Actor.start) fed into a single
fan-in that cancels the shared context on the first reported failure;
ExceptionGroup becomes FailureError.
*/
package play
