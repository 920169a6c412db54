package bus

import (
	"context"
	"time"
)

// RawSubscription is a scoped stream of raw messages matching one filter.
// Next blocks until a message is available or ctx is cancelled, in which
// case it returns ctx.Err(). A transport whose Close ends the stream makes
// Next return ErrClosed; the in-process transport's Close does not unblock
// a pending Next. Close releases the transport-side subscription and must
// be idempotent.
type RawSubscription interface {
	Next(ctx context.Context) (RawMessage, error)
	Close() error
}

// RawRequestSubscription is a scoped stream of raw requests.
type RawRequestSubscription interface {
	Next(ctx context.Context) (RawRequest, error)
	Close() error
}

// RawJobSubscription is a scoped stream of raw jobs pulled from a queue.
type RawJobSubscription interface {
	Next(ctx context.Context) (RawJob, error)
	Close() error
}

// Transport is the one interface a bus backing must implement. It operates
// entirely on raw bytes and string headers; typed access is layered on top
// by the free functions in this package.
type Transport interface {
	// Connect establishes the underlying connection, if any. Implementations
	// that need no connection step treat this as a no-op.
	Connect(ctx context.Context) error

	// Close tears down the underlying connection, if any.
	Close(ctx context.Context) error

	// Publish sends data to subject. timeout, when non-zero, bounds how
	// long Publish waits for the transport to accept/flush the message.
	Publish(ctx context.Context, subject string, data []byte, headers map[string]string, timeout time.Duration) error

	// Request sends data to subject and waits for exactly one reply.
	// timeout, when non-zero, bounds the wait; on expiry it returns
	// ErrTimeout.
	Request(ctx context.Context, subject string, data []byte, headers map[string]string, timeout time.Duration) (RawMessage, error)

	// Subscribe opens a scoped stream of messages matching filter. When
	// queue is non-empty, each message is delivered to at most one member
	// of that queue group across all of the transport's subscribers.
	Subscribe(ctx context.Context, filter string, queue string) (RawSubscription, error)

	// Serve opens a scoped stream of requests matching filter, honoring
	// queue the same way Subscribe does.
	Serve(ctx context.Context, filter string, queue string) (RawRequestSubscription, error)

	// Pull opens a scoped stream of jobs from the queue described by q,
	// creating it in the transport on first use.
	Pull(ctx context.Context, q QueueDescriptor) (RawJobSubscription, error)
}
