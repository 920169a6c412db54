package bus

import "errors"

// ErrTimeout is returned by Request when no reply arrives within the given
// timeout.
var ErrTimeout = errors.New("bus: request timed out waiting for reply")

// ErrNoReply is returned by the in-process transport's Request when the
// reply subscription's scope closes before any reply arrives.
var ErrNoReply = errors.New("bus: no reply received")

// ErrDecode wraps a payload, scope, or header decoding failure surfaced at
// envelope field access.
var ErrDecode = errors.New("bus: decode failed")

// ErrAlreadyReplied is returned by Request.Reply on its second call.
var ErrAlreadyReplied = errors.New("bus: reply already sent")

// ErrClosed is returned by Next on a subscription whose scope has been
// closed.
var ErrClosed = errors.New("bus: subscription closed")
