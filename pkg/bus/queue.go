package bus

import "time"

// DeliveryPolicy selects where in a stream a new EventQueue consumer starts
// reading from.
type DeliveryPolicy string

const (
	DeliverAll  DeliveryPolicy = "ALL"
	DeliverLast DeliveryPolicy = "LAST"
	DeliverNew  DeliveryPolicy = "NEW"
)

// QueueDescriptor describes a durable, stateful view over a stream of
// events: the subset of subjects it tracks and the redelivery policy
// applied to unacknowledged jobs. It is declared by the caller and created
// in the transport on first Pull.
type QueueDescriptor struct {
	Name    string
	Stream  string
	Filters []string

	MaxPending        int
	MaxWait           time.Duration
	InactiveThreshold time.Duration
	DeliveryPolicy    DeliveryPolicy
}
