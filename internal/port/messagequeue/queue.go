// Package messagequeue defines the message queue port.
package messagequeue

import "context"

// Subjects for order lifecycle events.
const (
	SubjectOrderCreated = "modaflow.orders.created"
	SubjectOrderStatus  = "modaflow.orders.status"
	SubjectOrdersAll    = "modaflow.orders.>"
)

// Handler processes a single message from a subject.
type Handler func(subject string, data []byte) error

// Queue publishes and subscribes to event subjects.
type Queue interface {
	Publish(ctx context.Context, subject string, data []byte) error
	// Subscribe registers a handler and returns a stop function.
	Subscribe(ctx context.Context, subject string, handler Handler) (func(), error)
	Close() error
}
