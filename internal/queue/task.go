// Package queue carries delivery tasks between the notification
// dispatcher and the delivery worker. The AMQP implementation hands
// tasks to a RabbitMQ queue consumed by the server process; the inline
// implementation runs the worker synchronously for broker-less
// deployments and tests.
package queue

import "context"

// DeliveryQueueName is the durable RabbitMQ queue holding reminder tasks.
const DeliveryQueueName = "calendar.reminders"

// DeliveryTask identifies one notification to deliver. The worker
// re-fetches the row, so the message stays minimal.
type DeliveryTask struct {
	NotificationID uint64 `json:"notification_id"`
}

// Enqueuer hands one delivery task to whatever runs the worker.
type Enqueuer interface {
	EnqueueDelivery(ctx context.Context, notificationID uint64) error
}

// Inline runs deliveries synchronously in the caller's goroutine.
type Inline struct {
	Deliver func(ctx context.Context, notificationID uint64) error
}

// NewInline creates an inline enqueuer around a delivery function.
func NewInline(deliver func(ctx context.Context, notificationID uint64) error) *Inline {
	return &Inline{Deliver: deliver}
}

// EnqueueDelivery runs the delivery immediately.
func (q *Inline) EnqueueDelivery(ctx context.Context, notificationID uint64) error {
	return q.Deliver(ctx, notificationID)
}
