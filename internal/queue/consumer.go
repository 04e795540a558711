package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartDeliveryConsumer connects to RabbitMQ, declares the reminder
// queue, and feeds each task to deliver. It runs a reconnect loop with
// exponential backoff and returns only when ctx is canceled. Failed
// deliveries are nacked without requeue: a still-pending notification
// is re-selected by the next dispatcher run anyway.
func StartDeliveryConsumer(ctx context.Context, url string, deliver func(ctx context.Context, notificationID uint64) error) error {
	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("delivery-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(ctx, conn, deliver); err != nil {
			log.Printf("delivery-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
		_ = conn.Close()
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, deliver func(ctx context.Context, notificationID uint64) error) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		log.Printf("delivery-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(DeliveryQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(DeliveryQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}

			var task DeliveryTask
			if err := json.Unmarshal(d.Body, &task); err != nil {
				log.Printf("delivery-consumer: bad task payload: %v", err)
				_ = d.Nack(false, false)
				continue
			}

			if err := deliver(ctx, task.NotificationID); err != nil {
				log.Printf("delivery-consumer: delivery failed for notification %d: %v", task.NotificationID, err)
				_ = d.Nack(false, false)
				continue
			}

			_ = d.Ack(false)
		}
	}
}
