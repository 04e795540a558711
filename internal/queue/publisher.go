package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPEnqueuer publishes delivery tasks to RabbitMQ. It dials per
// publish so a broker restart between dispatcher runs needs no
// connection management here.
type AMQPEnqueuer struct {
	url string
}

// NewAMQPEnqueuer creates an enqueuer for the given broker URL.
func NewAMQPEnqueuer(url string) *AMQPEnqueuer {
	return &AMQPEnqueuer{url: url}
}

// EnqueueDelivery publishes one persistent task message to the
// reminder queue, declaring it first so publish never races setup.
func (q *AMQPEnqueuer) EnqueueDelivery(ctx context.Context, notificationID uint64) error {
	conn, err := amqp.Dial(q.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		DeliveryQueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return fmt.Errorf("declare queue: %w", err)
	}

	body, err := json.Marshal(DeliveryTask{NotificationID: notificationID})
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                // default exchange
		DeliveryQueueName, // routing key = queue name
		false,             // mandatory
		false,             // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return fmt.Errorf("publish task: %w", err)
	}

	return nil
}
