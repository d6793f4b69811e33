// Package service provides functions to publish domain events to RabbitMQ.
// Errors are logged and returned to allow callers to ignore failures without
// interrupting the main request flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"todoapi/internal/queue"
)

// AMQPPublisher delivers todo lifecycle events to the todo.events queue.
// Dialing per publish keeps the publisher robust against broker restarts;
// the connection churn is negligible at this write rate.
type AMQPPublisher struct {
	URL string
}

// NewAMQPPublisher constructs a publisher using the broker URL from the
// environment.
func NewAMQPPublisher() *AMQPPublisher {
	return &AMQPPublisher{URL: queue.BrokerURL()}
}

// Publish sends the event to the todo.events queue. The function attempts
// to be robust and to never panic; any error is logged and returned so the
// caller can choose to ignore it. Messages are marked as persistent.
func (p *AMQPPublisher) Publish(ctx context.Context, event queue.TodoEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queue.TodoEventsQueue, // name
		true,                  // durable
		false,                 // autoDelete
		false,                 // exclusive
		false,                 // noWait
		nil,                   // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                    // default exchange
		queue.TodoEventsQueue, // routing key = queue name
		false,                 // mandatory
		false,                 // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
