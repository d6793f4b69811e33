// Package queue contains the background consumer that listens to the
// todo.events queue and writes structured lines to logs/todo-events.log.
package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartTodoEventConsumer connects to RabbitMQ, declares the todo.events
// queue (durable), and starts consuming messages. Each event is appended to
// logs/todo-events.log in a single-line, human-friendly format. The function
// runs a reconnect loop with exponential backoff and keeps running across
// broker restarts; malformed messages are rejected without requeue so the
// queue never jams.
func StartTodoEventConsumer() error {
	url := BrokerURL()

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("todo-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("todo-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("todo-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(TodoEventsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(TodoEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body); err != nil {
			log.Printf("todo-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // drop malformed messages
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

// handleMessage decodes a TodoEvent and appends one formatted line to the
// event log file, creating the logs directory on first use.
func handleMessage(body []byte) error {
	var ev TodoEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	dir := "logs"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "todo-events.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	line := fmt.Sprintf("%s todo=%d action=%s completed=%t title=%q\n",
		ev.OccurredAt, ev.TodoID, ev.Action, ev.Completed, ev.Title)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log line: %w", err)
	}
	return nil
}
