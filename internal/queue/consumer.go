package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartBookingConsumer connects to RabbitMQ, declares both booking
// queues (durable) and consumes them, appending one human-readable line
// per event to logs/booking.log. It runs a reconnect loop with
// exponential backoff and keeps running across broker restarts; bad
// messages are rejected without requeue so a poison message cannot wedge
// the loop.
func StartBookingConsumer(brokerURL string) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL)
		if err != nil {
			log.Printf("booking-consumer: dial failed: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("booking-consumer: set QoS failed: %v", err)
	}

	var wg sync.WaitGroup
	for _, name := range []string{BookingCreatedQueue, BookingStatusChangedQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
		msgs, err := ch.Consume(name, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", name, err)
		}
		wg.Add(1)
		go func(queueName string, deliveries <-chan amqp.Delivery) {
			defer wg.Done()
			for d := range deliveries {
				if err := handleMessage(queueName, d.Body); err != nil {
					log.Printf("booking-consumer: handle %s failed: %v", queueName, err)
					_ = d.Nack(false, false) // reject, no requeue
					continue
				}
				_ = d.Ack(false)
			}
		}(name, msgs)
	}
	wg.Wait()
	return errors.New("deliveries channels closed")
}

func handleMessage(queueName string, body []byte) error {
	line, err := formatEvent(queueName, body)
	if err != nil {
		return err
	}
	return appendBookingLog(line)
}

func formatEvent(queueName string, body []byte) (string, error) {
	ts := time.Now().UTC().Format(time.RFC3339)
	switch queueName {
	case BookingCreatedQueue:
		var ev BookingCreatedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal: %w", err)
		}
		return fmt.Sprintf("%s booking #%d created: %q in %s by %s, %s -> %s, %d attendees, status=%s",
			ts, ev.BookingID, ev.MeetingTitle, ev.RoomName, ev.UserName,
			ev.StartTime, ev.EndTime, ev.Attendees, ev.Status), nil
	case BookingStatusChangedQueue:
		var ev BookingStatusChangedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal: %w", err)
		}
		return fmt.Sprintf("%s booking #%d status: %s -> %s",
			ts, ev.BookingID, ev.OldStatus, ev.NewStatus), nil
	}
	return "", fmt.Errorf("unknown queue %q", queueName)
}

func appendBookingLog(line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "booking.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = f.Close() }()
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	_, err = f.WriteString(line)
	return err
}
