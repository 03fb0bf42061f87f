package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// eventLog is the rotated file the office prints pass slips from. Lazily
// initialized so tests and broker-less deployments never create it.
var (
	eventLogOnce sync.Once
	eventLog     *lumberjack.Logger
)

func eventLogWriter() *lumberjack.Logger {
	eventLogOnce.Do(func() {
		eventLog = &lumberjack.Logger{
			Filename:   "logs/pass-events.log",
			MaxSize:    20, // megabytes
			MaxBackups: 10,
			MaxAge:     90, // days; society keeps a quarter of history
		}
	})
	return eventLog
}

// StartPassEventConsumer connects to RabbitMQ, declares both pass queues
// and consumes them, appending one human-readable line per event to
// logs/pass-events.log. It runs a reconnect loop with exponential backoff
// and never returns under normal operation; processing errors are logged
// and the offending message rejected without requeue to avoid tight loops.
func StartPassEventConsumer() {
	url := BrokerURL()
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warnf("pass-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Warnf("pass-consumer: consume loop ended: %v; reconnecting", err)
			_ = conn.Close()
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
		log.Warnf("pass-consumer: set QoS failed: %v", err)
	}

	deliveries := make(chan amqp.Delivery)
	for _, name := range []string{QueuePassIssued, QueuePassRevoked} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
		msgs, err := ch.Consume(name, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", name, err)
		}
		go func() {
			for d := range msgs {
				deliveries <- d
			}
		}()
	}

	notifyClose := conn.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case d := <-deliveries:
			if err := handleMessage(d.RoutingKey, d.Body); err != nil {
				log.Warnf("pass-consumer: handle message failed: %v", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		case err := <-notifyClose:
			if err != nil {
				return err
			}
			return errors.New("connection closed")
		}
	}
}

func handleMessage(routingKey string, body []byte) error {
	var line string
	switch routingKey {
	case QueuePassIssued:
		var ev PassIssuedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal issued: %w", err)
		}
		line = fmt.Sprintf("[%s] Pass issued | event=%s | vehicle=%s | pass=%s | owner=%q | flat=%s | valid_till=%s | by_account=%d\n",
			ev.IssuedAt, ev.EventID, ev.VehicleNumber, ev.PassNumber, ev.OwnerName, ev.FlatNumber, ev.ValidTill, ev.IssuedBy)
	case QueuePassRevoked:
		var ev PassRevokedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal revoked: %w", err)
		}
		line = fmt.Sprintf("[%s] Pass revoked | event=%s | vehicle=%s | pass=%s | by_account=%d\n",
			ev.RevokedAt, ev.EventID, ev.VehicleNumber, ev.PassNumber, ev.RevokedBy)
	default:
		return fmt.Errorf("unknown routing key %q", routingKey)
	}

	if _, err := eventLogWriter().Write([]byte(line)); err != nil {
		return fmt.Errorf("write event log: %w", err)
	}
	return nil
}
