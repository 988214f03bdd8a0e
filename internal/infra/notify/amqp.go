package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"academy-booking/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPForwarder republishes bus events on a topic exchange with the routing
// key "<kind>.<action>".
type AMQPForwarder struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	stop     func()
}

func DialAMQP(url, exchange string) (*AMQPForwarder, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPForwarder{conn: conn, ch: ch, exchange: exchange}, nil
}

func newAMQPForwarder(ch channel, exchange string) *AMQPForwarder {
	return &AMQPForwarder{ch: ch, exchange: exchange}
}

// Attach subscribes the forwarder to every event on bus.
func (f *AMQPForwarder) Attach(bus *Bus) {
	f.stop = bus.Subscribe("", f.forward)
}

func (f *AMQPForwarder) forward(ev shared.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := f.PublishJSON(ctx, ev.Topic(), ev); err != nil {
		slog.Warn("failed to forward event to amqp", "topic", ev.Topic(), "error", err.Error())
	}
}

func (f *AMQPForwarder) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return f.ch.PublishWithContext(ctx, f.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         b,
	})
}

func (f *AMQPForwarder) Close() error {
	if f.stop != nil {
		f.stop()
	}
	if f.ch != nil {
		_ = f.ch.Close()
	}
	if f.conn != nil {
		return f.conn.Close()
	}
	return nil
}
