// Package relay forwards engine events to RabbitMQ for downstream consumers
// (reporting, notifications). The relay is an ordinary hub subscriber: if it
// falls behind, it loses old events like any other subscriber and emits a
// lagged notice instead of slowing publishers down.
package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"playpoint/internal/events"
	"playpoint/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *slog.Logger
}

func NewPublisher(url, exchange string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.Wrap(err, "failed to dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to open channel")
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to declare exchange")
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

// envelope is the wire shape for relayed events. The routing key carries the
// event type as well, so consumers can bind on "session.*" etc.
type envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	StationID  string    `json:"station_id,omitempty"`
	Payload    any       `json:"payload"`
}

func (p *Publisher) publish(ctx context.Context, ev events.Event) error {
	env := envelope{
		Type:       string(ev.EventType()),
		OccurredAt: ev.At(),
		Payload:    ev,
	}
	if id, ok := events.StationID(ev); ok {
		env.StationID = id.String()
	}

	body, err := json.Marshal(env)
	if err != nil {
		return errs.Wrap(err, "failed to marshal event")
	}
	return p.ch.PublishWithContext(ctx, p.exchange, string(ev.EventType()), false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// Run drains the subscriber until ctx is cancelled or the hub closes the
// channel. Publish failures are logged and skipped; the broker is a best
// effort mirror, never a participant in the engine's state transitions.
func (p *Publisher) Run(ctx context.Context, sub *events.Subscriber) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			if dropped := sub.TakeDropped(); dropped > 0 {
				p.logger.Warn("relay fell behind, events dropped", "dropped", dropped)
				if err := p.publish(ctx, events.Lagged{Dropped: dropped, OccurredAt: ev.At()}); err != nil {
					p.logger.Error("failed to relay lag notice", "error", err)
				}
			}
			if err := p.publish(ctx, ev); err != nil {
				p.logger.Error("failed to relay event",
					"event_type", string(ev.EventType()),
					"error", err,
				)
			}
		}
	}
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
