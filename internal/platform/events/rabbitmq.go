// Package events はドメインイベントをRabbitMQのtopic exchangeへ送信します。
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"shop_backend/internal/platform/metrics"
)

// DefaultExchange は既定のexchange名です。
const DefaultExchange = "shop.events"

// Envelope はメッセージ本文の共通形式です。
type Envelope struct {
	Pattern    string    `json:"pattern"`
	Data       any       `json:"data"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
}

// channel は *amqp.Channel のうち送信に必要な操作です。
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher はtopic exchangeへJSONメッセージを送信します。
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	now      func() time.Time
}

// NewPublisher はRabbitMQへ接続し、durableなtopic exchangeを宣言します。
func NewPublisher(amqpURL, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange, now: time.Now}, nil
}

// Publish はdataをEnvelopeに包んでroutingKeyで送信します。
func (p *Publisher) Publish(ctx context.Context, routingKey string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := Envelope{Pattern: routingKey, Data: data, ID: uuid.NewString(), OccurredAt: p.now().UTC()}
	body, err := json.Marshal(env)
	if err != nil {
		metrics.EventsPublished.WithLabelValues(routingKey, "error").Inc()
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = p.ch.Publish(p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    env.ID,
		Timestamp:    env.OccurredAt,
		Body:         body,
	})
	if err != nil {
		metrics.EventsPublished.WithLabelValues(routingKey, "error").Inc()
		return fmt.Errorf("failed to publish message: %w", err)
	}
	metrics.EventsPublished.WithLabelValues(routingKey, "ok").Inc()
	slog.Debug("event published", "routing_key", routingKey, "exchange", p.exchange, "message_id", env.ID)
	return nil
}

// Close はチャネルと接続を閉じます。
func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
