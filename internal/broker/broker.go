// Package broker publishes notification events to a RabbitMQ topic exchange
// so downstream consumers (web push, chat integrations) can react without
// polling. Routing keys are the notification kinds in internal/domain.
package broker

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"equiptrack-backend/internal/logger"
)

// Publisher is the narrow surface the notification dispatcher needs.
type Publisher interface {
	Publish(message any, key string) error
	Close() error
}

type Broker struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	url      string
}

func NewBroker(rabbitMQURL, exchange string) (*Broker, error) {
	conn, err := amqp.Dial(rabbitMQURL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("Failed to open channel", "error", err)
		conn.Close()
		return nil, err
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		logger.Error("Failed to declare exchange", "error", err, "exchange", exchange)
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Broker{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		url:      rabbitMQURL,
	}, nil
}

func (b *Broker) ensureConnection() error {
	if b.conn == nil || b.conn.IsClosed() {
		conn, err := amqp.Dial(b.url)
		if err != nil {
			logger.Error("Failed to reconnect to RabbitMQ", "error", err)
			return err
		}
		b.conn = conn

		b.channel, err = conn.Channel()
		if err != nil {
			logger.Error("Failed to open channel on reconnect", "error", err)
			conn.Close()
			return err
		}
	}
	return nil
}

func (b *Broker) Publish(message any, key string) error {
	if err := b.ensureConnection(); err != nil {
		return err
	}

	body, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal message", "error", err)
		return err
	}

	err = b.channel.Publish(
		b.exchange,
		key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		logger.Error("Failed to publish message", "error", err, "key", key)
		return err
	}

	logger.Debug("Published message", "key", key, "bytes", len(body))
	return nil
}

func (b *Broker) Close() error {
	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
