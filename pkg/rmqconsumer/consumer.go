// Package rmqconsumer reads user events back from the audit queue and
// writes them to the audit log.
package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"user-registry-api/config"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

type (
	Consumer struct {
		cfg         config.MQ
		log         *zap.Logger
		routingKeys []string
		conn        *amqp091.Connection
		chConsume   *amqp091.Channel
		chDelivery  <-chan amqp091.Delivery
	}

	// event is the part of a published message the audit log needs.
	event struct {
		ID     string `json:"event_id"`
		Action string `json:"event_action"`
		UserID string `json:"user_id"`
	}
)

func New(cfg config.MQ, logger *zap.Logger, routingKeys ...string) *Consumer {
	return &Consumer{
		cfg:         cfg,
		log:         logger,
		routingKeys: routingKeys,
	}
}

func (c *Consumer) Connect(dsn string) error {
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.conn, c.chConsume = conn, ch

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

// Init declares the exchange and the durable audit queue, binds it to every
// routing key and starts consuming with manual acks.
func (c *Consumer) Init() error {
	const durable, autoDelete, exclusive, noWait = true, false, false, false

	if err := c.chConsume.ExchangeDeclare(c.cfg.Exchange, c.cfg.ExchangeType, durable, autoDelete, false, noWait, nil); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := c.chConsume.QueueDeclare(c.cfg.QueueName, durable, autoDelete, exclusive, noWait, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range c.routingKeys {
		if err := c.chConsume.QueueBind(c.cfg.QueueName, rk, c.cfg.Exchange, noWait, nil); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	const autoAck, noLocal = false, false
	deliveries, err := c.chConsume.Consume(c.cfg.QueueName, "", autoAck, exclusive, noLocal, noWait, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	c.chDelivery = deliveries

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("delivery channel closed")
				return
			}
			if err := c.delivery(msg); err != nil {
				// alert
				c.log.Error("mq read message error", zap.Error(err))
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		case <-ctx.Done():
			if c.chConsume != nil {
				_ = c.chConsume.Close()
			}
			if c.conn != nil {
				_ = c.conn.Close()
			}
			return
		}
	}
}

// delivery logs one event. Malformed bodies are rejected so they are not
// redelivered forever.
func (c *Consumer) delivery(msg amqp091.Delivery) error {
	var e event
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		return fmt.Errorf("decode %s event: %w", msg.RoutingKey, err)
	}
	if e.Action == "" {
		e.Action = msg.RoutingKey
	}

	c.log.Info("user event",
		zap.String("event_id", e.ID),
		zap.String("action", e.Action),
		zap.String("user_id", e.UserID),
		zap.ByteString("body", msg.Body),
	)

	return nil
}
