package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"user-registry-api/config"
	"user-registry-api/internal/application/ports"
)

// "Rely on metrics, not guesses."
const bufferSize = 128

// RoutingKeys are the event actions the audit queue is bound to.
var RoutingKeys = []string{ports.EventUserCreated}

type RabbitMQ struct {
	cfg     config.MQ
	log     *zap.Logger
	conn    *amqp091.Connection
	pubCh   *amqp091.Channel
	in      chan ports.UserEvent
	returns chan amqp091.Return
}

var _ ports.RabbitMQ = (*RabbitMQ)(nil)

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		cfg: cfg,
		log: logger,
		in:  make(chan ports.UserEvent, bufferSize),
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	conn, err := amqp091.DialConfig(dsn, amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "userregistry-publisher",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	})
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	r.conn, r.pubCh = conn, ch

	r.log.Info("rabbitmq connected successfully")

	return nil
}

// Init declares the exchange only; the queue and its bindings belong to
// the consumer side.
func (r *RabbitMQ) Init() error {
	const durable = true
	if err := r.pubCh.ExchangeDeclare(r.cfg.Exchange, r.cfg.ExchangeType, durable, false, false, false, nil); err != nil {
		_ = r.pubCh.Close()
		return fmt.Errorf("exchange declare: %w", err)
	}
	// mandatory publishes with no matching queue come back here
	r.returns = r.pubCh.NotifyReturn(make(chan amqp091.Return, 1))

	return nil
}

// Publish queues e for the worker. A full buffer drops the event.
func (r *RabbitMQ) Publish(e ports.UserEvent) bool {
	select {
	case r.in <- e:
		return true
	default:
		return false
	}
}

func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case e := <-r.in:
			if err := r.publish(ctx, e); err != nil {
				// alert
				r.log.Error("mq publish error", zap.Error(err), zap.String("event_id", e.ID.String()))
			}
		case ret, ok := <-r.returns:
			if !ok {
				r.returns = nil
				continue
			}
			r.log.Warn("mq event unroutable",
				zap.String("event_id", ret.MessageId),
				zap.String("routing_key", ret.RoutingKey),
				zap.String("reason", ret.ReplyText),
			)
		case <-ctx.Done():
			if r.pubCh != nil {
				_ = r.pubCh.Close()
			}
			return
		}
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e ports.UserEvent) error {
	b, err := json.Marshal(ToMessage(e))
	if err != nil {
		return err
	}

	const mandatory, immediate = true, false
	return r.pubCh.PublishWithContext(ctx, r.cfg.Exchange, e.Action, mandatory, immediate, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.ID.String(),
		Timestamp:    e.TS,
		Type:         e.Action,
		Body:         b,
	})
}

func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }

// Noop is the publisher used when no broker is configured.
type Noop struct{}

var _ ports.RabbitMQ = Noop{}

func (Noop) Publish(ports.UserEvent) bool          { return true }
func (Noop) Connect(context.Context, string) error { return nil }
func (Noop) Init() error                           { return nil }
func (Noop) GetConn() *amqp091.Connection          { return nil }
func (Noop) PublisherWorker(ctx context.Context)   { <-ctx.Done() }
