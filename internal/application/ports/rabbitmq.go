package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"user-registry-api/internal/domain/user"
)

const EventUserCreated = "user.created"

type UserEvent struct {
	ID     uuid.UUID
	TS     time.Time
	Action string
	User   user.Mapped
}

// EventPublisher hands events off for asynchronous delivery. Publish
// reports false when the event was dropped; it never blocks the caller.
type EventPublisher interface {
	Publish(e UserEvent) bool
}

type RabbitMQ interface {
	EventPublisher
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}
