package ports

import "context"

// RMQConsumer drains the audit queue until ctx is done.
type RMQConsumer interface {
	Connect(dsn string) error
	Init() error
	DeliveryWorker(ctx context.Context)
}
