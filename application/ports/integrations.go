package ports

import "context"

// Mailer sends transactional email (order confirmations, stock alerts).
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Notifier pushes short operational messages to the shop staff channel.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// EventPublisher emits domain events to the event bus. Publishing is best
// effort: a failed publish never fails the request that produced it.
type EventPublisher interface {
	Publish(ctx context.Context, detailType string, detail interface{}) error
}

// Event detail types emitted by the storefront.
const (
	EventOrderPlaced     = "order.placed"
	EventStockSubscribed = "stock.subscribed"
)

// Cache is a simple TTL key-value cache used for scanned result sets.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
