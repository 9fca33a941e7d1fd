package repository

import (
	"context"

	"github.com/vrp-microservice/internal/domain"
)

// StreamRepository - Redis Streams access for the plan queue
type StreamRepository interface {
	// ConsumeBatch reads up to count pending messages without blocking.
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessage confirms a message was processed
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup creates the consumer group for a stream
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream publishes a JSON-encoded event to a stream
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
