package ports

import (
	"context"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
)

// EventPublisher — внешний приёмник событий (например, зеркало в Kafka).
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}
