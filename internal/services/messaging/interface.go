package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/mafia/internal/services/messaging Service
//go:generate mockgen -package=mocks -destination=mocks/mock_sink.go github.com/KirkDiggler/mafia/internal/services/messaging Sink

import (
	"context"

	"github.com/KirkDiggler/mafia/internal/models"
)

// Service is the interface for the messaging service
type Service interface {
	// Publish hands notifications to every sink; delivery is best effort
	Publish(ctx context.Context, input *PublishInput) (*PublishOutput, error)

	// Compose turns a notification into player facing text
	Compose(ctx context.Context, input *ComposeInput) (*ComposeOutput, error)

	// GetDeliveryStats returns the delivery counters since start
	GetDeliveryStats(ctx context.Context, input *GetDeliveryStatsInput) (*GetDeliveryStatsOutput, error)
}

// Sink delivers a notification to players, e.g. over a chat transport
type Sink interface {
	Deliver(ctx context.Context, notification *models.Notification) error
}
