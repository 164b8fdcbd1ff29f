package messaging

import (
	"github.com/KirkDiggler/mafia/internal/dice"
	"github.com/KirkDiggler/mafia/internal/models"
	"github.com/rs/zerolog"
)

// PublishInput contains the notifications produced by one engine operation
type PublishInput struct {
	Notifications []*models.Notification
}

// PublishOutput contains delivery counts for one publish
type PublishOutput struct {
	Delivered int
	Failed    int
}

// ComposeInput contains parameters for composing notification text
type ComposeInput struct {
	Notification *models.Notification

	// RoleName resolves a role id to a display name, optional
	RoleName func(roleID string) string
}

// ComposeOutput contains the composed text
type ComposeOutput struct {
	Title   string
	Message string
}

// GetDeliveryStatsInput is the input for GetDeliveryStats
type GetDeliveryStatsInput struct {
}

// GetDeliveryStatsOutput contains the delivery counters
type GetDeliveryStatsOutput struct {
	Delivered int64
	Failed    int64
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Sinks receive every published notification
	Sinks []Sink

	// Composer renders text; built from Roller when nil
	Composer *Composer

	// Roller picks flavor lines when no composer is given
	Roller dice.Roller

	// Logger for delivery failures; disabled when nil
	Logger *zerolog.Logger
}
