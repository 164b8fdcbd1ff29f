package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/KirkDiggler/mafia/internal/models"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	sinks    []Sink
	composer *Composer
	logger   zerolog.Logger

	delivered atomic.Int64
	failed    atomic.Int64
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (*service, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	composer := config.Composer
	if composer == nil {
		composer = NewComposer(config.Roller)
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = config.Logger.With().Str("component", "messaging").Logger()
	}

	return &service{
		sinks:    config.Sinks,
		composer: composer,
		logger:   logger,
	}, nil
}

// Publish delivers every notification to every sink. A failing sink is
// counted and logged; the remaining deliveries still happen.
func (s *service) Publish(ctx context.Context, input *PublishInput) (*PublishOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	out := &PublishOutput{}
	for _, n := range input.Notifications {
		for _, sink := range s.sinks {
			if err := s.deliver(ctx, sink, n); err != nil {
				out.Failed++
				s.failed.Add(1)
				s.logger.Warn().
					Err(err).
					Str("match_id", n.MatchID).
					Str("kind", string(n.Kind)).
					Str("recipient_id", n.RecipientID).
					Msg("notification delivery failed")
				continue
			}
			out.Delivered++
			s.delivered.Add(1)
		}
	}

	return out, nil
}

func (s *service) deliver(ctx context.Context, sink Sink, n *models.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()
	return sink.Deliver(ctx, n)
}

// GetDeliveryStats returns the delivery counters
func (s *service) GetDeliveryStats(ctx context.Context, input *GetDeliveryStatsInput) (*GetDeliveryStatsOutput, error) {
	return &GetDeliveryStatsOutput{
		Delivered: s.delivered.Load(),
		Failed:    s.failed.Load(),
	}, nil
}

// Compose delegates to the composer
func (s *service) Compose(ctx context.Context, input *ComposeInput) (*ComposeOutput, error) {
	return s.composer.Compose(ctx, input)
}
