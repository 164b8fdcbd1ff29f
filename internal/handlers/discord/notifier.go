package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/mafia/internal/catalog"
	"github.com/KirkDiggler/mafia/internal/models"
	"github.com/KirkDiggler/mafia/internal/services/messaging"
	"github.com/rs/zerolog"
)

// Composer turns notifications into text
type Composer interface {
	Compose(ctx context.Context, input *messaging.ComposeInput) (*messaging.ComposeOutput, error)
}

// NotifierConfig holds dependencies for the Discord notifier
type NotifierConfig struct {
	Session  Session
	Composer Composer

	// RoleName resolves a role id to its display name, optional
	RoleName func(string) string

	Logger *zerolog.Logger
}

// Notifier posts match notifications to the lobby channel, or to the
// recipient's DMs when the notification is private
type Notifier struct {
	session  Session
	composer Composer
	roleName func(string) string
	logger   zerolog.Logger
}

// NewNotifier creates a notifier sink
func NewNotifier(cfg *NotifierConfig) (*Notifier, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Session == nil {
		return nil, errors.New("session is required")
	}
	if cfg.Composer == nil {
		return nil, errors.New("composer is required")
	}

	n := &Notifier{
		session:  cfg.Session,
		composer: cfg.Composer,
		roleName: cfg.RoleName,
		logger:   zerolog.Nop(),
	}
	if n.roleName == nil {
		n.roleName = func(id string) string { return id }
	}
	if cfg.Logger != nil {
		n.logger = cfg.Logger.With().Str("component", "discord_notifier").Logger()
	}

	return n, nil
}

// Deliver implements messaging.Sink
func (n *Notifier) Deliver(ctx context.Context, notification *models.Notification) error {
	if notification == nil {
		return nil
	}

	text, err := n.composer.Compose(ctx, &messaging.ComposeInput{
		Notification: notification,
		RoleName:     n.roleName,
	})
	if err != nil {
		return fmt.Errorf("failed to compose notification: %w", err)
	}

	channelID := notification.LobbyID
	if notification.RecipientID != "" {
		channel, err := n.session.UserChannelCreate(notification.RecipientID)
		if err != nil {
			return fmt.Errorf("failed to open DM with %s: %w", notification.RecipientID, err)
		}
		channelID = channel.ID
	}
	if channelID == "" {
		return fmt.Errorf("notification %s has nowhere to go", notification.Kind)
	}

	if _, err := n.session.ChannelMessageSendEmbed(channelID, renderNotification(notification, text)); err != nil {
		return fmt.Errorf("failed to send %s notification: %w", notification.Kind, err)
	}

	n.logger.Debug().
		Str("kind", string(notification.Kind)).
		Str("match_id", notification.MatchID).
		Str("channel_id", channelID).
		Msg("notification delivered")

	return nil
}

// RoleNames resolves role ids against a catalog, falling back to the id
func RoleNames(c *catalog.Catalog) func(string) string {
	return func(id string) string {
		role, err := c.Role(id)
		if err != nil {
			return id
		}
		return role.Name
	}
}
