package player

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/mafia/internal/repositories/player Repository

import (
	"context"

	"github.com/KirkDiggler/mafia/internal/models"
)

// Repository defines the interface for player profile persistence
type Repository interface {
	// SavePlayer persists a player
	SavePlayer(ctx context.Context, input *SavePlayerInput) error

	// GetPlayer retrieves a player by ID
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error)

	// EnsurePlayer retrieves a player, creating a level one profile if missing
	EnsurePlayer(ctx context.Context, input *EnsurePlayerInput) (*models.Player, error)

	// GetPlayersInMatch retrieves all players in a match
	GetPlayersInMatch(ctx context.Context, input *GetPlayersInMatchInput) (*GetPlayersInMatchOutput, error)

	// UpdatePlayerMatch updates a player's current match
	UpdatePlayerMatch(ctx context.Context, input *UpdatePlayerMatchInput) error

	// ApplyStats adds the results of a finished match to every profile
	ApplyStats(ctx context.Context, input *ApplyStatsInput) (*ApplyStatsOutput, error)
}
