package player

import "github.com/KirkDiggler/mafia/internal/models"

// SavePlayerInput contains parameters for saving a player
type SavePlayerInput struct {
	Player *models.Player
}

// GetPlayerInput contains parameters for retrieving a player
type GetPlayerInput struct {
	PlayerID string
}

// EnsurePlayerInput contains parameters for fetching or creating a player
type EnsurePlayerInput struct {
	PlayerID string
	Name     string
}

// GetPlayersInMatchInput contains parameters for retrieving players in a match
type GetPlayersInMatchInput struct {
	MatchID string
}

// GetPlayersInMatchOutput contains the result of retrieving players in a match
type GetPlayersInMatchOutput struct {
	Players []*models.Player
}

// UpdatePlayerMatchInput contains parameters for updating a player's match
type UpdatePlayerMatchInput struct {
	PlayerID string
	MatchID  string
}

// ApplyStatsInput contains the deltas of one finished match
type ApplyStatsInput struct {
	MatchID         string
	Deltas          []*models.StatsDelta
	LevelMultiplier int
}

// ApplyStatsOutput lists the players that gained a level
type ApplyStatsOutput struct {
	LevelledUp []string
}
