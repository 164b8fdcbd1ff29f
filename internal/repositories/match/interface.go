package match

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/mafia/internal/repositories/match Repository

import (
	"context"

	"github.com/KirkDiggler/mafia/internal/models"
)

// Repository defines the interface for match data persistence. A match
// and the records it owns are written together by Commit.
type Repository interface {
	// CreateMatch claims the lobby and persists a new match
	CreateMatch(ctx context.Context, input *CreateMatchInput) error

	// GetMatch retrieves a match by ID
	GetMatch(ctx context.Context, input *GetMatchInput) (*models.Match, error)

	// GetMatchByLobby retrieves the unfinished match of a lobby
	GetMatchByLobby(ctx context.Context, input *GetMatchByLobbyInput) (*models.Match, error)

	// LoadState retrieves a match with its roster, actions, votes and events
	LoadState(ctx context.Context, input *LoadStateInput) (*models.MatchState, error)

	// Commit atomically persists a match state and its indexes
	Commit(ctx context.Context, input *CommitInput) error

	// DueMatches lists matches whose phase deadline has passed
	DueMatches(ctx context.Context, input *DueMatchesInput) (*DueMatchesOutput, error)

	// GetActiveMatches retrieves all unfinished matches
	GetActiveMatches(ctx context.Context, input *GetActiveMatchesInput) (*GetActiveMatchesOutput, error)

	// RebuildDeadlines re-indexes the deadlines of all unfinished matches
	RebuildDeadlines(ctx context.Context, input *RebuildDeadlinesInput) (*RebuildDeadlinesOutput, error)

	// DeleteMatch removes a match and everything it owns
	DeleteMatch(ctx context.Context, input *DeleteMatchInput) error
}
