package scheduler

//go:generate mockgen -package=mocks -destination=mocks/mock_driver.go github.com/KirkDiggler/mafia/internal/services/scheduler Driver

import (
	"context"

	"github.com/KirkDiggler/mafia/internal/services/game"
)

// Driver is the part of the game service a sweep needs
type Driver interface {
	// DueMatches lists matches whose phase deadline has passed
	DueMatches(ctx context.Context, input *game.DueMatchesInput) (*game.DueMatchesOutput, error)

	// AdvanceMatch runs one phase boundary
	AdvanceMatch(ctx context.Context, input *game.AdvanceMatchInput) (*game.AdvanceMatchOutput, error)

	// FlagForReview pauses a match an operator has to look at
	FlagForReview(ctx context.Context, input *game.FlagForReviewInput) (*game.FlagForReviewOutput, error)
}
