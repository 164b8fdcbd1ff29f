package match

import (
	"time"

	"github.com/KirkDiggler/mafia/internal/models"
)

type CreateMatchInput struct {
	Match *models.Match
}

type GetMatchInput struct {
	MatchID string
}

type GetMatchByLobbyInput struct {
	LobbyID string
}

type LoadStateInput struct {
	MatchID string
}

type CommitInput struct {
	State *models.MatchState
}

type DueMatchesInput struct {
	Now   time.Time
	Limit int64
}

type DueMatchesOutput struct {
	MatchIDs []string
}

type GetActiveMatchesInput struct {
}

type GetActiveMatchesOutput struct {
	Matches []*models.Match
}

type RebuildDeadlinesInput struct {
}

type RebuildDeadlinesOutput struct {
	Indexed int
}

type DeleteMatchInput struct {
	MatchID string
}
