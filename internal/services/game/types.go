package game

import (
	"time"

	"github.com/KirkDiggler/mafia/internal/catalog"
	"github.com/KirkDiggler/mafia/internal/common/clock"
	"github.com/KirkDiggler/mafia/internal/common/uuid"
	"github.com/KirkDiggler/mafia/internal/dice"
	"github.com/KirkDiggler/mafia/internal/events"
	"github.com/KirkDiggler/mafia/internal/models"
	matchRepo "github.com/KirkDiggler/mafia/internal/repositories/match"
	playerRepo "github.com/KirkDiggler/mafia/internal/repositories/player"
	"github.com/KirkDiggler/mafia/internal/services/messaging"
	"github.com/rs/zerolog"
)

// Config holds configuration for the game service
type Config struct {
	// Minimum number of participants to start
	MinPlayers int

	// Maximum number of participants per match
	MaxPlayers int

	// Phase durations
	StartCountdown time.Duration
	NightDuration  time.Duration
	DayDuration    time.Duration
	VoteDuration   time.Duration

	// Experience per cycle played, doubled for winners
	XPPerCycle int

	// Experience needed per level
	XPLevelMultiplier int

	// Role table
	Catalog *catalog.Catalog

	// Repository dependencies
	MatchRepo  matchRepo.Repository
	PlayerRepo playerRepo.Repository

	// Service dependencies
	Messaging     messaging.Service
	Events        *events.Injector
	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger is optional; nothing is logged when nil
	Logger *zerolog.Logger
}

// CreateMatchInput contains parameters for creating a new match
type CreateMatchInput struct {
	LobbyID string
}

// CreateMatchOutput contains the result of creating a match
type CreateMatchOutput struct {
	Match *models.Match
}

// JoinMatchInput contains parameters for joining a match
type JoinMatchInput struct {
	MatchID         string
	ParticipantID   string
	ParticipantName string
}

// JoinMatchOutput contains the result of joining a match
type JoinMatchOutput struct {
	Match       *models.Match
	Participant *models.Participant
}

// LeaveMatchInput contains parameters for leaving a match
type LeaveMatchInput struct {
	MatchID       string
	ParticipantID string
}

// LeaveMatchOutput contains the result of leaving a match
type LeaveMatchOutput struct {
	Match *models.Match
}

// StartMatchInput contains parameters for starting a match
type StartMatchInput struct {
	MatchID string
}

// StartMatchOutput contains the result of starting a match
type StartMatchOutput struct {
	Match *models.Match
}

// SubmitActionInput contains parameters for a night action
type SubmitActionInput struct {
	MatchID       string
	ParticipantID string
	Kind          models.ActionKind
	TargetID      string

	// ExtraTargetID is a second kill target, only during a double kill event
	ExtraTargetID string
}

// SubmitActionOutput contains the recorded action. A vote kind is
// recorded as a ballot and returned in Vote.
type SubmitActionOutput struct {
	Action     *models.Action
	Superseded *models.Action
	Vote       *models.Vote
}

// SubmitVoteInput contains parameters for a day vote
type SubmitVoteInput struct {
	MatchID  string
	VoterID  string
	TargetID string
}

// SubmitVoteOutput contains the recorded vote
type SubmitVoteOutput struct {
	Vote    *models.Vote
	Revoked *models.Vote
}

// GetMatchStateInput contains parameters for reading a match
type GetMatchStateInput struct {
	MatchID string
}

// RosterSummary is the public view of one roster entry
type RosterSummary struct {
	ParticipantID   string
	ParticipantName string
	Alive           bool
	Mayor           bool

	// RevealedRole is only set once the role was made public
	RevealedRole string

	DeathCause models.DeathCause
	DeathCycle int
}

// GetMatchStateOutput is a public snapshot of a match
type GetMatchStateOutput struct {
	Match        *models.Match
	Alive        []*RosterSummary
	Dead         []*RosterSummary
	ActiveEvents []*models.Event
}

// GetMatchByLobbyInput contains parameters for finding a lobby's match
type GetMatchByLobbyInput struct {
	LobbyID string
}

// GetMatchByLobbyOutput contains the lobby's match
type GetMatchByLobbyOutput struct {
	Match *models.Match
}

// GetRoleAssignmentInput contains parameters for a private role reveal
type GetRoleAssignmentInput struct {
	MatchID       string
	ParticipantID string
}

// GetRoleAssignmentOutput contains the dealt role
type GetRoleAssignmentOutput struct {
	Role  *models.RoleTemplate
	Entry *models.RosterEntry
}

// ForcePhaseEndInput contains parameters for an operator forced boundary
type ForcePhaseEndInput struct {
	MatchID string
}

// AdvanceMatchInput contains parameters for a scheduled boundary
type AdvanceMatchInput struct {
	MatchID string
}

// AdvanceMatchOutput describes what a phase boundary did
type AdvanceMatchOutput struct {
	Match *models.Match

	// Advanced is false when the deadline had not passed yet
	Advanced bool

	From models.MatchStatus
	To   models.MatchStatus

	// Deaths are the participants that died at this boundary
	Deaths []string

	// Winner is set when the match ended
	Winner models.Faction

	// Events are the events fired at this boundary
	Events []*models.Event
}

// TriggerEventInput contains parameters for firing an event
type TriggerEventInput struct {
	MatchID string
	Kind    models.EventKind
}

// TriggerEventOutput contains the fired event
type TriggerEventOutput struct {
	Event *models.Event

	// Created is false when the kind had already fired this cycle
	Created bool
}

// PauseMatchInput contains parameters for pausing a match
type PauseMatchInput struct {
	MatchID string
}

// PauseMatchOutput contains the paused match
type PauseMatchOutput struct {
	Match *models.Match
}

// ResumeMatchInput contains parameters for resuming a match
type ResumeMatchInput struct {
	MatchID string
}

// ResumeMatchOutput contains the resumed match
type ResumeMatchOutput struct {
	Match *models.Match
}

// DueMatchesInput contains parameters for listing due matches
type DueMatchesInput struct {
	Limit int64
}

// DueMatchesOutput contains the due match ids
type DueMatchesOutput struct {
	MatchIDs []string
}

// FlagForReviewInput contains parameters for flagging a match
type FlagForReviewInput struct {
	MatchID string
	Reason  string
}

// FlagForReviewOutput contains the flagged match
type FlagForReviewOutput struct {
	Match *models.Match
}

// PurgeMatchInput contains parameters for purging a match
type PurgeMatchInput struct {
	MatchID string
}

// PurgeMatchOutput lists the participants released from the match
type PurgeMatchOutput struct {
	Released []string
}

// RebuildScheduleInput is the input for RebuildSchedule
type RebuildScheduleInput struct {
}

// RebuildScheduleOutput contains how many matches were re-indexed
type RebuildScheduleOutput struct {
	Indexed int
}
