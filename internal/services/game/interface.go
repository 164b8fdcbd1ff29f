package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/mafia/internal/services/game Service

import "context"

// Service defines the interface for match operations
type Service interface {
	// CreateMatch opens a new match for a lobby
	CreateMatch(ctx context.Context, input *CreateMatchInput) (*CreateMatchOutput, error)

	// JoinMatch adds a participant to a waiting match
	JoinMatch(ctx context.Context, input *JoinMatchInput) (*JoinMatchOutput, error)

	// LeaveMatch removes a participant from a waiting match
	LeaveMatch(ctx context.Context, input *LeaveMatchInput) (*LeaveMatchOutput, error)

	// StartMatch moves a full enough lobby into the starting countdown
	StartMatch(ctx context.Context, input *StartMatchInput) (*StartMatchOutput, error)

	// SubmitAction records a night action
	SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error)

	// SubmitVote records a day vote
	SubmitVote(ctx context.Context, input *SubmitVoteInput) (*SubmitVoteOutput, error)

	// GetMatchState returns a public snapshot of a match
	GetMatchState(ctx context.Context, input *GetMatchStateInput) (*GetMatchStateOutput, error)

	// GetMatchByLobby returns the unfinished match of a lobby
	GetMatchByLobby(ctx context.Context, input *GetMatchByLobbyInput) (*GetMatchByLobbyOutput, error)

	// GetRoleAssignment returns the role dealt to a participant
	GetRoleAssignment(ctx context.Context, input *GetRoleAssignmentInput) (*GetRoleAssignmentOutput, error)

	// ForcePhaseEnd runs the current phase boundary now
	ForcePhaseEnd(ctx context.Context, input *ForcePhaseEndInput) (*AdvanceMatchOutput, error)

	// TriggerEvent fires a special event
	TriggerEvent(ctx context.Context, input *TriggerEventInput) (*TriggerEventOutput, error)

	// PauseMatch halts the clock of a match
	PauseMatch(ctx context.Context, input *PauseMatchInput) (*PauseMatchOutput, error)

	// ResumeMatch restarts the clock of a paused match
	ResumeMatch(ctx context.Context, input *ResumeMatchInput) (*ResumeMatchOutput, error)

	// AdvanceMatch runs the phase boundary if the deadline has passed
	AdvanceMatch(ctx context.Context, input *AdvanceMatchInput) (*AdvanceMatchOutput, error)

	// DueMatches lists matches whose deadline has passed
	DueMatches(ctx context.Context, input *DueMatchesInput) (*DueMatchesOutput, error)

	// FlagForReview pauses a match for an operator
	FlagForReview(ctx context.Context, input *FlagForReviewInput) (*FlagForReviewOutput, error)

	// PurgeMatch deletes a match and frees its lobby and participants
	PurgeMatch(ctx context.Context, input *PurgeMatchInput) (*PurgeMatchOutput, error)

	// RebuildSchedule restores the deadline index after a restart
	RebuildSchedule(ctx context.Context, input *RebuildScheduleInput) (*RebuildScheduleOutput, error)
}
