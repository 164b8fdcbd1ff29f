package models

import (
	"time"
)

// NotificationKind identifies what a notification announces
type NotificationKind string

const (
	NotificationKindRoleAssigned NotificationKind = "role_assigned"
	NotificationKindPhaseChanged NotificationKind = "phase_changed"
	NotificationKindDeath        NotificationKind = "death"
	NotificationKindEvent        NotificationKind = "event"
	NotificationKindMatchWon     NotificationKind = "match_won"

	// NotificationKindInvestigation privately tells an investigator what they found
	NotificationKindInvestigation NotificationKind = "investigation"
)

// Notification is emitted by the engine for the delivery layer
type Notification struct {
	// Kind is what the notification announces
	Kind NotificationKind

	// MatchID is the match concerned
	MatchID string

	// LobbyID is where match-wide notifications go
	LobbyID string

	// RecipientID is the participant for private notifications; empty means the whole lobby
	RecipientID string

	// Status is the phase entered, for phase changes
	Status MatchStatus

	// Cycle is the current cycle
	Cycle int

	// Deadline is when the entered phase expires
	Deadline time.Time

	// Role is the dealt role, for role assignments
	Role *RoleTemplate

	// SubjectID is the participant who died or was investigated
	SubjectID string

	// SubjectName is the display name of the subject
	SubjectName string

	// Result is the investigation outcome, one of the Result* values
	Result string

	// RevealedRole is the subject's role id when an investigation exposed it
	RevealedRole string

	// Cause is how the subject died
	Cause DeathCause

	// Event is the fired event
	Event *Event

	// Winner is the winning faction
	Winner Faction

	// Stats are the per participant deltas of a finished match
	Stats []*StatsDelta
}
