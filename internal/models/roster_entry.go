package models

import (
	"time"
)

// DeathCause explains how a roster entry died
type DeathCause string

const (
	// DeathCauseKilledNight is a successful night kill
	DeathCauseKilledNight DeathCause = "killed_night"

	// DeathCauseExecuted is a majority day vote
	DeathCauseExecuted DeathCause = "executed"
)

// RosterEntry binds a participant to their role within one match
type RosterEntry struct {
	// ID is the unique identifier for the entry
	ID string

	// MatchID is the match the entry belongs to
	MatchID string

	// ParticipantID is the external user id
	ParticipantID string

	// ParticipantName is the display name at the time of dealing
	ParticipantName string

	// RoleID references the dealt RoleTemplate
	RoleID string

	// Alive is true until the entry dies; it never flips back
	Alive bool

	// Revealed indicates the role is public
	Revealed bool

	// Mayor doubles the entry's vote weight
	Mayor bool

	// LoverID is the entry id of the paired lover, if any
	LoverID string

	// AbilityCooldown blocks night actions while above zero
	AbilityCooldown int

	// DeathCycle is the cycle of death, zero while alive
	DeathCycle int

	// DeathCause is how the entry died
	DeathCause DeathCause

	// DiedAt is when the entry died
	DiedAt *time.Time
}

// VoteWeight is how much a vote cast by this entry counts
func (e *RosterEntry) VoteWeight() int {
	if e.Mayor {
		return 2
	}
	return 1
}
