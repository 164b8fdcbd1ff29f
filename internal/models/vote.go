package models

import (
	"time"
)

// Vote is a day ballot cast against a roster entry
type Vote struct {
	// ID is the unique identifier for the vote
	ID string

	// MatchID is the match the vote belongs to
	MatchID string

	// VoterID is the roster entry casting the vote
	VoterID string

	// TargetID is the roster entry voted against
	TargetID string

	// Cycle is the cycle the vote was cast in
	Cycle int

	// Weight is 1, or 2 for a mayor
	Weight int

	// Sequence is the insertion order within the match
	Sequence int64

	// Active is false once the voter changed their mind
	Active bool

	// CastAt is when the vote was cast
	CastAt time.Time

	// RevokedAt is when the vote was replaced
	RevokedAt *time.Time
}
