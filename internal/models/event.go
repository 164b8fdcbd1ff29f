package models

import (
	"time"
)

// EventKind enumerates the special effects that can hit a match
type EventKind string

const (
	// EventKindInquisitor makes investigations reveal the exact role
	EventKindInquisitor EventKind = "inquisitor"

	// EventKindMayorElection makes a random alive participant mayor
	EventKindMayorElection EventKind = "mayor_election"

	// EventKindPlague suppresses a random participant's ability for a cycle
	EventKindPlague EventKind = "plague"

	// EventKindFullMoon lets neutral killers take a second target
	EventKindFullMoon EventKind = "full_moon"

	// EventKindCurfew silences the day; announcement only
	EventKindCurfew EventKind = "curfew"

	// EventKindDoubleTrouble lets mafia killers take a second target
	EventKindDoubleTrouble EventKind = "double_trouble"

	// EventKindRevelation reveals a random participant's role
	EventKindRevelation EventKind = "revelation"
)

// EventKinds is every kind the random roll may pick, in a fixed order
var EventKinds = []EventKind{
	EventKindInquisitor,
	EventKindMayorElection,
	EventKindPlague,
	EventKindFullMoon,
	EventKindCurfew,
	EventKindDoubleTrouble,
	EventKindRevelation,
}

// IsValid reports whether the kind is known
func (k EventKind) IsValid() bool {
	for _, kind := range EventKinds {
		if kind == k {
			return true
		}
	}
	return false
}

// Event is a special effect applied to a match for one cycle
type Event struct {
	// ID is the unique identifier for the event
	ID string

	// MatchID is the match the event belongs to
	MatchID string

	// Kind is which effect fired
	Kind EventKind

	// Cycle is the cycle the event fired in
	Cycle int

	// Active is true while the effect applies
	Active bool

	// Completed is set once the effect was reverted or expired
	Completed bool

	// AffectedID is the roster entry the effect landed on, if any
	AffectedID string

	// Payload carries effect details for notifications
	Payload map[string]string

	// StartedAt is when the event fired
	StartedAt time.Time

	// EndedAt is when the event completed
	EndedAt *time.Time
}

// IsOngoing reports whether the event still applies
func (e *Event) IsOngoing() bool {
	return e.Active && !e.Completed
}
