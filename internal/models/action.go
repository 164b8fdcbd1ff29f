package models

import (
	"time"
)

// ActionKind is the closed set of things a participant can submit
type ActionKind string

const (
	ActionKindKill        ActionKind = "kill"
	ActionKindHeal        ActionKind = "heal"
	ActionKindInvestigate ActionKind = "investigate"
	ActionKindProtect     ActionKind = "protect"
	ActionKindBlock       ActionKind = "block"
	ActionKindVote        ActionKind = "vote"
	ActionKindNone        ActionKind = "none"
)

// IsValid reports whether the kind is known
func (k ActionKind) IsValid() bool {
	switch k {
	case ActionKindKill, ActionKindHeal, ActionKindInvestigate, ActionKindProtect,
		ActionKindBlock, ActionKindVote, ActionKindNone:
		return true
	}
	return false
}

// NeedsTarget reports whether the kind acts on another entry
func (k ActionKind) NeedsTarget() bool {
	return k != ActionKindNone
}

// Outcome results recorded on resolved actions
const (
	ResultProtected       = "protected"
	ResultHealed          = "healed"
	ResultBlocking        = "blocking"
	ResultBlocked         = "blocked"
	ResultIsMafia         = "is_mafia"
	ResultNotMafia        = "not_mafia"
	ResultKilled          = "killed"
	ResultTargetProtected = "target protected"
	ResultPartialKill     = "partially protected"
	ResultActorDead       = "actor dead"
	ResultSuppressed      = "suppressed"
	ResultPassed          = "passed"
)

// Outcome is what resolution decided for an action
type Outcome struct {
	// Success indicates the action took effect
	Success bool

	// Result is one of the Result* values
	Result string

	// RevealedRole is the target's role id, set for investigations under an inquisition
	RevealedRole string
}

// Action is a night intent submitted by a roster entry
type Action struct {
	// ID is the unique identifier for the action
	ID string

	// MatchID is the match the action belongs to
	MatchID string

	// ActorID is the roster entry that submitted the action
	ActorID string

	// TargetID is the roster entry acted upon, empty for a pass
	TargetID string

	// ExtraTargetID is a second kill target granted by an event
	ExtraTargetID string

	// Kind is what the actor wants to do
	Kind ActionKind

	// Cycle is the cycle the action was submitted in
	Cycle int

	// Sequence is the insertion order within the match
	Sequence int64

	// SubmittedAt is when the action was submitted
	SubmittedAt time.Time

	// Resolved is set once resolution attached an outcome
	Resolved bool

	// Superseded is set when a later submission replaced this one
	Superseded bool

	// Outcome is nil until resolved
	Outcome *Outcome

	// ResolvedAt is when the outcome was attached
	ResolvedAt *time.Time
}

// IsOpen reports whether the action still waits for resolution
func (a *Action) IsOpen() bool {
	return !a.Resolved && !a.Superseded
}
