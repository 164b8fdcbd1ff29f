package models

import (
	"time"
)

// MatchStatus represents the phase a match is in
type MatchStatus string

const (
	// MatchStatusWaiting indicates the lobby is collecting participants
	MatchStatusWaiting MatchStatus = "waiting"

	// MatchStatusStarting indicates roles are about to be dealt
	MatchStatusStarting MatchStatus = "starting"

	// MatchStatusNight indicates night actions are being collected
	MatchStatusNight MatchStatus = "night"

	// MatchStatusDay indicates the day discussion is running
	MatchStatusDay MatchStatus = "day"

	// MatchStatusVoting indicates the execution vote is open
	MatchStatusVoting MatchStatus = "voting"

	// MatchStatusEnded indicates a winner was declared; terminal
	MatchStatusEnded MatchStatus = "ended"

	// MatchStatusPaused indicates an operator halted the clock
	MatchStatusPaused MatchStatus = "paused"
)

// IsTimed reports whether the status runs against a phase deadline
func (s MatchStatus) IsTimed() bool {
	switch s {
	case MatchStatusStarting, MatchStatusNight, MatchStatusDay, MatchStatusVoting:
		return true
	}
	return false
}

// IsEnded reports whether the match is over
func (s MatchStatus) IsEnded() bool {
	return s == MatchStatusEnded
}

// Participant is a lobby member waiting for the match to start
type Participant struct {
	// ID is the external user id of the participant
	ID string

	// Name is the display name of the participant
	Name string

	// Level gates which roles the participant can be dealt
	Level int
}

// Match is one game of mafia played by a lobby
type Match struct {
	// ID is the unique identifier for the match
	ID string

	// LobbyID is the group or channel that owns the match
	LobbyID string

	// Status is the current phase of the match
	Status MatchStatus

	// PausedFrom is the phase to return to when a paused match resumes
	PausedFrom MatchStatus

	// Cycle is the current day number, starting at 1 on the first night
	Cycle int

	// PhaseDeadline is when the current timed phase expires
	PhaseDeadline time.Time

	// Winner is the winning faction, empty until the match ends
	Winner Faction

	// Participants are the lobby members; roster entries are built from them
	Participants []*Participant

	// NeedsReview flags a match an operator has to look at before resuming
	NeedsReview bool

	// ReviewReason describes why the match was flagged
	ReviewReason string

	// CreatedAt is when the match was created
	CreatedAt time.Time

	// UpdatedAt is when the match was last updated
	UpdatedAt time.Time

	// StartedAt is when roles were dealt
	StartedAt *time.Time

	// EndedAt is when the winner was declared
	EndedAt *time.Time
}

// HasParticipant reports whether the participant is in the lobby
func (m *Match) HasParticipant(participantID string) bool {
	for _, p := range m.Participants {
		if p.ID == participantID {
			return true
		}
	}
	return false
}

// MatchState is a match together with every record it owns. Records
// point at each other by id; lookups go through the owning state.
type MatchState struct {
	Match   *Match
	Roster  []*RosterEntry
	Actions []*Action
	Votes   []*Vote
	Events  []*Event
}
