// Package ledger records night actions and day votes against a loaded
// match state.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/KirkDiggler/mafia/internal/common/uuid"
	"github.com/KirkDiggler/mafia/internal/models"
	"github.com/KirkDiggler/mafia/internal/roster"
)

// Ledger appends to the action and vote history of one match. It is not
// safe for concurrent use; callers hold the match lock.
type Ledger struct {
	state  *models.MatchState
	roster *roster.Roster
	ids    uuid.UUID
}

// New creates a ledger over the state
func New(state *models.MatchState, r *roster.Roster, ids uuid.UUID) (*Ledger, error) {
	if state == nil || state.Match == nil {
		return nil, ErrNilState
	}
	if r == nil {
		return nil, ErrNilRoster
	}
	if ids == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &Ledger{
		state:  state,
		roster: r,
		ids:    ids,
	}, nil
}

// SubmitInput contains parameters for a submission. Participant ids are
// translated to roster entries by the ledger.
type SubmitInput struct {
	ActorID          string
	TargetID         string
	ExtraTargetID    string
	Kind             models.ActionKind
	SubmittedAt      time.Time
	AllowExtraTarget bool
}

// SubmitOutput contains the recorded submission. Votes submitted through
// Submit come back in Vote.
type SubmitOutput struct {
	Action     *models.Action
	Superseded *models.Action
	Vote       *models.Vote
	Revoked    *models.Vote
}

// Submit records a night action for the current cycle, replacing the
// actor's earlier open action if there is one
func (l *Ledger) Submit(input *SubmitInput) (*SubmitOutput, error) {
	if !input.Kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidActionKind, input.Kind)
	}

	// Votes are never bound by abilities
	if input.Kind == models.ActionKindVote {
		out, err := l.CastVote(&CastVoteInput{
			VoterID:  input.ActorID,
			TargetID: input.TargetID,
			CastAt:   input.SubmittedAt,
		})
		if err != nil {
			return nil, err
		}
		return &SubmitOutput{Vote: out.Vote, Revoked: out.Revoked}, nil
	}

	if err := l.checkPhase(models.MatchStatusNight); err != nil {
		return nil, err
	}

	actor, err := l.actor(input.ActorID)
	if err != nil {
		return nil, err
	}

	if input.Kind != models.ActionKindNone {
		role, err := l.roster.Role(actor)
		if err != nil {
			return nil, err
		}
		if !role.Can(input.Kind) {
			return nil, fmt.Errorf("%w: %s cannot %s", ErrUnauthorizedAction, role.ID, input.Kind)
		}
		if actor.AbilityCooldown > 0 {
			return nil, ErrAbilitySuppressed
		}
	}

	action := &models.Action{
		ID:          l.ids.NewUUID(),
		MatchID:     l.state.Match.ID,
		ActorID:     actor.ID,
		Kind:        input.Kind,
		Cycle:       l.state.Match.Cycle,
		SubmittedAt: input.SubmittedAt,
	}

	if input.Kind.NeedsTarget() {
		target, err := l.target(input.TargetID)
		if err != nil {
			return nil, err
		}
		action.TargetID = target.ID
	}

	if input.ExtraTargetID != "" {
		if input.Kind != models.ActionKindKill || !input.AllowExtraTarget {
			return nil, ErrExtraTargetNotAllowed
		}
		extra, err := l.target(input.ExtraTargetID)
		if err != nil {
			return nil, err
		}
		if extra.ID != action.TargetID {
			action.ExtraTargetID = extra.ID
		}
	}

	var superseded *models.Action
	for _, existing := range l.state.Actions {
		if existing.ActorID == actor.ID && existing.Cycle == action.Cycle && existing.IsOpen() {
			existing.Superseded = true
			superseded = existing
		}
	}

	action.Sequence = l.nextSequence()
	l.state.Actions = append(l.state.Actions, action)

	return &SubmitOutput{Action: action, Superseded: superseded}, nil
}

// OpenActionsFor returns the cycle's unresolved actions ordered by
// submission time, ties broken by insertion order
func (l *Ledger) OpenActionsFor(cycle int) []*models.Action {
	var open []*models.Action
	for _, a := range l.state.Actions {
		if a.Cycle == cycle && a.IsOpen() {
			open = append(open, a)
		}
	}

	sort.SliceStable(open, func(i, j int) bool {
		if !open[i].SubmittedAt.Equal(open[j].SubmittedAt) {
			return open[i].SubmittedAt.Before(open[j].SubmittedAt)
		}
		return open[i].Sequence < open[j].Sequence
	})

	return open
}

// CastVoteInput contains parameters for casting a vote
type CastVoteInput struct {
	VoterID  string
	TargetID string
	CastAt   time.Time
}

// CastVoteOutput contains the new vote and the one it replaced
type CastVoteOutput struct {
	Vote    *models.Vote
	Revoked *models.Vote
}

// CastVote records a vote for the current cycle, revoking the voter's
// earlier active vote
func (l *Ledger) CastVote(input *CastVoteInput) (*CastVoteOutput, error) {
	if err := l.checkPhase(models.MatchStatusVoting); err != nil {
		return nil, err
	}

	voter, err := l.actor(input.VoterID)
	if err != nil {
		return nil, err
	}

	target, err := l.target(input.TargetID)
	if err != nil {
		return nil, err
	}

	cycle := l.state.Match.Cycle

	var revoked *models.Vote
	for _, v := range l.state.Votes {
		if v.VoterID == voter.ID && v.Cycle == cycle && v.Active {
			v.Active = false
			revokedAt := input.CastAt
			v.RevokedAt = &revokedAt
			revoked = v
		}
	}

	vote := &models.Vote{
		ID:       l.ids.NewUUID(),
		MatchID:  l.state.Match.ID,
		VoterID:  voter.ID,
		TargetID: target.ID,
		Cycle:    cycle,
		Weight:   voter.VoteWeight(),
		Sequence: l.nextSequence(),
		Active:   true,
		CastAt:   input.CastAt,
	}
	l.state.Votes = append(l.state.Votes, vote)

	return &CastVoteOutput{Vote: vote, Revoked: revoked}, nil
}

// VoteTally sums the weights of active votes per target entry
func (l *Ledger) VoteTally(cycle int) map[string]int {
	tally := make(map[string]int)
	for _, v := range l.state.Votes {
		if v.Cycle == cycle && v.Active {
			tally[v.TargetID] += v.Weight
		}
	}
	return tally
}

func (l *Ledger) checkPhase(want models.MatchStatus) error {
	status := l.state.Match.Status
	if status.IsEnded() {
		return ErrMatchEnded
	}
	if status != want {
		return fmt.Errorf("%w: match is %s", ErrPhaseClosed, status)
	}
	return nil
}

func (l *Ledger) actor(participantID string) (*models.RosterEntry, error) {
	entry, ok := l.roster.ByParticipant(participantID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotInMatch, participantID)
	}
	if !entry.Alive {
		return nil, ErrDeadActor
	}
	return entry, nil
}

func (l *Ledger) target(participantID string) (*models.RosterEntry, error) {
	if participantID == "" {
		return nil, ErrTargetRequired
	}
	entry, ok := l.roster.ByParticipant(participantID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, participantID)
	}
	if !entry.Alive {
		return nil, ErrDeadTarget
	}
	return entry, nil
}

func (l *Ledger) nextSequence() int64 {
	var seq int64
	for _, a := range l.state.Actions {
		seq = max(seq, a.Sequence)
	}
	for _, v := range l.state.Votes {
		seq = max(seq, v.Sequence)
	}
	return seq + 1
}
