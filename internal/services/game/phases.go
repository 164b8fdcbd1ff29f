package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/mafia/internal/events"
	"github.com/KirkDiggler/mafia/internal/ledger"
	"github.com/KirkDiggler/mafia/internal/models"
	"github.com/KirkDiggler/mafia/internal/resolution"
	"github.com/KirkDiggler/mafia/internal/roster"
	"github.com/KirkDiggler/mafia/internal/win"
)

// AdvanceMatch runs the phase boundary of a match whose deadline passed.
// A match that is not due is left alone and reported as not advanced.
func (s *service) AdvanceMatch(ctx context.Context, input *AdvanceMatchInput) (*AdvanceMatchOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("match ID cannot be empty")
	}

	out := &AdvanceMatchOutput{}
	tx, err := s.update(ctx, input.MatchID, func(tx *txn) error {
		m := tx.state.Match
		out.From, out.To = m.Status, m.Status

		if !m.Status.IsTimed() {
			// stale index entry, the commit drops it
			return nil
		}
		if m.PhaseDeadline.IsZero() || tx.now.Before(m.PhaseDeadline) {
			tx.unchanged = true
			return nil
		}
		return s.advance(tx, out)
	})
	if err != nil {
		return nil, err
	}

	out.Match = tx.state.Match
	return out, nil
}

// ForcePhaseEnd runs the current phase boundary without waiting for the
// deadline. The full resolution still happens.
func (s *service) ForcePhaseEnd(ctx context.Context, input *ForcePhaseEndInput) (*AdvanceMatchOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("match ID cannot be empty")
	}

	out := &AdvanceMatchOutput{}
	tx, err := s.update(ctx, input.MatchID, func(tx *txn) error {
		m := tx.state.Match
		out.From, out.To = m.Status, m.Status

		switch m.Status {
		case models.MatchStatusEnded:
			return ErrMatchEnded
		case models.MatchStatusPaused:
			return ErrMatchPaused
		case models.MatchStatusWaiting:
			return ErrInvalidMatchState
		}
		return s.advance(tx, out)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("match_id", input.MatchID).
		Str("from", string(out.From)).
		Str("to", string(out.To)).
		Msg("phase forced to end")

	out.Match = tx.state.Match
	return out, nil
}

// advance leaves the current timed phase
func (s *service) advance(tx *txn, out *AdvanceMatchOutput) error {
	m := tx.state.Match

	var err error
	switch m.Status {
	case models.MatchStatusStarting:
		err = s.dealRoles(tx)
	case models.MatchStatusNight:
		err = s.endNight(tx, out)
	case models.MatchStatusDay:
		s.events.CompleteActive(tx.state, tx.roster, tx.now)
		s.enter(tx, models.MatchStatusVoting)
	case models.MatchStatusVoting:
		err = s.endVoting(tx, out)
	default:
		return ErrInvalidMatchState
	}

	out.To = m.Status
	out.Advanced = err == nil
	if err == nil {
		s.logger.Info().
			Str("match_id", m.ID).
			Str("from", string(out.From)).
			Str("to", string(out.To)).
			Int("cycle", m.Cycle).
			Msg("phase advanced")
	}
	return err
}

// enter starts a timed phase with its full duration
func (s *service) enter(tx *txn, status models.MatchStatus) {
	m := tx.state.Match
	m.Status = status
	m.PhaseDeadline = tx.now.Add(s.duration(status))

	tx.notify(&models.Notification{
		Kind:     models.NotificationKindPhaseChanged,
		MatchID:  m.ID,
		LobbyID:  m.LobbyID,
		Status:   status,
		Cycle:    m.Cycle,
		Deadline: m.PhaseDeadline,
	})
}

func (s *service) duration(status models.MatchStatus) time.Duration {
	switch status {
	case models.MatchStatusStarting:
		return s.startCountdown
	case models.MatchStatusNight:
		return s.nightDuration
	case models.MatchStatusDay:
		return s.dayDuration
	case models.MatchStatusVoting:
		return s.voteDuration
	}
	return 0
}

// pause stops the clock and remembers where to come back to
func (s *service) pause(tx *txn) {
	m := tx.state.Match
	if m.Status != models.MatchStatusPaused {
		m.PausedFrom = m.Status
		m.Status = models.MatchStatusPaused
	}
	m.PhaseDeadline = time.Time{}

	tx.notify(&models.Notification{
		Kind:    models.NotificationKindPhaseChanged,
		MatchID: m.ID,
		LobbyID: m.LobbyID,
		Status:  models.MatchStatusPaused,
		Cycle:   m.Cycle,
	})
}

// flagFailure pauses the match for review after a failed resolution. Only
// the pause is committed.
func (s *service) flagFailure(tx *txn, cause error) error {
	m := tx.state.Match
	s.pause(tx)
	if !m.NeedsReview {
		m.NeedsReview = true
		m.ReviewReason = cause.Error()
	}

	s.logger.Error().
		Err(cause).
		Str("match_id", m.ID).
		Str("phase", string(m.PausedFrom)).
		Int("cycle", m.Cycle).
		Msg("resolution failed, match flagged for review")

	return &persistError{err: fmt.Errorf("%w: %w", ErrResolutionFailed, cause)}
}

// dealRoles builds the roster and opens the first night. A failed deal
// sends the match back to the lobby.
func (s *service) dealRoles(tx *txn) error {
	m := tx.state.Match

	entries, err := roster.Assign(&roster.AssignInput{
		MatchID:       m.ID,
		Participants:  m.Participants,
		Catalog:       s.catalog,
		Roller:        s.diceRoller,
		UUIDGenerator: s.uuidGenerator,
	})
	if err == nil {
		tx.roster, err = roster.New(s.catalog, entries)
	}
	if err != nil {
		m.Status = models.MatchStatusWaiting
		m.PhaseDeadline = time.Time{}
		s.logger.Warn().Err(err).Str("match_id", m.ID).Msg("failed to deal roles")
		return &persistError{err: err}
	}

	tx.state.Roster = entries
	m.Cycle = 1
	startedAt := tx.now
	m.StartedAt = &startedAt

	for _, e := range entries {
		role, err := tx.roster.Role(e)
		if err != nil {
			return err
		}
		tx.notify(&models.Notification{
			Kind:        models.NotificationKindRoleAssigned,
			MatchID:     m.ID,
			LobbyID:     m.LobbyID,
			RecipientID: e.ParticipantID,
			Cycle:       m.Cycle,
			Role:        role,
		})
	}

	s.enter(tx, models.MatchStatusNight)
	return nil
}

// endNight resolves the night's actions and moves to the day, or ends the
// match
func (s *service) endNight(tx *txn, out *AdvanceMatchOutput) error {
	m := tx.state.Match

	l, err := ledger.New(tx.state, tx.roster, s.uuidGenerator)
	if err != nil {
		return s.flagFailure(tx, err)
	}

	result, err := resolution.ResolveNight(&resolution.NightInput{
		Catalog:     s.catalog,
		Roster:      tx.state.Roster,
		Actions:     l.OpenActionsFor(m.Cycle),
		Inquisition: events.ActiveEffects(tx.state).Inquisition,
	})
	if err != nil {
		return s.flagFailure(tx, err)
	}
	if err := result.Apply(tx.roster, m.Cycle, tx.now); err != nil {
		return s.flagFailure(tx, err)
	}

	s.events.CompleteActive(tx.state, tx.roster, tx.now)

	for _, a := range result.Order {
		if a.Kind != models.ActionKindInvestigate || a.Outcome == nil || !a.Outcome.Success {
			continue
		}
		actor, _ := tx.roster.Entry(a.ActorID)
		target, _ := tx.roster.Entry(a.TargetID)
		tx.notify(&models.Notification{
			Kind:         models.NotificationKindInvestigation,
			MatchID:      m.ID,
			LobbyID:      m.LobbyID,
			RecipientID:  actor.ParticipantID,
			Cycle:        m.Cycle,
			SubjectID:    target.ParticipantID,
			SubjectName:  target.ParticipantName,
			Result:       a.Outcome.Result,
			RevealedRole: a.Outcome.RevealedRole,
		})
	}

	for _, id := range result.Deaths {
		s.announceDeath(tx, out, id)
	}

	if winner, over := win.Evaluate(tx.roster); over {
		s.end(tx, out, winner)
		return nil
	}

	s.enter(tx, models.MatchStatusDay)
	return nil
}

// endVoting executes the majority choice and starts the next night, or
// ends the match. A random event may fire as the night opens.
func (s *service) endVoting(tx *txn, out *AdvanceMatchOutput) error {
	m := tx.state.Match

	l, err := ledger.New(tx.state, tx.roster, s.uuidGenerator)
	if err != nil {
		return s.flagFailure(tx, err)
	}

	result := resolution.ResolveVotes(l.VoteTally(m.Cycle), tx.roster.AliveCount())
	if result.ExecutedID != "" {
		err := tx.roster.MarkDead(result.ExecutedID, models.DeathCauseExecuted, m.Cycle, tx.now)
		if err != nil {
			return s.flagFailure(tx, err)
		}
	}

	s.events.CompleteActive(tx.state, tx.roster, tx.now)

	if result.ExecutedID != "" {
		s.announceDeath(tx, out, result.ExecutedID)
	}

	if winner, over := win.Evaluate(tx.roster); over {
		s.end(tx, out, winner)
		return nil
	}

	m.Cycle++
	s.enter(tx, models.MatchStatusNight)

	event, err := s.events.MaybeTriggerRandom(tx.state, tx.roster, tx.now)
	if err != nil {
		s.logger.Warn().Err(err).Str("match_id", m.ID).Msg("failed to roll random event")
		return nil
	}
	if event != nil {
		s.announceEvent(tx, event)
		out.Events = append(out.Events, event)
	}

	return nil
}

// end declares the winner and settles the match
func (s *service) end(tx *txn, out *AdvanceMatchOutput, winner models.Faction) {
	m := tx.state.Match
	m.Status = models.MatchStatusEnded
	m.Winner = winner
	m.PhaseDeadline = time.Time{}
	endedAt := tx.now
	m.EndedAt = &endedAt

	tx.deltas = win.Settle(&win.SettleInput{
		Roster:     tx.roster,
		Winner:     winner,
		Cycle:      m.Cycle,
		XPPerCycle: s.xpPerCycle,
	})

	tx.notify(&models.Notification{
		Kind:    models.NotificationKindMatchWon,
		MatchID: m.ID,
		LobbyID: m.LobbyID,
		Status:  m.Status,
		Cycle:   m.Cycle,
		Winner:  winner,
		Stats:   tx.deltas,
	})

	out.Winner = winner

	s.logger.Info().
		Str("match_id", m.ID).
		Str("winner", string(winner)).
		Int("cycle", m.Cycle).
		Msg("match ended")
}

func (s *service) announceDeath(tx *txn, out *AdvanceMatchOutput, entryID string) {
	e, ok := tx.roster.Entry(entryID)
	if !ok {
		return
	}
	m := tx.state.Match

	tx.notify(&models.Notification{
		Kind:        models.NotificationKindDeath,
		MatchID:     m.ID,
		LobbyID:     m.LobbyID,
		Cycle:       m.Cycle,
		SubjectID:   e.ParticipantID,
		SubjectName: e.ParticipantName,
		Cause:       e.DeathCause,
	})
	out.Deaths = append(out.Deaths, e.ParticipantID)
}

func (s *service) announceEvent(tx *txn, event *models.Event) {
	m := tx.state.Match
	tx.notify(&models.Notification{
		Kind:    models.NotificationKindEvent,
		MatchID: m.ID,
		LobbyID: m.LobbyID,
		Cycle:   m.Cycle,
		Event:   event,
	})
}
