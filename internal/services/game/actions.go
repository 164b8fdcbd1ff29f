package game

import (
	"context"
	"errors"

	"github.com/KirkDiggler/mafia/internal/events"
	"github.com/KirkDiggler/mafia/internal/ledger"
	"github.com/KirkDiggler/mafia/internal/models"
)

// SubmitAction records a night action. A later submission by the same
// participant in the same night replaces the earlier one.
func (s *service) SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error) {
	if input == nil || input.MatchID == "" || input.ParticipantID == "" {
		return nil, errors.New("match ID and participant ID cannot be empty")
	}

	var out *SubmitActionOutput
	_, err := s.update(ctx, input.MatchID, func(tx *txn) error {
		l, err := s.openLedger(tx)
		if err != nil {
			return err
		}

		allowExtra := false
		if actor, ok := tx.roster.ByParticipant(input.ParticipantID); ok {
			allowExtra = events.ActiveEffects(tx.state).AllowExtraTarget(tx.roster.Faction(actor))
		}

		res, err := l.Submit(&ledger.SubmitInput{
			ActorID:          input.ParticipantID,
			TargetID:         input.TargetID,
			ExtraTargetID:    input.ExtraTargetID,
			Kind:             input.Kind,
			SubmittedAt:      tx.now,
			AllowExtraTarget: allowExtra,
		})
		if err != nil {
			return err
		}

		out = &SubmitActionOutput{
			Action:     res.Action,
			Superseded: res.Superseded,
			Vote:       res.Vote,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// SubmitVote records a ballot, revoking the voter's earlier one
func (s *service) SubmitVote(ctx context.Context, input *SubmitVoteInput) (*SubmitVoteOutput, error) {
	if input == nil || input.MatchID == "" || input.VoterID == "" {
		return nil, errors.New("match ID and voter ID cannot be empty")
	}

	var out *SubmitVoteOutput
	_, err := s.update(ctx, input.MatchID, func(tx *txn) error {
		l, err := s.openLedger(tx)
		if err != nil {
			return err
		}

		res, err := l.CastVote(&ledger.CastVoteInput{
			VoterID:  input.VoterID,
			TargetID: input.TargetID,
			CastAt:   tx.now,
		})
		if err != nil {
			return err
		}

		out = &SubmitVoteOutput{
			Vote:    res.Vote,
			Revoked: res.Revoked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// TriggerEvent fires an event for the current cycle. Firing a kind twice
// in a cycle returns the first event.
func (s *service) TriggerEvent(ctx context.Context, input *TriggerEventInput) (*TriggerEventOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("match ID cannot be empty")
	}

	out := &TriggerEventOutput{}
	_, err := s.update(ctx, input.MatchID, func(tx *txn) error {
		if tx.state.Match.Status.IsEnded() {
			return ErrMatchEnded
		}
		if tx.roster == nil {
			return ErrRolesNotAssigned
		}

		event, created, err := s.events.Trigger(tx.state, tx.roster, input.Kind, tx.now)
		if err != nil {
			return err
		}

		out.Event, out.Created = event, created
		if !created {
			tx.unchanged = true
			return nil
		}
		s.announceEvent(tx, event)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Created {
		s.logger.Info().
			Str("match_id", input.MatchID).
			Str("kind", string(input.Kind)).
			Msg("event triggered")
	}

	return out, nil
}

// openLedger opens the action ledger of a match that accepts submissions
func (s *service) openLedger(tx *txn) (*ledger.Ledger, error) {
	switch tx.state.Match.Status {
	case models.MatchStatusEnded:
		return nil, ErrMatchEnded
	case models.MatchStatusPaused:
		return nil, ErrMatchPaused
	}
	if tx.roster == nil {
		return nil, ErrRolesNotAssigned
	}
	return ledger.New(tx.state, tx.roster, s.uuidGenerator)
}
