package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/mafia/internal/catalog"
	"github.com/KirkDiggler/mafia/internal/common/clock"
	"github.com/KirkDiggler/mafia/internal/common/uuid"
	"github.com/KirkDiggler/mafia/internal/dice"
	"github.com/KirkDiggler/mafia/internal/events"
	"github.com/KirkDiggler/mafia/internal/models"
	matchRepo "github.com/KirkDiggler/mafia/internal/repositories/match"
	playerRepo "github.com/KirkDiggler/mafia/internal/repositories/player"
	"github.com/KirkDiggler/mafia/internal/roster"
	"github.com/KirkDiggler/mafia/internal/services/messaging"
	"github.com/rs/zerolog"
)

// Defaults applied when a Config field is zero
const (
	DefaultMinPlayers        = 4
	DefaultMaxPlayers        = 20
	DefaultNightDuration     = 8 * time.Hour
	DefaultDayDuration       = 15 * time.Hour
	DefaultVoteDuration      = time.Hour
	DefaultXPPerCycle        = 1
	DefaultXPLevelMultiplier = 10
)

// service implements the Service interface
type service struct {
	minPlayers        int
	maxPlayers        int
	startCountdown    time.Duration
	nightDuration     time.Duration
	dayDuration       time.Duration
	voteDuration      time.Duration
	xpPerCycle        int
	xpLevelMultiplier int

	catalog       *catalog.Catalog
	matchRepo     matchRepo.Repository
	playerRepo    playerRepo.Repository
	messaging     messaging.Service
	events        *events.Injector
	diceRoller    dice.Roller
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        zerolog.Logger

	locks *matchLocks
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}
	if cfg.MatchRepo == nil {
		return nil, ErrNilMatchRepo
	}
	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}
	if cfg.Messaging == nil {
		return nil, ErrNilMessagingService
	}
	if cfg.Events == nil {
		return nil, ErrNilEventInjector
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "game").Logger()
	}

	return &service{
		minPlayers:        orDefault(cfg.MinPlayers, DefaultMinPlayers),
		maxPlayers:        orDefault(cfg.MaxPlayers, DefaultMaxPlayers),
		startCountdown:    cfg.StartCountdown,
		nightDuration:     orDefault(cfg.NightDuration, DefaultNightDuration),
		dayDuration:       orDefault(cfg.DayDuration, DefaultDayDuration),
		voteDuration:      orDefault(cfg.VoteDuration, DefaultVoteDuration),
		xpPerCycle:        orDefault(cfg.XPPerCycle, DefaultXPPerCycle),
		xpLevelMultiplier: orDefault(cfg.XPLevelMultiplier, DefaultXPLevelMultiplier),
		catalog:           cfg.Catalog,
		matchRepo:         cfg.MatchRepo,
		playerRepo:        cfg.PlayerRepo,
		messaging:         cfg.Messaging,
		events:            cfg.Events,
		diceRoller:        cfg.DiceRoller,
		clock:             cfg.Clock,
		uuidGenerator:     cfg.UUIDGenerator,
		logger:            logger,
		locks:             newMatchLocks(),
	}, nil
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}

// CreateMatch opens a new match for a lobby
func (s *service) CreateMatch(ctx context.Context, input *CreateMatchInput) (*CreateMatchOutput, error) {
	if input == nil || input.LobbyID == "" {
		return nil, errors.New("lobby ID cannot be empty")
	}

	now := s.clock.Now()
	match := &models.Match{
		ID:           s.uuidGenerator.NewUUID(),
		LobbyID:      input.LobbyID,
		Status:       models.MatchStatusWaiting,
		Participants: []*models.Participant{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.matchRepo.CreateMatch(ctx, &matchRepo.CreateMatchInput{
		Match: match,
	})
	if err != nil {
		if errors.Is(err, matchRepo.ErrLobbyBusy) {
			return nil, ErrLobbyBusy
		}
		return nil, err
	}

	s.logger.Info().
		Str("match_id", match.ID).
		Str("lobby_id", match.LobbyID).
		Msg("match created")

	return &CreateMatchOutput{
		Match: match,
	}, nil
}

// JoinMatch adds a participant to a waiting match
func (s *service) JoinMatch(ctx context.Context, input *JoinMatchInput) (*JoinMatchOutput, error) {
	if input == nil || input.MatchID == "" || input.ParticipantID == "" {
		return nil, errors.New("match ID and participant ID cannot be empty")
	}

	player, err := s.playerRepo.EnsurePlayer(ctx, &playerRepo.EnsurePlayerInput{
		PlayerID: input.ParticipantID,
		Name:     input.ParticipantName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load player: %w", err)
	}

	if player.CurrentMatchID != "" && player.CurrentMatchID != input.MatchID {
		other, err := s.matchRepo.GetMatch(ctx, &matchRepo.GetMatchInput{
			MatchID: player.CurrentMatchID,
		})
		if err != nil && !errors.Is(err, matchRepo.ErrMatchNotFound) {
			return nil, err
		}
		if err == nil && !other.Status.IsEnded() {
			return nil, ErrInAnotherMatch
		}
	}

	participant := &models.Participant{
		ID:    input.ParticipantID,
		Name:  input.ParticipantName,
		Level: max(player.Level, 1),
	}

	tx, err := s.update(ctx, input.MatchID, func(tx *txn) error {
		m := tx.state.Match
		if m.Status.IsEnded() {
			return ErrMatchEnded
		}
		if m.Status != models.MatchStatusWaiting {
			return ErrInvalidMatchState
		}
		if m.HasParticipant(input.ParticipantID) {
			return ErrAlreadyInMatch
		}
		if len(m.Participants) >= s.maxPlayers {
			return ErrMatchFull
		}
		m.Participants = append(m.Participants, participant)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.playerRepo.UpdatePlayerMatch(ctx, &playerRepo.UpdatePlayerMatchInput{
		PlayerID: input.ParticipantID,
		MatchID:  input.MatchID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update player match: %w", err)
	}

	return &JoinMatchOutput{
		Match:       tx.state.Match,
		Participant: participant,
	}, nil
}

// LeaveMatch removes a participant from a waiting match
func (s *service) LeaveMatch(ctx context.Context, input *LeaveMatchInput) (*LeaveMatchOutput, error) {
	if input == nil || input.MatchID == "" || input.ParticipantID == "" {
		return nil, errors.New("match ID and participant ID cannot be empty")
	}

	tx, err := s.update(ctx, input.MatchID, func(tx *txn) error {
		m := tx.state.Match
		if m.Status.IsEnded() {
			return ErrMatchEnded
		}
		if m.Status != models.MatchStatusWaiting {
			return ErrInvalidMatchState
		}

		for i, p := range m.Participants {
			if p.ID == input.ParticipantID {
				m.Participants = append(m.Participants[:i], m.Participants[i+1:]...)
				return nil
			}
		}
		return ErrNotInMatch
	})
	if err != nil {
		return nil, err
	}

	err = s.playerRepo.UpdatePlayerMatch(ctx, &playerRepo.UpdatePlayerMatchInput{
		PlayerID: input.ParticipantID,
	})
	if err != nil && !errors.Is(err, playerRepo.ErrPlayerNotFound) {
		return nil, fmt.Errorf("failed to update player match: %w", err)
	}

	return &LeaveMatchOutput{
		Match: tx.state.Match,
	}, nil
}

// StartMatch moves a waiting match into the starting countdown. Without a
// countdown roles are dealt straight away.
func (s *service) StartMatch(ctx context.Context, input *StartMatchInput) (*StartMatchOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("match ID cannot be empty")
	}

	tx, err := s.update(ctx, input.MatchID, func(tx *txn) error {
		m := tx.state.Match
		if m.Status.IsEnded() {
			return ErrMatchEnded
		}
		if m.Status != models.MatchStatusWaiting {
			return ErrInvalidMatchState
		}
		if len(m.Participants) < s.minPlayers {
			return ErrNotEnoughPlayers
		}

		if s.startCountdown > 0 {
			s.enter(tx, models.MatchStatusStarting)
			return nil
		}

		m.Status = models.MatchStatusStarting
		return s.dealRoles(tx)
	})
	if err != nil {
		return nil, err
	}

	return &StartMatchOutput{
		Match: tx.state.Match,
	}, nil
}

// GetMatchState returns a public snapshot of a match. Roles stay hidden
// unless they were revealed.
func (s *service) GetMatchState(ctx context.Context, input *GetMatchStateInput) (*GetMatchStateOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("match ID cannot be empty")
	}

	state, err := s.load(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}

	out := &GetMatchStateOutput{
		Match: state.Match,
	}

	if len(state.Roster) == 0 {
		for _, p := range state.Match.Participants {
			out.Alive = append(out.Alive, &RosterSummary{
				ParticipantID:   p.ID,
				ParticipantName: p.Name,
				Alive:           true,
			})
		}
	}

	for _, e := range state.Roster {
		summary := &RosterSummary{
			ParticipantID:   e.ParticipantID,
			ParticipantName: e.ParticipantName,
			Alive:           e.Alive,
			Mayor:           e.Mayor,
			DeathCause:      e.DeathCause,
			DeathCycle:      e.DeathCycle,
		}
		if e.Revealed {
			summary.RevealedRole = e.RoleID
		}
		if e.Alive {
			out.Alive = append(out.Alive, summary)
		} else {
			out.Dead = append(out.Dead, summary)
		}
	}

	for _, e := range state.Events {
		if e.IsOngoing() {
			out.ActiveEvents = append(out.ActiveEvents, e)
		}
	}

	return out, nil
}

// GetMatchByLobby returns the unfinished match of a lobby
func (s *service) GetMatchByLobby(ctx context.Context, input *GetMatchByLobbyInput) (*GetMatchByLobbyOutput, error) {
	if input == nil || input.LobbyID == "" {
		return nil, errors.New("lobby ID cannot be empty")
	}

	match, err := s.matchRepo.GetMatchByLobby(ctx, &matchRepo.GetMatchByLobbyInput{
		LobbyID: input.LobbyID,
	})
	if err != nil {
		if errors.Is(err, matchRepo.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	return &GetMatchByLobbyOutput{
		Match: match,
	}, nil
}

// GetRoleAssignment returns the role dealt to a participant
func (s *service) GetRoleAssignment(ctx context.Context, input *GetRoleAssignmentInput) (*GetRoleAssignmentOutput, error) {
	if input == nil || input.MatchID == "" || input.ParticipantID == "" {
		return nil, errors.New("match ID and participant ID cannot be empty")
	}

	state, err := s.load(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}
	if len(state.Roster) == 0 {
		if !state.Match.HasParticipant(input.ParticipantID) {
			return nil, ErrNotInMatch
		}
		return nil, ErrRolesNotAssigned
	}

	ros, err := roster.New(s.catalog, state.Roster)
	if err != nil {
		return nil, err
	}

	entry, ok := ros.ByParticipant(input.ParticipantID)
	if !ok {
		return nil, ErrNotInMatch
	}

	role, err := ros.Role(entry)
	if err != nil {
		return nil, err
	}

	return &GetRoleAssignmentOutput{
		Role:  role,
		Entry: entry,
	}, nil
}

// PauseMatch halts the clock of a match
func (s *service) PauseMatch(ctx context.Context, input *PauseMatchInput) (*PauseMatchOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("match ID cannot be empty")
	}

	tx, err := s.update(ctx, input.MatchID, func(tx *txn) error {
		m := tx.state.Match
		if m.Status.IsEnded() {
			return ErrMatchEnded
		}
		if m.Status == models.MatchStatusPaused {
			return ErrMatchPaused
		}
		s.pause(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PauseMatchOutput{
		Match: tx.state.Match,
	}, nil
}

// ResumeMatch returns a paused match to the phase it was paused in with a
// full phase duration, and clears any review flag
func (s *service) ResumeMatch(ctx context.Context, input *ResumeMatchInput) (*ResumeMatchOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("match ID cannot be empty")
	}

	tx, err := s.update(ctx, input.MatchID, func(tx *txn) error {
		m := tx.state.Match
		if m.Status != models.MatchStatusPaused {
			return ErrInvalidMatchState
		}

		from := m.PausedFrom
		m.PausedFrom = ""
		m.NeedsReview = false
		m.ReviewReason = ""

		if !from.IsTimed() {
			m.Status = models.MatchStatusWaiting
			m.PhaseDeadline = time.Time{}
			return nil
		}
		s.enter(tx, from)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("match_id", input.MatchID).
		Str("status", string(tx.state.Match.Status)).
		Msg("match resumed")

	return &ResumeMatchOutput{
		Match: tx.state.Match,
	}, nil
}

// FlagForReview marks a match for an operator. Timed matches are paused so
// the sweep stops picking them up. The first reason is kept.
func (s *service) FlagForReview(ctx context.Context, input *FlagForReviewInput) (*FlagForReviewOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("match ID cannot be empty")
	}

	tx, err := s.update(ctx, input.MatchID, func(tx *txn) error {
		m := tx.state.Match
		if m.Status.IsEnded() {
			return ErrMatchEnded
		}
		if !m.NeedsReview {
			m.NeedsReview = true
			m.ReviewReason = input.Reason
		}
		if m.Status.IsTimed() {
			s.pause(tx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Warn().
		Str("match_id", input.MatchID).
		Str("reason", input.Reason).
		Msg("match flagged for review")

	return &FlagForReviewOutput{
		Match: tx.state.Match,
	}, nil
}

// PurgeMatch deletes a match with every record it owns. Participants still
// pointing at the match are released so they can join elsewhere.
func (s *service) PurgeMatch(ctx context.Context, input *PurgeMatchInput) (*PurgeMatchOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("match ID cannot be empty")
	}

	release, err := s.locks.acquire(ctx, input.MatchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMatchBusy, err)
	}
	defer release()

	players, err := s.playerRepo.GetPlayersInMatch(ctx, &playerRepo.GetPlayersInMatchInput{
		MatchID: input.MatchID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	err = s.matchRepo.DeleteMatch(ctx, &matchRepo.DeleteMatchInput{
		MatchID: input.MatchID,
	})
	if err != nil {
		if errors.Is(err, matchRepo.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	out := &PurgeMatchOutput{}
	for _, p := range players.Players {
		if p.CurrentMatchID != input.MatchID {
			continue
		}
		err := s.playerRepo.UpdatePlayerMatch(ctx, &playerRepo.UpdatePlayerMatchInput{
			PlayerID: p.ID,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("match_id", input.MatchID).Str("player_id", p.ID).Msg("failed to release player")
			continue
		}
		out.Released = append(out.Released, p.ID)
	}

	s.logger.Info().
		Str("match_id", input.MatchID).
		Int("released", len(out.Released)).
		Msg("match purged")

	return out, nil
}

// DueMatches lists matches whose deadline has passed
func (s *service) DueMatches(ctx context.Context, input *DueMatchesInput) (*DueMatchesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	out, err := s.matchRepo.DueMatches(ctx, &matchRepo.DueMatchesInput{
		Now:   s.clock.Now(),
		Limit: input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &DueMatchesOutput{
		MatchIDs: out.MatchIDs,
	}, nil
}

// RebuildSchedule restores the deadline index from the stored matches
func (s *service) RebuildSchedule(ctx context.Context, input *RebuildScheduleInput) (*RebuildScheduleOutput, error) {
	out, err := s.matchRepo.RebuildDeadlines(ctx, &matchRepo.RebuildDeadlinesInput{})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("indexed", out.Indexed).Msg("deadline schedule rebuilt")

	return &RebuildScheduleOutput{
		Indexed: out.Indexed,
	}, nil
}

// txn is one locked read-modify-commit of a match
type txn struct {
	state  *models.MatchState
	roster *roster.Roster
	now    time.Time

	// notes are published once the commit landed
	notes []*models.Notification

	// deltas are applied to player profiles once the commit landed
	deltas []*models.StatsDelta

	// unchanged skips the commit
	unchanged bool
}

func (tx *txn) notify(n *models.Notification) {
	tx.notes = append(tx.notes, n)
}

func (s *service) load(ctx context.Context, matchID string) (*models.MatchState, error) {
	state, err := s.matchRepo.LoadState(ctx, &matchRepo.LoadStateInput{
		MatchID: matchID,
	})
	if err != nil {
		if errors.Is(err, matchRepo.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return state, nil
}

// update loads the match under its lock, runs fn and commits the result
// atomically. A plain error from fn discards every change. A persistError
// commits first and is returned unwrapped afterwards. Giving up on the lock
// returns ErrMatchBusy.
func (s *service) update(ctx context.Context, matchID string, fn func(tx *txn) error) (*txn, error) {
	release, err := s.locks.acquire(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMatchBusy, err)
	}
	defer release()

	state, err := s.load(ctx, matchID)
	if err != nil {
		return nil, err
	}

	tx := &txn{
		state: state,
		now:   s.clock.Now(),
	}
	if len(state.Roster) > 0 {
		tx.roster, err = roster.New(s.catalog, state.Roster)
		if err != nil {
			return nil, fmt.Errorf("failed to load roster: %w", err)
		}
	}

	var persisted *persistError
	if err := fn(tx); err != nil && !errors.As(err, &persisted) {
		return nil, err
	}

	if !tx.unchanged {
		state.Match.UpdatedAt = tx.now
		err = s.matchRepo.Commit(ctx, &matchRepo.CommitInput{
			State: state,
		})
		if err != nil {
			return nil, err
		}
		s.afterCommit(ctx, tx)
	}

	if persisted != nil {
		return tx, persisted.err
	}
	return tx, nil
}

// afterCommit delivers notifications and profile updates. Neither can undo
// the committed state, so failures are only logged.
func (s *service) afterCommit(ctx context.Context, tx *txn) {
	matchID := tx.state.Match.ID

	if len(tx.notes) > 0 {
		out, err := s.messaging.Publish(ctx, &messaging.PublishInput{
			Notifications: tx.notes,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("match_id", matchID).Msg("failed to publish notifications")
		} else if out.Failed > 0 {
			s.logger.Warn().
				Str("match_id", matchID).
				Int("failed", out.Failed).
				Int("delivered", out.Delivered).
				Msg("some notifications were not delivered")
		}
	}

	if len(tx.deltas) > 0 {
		out, err := s.playerRepo.ApplyStats(ctx, &playerRepo.ApplyStatsInput{
			MatchID:         matchID,
			Deltas:          tx.deltas,
			LevelMultiplier: s.xpLevelMultiplier,
		})
		if err != nil {
			s.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to apply player stats")
			return
		}
		for _, id := range out.LevelledUp {
			s.logger.Info().Str("match_id", matchID).Str("player_id", id).Msg("player levelled up")
		}
	}
}
