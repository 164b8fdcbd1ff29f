// Package scheduler advances matches whose phase deadline has passed.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/mafia/internal/services/game"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Scheduler sweeps the deadline index on an interval. Every due match gets
// one phase boundary per sweep, with its own time budget. A failing match
// is flagged for review and never holds up the others.
type Scheduler struct {
	driver      Driver
	interval    time.Duration
	matchBudget time.Duration
	concurrency int
	batchSize   int64
	logger      zerolog.Logger
}

// New creates a new scheduler
func New(cfg *Config) (*Scheduler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Driver == nil {
		return nil, ErrNilDriver
	}

	s := &Scheduler{
		driver:      cfg.Driver,
		interval:    cfg.Interval,
		matchBudget: cfg.MatchBudget,
		concurrency: cfg.Concurrency,
		batchSize:   cfg.BatchSize,
		logger:      zerolog.Nop(),
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if s.matchBudget <= 0 {
		s.matchBudget = DefaultMatchBudget
	}
	if s.concurrency <= 0 {
		s.concurrency = DefaultConcurrency
	}
	if s.batchSize <= 0 {
		s.batchSize = DefaultBatchSize
	}
	if cfg.Logger != nil {
		s.logger = cfg.Logger.With().Str("component", "scheduler").Logger()
	}

	return s, nil
}

// Run sweeps until ctx is cancelled. The first sweep runs immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("scheduler started")

	for {
		if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error().Err(err).Msg("sweep failed")
		}

		select {
		case <-ctx.Done():
			s.logger.Info().Msg("scheduler stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Sweep advances every due match once
func (s *Scheduler) Sweep(ctx context.Context) (*SweepResult, error) {
	due, err := s.driver.DueMatches(ctx, &game.DueMatchesInput{
		Limit: s.batchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list due matches: %w", err)
	}

	var advanced, busy, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, matchID := range due.MatchIDs {
		matchID := matchID
		g.Go(func() error {
			ok, err := s.sweepMatch(ctx, matchID)
			switch {
			case errors.Is(err, game.ErrMatchBusy):
				busy.Add(1)
			case err != nil:
				failed.Add(1)
			case ok:
				advanced.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	result := &SweepResult{
		Due:      len(due.MatchIDs),
		Advanced: int(advanced.Load()),
		Busy:     int(busy.Load()),
		Failed:   int(failed.Load()),
	}
	if result.Due > 0 {
		s.logger.Debug().
			Int("due", result.Due).
			Int("advanced", result.Advanced).
			Int("busy", result.Busy).
			Int("failed", result.Failed).
			Msg("sweep finished")
	}

	return result, nil
}

// sweepMatch runs one boundary inside the match budget and flags the match
// when it fails. Lock contention is not a failure.
func (s *Scheduler) sweepMatch(ctx context.Context, matchID string) (advanced bool, err error) {
	matchCtx, cancel := context.WithTimeout(ctx, s.matchBudget)
	defer cancel()

	out, err := s.advance(matchCtx, matchID)
	if err == nil {
		return out != nil && out.Advanced, nil
	}

	// another operation held the match lock for the whole budget; the
	// match is still due and the next sweep retries it
	if errors.Is(err, game.ErrMatchBusy) {
		s.logger.Warn().Err(err).Str("match_id", matchID).Msg("match busy, retrying next sweep")
		return false, err
	}

	s.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to advance match")

	// the game service already paused and flagged the match
	if errors.Is(err, game.ErrResolutionFailed) {
		return false, err
	}
	// shutting down, the match stays due for the next run
	if ctx.Err() != nil {
		return false, err
	}

	flagCtx, cancelFlag := context.WithTimeout(context.WithoutCancel(ctx), s.matchBudget)
	defer cancelFlag()

	_, flagErr := s.driver.FlagForReview(flagCtx, &game.FlagForReviewInput{
		MatchID: matchID,
		Reason:  err.Error(),
	})
	if flagErr != nil {
		s.logger.Error().Err(flagErr).Str("match_id", matchID).Msg("failed to flag match for review")
	}

	return false, err
}

func (s *Scheduler) advance(ctx context.Context, matchID string) (out *game.AdvanceMatchOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("advance panicked: %v", r)
		}
	}()

	return s.driver.AdvanceMatch(ctx, &game.AdvanceMatchInput{
		MatchID: matchID,
	})
}
