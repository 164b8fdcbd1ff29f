package scheduler

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when a Config field is zero
const (
	DefaultInterval    = 30 * time.Second
	DefaultMatchBudget = 10 * time.Second
	DefaultConcurrency = 8
	DefaultBatchSize   = 100
)

// Config holds configuration for the scheduler
type Config struct {
	Driver Driver

	// Interval between sweeps
	Interval time.Duration

	// MatchBudget bounds the work on one match within a sweep
	MatchBudget time.Duration

	// Concurrency is how many matches are advanced at once
	Concurrency int

	// BatchSize caps the due matches taken per sweep
	BatchSize int64

	Logger *zerolog.Logger
}

// SweepResult counts what one sweep did
type SweepResult struct {
	Due      int
	Advanced int

	// Busy matches were locked by another operation and stay due
	Busy   int
	Failed int
}
