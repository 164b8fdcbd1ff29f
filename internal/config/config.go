// Package config loads the daemon configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds every setting of the mafia daemon
type Config struct {
	// Redis
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Discord
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	// Lobby
	MinPlayers     int           `env:"MIN_PLAYERS" envDefault:"4"`
	MaxPlayers     int           `env:"MAX_PLAYERS" envDefault:"20"`
	StartCountdown time.Duration `env:"START_COUNTDOWN" envDefault:"0s"`

	// Phases
	NightDuration time.Duration `env:"NIGHT_DURATION" envDefault:"8h"`
	DayDuration   time.Duration `env:"DAY_DURATION" envDefault:"15h"`
	VoteDuration  time.Duration `env:"VOTE_DURATION" envDefault:"1h"`

	// Sweep
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL" envDefault:"30s"`
	SweepMatchBudget time.Duration `env:"SWEEP_MATCH_BUDGET" envDefault:"10s"`
	SweepConcurrency int           `env:"SWEEP_CONCURRENCY" envDefault:"8"`

	// Progression
	XPPerCycle        int `env:"XP_PER_CYCLE" envDefault:"1"`
	XPLevelMultiplier int `env:"XP_LEVEL_MULTIPLIER" envDefault:"10"`

	RandomEventChance float64 `env:"RANDOM_EVENT_CHANCE" envDefault:"0.2"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// Load reads the optional dotenv file and parses the environment
func Load(dotenvPath string) (*Config, error) {
	if err := LoadDotEnv(dotenvPath); err != nil {
		return nil, fmt.Errorf("load %s: %w", dotenvPath, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values env tags cannot express
func (c *Config) Validate() error {
	var errs []error

	if c.MinPlayers < 1 {
		errs = append(errs, fmt.Errorf("MIN_PLAYERS must be positive, got %d", c.MinPlayers))
	}
	if c.MaxPlayers < c.MinPlayers {
		errs = append(errs, fmt.Errorf("MAX_PLAYERS (%d) is below MIN_PLAYERS (%d)", c.MaxPlayers, c.MinPlayers))
	}
	if c.StartCountdown < 0 {
		errs = append(errs, errors.New("START_COUNTDOWN cannot be negative"))
	}
	for name, d := range map[string]time.Duration{
		"NIGHT_DURATION":     c.NightDuration,
		"DAY_DURATION":       c.DayDuration,
		"VOTE_DURATION":      c.VoteDuration,
		"SWEEP_INTERVAL":     c.SweepInterval,
		"SWEEP_MATCH_BUDGET": c.SweepMatchBudget,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	if c.SweepConcurrency < 1 {
		errs = append(errs, fmt.Errorf("SWEEP_CONCURRENCY must be positive, got %d", c.SweepConcurrency))
	}
	if c.RandomEventChance < 0 || c.RandomEventChance > 1 {
		errs = append(errs, fmt.Errorf("RANDOM_EVENT_CHANCE must be within [0, 1], got %g", c.RandomEventChance))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	return errors.Join(errs...)
}

// Level returns the parsed log level
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
