package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/mafia/internal/catalog"
	"github.com/KirkDiggler/mafia/internal/common/clock"
	"github.com/KirkDiggler/mafia/internal/common/uuid"
	"github.com/KirkDiggler/mafia/internal/config"
	"github.com/KirkDiggler/mafia/internal/dice"
	"github.com/KirkDiggler/mafia/internal/events"
	"github.com/KirkDiggler/mafia/internal/handlers/discord"
	"github.com/KirkDiggler/mafia/internal/repositories/match"
	"github.com/KirkDiggler/mafia/internal/repositories/player"
	"github.com/KirkDiggler/mafia/internal/services/game"
	"github.com/KirkDiggler/mafia/internal/services/messaging"
	"github.com/KirkDiggler/mafia/internal/services/scheduler"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := newLogger(cfg)

	if err := run(cfg, &logger); err != nil {
		logger.Fatal().Err(err).Msg("mafiad stopped")
	}
	logger.Info().Msg("mafiad has been shut down")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.SetGlobalLevel(cfg.Level())

	if cfg.LogPretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func run(cfg *config.Config, logger *zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	matchRepo, err := match.NewRedis(&match.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return err
	}

	playerRepo, err := player.NewRedis(&player.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return err
	}

	roles := catalog.MustDefault()
	roller := dice.New(&dice.Config{})
	ids := uuid.New()

	chance := cfg.RandomEventChance
	if chance == 0 {
		chance = -1
	}
	injector, err := events.New(&events.Config{
		Roller:        roller,
		UUIDGenerator: ids,
		Chance:        chance,
	})
	if err != nil {
		return err
	}

	bot, err := discord.New(&discord.Config{
		Token:         cfg.DiscordToken,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	composer := messaging.NewComposer(roller)

	notifier, err := discord.NewNotifier(&discord.NotifierConfig{
		Session:  bot.Session(),
		Composer: composer,
		RoleName: discord.RoleNames(roles),
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	publisher, err := messaging.NewService(&messaging.ServiceConfig{
		Sinks:    []messaging.Sink{notifier},
		Composer: composer,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	gameService, err := game.New(&game.Config{
		MinPlayers:        cfg.MinPlayers,
		MaxPlayers:        cfg.MaxPlayers,
		StartCountdown:    cfg.StartCountdown,
		NightDuration:     cfg.NightDuration,
		DayDuration:       cfg.DayDuration,
		VoteDuration:      cfg.VoteDuration,
		XPPerCycle:        cfg.XPPerCycle,
		XPLevelMultiplier: cfg.XPLevelMultiplier,
		Catalog:           roles,
		MatchRepo:         matchRepo,
		PlayerRepo:        playerRepo,
		Messaging:         publisher,
		Events:            injector,
		DiceRoller:        roller,
		Clock:             &clock.DefaultClock{},
		UUIDGenerator:     ids,
		Logger:            logger,
	})
	if err != nil {
		return err
	}

	rebuilt, err := gameService.RebuildSchedule(ctx, &game.RebuildScheduleInput{})
	if err != nil {
		return err
	}
	logger.Info().Int("matches", rebuilt.Indexed).Msg("deadline index rebuilt")

	sweeper, err := scheduler.New(&scheduler.Config{
		Driver:      gameService,
		Interval:    cfg.SweepInterval,
		MatchBudget: cfg.SweepMatchBudget,
		Concurrency: cfg.SweepConcurrency,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	bot.AddCommand(discord.NewMafiaCommand(&discord.MafiaCommandConfig{
		GameService:   gameService,
		DeliveryStats: publisher,
		RoleName:      discord.RoleNames(roles),
		Logger:        logger,
	}))
	if err := bot.Start(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- sweeper.Run(ctx)
	}()

	logger.Info().Msg("mafiad is running, press CTRL-C to exit")
	<-ctx.Done()

	var errs []error
	if err := <-done; err != nil {
		errs = append(errs, err)
	}
	if err := bot.Stop(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
