package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/mafia/internal/models"
	"github.com/KirkDiggler/mafia/internal/win"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	playerKeyPrefix       = "player:"
	matchPlayersKeyPrefix = "match_players:"

	// Optimistic transaction attempts per profile
	maxStatsRetries = 5
)

// ErrPlayerNotFound is returned when a player is not found
var ErrPlayerNotFound = errors.New("player not found")

// Config holds configuration for the Redis player repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed player repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func playerKey(playerID string) string {
	return playerKeyPrefix + playerID
}

func matchPlayersKey(matchID string) string {
	return matchPlayersKeyPrefix + matchID
}

// SavePlayer persists a player to Redis
func (r *redisRepository) SavePlayer(ctx context.Context, input *SavePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}

	player := input.Player
	if player.ID == "" {
		return errors.New("player ID cannot be empty")
	}

	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), playerJSON, 0)

	// Keep the match membership index in step with the profile
	if player.CurrentMatchID != "" {
		pipe.SAdd(ctx, matchPlayersKey(player.CurrentMatchID), player.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	return nil
}

// GetPlayer retrieves a player by ID from Redis
func (r *redisRepository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	return getPlayer(ctx, r.client, input.PlayerID)
}

// EnsurePlayer returns the stored profile or creates a fresh one
func (r *redisRepository) EnsurePlayer(ctx context.Context, input *EnsurePlayerInput) (*models.Player, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	fresh := &models.Player{
		ID:    input.PlayerID,
		Name:  input.Name,
		Level: 1,
	}
	playerJSON, err := json.Marshal(fresh)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal player: %w", err)
	}

	created, err := r.client.SetNX(ctx, playerKey(input.PlayerID), playerJSON, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	if created {
		return fresh, nil
	}

	return getPlayer(ctx, r.client, input.PlayerID)
}

// GetPlayersInMatch retrieves all players in a match from Redis
func (r *redisRepository) GetPlayersInMatch(ctx context.Context, input *GetPlayersInMatchInput) (*GetPlayersInMatchOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("input and match ID cannot be empty")
	}

	playerIDs, err := r.client.SMembers(ctx, matchPlayersKey(input.MatchID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player IDs: %w", err)
	}

	if len(playerIDs) == 0 {
		return &GetPlayersInMatchOutput{
			Players: []*models.Player{},
		}, nil
	}

	pipe := r.client.Pipeline()
	playerCommands := make(map[string]*redis.StringCmd)
	for _, playerID := range playerIDs {
		playerCommands[playerID] = pipe.Get(ctx, playerKey(playerID))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	players := make([]*models.Player, 0, len(playerIDs))
	for playerID, cmd := range playerCommands {
		playerJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Player was deleted between getting the IDs and fetching the player
				continue
			}
			return nil, fmt.Errorf("failed to get player %s: %w", playerID, err)
		}

		var player models.Player
		if err := json.Unmarshal([]byte(playerJSON), &player); err != nil {
			return nil, fmt.Errorf("failed to unmarshal player %s: %w", playerID, err)
		}

		players = append(players, &player)
	}

	return &GetPlayersInMatchOutput{
		Players: players,
	}, nil
}

// UpdatePlayerMatch moves a player between match membership sets
func (r *redisRepository) UpdatePlayerMatch(ctx context.Context, input *UpdatePlayerMatchInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}

	player, err := r.GetPlayer(ctx, &GetPlayerInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()

	if player.CurrentMatchID != "" && player.CurrentMatchID != input.MatchID {
		pipe.SRem(ctx, matchPlayersKey(player.CurrentMatchID), player.ID)
	}

	player.CurrentMatchID = input.MatchID

	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}
	pipe.Set(ctx, playerKey(player.ID), playerJSON, 0)

	if input.MatchID != "" {
		pipe.SAdd(ctx, matchPlayersKey(input.MatchID), player.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update player match: %w", err)
	}

	return nil
}

// ApplyStats updates every profile under WATCH so concurrent matches
// finishing for the same player never lose an increment
func (r *redisRepository) ApplyStats(ctx context.Context, input *ApplyStatsInput) (*ApplyStatsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.LevelMultiplier <= 0 {
		return nil, errors.New("level multiplier must be positive")
	}

	out := &ApplyStatsOutput{}
	for _, delta := range input.Deltas {
		levelled, err := r.applyDelta(ctx, input.MatchID, delta, input.LevelMultiplier)
		if err != nil {
			return out, fmt.Errorf("failed to apply stats for %s: %w", delta.ParticipantID, err)
		}
		if levelled {
			out.LevelledUp = append(out.LevelledUp, delta.ParticipantID)
		}
	}

	if input.MatchID != "" {
		if err := r.client.Del(ctx, matchPlayersKey(input.MatchID)).Err(); err != nil {
			return out, fmt.Errorf("failed to clear match players: %w", err)
		}
	}

	return out, nil
}

func (r *redisRepository) applyDelta(ctx context.Context, matchID string, delta *models.StatsDelta, multiplier int) (bool, error) {
	key := playerKey(delta.ParticipantID)

	for attempt := 0; attempt < maxStatsRetries; attempt++ {
		levelled := false
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			player, err := getPlayer(ctx, tx, delta.ParticipantID)
			if errors.Is(err, ErrPlayerNotFound) {
				player = &models.Player{ID: delta.ParticipantID, Level: 1}
			} else if err != nil {
				return err
			}

			levelled = win.Progress(player, delta, multiplier)
			if player.CurrentMatchID == matchID {
				player.CurrentMatchID = ""
			}

			playerJSON, err := json.Marshal(player)
			if err != nil {
				return fmt.Errorf("failed to marshal player: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, playerJSON, 0)
				return nil
			})
			return err
		}, key)

		if err == nil {
			return levelled, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return false, err
		}
	}

	return false, fmt.Errorf("too many concurrent updates to %s", delta.ParticipantID)
}

// getter is satisfied by both the client and a watched transaction
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func getPlayer(ctx context.Context, client getter, playerID string) (*models.Player, error) {
	playerJSON, err := client.Get(ctx, playerKey(playerID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	var player models.Player
	if err := json.Unmarshal([]byte(playerJSON), &player); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &player, nil
}
