package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/KirkDiggler/mafia/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	matchKeyPrefix = "match:"
	lobbyKeyPrefix = "lobby:"
	activeMatchKey = "active_matches"
	deadlinesKey   = "match_deadlines"

	// Hash suffixes for the records a match owns
	rosterSuffix  = ":roster"
	actionsSuffix = ":actions"
	votesSuffix   = ":votes"
	eventsSuffix  = ":events"
)

var (
	// ErrMatchNotFound is returned when a match is not found
	ErrMatchNotFound = errors.New("match not found")

	// ErrLobbyBusy is returned when a lobby already has an unfinished match
	ErrLobbyBusy = errors.New("lobby already has an unfinished match")
)

// Config holds configuration for the Redis match repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed match repository
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

func matchKey(matchID string) string {
	return matchKeyPrefix + matchID
}

func lobbyKey(lobbyID string) string {
	return lobbyKeyPrefix + lobbyID
}

// CreateMatch claims the lobby for the match and persists it
func (r *redisRepository) CreateMatch(ctx context.Context, input *CreateMatchInput) error {
	if input == nil || input.Match == nil {
		return errors.New("input and match cannot be nil")
	}
	if input.Match.ID == "" || input.Match.LobbyID == "" {
		return errors.New("match ID and lobby ID cannot be empty")
	}

	claimed, err := r.client.SetNX(ctx, lobbyKey(input.Match.LobbyID), input.Match.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim lobby: %w", err)
	}
	if !claimed {
		return ErrLobbyBusy
	}

	err = r.Commit(ctx, &CommitInput{
		State: &models.MatchState{Match: input.Match},
	})
	if err != nil {
		r.client.Del(ctx, lobbyKey(input.Match.LobbyID))
		return err
	}

	return nil
}

// GetMatch retrieves a match by ID from Redis
func (r *redisRepository) GetMatch(ctx context.Context, input *GetMatchInput) (*models.Match, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("input and match ID cannot be empty")
	}

	matchJSON, err := r.client.Get(ctx, matchKey(input.MatchID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	var match models.Match
	if err := json.Unmarshal([]byte(matchJSON), &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &match, nil
}

// GetMatchByLobby retrieves the unfinished match of a lobby from Redis
func (r *redisRepository) GetMatchByLobby(ctx context.Context, input *GetMatchByLobbyInput) (*models.Match, error) {
	if input == nil || input.LobbyID == "" {
		return nil, errors.New("input and lobby ID cannot be empty")
	}

	matchID, err := r.client.Get(ctx, lobbyKey(input.LobbyID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match ID for lobby: %w", err)
	}

	return r.GetMatch(ctx, &GetMatchInput{
		MatchID: matchID,
	})
}

// LoadState reads the match and all its records in one round trip
func (r *redisRepository) LoadState(ctx context.Context, input *LoadStateInput) (*models.MatchState, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("input and match ID cannot be empty")
	}

	key := matchKey(input.MatchID)

	pipe := r.client.Pipeline()
	matchCmd := pipe.Get(ctx, key)
	rosterCmd := pipe.HGetAll(ctx, key+rosterSuffix)
	actionsCmd := pipe.HGetAll(ctx, key+actionsSuffix)
	votesCmd := pipe.HGetAll(ctx, key+votesSuffix)
	eventsCmd := pipe.HGetAll(ctx, key+eventsSuffix)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to load match state: %w", err)
	}

	matchJSON, err := matchCmd.Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	state := &models.MatchState{Match: &models.Match{}}
	if err := json.Unmarshal([]byte(matchJSON), state.Match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	if state.Roster, err = decodeHash[models.RosterEntry](rosterCmd.Val()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roster: %w", err)
	}
	if state.Actions, err = decodeHash[models.Action](actionsCmd.Val()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal actions: %w", err)
	}
	if state.Votes, err = decodeHash[models.Vote](votesCmd.Val()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal votes: %w", err)
	}
	if state.Events, err = decodeHash[models.Event](eventsCmd.Val()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal events: %w", err)
	}

	// Hashes are unordered; restore deal and insertion order
	sortRoster(state.Match, state.Roster)
	sort.SliceStable(state.Actions, func(i, j int) bool {
		return state.Actions[i].Sequence < state.Actions[j].Sequence
	})
	sort.SliceStable(state.Votes, func(i, j int) bool {
		return state.Votes[i].Sequence < state.Votes[j].Sequence
	})
	sort.SliceStable(state.Events, func(i, j int) bool {
		if state.Events[i].Cycle != state.Events[j].Cycle {
			return state.Events[i].Cycle < state.Events[j].Cycle
		}
		return state.Events[i].StartedAt.Before(state.Events[j].StartedAt)
	})

	return state, nil
}

// Commit writes the match, every record it owns and the indexes inside a
// single MULTI/EXEC so either all of it lands or none of it does
func (r *redisRepository) Commit(ctx context.Context, input *CommitInput) error {
	if input == nil || input.State == nil || input.State.Match == nil {
		return errors.New("input and match state cannot be nil")
	}

	state := input.State
	match := state.Match
	key := matchKey(match.ID)

	matchJSON, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("failed to marshal match: %w", err)
	}

	roster, err := encodeHash(state.Roster, func(e *models.RosterEntry) string { return e.ID })
	if err != nil {
		return fmt.Errorf("failed to marshal roster: %w", err)
	}
	actions, err := encodeHash(state.Actions, func(a *models.Action) string { return a.ID })
	if err != nil {
		return fmt.Errorf("failed to marshal actions: %w", err)
	}
	votes, err := encodeHash(state.Votes, func(v *models.Vote) string { return v.ID })
	if err != nil {
		return fmt.Errorf("failed to marshal votes: %w", err)
	}
	events, err := encodeHash(state.Events, func(e *models.Event) string { return e.ID })
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, matchJSON, 0)

		for suffix, fields := range map[string]map[string]interface{}{
			rosterSuffix:  roster,
			actionsSuffix: actions,
			votesSuffix:   votes,
			eventsSuffix:  events,
		} {
			if len(fields) > 0 {
				pipe.HSet(ctx, key+suffix, fields)
			}
		}

		if match.Status.IsEnded() {
			pipe.SRem(ctx, activeMatchKey, match.ID)
			pipe.Del(ctx, lobbyKey(match.LobbyID))
		} else {
			pipe.SAdd(ctx, activeMatchKey, match.ID)
		}

		if match.Status.IsTimed() && !match.PhaseDeadline.IsZero() {
			pipe.ZAdd(ctx, deadlinesKey, redis.Z{
				Score:  float64(match.PhaseDeadline.UnixMilli()),
				Member: match.ID,
			})
		} else {
			pipe.ZRem(ctx, deadlinesKey, match.ID)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to commit match: %w", err)
	}

	return nil
}

// DueMatches lists matches whose deadline is at or before Now, oldest first
func (r *redisRepository) DueMatches(ctx context.Context, input *DueMatchesInput) (*DueMatchesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	ids, err := r.client.ZRangeByScore(ctx, deadlinesKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(input.Now.UnixMilli(), 10),
		Count: input.Limit,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get due matches: %w", err)
	}

	return &DueMatchesOutput{
		MatchIDs: ids,
	}, nil
}

// GetActiveMatches retrieves all unfinished matches from Redis
func (r *redisRepository) GetActiveMatches(ctx context.Context, input *GetActiveMatchesInput) (*GetActiveMatchesOutput, error) {
	matchIDs, err := r.client.SMembers(ctx, activeMatchKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active match IDs: %w", err)
	}

	if len(matchIDs) == 0 {
		return &GetActiveMatchesOutput{
			Matches: []*models.Match{},
		}, nil
	}

	pipe := r.client.Pipeline()
	matchCommands := make(map[string]*redis.StringCmd)
	for _, matchID := range matchIDs {
		matchCommands[matchID] = pipe.Get(ctx, matchKey(matchID))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get active matches: %w", err)
	}

	matches := make([]*models.Match, 0, len(matchIDs))
	for matchID, cmd := range matchCommands {
		matchJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Match was deleted between getting the IDs and fetching it
				continue
			}
			return nil, fmt.Errorf("failed to get match %s: %w", matchID, err)
		}

		var match models.Match
		if err := json.Unmarshal([]byte(matchJSON), &match); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match %s: %w", matchID, err)
		}

		matches = append(matches, &match)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})

	return &GetActiveMatchesOutput{
		Matches: matches,
	}, nil
}

// RebuildDeadlines restores the deadline index from the persisted matches
func (r *redisRepository) RebuildDeadlines(ctx context.Context, input *RebuildDeadlinesInput) (*RebuildDeadlinesOutput, error) {
	active, err := r.GetActiveMatches(ctx, &GetActiveMatchesInput{})
	if err != nil {
		return nil, err
	}

	pipe := r.client.Pipeline()
	indexed := 0
	for _, match := range active.Matches {
		if !match.Status.IsTimed() || match.PhaseDeadline.IsZero() {
			pipe.ZRem(ctx, deadlinesKey, match.ID)
			continue
		}
		pipe.ZAdd(ctx, deadlinesKey, redis.Z{
			Score:  float64(match.PhaseDeadline.UnixMilli()),
			Member: match.ID,
		})
		indexed++
	}

	if len(active.Matches) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("failed to rebuild deadlines: %w", err)
		}
	}

	return &RebuildDeadlinesOutput{
		Indexed: indexed,
	}, nil
}

// DeleteMatch removes a match, its records and its index entries
func (r *redisRepository) DeleteMatch(ctx context.Context, input *DeleteMatchInput) error {
	if input == nil || input.MatchID == "" {
		return errors.New("input and match ID cannot be empty")
	}

	match, err := r.GetMatch(ctx, &GetMatchInput{
		MatchID: input.MatchID,
	})
	if err != nil {
		return err
	}

	key := matchKey(input.MatchID)

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key, key+rosterSuffix, key+actionsSuffix, key+votesSuffix, key+eventsSuffix)
		pipe.SRem(ctx, activeMatchKey, input.MatchID)
		pipe.ZRem(ctx, deadlinesKey, input.MatchID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	// Only release the lobby if it still points at this match
	owner, err := r.client.Get(ctx, lobbyKey(match.LobbyID)).Result()
	if err == nil && owner == input.MatchID {
		r.client.Del(ctx, lobbyKey(match.LobbyID))
	}

	return nil
}

func encodeHash[T any](records []*T, id func(*T) string) (map[string]interface{}, error) {
	fields := make(map[string]interface{}, len(records))
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		fields[id(rec)] = string(data)
	}
	return fields, nil
}

func decodeHash[T any](fields map[string]string) ([]*T, error) {
	out := make([]*T, 0, len(fields))
	for _, raw := range fields {
		var rec T
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, nil
}

// sortRoster orders entries the way the participants joined the lobby
func sortRoster(match *models.Match, entries []*models.RosterEntry) {
	order := make(map[string]int, len(match.Participants))
	for i, p := range match.Participants {
		order[p.ID] = i
	}
	rank := func(e *models.RosterEntry) int {
		if i, ok := order[e.ParticipantID]; ok {
			return i
		}
		return len(order)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := rank(entries[i]), rank(entries[j])
		if ri != rj {
			return ri < rj
		}
		return entries[i].ID < entries[j].ID
	})
}
