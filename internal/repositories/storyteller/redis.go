package storyteller

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/grimkeeper/grimkeeper/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	statsKeyPrefix       = "storyteller:"
	guildIndexKeyPrefix  = "storyteller:guild:"
	fieldTotalGames      = "total_games"
	fieldGoodWins        = "good_wins"
	fieldEvilWins        = "evil_wins"
	fieldTotalDuration   = "total_duration"
	fieldTotalPlayers    = "total_player_count"
	fieldLastGameAt      = "last_game_at"
	fieldStorytellerName = "storyteller_name"
)

// Config holds configuration for the Redis storyteller repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis hashes,
// one hash per (guild, storyteller) pair
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed storyteller repository
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

func statsKey(guildID, storytellerID string) string {
	return fmt.Sprintf("%s%s:%s", statsKeyPrefix, guildID, storytellerID)
}

func guildIndexKey(guildID string) string {
	return fmt.Sprintf("%s%s", guildIndexKeyPrefix, guildID)
}

// scriptFields returns the per-script counter field names for a script kind,
// empty for untracked scripts
func scriptFields(kind models.ScriptKind) (games, goodWins, evilWins string) {
	switch kind {
	case models.ScriptTroubleBrewing:
		return "tb_games", "tb_good_wins", "tb_evil_wins"
	case models.ScriptSectsAndViolets:
		return "snv_games", "snv_good_wins", "snv_evil_wins"
	case models.ScriptBadMoonRising:
		return "bmr_games", "bmr_good_wins", "bmr_evil_wins"
	default:
		return "", "", ""
	}
}

// deltas builds the counter increments for one game result
func deltas(res *GameResult) map[string]int64 {
	d := map[string]int64{
		fieldTotalGames:    1,
		fieldTotalDuration: res.DurationSeconds,
		fieldTotalPlayers:  int64(res.PlayerCount),
	}

	switch res.Winner {
	case models.WinnerGood:
		d[fieldGoodWins] = 1
	case models.WinnerEvil:
		d[fieldEvilWins] = 1
	}

	gamesField, goodField, evilField := scriptFields(res.Script)
	if gamesField != "" {
		d[gamesField] = 1
		if res.Winner == models.WinnerGood {
			d[goodField] = 1
		} else if res.Winner == models.WinnerEvil {
			d[evilField] = 1
		}
	}

	return d
}

func validateResult(res *GameResult) error {
	if res == nil {
		return errors.New("result cannot be nil")
	}
	if res.GuildID == "" || res.StorytellerID == "" {
		return errors.New("guild ID and storyteller ID cannot be empty")
	}
	return nil
}

// GetStats retrieves a storyteller's aggregates. A storyteller with no
// recorded games gets zero-valued stats, not an error.
func (r *redisRepository) GetStats(ctx context.Context, input *GetStatsInput) (*models.StorytellerStats, error) {
	if input == nil || input.GuildID == "" || input.StorytellerID == "" {
		return nil, errors.New("input, guild ID, and storyteller ID cannot be empty")
	}

	fields, err := r.client.HGetAll(ctx, statsKey(input.GuildID, input.StorytellerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get storyteller stats: %w", err)
	}

	return fromFields(input.GuildID, input.StorytellerID, fields), nil
}

// ListStats retrieves aggregates for every storyteller recorded in a guild
func (r *redisRepository) ListStats(ctx context.Context, input *ListStatsInput) ([]*models.StorytellerStats, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	storytellerIDs, err := r.client.SMembers(ctx, guildIndexKey(input.GuildID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get storyteller index: %w", err)
	}

	stats := make([]*models.StorytellerStats, 0, len(storytellerIDs))
	for _, id := range storytellerIDs {
		st, err := r.GetStats(ctx, &GetStatsInput{GuildID: input.GuildID, StorytellerID: id})
		if err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}

	return stats, nil
}

// ApplyGameResult increments the aggregates for one completed game
func (r *redisRepository) ApplyGameResult(ctx context.Context, input *ApplyGameResultInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateResult(input.Result); err != nil {
		return err
	}

	res := input.Result
	key := statsKey(res.GuildID, res.StorytellerID)

	pipe := r.client.Pipeline()
	for field, delta := range deltas(res) {
		pipe.HIncrBy(ctx, key, field, delta)
	}
	pipe.HSet(ctx, key, fieldLastGameAt, res.CompletedAtUnix)
	if res.StorytellerName != "" {
		pipe.HSet(ctx, key, fieldStorytellerName, res.StorytellerName)
	}
	pipe.SAdd(ctx, guildIndexKey(res.GuildID), res.StorytellerID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to apply game result: %w", err)
	}

	return nil
}

// ReverseGameResult decrements the aggregates for a deleted game. Every
// counter is clamped at zero so reversing a game that was never applied
// (or was applied before a stats wipe) cannot drive aggregates negative.
func (r *redisRepository) ReverseGameResult(ctx context.Context, input *ReverseGameResultInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateResult(input.Result); err != nil {
		return err
	}

	res := input.Result
	key := statsKey(res.GuildID, res.StorytellerID)

	current, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to read storyteller stats: %w", err)
	}
	if len(current) == 0 {
		// Nothing recorded, nothing to reverse
		return nil
	}

	updates := make(map[string]interface{})
	for field, delta := range deltas(res) {
		value := parseField(current, field) - delta
		if value < 0 {
			value = 0
		}
		updates[field] = value
	}

	if err := r.client.HSet(ctx, key, updates).Err(); err != nil {
		return fmt.Errorf("failed to reverse game result: %w", err)
	}

	return nil
}

func parseField(fields map[string]string, name string) int64 {
	v, err := strconv.ParseInt(fields[name], 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func fromFields(guildID, storytellerID string, fields map[string]string) *models.StorytellerStats {
	stats := &models.StorytellerStats{
		GuildID:          guildID,
		StorytellerID:    storytellerID,
		StorytellerName:  fields[fieldStorytellerName],
		TotalGames:       int(parseField(fields, fieldTotalGames)),
		GoodWins:         int(parseField(fields, fieldGoodWins)),
		EvilWins:         int(parseField(fields, fieldEvilWins)),
		TBGames:          int(parseField(fields, "tb_games")),
		TBGoodWins:       int(parseField(fields, "tb_good_wins")),
		TBEvilWins:       int(parseField(fields, "tb_evil_wins")),
		SNVGames:         int(parseField(fields, "snv_games")),
		SNVGoodWins:      int(parseField(fields, "snv_good_wins")),
		SNVEvilWins:      int(parseField(fields, "snv_evil_wins")),
		BMRGames:         int(parseField(fields, "bmr_games")),
		BMRGoodWins:      int(parseField(fields, "bmr_good_wins")),
		BMREvilWins:      int(parseField(fields, "bmr_evil_wins")),
		TotalDuration:    parseField(fields, fieldTotalDuration),
		TotalPlayerCount: int(parseField(fields, fieldTotalPlayers)),
	}

	if at := parseField(fields, fieldLastGameAt); at > 0 {
		stats.LastGameAt = time.Unix(at, 0).UTC()
	}

	return stats
}
