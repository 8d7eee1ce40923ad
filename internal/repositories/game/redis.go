package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/grimkeeper/grimkeeper/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	gameKeyPrefix       = "game:"
	activeIndexPrefix   = "game:active:"
	completedZSetPrefix = "game:completed:"
)

// ErrGameNotFound is returned when a game is not found
var ErrGameNotFound = errors.New("game not found")

// Config holds configuration for the Redis game repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game repository
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

func gameKey(gameID string) string {
	return fmt.Sprintf("%s%s", gameKeyPrefix, gameID)
}

func activeIndexKey(guildID, categoryID string) string {
	return fmt.Sprintf("%s%s:%s", activeIndexPrefix, guildID, categoryID)
}

func completedZSetKey(guildID string) string {
	return fmt.Sprintf("%s%s", completedZSetPrefix, guildID)
}

// SaveGame persists a game. The active-game index key holds at most one game
// per (guild, category), enforcing the single-active-game invariant at the
// storage layer.
func (r *redisRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	g := input.Game
	data, err := json.Marshal(toRecord(g))
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, gameKey(g.ID), data, 0)

	if g.IsActive {
		pipe.Set(ctx, activeIndexKey(g.GuildID, g.CategoryID), g.ID, 0)
	} else {
		pipe.Del(ctx, activeIndexKey(g.GuildID, g.CategoryID))
		if !g.CompletedAt.IsZero() {
			pipe.ZAdd(ctx, completedZSetKey(g.GuildID), redis.Z{
				Score:  float64(g.CompletedAt.Unix()),
				Member: g.ID,
			})
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// GetGame retrieves a game by ID
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	data, err := r.client.Get(ctx, gameKey(input.GameID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var rec gameRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return fromRecord(&rec), nil
}

// GetActiveGame retrieves the active game for a session via the index
func (r *redisRepository) GetActiveGame(ctx context.Context, input *GetActiveGameInput) (*models.Game, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	gameID, err := r.client.Get(ctx, activeIndexKey(input.GuildID, input.CategoryID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get active game ID: %w", err)
	}

	return r.GetGame(ctx, &GetGameInput{GameID: gameID})
}

// DeleteGame removes a game and its index entries
func (r *redisRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	g, err := r.GetGame(ctx, &GetGameInput{GameID: input.GameID})
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, gameKey(g.ID))
	pipe.ZRem(ctx, completedZSetKey(g.GuildID), g.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	// Only drop the active index when it still points at this game
	idxKey := activeIndexKey(g.GuildID, g.CategoryID)
	current, err := r.client.Get(ctx, idxKey).Result()
	if err == nil && current == g.ID {
		r.client.Del(ctx, idxKey)
	}

	return nil
}

// GetCompletedGames retrieves completed games for a guild, newest first
func (r *redisRepository) GetCompletedGames(ctx context.Context, input *GetCompletedGamesInput) ([]*models.Game, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit) - 1
	}

	gameIDs, err := r.client.ZRevRange(ctx, completedZSetKey(input.GuildID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get completed game IDs: %w", err)
	}

	games := make([]*models.Game, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		g, err := r.GetGame(ctx, &GetGameInput{GameID: gameID})
		if err != nil {
			if errors.Is(err, ErrGameNotFound) {
				// Game was deleted between reading the index and fetching
				continue
			}
			return nil, err
		}
		games = append(games, g)
	}

	return games, nil
}
