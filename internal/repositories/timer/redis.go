package timer

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
	timerKeyPrefix = "timer:"
	timersIndexKey = "timers"
)

// ErrTimerNotFound is returned when a timer record is not found
var ErrTimerNotFound = errors.New("timer not found")

// Config holds configuration for the Redis timer repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed timer repository
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

func timerKey(guildID string) string {
	return fmt.Sprintf("%s%s", timerKeyPrefix, guildID)
}

// SaveTimer persists a timer record, one per guild
func (r *redisRepository) SaveTimer(ctx context.Context, input *SaveTimerInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	rec := input.Record
	if rec.GuildID == "" {
		return errors.New("guild ID cannot be empty")
	}

	data, err := json.Marshal(toRecord(rec))
	if err != nil {
		return fmt.Errorf("failed to marshal timer: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, timerKey(rec.GuildID), data, 0)
	pipe.SAdd(ctx, timersIndexKey, rec.GuildID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save timer: %w", err)
	}

	return nil
}

// GetTimer retrieves a guild's timer record
func (r *redisRepository) GetTimer(ctx context.Context, input *GetTimerInput) (*models.TimerRecord, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	data, err := r.client.Get(ctx, timerKey(input.GuildID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrTimerNotFound
		}
		return nil, fmt.Errorf("failed to get timer: %w", err)
	}

	var rec timerRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timer: %w", err)
	}

	return fromRecord(&rec), nil
}

// DeleteTimer removes a guild's timer record. Deleting an absent record is
// not an error; cleanup paths may race each other.
func (r *redisRepository) DeleteTimer(ctx context.Context, input *DeleteTimerInput) error {
	if input == nil || input.GuildID == "" {
		return errors.New("input and guild ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, timerKey(input.GuildID))
	pipe.SRem(ctx, timersIndexKey, input.GuildID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete timer: %w", err)
	}

	return nil
}

// ListTimers retrieves every persisted timer record
func (r *redisRepository) ListTimers(ctx context.Context, input *ListTimersInput) ([]*models.TimerRecord, error) {
	guildIDs, err := r.client.SMembers(ctx, timersIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get timer index: %w", err)
	}

	records := make([]*models.TimerRecord, 0, len(guildIDs))
	for _, guildID := range guildIDs {
		rec, err := r.GetTimer(ctx, &GetTimerInput{GuildID: guildID})
		if err != nil {
			if errors.Is(err, ErrTimerNotFound) {
				// Index entry outlived the record, drop it
				r.client.SRem(ctx, timersIndexKey, guildID)
				continue
			}
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}
