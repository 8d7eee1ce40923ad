package session

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
	sessionKeyPrefix    = "session:"
	guildIndexKeyPrefix = "session:guild:"
	codeIndexKeyPrefix  = "session:code:"
	codeSeqKeyPrefix    = "session:codeseq:"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
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

func sessionKey(guildID, categoryID string) string {
	return fmt.Sprintf("%s%s:%s", sessionKeyPrefix, guildID, categoryID)
}

func guildIndexKey(guildID string) string {
	return fmt.Sprintf("%s%s", guildIndexKeyPrefix, guildID)
}

func codeIndexKey(guildID, code string) string {
	return fmt.Sprintf("%s%s:%s", codeIndexKeyPrefix, guildID, code)
}

func codeSeqKey(guildID string) string {
	return fmt.Sprintf("%s%s", codeSeqKeyPrefix, guildID)
}

// CreateSession persists a session with first-writer-wins semantics
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("input and session cannot be nil")
	}

	s := input.Session
	if s.GuildID == "" || s.CategoryID == "" {
		return nil, errors.New("guild ID and category ID cannot be empty")
	}

	data, err := json.Marshal(toRecord(s))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	// SETNX keeps the first writer's record, and with it the first
	// assigned session code
	created, err := r.client.SetNX(ctx, sessionKey(s.GuildID, s.CategoryID), data, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if !created {
		existing, err := r.GetSession(ctx, &GetSessionInput{
			GuildID:    s.GuildID,
			CategoryID: s.CategoryID,
		})
		if err != nil {
			return nil, err
		}
		return &CreateSessionOutput{Session: existing, Created: false}, nil
	}

	pipe := r.client.Pipeline()
	pipe.SAdd(ctx, guildIndexKey(s.GuildID), s.CategoryID)
	if s.SessionCode != "" {
		pipe.Set(ctx, codeIndexKey(s.GuildID, s.SessionCode), s.CategoryID, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to index session: %w", err)
	}

	return &CreateSessionOutput{Session: s, Created: true}, nil
}

// NextSessionCode reserves the next code number for a guild. The counter
// survives session deletes, so a number handed out once is never handed out
// again. Floor covers guilds whose sessions predate the counter: the
// reservation always lands past the highest code already in use.
func (r *redisRepository) NextSessionCode(ctx context.Context, input *NextSessionCodeInput) (int, error) {
	if input == nil || input.GuildID == "" {
		return 0, errors.New("input and guild ID cannot be empty")
	}

	n, err := r.client.Incr(ctx, codeSeqKey(input.GuildID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to reserve session code: %w", err)
	}

	if n <= int64(input.Floor) {
		n = int64(input.Floor) + 1
		if err := r.client.Set(ctx, codeSeqKey(input.GuildID), n, 0).Err(); err != nil {
			return 0, fmt.Errorf("failed to advance session code counter: %w", err)
		}
	}

	return int(n), nil
}

// GetSession retrieves a session by identity
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.GuildID == "" || input.CategoryID == "" {
		return nil, errors.New("input, guild ID and category ID cannot be empty")
	}

	data, err := r.client.Get(ctx, sessionKey(input.GuildID, input.CategoryID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return fromRecord(&rec), nil
}

// GetSessionByCode retrieves a session via the code index
func (r *redisRepository) GetSessionByCode(ctx context.Context, input *GetSessionByCodeInput) (*models.Session, error) {
	if input == nil || input.GuildID == "" || input.SessionCode == "" {
		return nil, errors.New("input, guild ID and session code cannot be empty")
	}

	categoryID, err := r.client.Get(ctx, codeIndexKey(input.GuildID, input.SessionCode)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to resolve session code: %w", err)
	}

	return r.GetSession(ctx, &GetSessionInput{
		GuildID:    input.GuildID,
		CategoryID: categoryID,
	})
}

// UpdateSession overwrites a session and refreshes its code index
func (r *redisRepository) UpdateSession(ctx context.Context, input *UpdateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	s := input.Session
	data, err := json.Marshal(toRecord(s))
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, sessionKey(s.GuildID, s.CategoryID), data, 0)
	pipe.SAdd(ctx, guildIndexKey(s.GuildID), s.CategoryID)
	if s.SessionCode != "" {
		pipe.Set(ctx, codeIndexKey(s.GuildID, s.SessionCode), s.CategoryID, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// DeleteSession removes a session and its indexes
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input == nil || input.GuildID == "" || input.CategoryID == "" {
		return nil, errors.New("input, guild ID and category ID cannot be empty")
	}

	existing, err := r.GetSession(ctx, &GetSessionInput{
		GuildID:    input.GuildID,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return &DeleteSessionOutput{Deleted: false}, nil
		}
		return nil, err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, sessionKey(input.GuildID, input.CategoryID))
	pipe.SRem(ctx, guildIndexKey(input.GuildID), input.CategoryID)
	if existing.SessionCode != "" {
		pipe.Del(ctx, codeIndexKey(input.GuildID, existing.SessionCode))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}

	return &DeleteSessionOutput{Deleted: true}, nil
}

// GetGuildSessions retrieves every session in a guild
func (r *redisRepository) GetGuildSessions(ctx context.Context, input *GetGuildSessionsInput) ([]*models.Session, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	categoryIDs, err := r.client.SMembers(ctx, guildIndexKey(input.GuildID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get guild session index: %w", err)
	}

	sessions := make([]*models.Session, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		s, err := r.GetSession(ctx, &GetSessionInput{
			GuildID:    input.GuildID,
			CategoryID: categoryID,
		})
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				// Index entry outlived the session, drop it
				r.client.SRem(ctx, guildIndexKey(input.GuildID), categoryID)
				continue
			}
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, nil
}

// ClearActiveGameRefs nils dangling active game pointers in a guild
func (r *redisRepository) ClearActiveGameRefs(ctx context.Context, input *ClearActiveGameRefsInput) error {
	if input == nil || input.GuildID == "" || input.GameID == "" {
		return errors.New("input, guild ID and game ID cannot be empty")
	}

	sessions, err := r.GetGuildSessions(ctx, &GetGuildSessionsInput{GuildID: input.GuildID})
	if err != nil {
		return err
	}

	for _, s := range sessions {
		if s.ActiveGameID != input.GameID {
			continue
		}
		s.ActiveGameID = ""
		if err := r.UpdateSession(ctx, &UpdateSessionInput{Session: s}); err != nil {
			return err
		}
	}

	return nil
}

// ListInactiveSessions returns sessions idle since before the cutoff. The
// caller owns deletion so each removal can run the full unbind cascade.
func (r *redisRepository) ListInactiveSessions(ctx context.Context, input *ListInactiveSessionsInput) ([]*models.Session, error) {
	if input == nil || input.Cutoff.IsZero() {
		return nil, errors.New("input and cutoff cannot be empty")
	}

	var stale []*models.Session
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, guildIndexKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan guild indexes: %w", err)
		}

		for _, key := range keys {
			guildID := key[len(guildIndexKeyPrefix):]
			sessions, err := r.GetGuildSessions(ctx, &GetGuildSessionsInput{GuildID: guildID})
			if err != nil {
				return nil, err
			}
			for _, s := range sessions {
				if s.LastActive.Before(input.Cutoff) {
					stale = append(stale, s)
				}
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return stale, nil
}
