package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/grimkeeper/grimkeeper/internal/common/clock"
	"github.com/grimkeeper/grimkeeper/internal/models"
	gameRepo "github.com/grimkeeper/grimkeeper/internal/repositories/game"
	sessionRepo "github.com/grimkeeper/grimkeeper/internal/repositories/session"
)

// service implements the Service interface
type service struct {
	sessionRepo sessionRepo.Repository
	gameRepo    gameRepo.Repository
	clock       clock.Clock

	// cache holds sessions by identity. Writes go store-first then cache,
	// misses populate on read, so the cache never holds state the store
	// does not.
	mu    sync.RWMutex
	cache map[models.SessionKey]*models.Session
}

// NewService creates a new session service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	return &service{
		sessionRepo: cfg.SessionRepo,
		gameRepo:    cfg.GameRepo,
		clock:       cfg.Clock,
		cache:       make(map[models.SessionKey]*models.Session),
	}, nil
}

// CreateSession binds a category to a new session. Codes are monotonic per
// guild: each number comes from a persisted counter that outlives session
// deletes, so a code freed by a delete is never handed out again.
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrMissingGuildID
	}
	if input.CategoryID == "" {
		return nil, ErrMissingCategory
	}

	code, err := s.nextSessionCode(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	caps := input.VoiceCaps
	if caps == nil {
		caps = map[string]int{}
	}

	sess := &models.Session{
		GuildID:              input.GuildID,
		CategoryID:           input.CategoryID,
		DestinationChannelID: input.DestinationChannelID,
		AnnounceChannelID:    input.AnnounceChannelID,
		ExceptionChannelID:   input.ExceptionChannelID,
		CreatedAt:            now,
		LastActive:           now,
		VoiceCaps:            caps,
		SessionCode:          code,
	}

	out, err := s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{Session: sess})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.cachePut(out.Session)

	return &CreateSessionOutput{
		Session: out.Session,
		Created: out.Created,
	}, nil
}

// GetSession retrieves a session, serving from cache when possible. Legacy
// sessions persisted before codes existed get one assigned on first read.
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrMissingGuildID
	}
	if input.CategoryID == "" {
		return nil, ErrMissingCategory
	}

	key := models.SessionKey{GuildID: input.GuildID, CategoryID: input.CategoryID}

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	sess, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		GuildID:    input.GuildID,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if sess.SessionCode == "" {
		if err := s.backfillSessionCode(ctx, sess); err != nil {
			log.Printf("failed to backfill session code for %s: %v", sess.Key(), err)
		}
	}

	s.cachePut(sess)
	return sess, nil
}

// GetSessionByCode retrieves a session by its human-friendly code
func (s *service) GetSessionByCode(ctx context.Context, input *GetSessionByCodeInput) (*models.Session, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrMissingGuildID
	}

	sess, err := s.sessionRepo.GetSessionByCode(ctx, &sessionRepo.GetSessionByCodeInput{
		GuildID:     input.GuildID,
		SessionCode: strings.ToLower(strings.TrimSpace(input.SessionCode)),
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	s.cachePut(sess)
	return sess, nil
}

// UpdateSession persists field changes, stamping last-active. The store is
// written before the cache so a failed write leaves the cache consistent.
func (s *service) UpdateSession(ctx context.Context, input *UpdateSessionInput) error {
	if input == nil || input.Session == nil {
		return ErrMissingGuildID
	}

	sess := input.Session
	sess.LastActive = s.clock.Now()

	if err := s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{Session: sess}); err != nil {
		return err
	}

	s.cachePut(sess)
	return nil
}

// DeleteSession removes a session. The active game, if any, is deleted with
// it so no orphaned active-game record survives the unbind.
func (s *service) DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrMissingGuildID
	}
	if input.CategoryID == "" {
		return nil, ErrMissingCategory
	}

	activeGame, err := s.gameRepo.GetActiveGame(ctx, &gameRepo.GetActiveGameInput{
		GuildID:    input.GuildID,
		CategoryID: input.CategoryID,
	})
	if err != nil && !errors.Is(err, gameRepo.ErrGameNotFound) {
		return nil, err
	}

	if activeGame != nil {
		if err := s.gameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{GameID: activeGame.ID}); err != nil {
			return nil, fmt.Errorf("failed to delete active game: %w", err)
		}
		// Other sessions can still point at the game after a partial
		// failure; no reference may outlive the record
		if err := s.ClearActiveGameRefs(ctx, &ClearActiveGameRefsInput{
			GuildID: input.GuildID,
			GameID:  activeGame.ID,
		}); err != nil {
			log.Printf("failed to clear active game refs for game %s: %v", activeGame.ID, err)
		}
	}

	out, err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
		GuildID:    input.GuildID,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	s.dropFromCache(models.SessionKey{GuildID: input.GuildID, CategoryID: input.CategoryID})

	return &DeleteSessionOutput{Deleted: out.Deleted}, nil
}

// ListGuildSessions retrieves all sessions for a guild
func (s *service) ListGuildSessions(ctx context.Context, input *ListGuildSessionsInput) ([]*models.Session, error) {
	if input == nil || input.GuildID == "" {
		return nil, ErrMissingGuildID
	}

	sessions, err := s.sessionRepo.GetGuildSessions(ctx, &sessionRepo.GetGuildSessionsInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, err
	}

	for _, sess := range sessions {
		s.cachePut(sess)
	}

	return sessions, nil
}

// ClearActiveGameRefs nils the active game pointer on every session in the
// guild that references the given game ID
func (s *service) ClearActiveGameRefs(ctx context.Context, input *ClearActiveGameRefsInput) error {
	if input == nil || input.GuildID == "" {
		return ErrMissingGuildID
	}

	if err := s.sessionRepo.ClearActiveGameRefs(ctx, &sessionRepo.ClearActiveGameRefsInput{
		GuildID: input.GuildID,
		GameID:  input.GameID,
	}); err != nil {
		return err
	}

	// Mirror the change in the cache
	s.mu.Lock()
	for key, sess := range s.cache {
		if key.GuildID == input.GuildID && sess.ActiveGameID == input.GameID {
			sess.ActiveGameID = ""
		}
	}
	s.mu.Unlock()

	return nil
}

// CleanupInactive removes sessions whose last activity is older than MaxIdle.
// Each removal goes through DeleteSession so the full unbind cascade runs:
// the active game dies with the session instead of lingering behind it.
func (s *service) CleanupInactive(ctx context.Context, input *CleanupInactiveInput) (*CleanupInactiveOutput, error) {
	if input == nil || input.MaxIdle <= 0 {
		return &CleanupInactiveOutput{}, nil
	}

	cutoff := s.clock.Now().Add(-input.MaxIdle)
	stale, err := s.sessionRepo.ListInactiveSessions(ctx, &sessionRepo.ListInactiveSessionsInput{
		Cutoff: cutoff,
	})
	if err != nil {
		return nil, err
	}

	deleted := 0
	for _, sess := range stale {
		out, err := s.DeleteSession(ctx, &DeleteSessionInput{
			GuildID:    sess.GuildID,
			CategoryID: sess.CategoryID,
		})
		if err != nil {
			log.Printf("failed to clean up session %s: %v", sess.Key(), err)
			continue
		}
		if out.Deleted {
			deleted++
		}
	}

	if deleted > 0 {
		log.Printf("cleaned up %d inactive sessions", deleted)
	}

	return &CleanupInactiveOutput{Deleted: deleted}, nil
}

// Invalidate drops cached entries so the next read goes to the store. An
// empty guild ID wipes the whole cache.
func (s *service) Invalidate(input *InvalidateInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input == nil || input.GuildID == "" {
		s.cache = make(map[models.SessionKey]*models.Session)
		return
	}

	if input.CategoryID != "" {
		delete(s.cache, models.SessionKey{GuildID: input.GuildID, CategoryID: input.CategoryID})
		return
	}

	for key := range s.cache {
		if key.GuildID == input.GuildID {
			delete(s.cache, key)
		}
	}
}

func (s *service) cachePut(sess *models.Session) {
	s.mu.Lock()
	s.cache[sess.Key()] = sess
	s.mu.Unlock()
}

func (s *service) dropFromCache(key models.SessionKey) {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()
}

// nextSessionCode reserves a fresh code from the guild's counter. The scan
// over live sessions only sets the floor, for guilds whose sessions predate
// the counter; the counter itself guarantees no number is reused after the
// session holding it is deleted.
func (s *service) nextSessionCode(ctx context.Context, guildID string) (string, error) {
	sessions, err := s.sessionRepo.GetGuildSessions(ctx, &sessionRepo.GetGuildSessionsInput{
		GuildID: guildID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan session codes: %w", err)
	}

	highest := 0
	for _, sess := range sessions {
		n, ok := parseSessionCode(sess.SessionCode)
		if ok && n > highest {
			highest = n
		}
	}

	n, err := s.sessionRepo.NextSessionCode(ctx, &sessionRepo.NextSessionCodeInput{
		GuildID: guildID,
		Floor:   highest,
	})
	if err != nil {
		return "", fmt.Errorf("failed to reserve session code: %w", err)
	}

	return fmt.Sprintf("s%d", n), nil
}

// backfillSessionCode assigns a code to a session persisted before codes
// existed. Best effort: the session is usable either way.
func (s *service) backfillSessionCode(ctx context.Context, sess *models.Session) error {
	code, err := s.nextSessionCode(ctx, sess.GuildID)
	if err != nil {
		return err
	}

	sess.SessionCode = code
	return s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{Session: sess})
}

func parseSessionCode(code string) (int, bool) {
	if len(code) < 2 || code[0] != 's' {
		return 0, false
	}
	n, err := strconv.Atoi(code[1:])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
