package session

import (
	"context"

	"github.com/grimkeeper/grimkeeper/internal/models"
)

// Repository defines the interface for session persistence
type Repository interface {
	// CreateSession persists a new session. Creation is an idempotent
	// upsert: when a session already exists for the same identity the
	// stored record wins and is returned unchanged, preserving the
	// first-assigned session code.
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// NextSessionCode reserves the next code number for a guild. Reserved
	// numbers are never handed out twice, even after the session holding
	// one is deleted.
	NextSessionCode(ctx context.Context, input *NextSessionCodeInput) (int, error)

	// GetSession retrieves a session by its (guild, category) identity
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// GetSessionByCode retrieves a session by its session code
	GetSessionByCode(ctx context.Context, input *GetSessionByCodeInput) (*models.Session, error)

	// UpdateSession overwrites an existing session
	UpdateSession(ctx context.Context, input *UpdateSessionInput) error

	// DeleteSession removes a session and its indexes
	DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error)

	// GetGuildSessions retrieves all sessions for a guild
	GetGuildSessions(ctx context.Context, input *GetGuildSessionsInput) ([]*models.Session, error)

	// ClearActiveGameRefs nils the active game pointer on every session in
	// the guild that references the given game ID
	ClearActiveGameRefs(ctx context.Context, input *ClearActiveGameRefsInput) error

	// ListInactiveSessions returns sessions whose last activity predates
	// the cutoff
	ListInactiveSessions(ctx context.Context, input *ListInactiveSessionsInput) ([]*models.Session, error)
}
