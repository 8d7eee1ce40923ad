package session

import (
	"context"

	"github.com/grimkeeper/grimkeeper/internal/models"
)

// Service defines the interface for session management. A write-through
// in-memory cache sits in front of the repository: every lookup is served
// from the cache when possible, and every write goes to the store first so
// the cache can never hold state the store does not.
type Service interface {
	// CreateSession binds a category to a new session, assigning the next
	// session code for the guild
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetSession retrieves a session by its (guild, category) identity
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// GetSessionByCode retrieves a session by its session code
	GetSessionByCode(ctx context.Context, input *GetSessionByCodeInput) (*models.Session, error)

	// UpdateSession persists field changes and bumps last-active
	UpdateSession(ctx context.Context, input *UpdateSessionInput) error

	// DeleteSession removes a session, cascading to its active game
	DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error)

	// ListGuildSessions retrieves all sessions for a guild
	ListGuildSessions(ctx context.Context, input *ListGuildSessionsInput) ([]*models.Session, error)

	// ClearActiveGameRefs nils the active game pointer on every session in
	// the guild that references the given game ID
	ClearActiveGameRefs(ctx context.Context, input *ClearActiveGameRefsInput) error

	// CleanupInactive removes sessions idle past the cutoff, cascading to
	// their active games like DeleteSession does
	CleanupInactive(ctx context.Context, input *CleanupInactiveInput) (*CleanupInactiveOutput, error)

	// Invalidate drops cached entries so the next read goes to the store.
	// An empty guild ID wipes the whole cache.
	Invalidate(input *InvalidateInput)
}
