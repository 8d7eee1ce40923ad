package session

import (
	"time"

	"github.com/grimkeeper/grimkeeper/internal/common/clock"
	"github.com/grimkeeper/grimkeeper/internal/models"
	gameRepo "github.com/grimkeeper/grimkeeper/internal/repositories/game"
	sessionRepo "github.com/grimkeeper/grimkeeper/internal/repositories/session"
)

// Config holds configuration for the session service
type Config struct {
	// Repository dependencies
	SessionRepo sessionRepo.Repository
	GameRepo    gameRepo.Repository

	// Service dependencies
	Clock clock.Clock
}

// CreateSessionInput contains parameters for binding a category to a session
type CreateSessionInput struct {
	// GuildID is the Discord guild ID
	GuildID string

	// CategoryID is the Discord category being bound
	CategoryID string

	// DestinationChannelID is the Town Square voice channel
	DestinationChannelID string

	// AnnounceChannelID is the text channel for announcements
	AnnounceChannelID string

	// ExceptionChannelID is a voice channel excluded from call operations
	ExceptionChannelID string

	// VoiceCaps is the capacity baseline snapshot for the category's
	// voice channels, original positive limits only
	VoiceCaps map[string]int
}

// CreateSessionOutput contains the result of creating a session
type CreateSessionOutput struct {
	// Session is the created (or pre-existing) session
	Session *models.Session

	// Created is false when the category was already bound
	Created bool
}

type GetSessionInput struct {
	GuildID    string
	CategoryID string
}

type GetSessionByCodeInput struct {
	GuildID     string
	SessionCode string
}

// UpdateSessionInput carries the full session to persist. LastActive is
// stamped by the service, callers never set it.
type UpdateSessionInput struct {
	Session *models.Session
}

type DeleteSessionInput struct {
	GuildID    string
	CategoryID string
}

type DeleteSessionOutput struct {
	Deleted bool
}

type ListGuildSessionsInput struct {
	GuildID string
}

type ClearActiveGameRefsInput struct {
	GuildID string
	GameID  string
}

// CleanupInactiveInput selects sessions idle longer than MaxIdle
type CleanupInactiveInput struct {
	MaxIdle time.Duration
}

type CleanupInactiveOutput struct {
	Deleted int
}

// InvalidateInput selects cache entries to drop. An empty CategoryID drops
// every cached session for the guild; an empty GuildID drops everything.
type InvalidateInput struct {
	GuildID    string
	CategoryID string
}
