package models

import (
	"fmt"
	"time"
)

// Session binds one category to an independent game instance. Sessions are
// persistent admin infrastructure: created once by an explicit setup action
// and reused for every game run inside that category.
type Session struct {
	// GuildID is the Discord guild this session belongs to
	GuildID string

	// CategoryID is the Discord category this session is scoped to
	CategoryID string

	// DestinationChannelID is the Town Square voice channel for call operations
	DestinationChannelID string

	// GrimoireLink is the current grimoire URL set by the storyteller
	GrimoireLink string

	// ExceptionChannelID is a voice channel excluded from call operations
	ExceptionChannelID string

	// AnnounceChannelID is the text channel for bot announcements
	AnnounceChannelID string

	// ActiveGameID is the currently running game, empty when none
	ActiveGameID string

	// StorytellerUserID is the storyteller assigned to this session
	StorytellerUserID string

	// CreatedAt is when this session was first created
	CreatedAt time.Time

	// LastActive is bumped on every session write
	LastActive time.Time

	// VoiceCaps maps voice channel ID to the channel's original user limit,
	// snapshotted at session binding time. Only channels whose limit was
	// positive at snapshot time are ever present.
	VoiceCaps map[string]int

	// SessionCode is the immutable human-friendly code (s1, s2, ...),
	// monotonic per guild and never reused
	SessionCode string
}

// Key returns the composite identity uniquely identifying this session.
func (s *Session) Key() SessionKey {
	return SessionKey{GuildID: s.GuildID, CategoryID: s.CategoryID}
}

// SessionKey is the (guild, category) tenant identity.
type SessionKey struct {
	GuildID    string
	CategoryID string
}

func (k SessionKey) String() string {
	return fmt.Sprintf("guild=%s category=%s", k.GuildID, k.CategoryID)
}
