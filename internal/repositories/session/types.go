package session

import (
	"time"

	"github.com/grimkeeper/grimkeeper/internal/models"
)

type CreateSessionInput struct {
	Session *models.Session
}

type CreateSessionOutput struct {
	// Session is the stored record: the input on first create, the
	// pre-existing record when the identity was already taken
	Session *models.Session

	// Created is false when an existing session won the upsert
	Created bool
}

// NextSessionCodeInput reserves a code number. Floor is the highest code
// number known to be in use, so guilds with sessions older than the counter
// still get a fresh number.
type NextSessionCodeInput struct {
	GuildID string
	Floor   int
}

type GetSessionInput struct {
	GuildID    string
	CategoryID string
}

type GetSessionByCodeInput struct {
	GuildID     string
	SessionCode string
}

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

type GetGuildSessionsInput struct {
	GuildID string
}

type ClearActiveGameRefsInput struct {
	GuildID string
	GameID  string
}

type ListInactiveSessionsInput struct {
	Cutoff time.Time
}

// sessionRecord is the persisted JSON shape of a session
type sessionRecord struct {
	GuildID              string         `json:"guild_id"`
	CategoryID           string         `json:"category_id"`
	DestinationChannelID string         `json:"destination_channel_id,omitempty"`
	GrimoireLink         string         `json:"grimoire_link,omitempty"`
	ExceptionChannelID   string         `json:"exception_channel_id,omitempty"`
	AnnounceChannelID    string         `json:"announce_channel_id,omitempty"`
	ActiveGameID         string         `json:"active_game_id,omitempty"`
	StorytellerUserID    string         `json:"storyteller_user_id,omitempty"`
	CreatedAt            int64          `json:"created_at"`
	LastActive           int64          `json:"last_active"`
	VoiceCaps            map[string]int `json:"vc_caps,omitempty"`
	SessionCode          string         `json:"session_code,omitempty"`
}

func toRecord(s *models.Session) *sessionRecord {
	return &sessionRecord{
		GuildID:              s.GuildID,
		CategoryID:           s.CategoryID,
		DestinationChannelID: s.DestinationChannelID,
		GrimoireLink:         s.GrimoireLink,
		ExceptionChannelID:   s.ExceptionChannelID,
		AnnounceChannelID:    s.AnnounceChannelID,
		ActiveGameID:         s.ActiveGameID,
		StorytellerUserID:    s.StorytellerUserID,
		CreatedAt:            s.CreatedAt.Unix(),
		LastActive:           s.LastActive.Unix(),
		VoiceCaps:            s.VoiceCaps,
		SessionCode:          s.SessionCode,
	}
}

func fromRecord(r *sessionRecord) *models.Session {
	caps := r.VoiceCaps
	if caps == nil {
		caps = map[string]int{}
	}
	return &models.Session{
		GuildID:              r.GuildID,
		CategoryID:           r.CategoryID,
		DestinationChannelID: r.DestinationChannelID,
		GrimoireLink:         r.GrimoireLink,
		ExceptionChannelID:   r.ExceptionChannelID,
		AnnounceChannelID:    r.AnnounceChannelID,
		ActiveGameID:         r.ActiveGameID,
		StorytellerUserID:    r.StorytellerUserID,
		CreatedAt:            time.Unix(r.CreatedAt, 0).UTC(),
		LastActive:           time.Unix(r.LastActive, 0).UTC(),
		VoiceCaps:            caps,
		SessionCode:          r.SessionCode,
	}
}
