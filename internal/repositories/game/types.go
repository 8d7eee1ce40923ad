package game

import (
	"time"

	"github.com/grimkeeper/grimkeeper/internal/models"
)

type SaveGameInput struct {
	Game *models.Game
}

type GetGameInput struct {
	GameID string
}

type GetActiveGameInput struct {
	GuildID    string
	CategoryID string
}

type DeleteGameInput struct {
	GameID string
}

type GetCompletedGamesInput struct {
	GuildID string

	// Limit caps the number of games returned, 0 means all
	Limit int
}

// gameRecord is the persisted JSON shape of a game
type gameRecord struct {
	GameID        string        `json:"game_id"`
	GuildID       string        `json:"guild_id"`
	CategoryID    string        `json:"category_id,omitempty"`
	Script        string        `json:"script"`
	CustomName    string        `json:"custom_name,omitempty"`
	StartTime     int64         `json:"start_time"`
	EndTime       int64         `json:"end_time,omitempty"`
	Players       []string      `json:"players"`
	PlayerCount   int           `json:"player_count"`
	StorytellerID string        `json:"storyteller_id,omitempty"`
	Winner        models.Winner `json:"winner,omitempty"`
	IsActive      bool          `json:"is_active"`
	CompletedAt   int64         `json:"completed_at,omitempty"`
}

func toRecord(g *models.Game) *gameRecord {
	rec := &gameRecord{
		GameID:        g.ID,
		GuildID:       g.GuildID,
		CategoryID:    g.CategoryID,
		Script:        g.Script,
		CustomName:    g.CustomName,
		StartTime:     g.StartTime.Unix(),
		Players:       g.Players,
		PlayerCount:   g.PlayerCount,
		StorytellerID: g.StorytellerID,
		Winner:        g.Winner,
		IsActive:      g.IsActive,
	}
	if !g.EndTime.IsZero() {
		rec.EndTime = g.EndTime.Unix()
	}
	if !g.CompletedAt.IsZero() {
		rec.CompletedAt = g.CompletedAt.Unix()
	}
	return rec
}

func fromRecord(r *gameRecord) *models.Game {
	g := &models.Game{
		ID:            r.GameID,
		GuildID:       r.GuildID,
		CategoryID:    r.CategoryID,
		Script:        r.Script,
		CustomName:    r.CustomName,
		StartTime:     time.Unix(r.StartTime, 0).UTC(),
		Players:       r.Players,
		PlayerCount:   r.PlayerCount,
		StorytellerID: r.StorytellerID,
		Winner:        r.Winner,
		IsActive:      r.IsActive,
	}
	if r.EndTime != 0 {
		g.EndTime = time.Unix(r.EndTime, 0).UTC()
	}
	if r.CompletedAt != 0 {
		g.CompletedAt = time.Unix(r.CompletedAt, 0).UTC()
	}
	if g.Players == nil {
		g.Players = []string{}
	}
	return g
}
