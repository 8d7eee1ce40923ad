package game

import (
	"github.com/grimkeeper/grimkeeper/internal/common/clock"
	"github.com/grimkeeper/grimkeeper/internal/common/uuid"
	"github.com/grimkeeper/grimkeeper/internal/models"
	gameRepo "github.com/grimkeeper/grimkeeper/internal/repositories/game"
	storytellerRepo "github.com/grimkeeper/grimkeeper/internal/repositories/storyteller"
	"github.com/grimkeeper/grimkeeper/internal/roles"
	sessionSvc "github.com/grimkeeper/grimkeeper/internal/services/session"
)

// Config holds configuration for the game service
type Config struct {
	// Repository dependencies
	GameRepo        gameRepo.Repository
	StorytellerRepo storytellerRepo.Repository

	// Service dependencies
	SessionService sessionSvc.Service
	Classifier     roles.Classifier
	Clock          clock.Clock
	UUIDGenerator  uuid.UUID
}

// StartGameInput contains parameters for starting a game
type StartGameInput struct {
	// GuildID is the Discord guild ID
	GuildID string

	// CategoryID identifies the session the game runs in
	CategoryID string

	// Script is the script label (e.g. "Trouble Brewing")
	Script string

	// CustomName is an optional custom script name
	CustomName string

	// Occupants is the voice occupancy snapshot at start time. Roles are
	// derived from display names; bots are excluded from the player list.
	Occupants []models.Occupant
}

// StartGameOutput contains the result of starting a game
type StartGameOutput struct {
	// Game is the newly started game
	Game *models.Game
}

// EndGameInput contains parameters for concluding the active game
type EndGameInput struct {
	GuildID    string
	CategoryID string

	// Winner is the winning team, required
	Winner models.Winner

	// StorytellerName is the storyteller's last known display name, used
	// to label the aggregates. Optional.
	StorytellerName string
}

// EndGameOutput contains the result of concluding a game
type EndGameOutput struct {
	// Game is the completed game record
	Game *models.Game

	// StatsApplied indicates storyteller aggregates were updated
	StatsApplied bool
}

type CancelGameInput struct {
	GuildID    string
	CategoryID string
}

// DeleteGameInput identifies a completed game to remove
type DeleteGameInput struct {
	GuildID string
	GameID  string
}

type GetActiveGameInput struct {
	GuildID    string
	CategoryID string
}

type GetHistoryInput struct {
	GuildID string

	// Limit caps the number of games returned, 0 means all
	Limit int
}

type ClearHistoryInput struct {
	GuildID string
}

type ClearHistoryOutput struct {
	Deleted int
}

type GetStorytellerStatsInput struct {
	GuildID       string
	StorytellerID string
}

type ListStorytellerStatsInput struct {
	GuildID string
}
