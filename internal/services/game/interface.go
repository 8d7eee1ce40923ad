package game

import (
	"context"

	"github.com/grimkeeper/grimkeeper/internal/models"
)

// Service defines the interface for the game lifecycle. At most one game is
// active per session at any time; completed games feed the storyteller
// aggregates, and deleting a game applies the exact inverse deltas.
type Service interface {
	// StartGame starts a new game in a session from an occupancy snapshot
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// EndGame concludes the active game with a winner and applies
	// storyteller aggregates
	EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error)

	// CancelGame discards the active game without recording anything
	CancelGame(ctx context.Context, input *CancelGameInput) error

	// DeleteGame removes a completed game and reverses its aggregates
	DeleteGame(ctx context.Context, input *DeleteGameInput) error

	// GetActiveGame retrieves the session's active game, if any
	GetActiveGame(ctx context.Context, input *GetActiveGameInput) (*models.Game, error)

	// GetHistory retrieves a guild's completed games, newest first
	GetHistory(ctx context.Context, input *GetHistoryInput) ([]*models.Game, error)

	// ClearHistory removes all completed games for a guild
	ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error)

	// GetStorytellerStats retrieves one storyteller's aggregates
	GetStorytellerStats(ctx context.Context, input *GetStorytellerStatsInput) (*models.StorytellerStats, error)

	// ListStorytellerStats retrieves every storyteller's aggregates for a
	// guild, most games first
	ListStorytellerStats(ctx context.Context, input *ListStorytellerStatsInput) ([]*models.StorytellerStats, error)
}
