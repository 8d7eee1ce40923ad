package game

import (
	"context"

	"github.com/grimkeeper/grimkeeper/internal/models"
)

// Repository defines the interface for game data persistence
type Repository interface {
	// SaveGame persists a game and maintains the active-game index
	SaveGame(ctx context.Context, input *SaveGameInput) error

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error)

	// GetActiveGame retrieves the active game for a (guild, category), if any
	GetActiveGame(ctx context.Context, input *GetActiveGameInput) (*models.Game, error)

	// DeleteGame removes a game and its index entries
	DeleteGame(ctx context.Context, input *DeleteGameInput) error

	// GetCompletedGames retrieves completed games for a guild,
	// newest first
	GetCompletedGames(ctx context.Context, input *GetCompletedGamesInput) ([]*models.Game, error)
}
