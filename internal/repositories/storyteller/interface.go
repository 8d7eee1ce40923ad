package storyteller

import (
	"context"

	"github.com/grimkeeper/grimkeeper/internal/models"
)

// Repository defines the interface for storyteller aggregate persistence
type Repository interface {
	// GetStats retrieves a storyteller's aggregates, zero-valued when the
	// storyteller has no recorded games
	GetStats(ctx context.Context, input *GetStatsInput) (*models.StorytellerStats, error)

	// ListStats retrieves aggregates for every storyteller in a guild
	ListStats(ctx context.Context, input *ListStatsInput) ([]*models.StorytellerStats, error)

	// ApplyGameResult increments the aggregates for one completed game
	ApplyGameResult(ctx context.Context, input *ApplyGameResultInput) error

	// ReverseGameResult decrements the aggregates for a deleted game,
	// clamping every counter at zero
	ReverseGameResult(ctx context.Context, input *ReverseGameResultInput) error
}
