package timer

import (
	"context"

	"github.com/grimkeeper/grimkeeper/internal/models"
)

// Repository defines the interface for timer persistence. Records exist so
// countdowns survive process restarts; the scheduler's in-memory map is the
// live source of truth while the process runs.
type Repository interface {
	// SaveTimer persists a timer, replacing any existing record for the guild
	SaveTimer(ctx context.Context, input *SaveTimerInput) error

	// GetTimer retrieves a guild's timer record
	GetTimer(ctx context.Context, input *GetTimerInput) (*models.TimerRecord, error)

	// DeleteTimer removes a guild's timer record
	DeleteTimer(ctx context.Context, input *DeleteTimerInput) error

	// ListTimers retrieves every persisted timer record
	ListTimers(ctx context.Context, input *ListTimersInput) ([]*models.TimerRecord, error)
}
