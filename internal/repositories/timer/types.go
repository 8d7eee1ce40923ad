package timer

import (
	"time"

	"github.com/grimkeeper/grimkeeper/internal/models"
)

type SaveTimerInput struct {
	Record *models.TimerRecord
}

type GetTimerInput struct {
	GuildID string
}

type DeleteTimerInput struct {
	GuildID string
}

type ListTimersInput struct {
}

// timerRecord is the persisted JSON shape of a timer
type timerRecord struct {
	GuildID         string `json:"guild_id"`
	EndTime         int64  `json:"end_time"`
	CreatorID       string `json:"creator_id"`
	CategoryID      string `json:"category_id,omitempty"`
	PausedRemaining int64  `json:"paused_remaining,omitempty"`
}

func toRecord(t *models.TimerRecord) *timerRecord {
	return &timerRecord{
		GuildID:         t.GuildID,
		EndTime:         t.EndTime.Unix(),
		CreatorID:       t.CreatorID,
		CategoryID:      t.CategoryID,
		PausedRemaining: int64(t.PausedRemaining / time.Second),
	}
}

func fromRecord(r *timerRecord) *models.TimerRecord {
	return &models.TimerRecord{
		GuildID:         r.GuildID,
		EndTime:         time.Unix(r.EndTime, 0).UTC(),
		CreatorID:       r.CreatorID,
		CategoryID:      r.CategoryID,
		PausedRemaining: time.Duration(r.PausedRemaining) * time.Second,
	}
}
