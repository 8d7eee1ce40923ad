package timer

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/grimkeeper/grimkeeper/internal/services/timer Service,Notifier,ChannelResolver

import "context"

// Service defines the interface for the countdown scheduler. Each guild has
// at most one in-flight countdown; starting a new one evicts the old.
type Service interface {
	// StartTimer schedules a countdown, evicting any existing one
	StartTimer(ctx context.Context, input *StartTimerInput) (*StartTimerOutput, error)

	// StopTimer cancels the countdown and removes its announcement
	StopTimer(ctx context.Context, input *StopTimerInput) (*StopTimerOutput, error)

	// PauseTimer freezes the countdown, preserving the remaining time
	PauseTimer(ctx context.Context, input *PauseTimerInput) (*PauseTimerOutput, error)

	// ResumeTimer restarts a paused countdown from its remaining time
	ResumeTimer(ctx context.Context, input *ResumeTimerInput) (*ResumeTimerOutput, error)

	// GetStatus reports the countdown's remaining time and pause state
	GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error)

	// Preempt silently cancels the countdown if one is running. Used when
	// an operation the timer was counting down to happens manually.
	Preempt(ctx context.Context, input *PreemptInput) (*PreemptOutput, error)

	// Restore reschedules persisted timers after a restart. Records whose
	// deadline already passed are dropped without firing.
	Restore(ctx context.Context) (*RestoreOutput, error)
}

// Notifier posts and removes countdown announcements
type Notifier interface {
	// Send posts a message and returns its ID
	Send(ctx context.Context, channelID, content string) (string, error)

	// Delete removes a previously posted message
	Delete(ctx context.Context, channelID, messageID string) error
}

// ChannelResolver picks the announcement channel for a restored timer:
// the owning session's announce channel when one is configured, the guild
// fallback channel otherwise.
type ChannelResolver interface {
	ResolveAnnounceChannel(ctx context.Context, guildID, categoryID string) (string, error)
}

// FireFunc runs when a countdown expires, after the expiry announcement
type FireFunc func(ctx context.Context, guildID, categoryID string)
