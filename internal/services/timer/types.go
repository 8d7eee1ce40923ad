package timer

import (
	"time"

	"github.com/grimkeeper/grimkeeper/internal/common/clock"
	timerRepo "github.com/grimkeeper/grimkeeper/internal/repositories/timer"
)

// Config holds configuration for the timer service
type Config struct {
	// Repository dependencies
	TimerRepo timerRepo.Repository

	// Service dependencies
	Notifier Notifier
	Resolver ChannelResolver
	Clock    clock.Clock

	// OnFired runs after the expiry announcement. Optional.
	OnFired FireFunc
}

// StartTimerInput contains parameters for scheduling a countdown
type StartTimerInput struct {
	// GuildID is the Discord guild ID, the countdown's exclusivity scope
	GuildID string

	// CategoryID is the session the countdown belongs to, empty when the
	// command ran outside a session category
	CategoryID string

	// CreatorID is the user who started the countdown
	CreatorID string

	// ChannelID is where announcements for this countdown are posted
	ChannelID string

	// Duration is the countdown length
	Duration time.Duration
}

// StartTimerOutput contains the result of scheduling a countdown
type StartTimerOutput struct {
	// EndTime is when the countdown will fire
	EndTime time.Time

	// Evicted indicates a previous countdown was cancelled to make room
	Evicted bool
}

type StopTimerInput struct {
	GuildID string
}

type StopTimerOutput struct {
	// CreatorID is who had started the cancelled countdown
	CreatorID string
}

type PauseTimerInput struct {
	GuildID string
}

type PauseTimerOutput struct {
	// Remaining is the frozen time left on the countdown
	Remaining time.Duration
}

type ResumeTimerInput struct {
	GuildID string
}

type ResumeTimerOutput struct {
	// EndTime is the recomputed deadline
	EndTime time.Time
}

type GetStatusInput struct {
	GuildID string
}

type GetStatusOutput struct {
	Paused    bool
	Remaining time.Duration
	EndTime   time.Time
	CreatorID string
}

type PreemptInput struct {
	GuildID string
}

type PreemptOutput struct {
	// Preempted indicates a running countdown was cancelled
	Preempted bool
}

// RestoreOutput summarizes a restart recovery pass
type RestoreOutput struct {
	// Restored counts timers rescheduled or re-frozen
	Restored int

	// Dropped counts stale records discarded without firing
	Dropped int
}
