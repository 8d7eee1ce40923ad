package voice

import (
	"time"

	"github.com/grimkeeper/grimkeeper/internal/models"
	"github.com/grimkeeper/grimkeeper/internal/roles"
	sessionSvc "github.com/grimkeeper/grimkeeper/internal/services/session"
	timerSvc "github.com/grimkeeper/grimkeeper/internal/services/timer"
)

const (
	// moveBatchSize is how many members are moved before pausing
	moveBatchSize = 15

	// moveBatchDelay is the pause between move batches, kind to the API
	moveBatchDelay = 80 * time.Millisecond
)

// Config holds configuration for the voice service
type Config struct {
	// Service dependencies
	SessionService sessionSvc.Service
	Classifier     roles.Classifier

	// Gateway adapters
	Roster      Roster
	Editor      ChannelEditor
	Mover       Mover
	Muter       Muter
	Permissions PermissionChecker

	// TimerService, when set, lets a manual call preempt a pending
	// countdown. Optional.
	TimerService timerSvc.Service

	// OnCapacityChanged observes successful limit adjustments. Optional.
	OnCapacityChanged CapacityChangedFunc
}

type SnapshotCapsInput struct {
	GuildID    string
	CategoryID string
}

type SnapshotCapsOutput struct {
	// Caps maps channel ID to its original positive user limit. Unlimited
	// channels are absent and stay unmanaged.
	Caps map[string]int
}

// VoiceEventInput describes one member entering or leaving a voice channel
type VoiceEventInput struct {
	GuildID    string
	CategoryID string

	// ChannelID is the channel joined or left
	ChannelID string

	// Member is the joining or departing occupant
	Member models.Occupant
}

// PrivilegeChangeInput describes a display name change for a member sitting
// in a voice channel
type PrivilegeChangeInput struct {
	GuildID    string
	CategoryID string
	ChannelID  string

	UserID         string
	OldDisplayName string
	NewDisplayName string
	IsBot          bool
}

// CallTownspeopleInput contains parameters for gathering the town
type CallTownspeopleInput struct {
	GuildID    string
	CategoryID string

	// CancelPendingTimer preempts a running countdown, used when the call
	// happens manually before the timer fires
	CancelPendingTimer bool
}

// CallTownspeopleOutput summarizes a gather operation
type CallTownspeopleOutput struct {
	// Moved counts members relocated to the destination
	Moved int

	// Skipped counts members left alone: bots, exception channel
	// occupants, and members already in the destination
	Skipped int

	// Failed counts members whose move errored. Failures are never
	// retried.
	Failed int

	// TimerPreempted indicates a pending countdown was cancelled
	TimerPreempted bool
}

type MuteInput struct {
	GuildID    string
	CategoryID string
}

type MuteOutput struct {
	Affected int
	Failed   int
}
