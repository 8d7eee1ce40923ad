package voice

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/grimkeeper/grimkeeper/internal/services/voice Service,Roster,ChannelEditor,Mover,Muter,PermissionChecker

import (
	"context"

	"github.com/grimkeeper/grimkeeper/internal/models"
)

// Service defines the interface for voice channel orchestration: the
// capacity reconciler that keeps per-channel user limits tracking privileged
// occupants, and the batched mover that gathers everyone to Town Square.
type Service interface {
	// SnapshotCaps scans a category's voice channels and returns the
	// capacity baseline: original user limits, positive ones only
	SnapshotCaps(ctx context.Context, input *SnapshotCapsInput) (*SnapshotCapsOutput, error)

	// HandleVoiceJoin bumps a channel's limit when a privileged member
	// joins it
	HandleVoiceJoin(ctx context.Context, input *VoiceEventInput) error

	// HandleVoiceLeave recomputes a channel's limit from its remaining
	// occupants when a privileged member leaves it
	HandleVoiceLeave(ctx context.Context, input *VoiceEventInput) error

	// HandlePrivilegeChange treats a nickname prefix flip as a synthetic
	// join or leave on the member's current channel
	HandlePrivilegeChange(ctx context.Context, input *PrivilegeChangeInput) error

	// CallTownspeople moves every eligible member in the category to the
	// session's destination channel
	CallTownspeople(ctx context.Context, input *CallTownspeopleInput) (*CallTownspeopleOutput, error)

	// MuteAll server-mutes every non-bot member of the destination channel
	MuteAll(ctx context.Context, input *MuteInput) (*MuteOutput, error)

	// UnmuteAll lifts the server-mute from the destination channel
	UnmuteAll(ctx context.Context, input *MuteInput) (*MuteOutput, error)

	// SkippedAdjustments reports how many capacity adjustments were
	// skipped for missing permissions since startup
	SkippedAdjustments() int64
}

// Roster reads voice channel state from the gateway cache
type Roster interface {
	// CategoryVoiceChannels lists the voice channel IDs under a category
	CategoryVoiceChannels(ctx context.Context, guildID, categoryID string) ([]string, error)

	// ChannelMembers lists a voice channel's current occupants
	ChannelMembers(ctx context.Context, guildID, channelID string) ([]models.Occupant, error)

	// ChannelUserLimit returns a voice channel's current user limit
	ChannelUserLimit(ctx context.Context, channelID string) (int, error)
}

// ChannelEditor mutates voice channel settings
type ChannelEditor interface {
	SetUserLimit(ctx context.Context, channelID string, limit int) error
}

// Mover relocates members between voice channels
type Mover interface {
	MoveMember(ctx context.Context, guildID, userID, channelID string) error
}

// Muter toggles a member's server-mute
type Muter interface {
	MuteMember(ctx context.Context, guildID, userID string, mute bool) error
}

// PermissionChecker reports whether the bot holds a capability in a guild.
// A missing capability is never an error: the affected operation is skipped
// and logged.
type PermissionChecker interface {
	CanManageChannels(ctx context.Context, guildID string) (bool, error)
	CanMoveMembers(ctx context.Context, guildID string) (bool, error)
}

// CapacityChangedFunc observes successful limit adjustments
type CapacityChangedFunc func(guildID, channelID string, limit int)
