package voice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/grimkeeper/grimkeeper/internal/models"
	"github.com/grimkeeper/grimkeeper/internal/roles"
	sessionSvc "github.com/grimkeeper/grimkeeper/internal/services/session"
	timerSvc "github.com/grimkeeper/grimkeeper/internal/services/timer"
)

// service implements the Service interface
type service struct {
	sessions    sessionSvc.Service
	classifier  roles.Classifier
	roster      Roster
	editor      ChannelEditor
	mover       Mover
	muter       Muter
	permissions PermissionChecker
	timers      timerSvc.Service
	onChanged   CapacityChangedFunc

	// skipped counts capacity adjustments dropped for missing permissions
	skipped atomic.Int64
}

// NewService creates a new voice service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionService == nil {
		return nil, ErrNilSessionService
	}
	if cfg.Classifier == nil {
		return nil, ErrNilClassifier
	}
	if cfg.Roster == nil {
		return nil, ErrNilRoster
	}
	if cfg.Editor == nil {
		return nil, ErrNilChannelEditor
	}
	if cfg.Mover == nil {
		return nil, ErrNilMover
	}
	if cfg.Muter == nil {
		return nil, ErrNilMuter
	}
	if cfg.Permissions == nil {
		return nil, ErrNilPermissionChecker
	}

	return &service{
		sessions:    cfg.SessionService,
		classifier:  cfg.Classifier,
		roster:      cfg.Roster,
		editor:      cfg.Editor,
		mover:       cfg.Mover,
		muter:       cfg.Muter,
		permissions: cfg.Permissions,
		timers:      cfg.TimerService,
		onChanged:   cfg.OnCapacityChanged,
	}, nil
}

// SnapshotCaps records the capacity baseline for a category. Only channels
// with a positive limit are managed: unlimited channels never need a seat
// freed up.
func (s *service) SnapshotCaps(ctx context.Context, input *SnapshotCapsInput) (*SnapshotCapsOutput, error) {
	channels, err := s.roster.CategoryVoiceChannels(ctx, input.GuildID, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category channels: %w", err)
	}

	caps := make(map[string]int)
	for _, channelID := range channels {
		limit, err := s.roster.ChannelUserLimit(ctx, channelID)
		if err != nil {
			return nil, fmt.Errorf("failed to read limit for channel %s: %w", channelID, err)
		}
		if limit > 0 {
			caps[channelID] = limit
		}
	}

	return &SnapshotCapsOutput{Caps: caps}, nil
}

// HandleVoiceJoin bumps the channel's limit by one when a privileged member
// joins a managed channel. The bump is relative to the channel's current
// limit so stacked privileged members each get a seat.
func (s *service) HandleVoiceJoin(ctx context.Context, input *VoiceEventInput) error {
	if input.Member.IsBot {
		return nil
	}
	if !s.classifier.Classify(input.Member).IsPrivileged() {
		return nil
	}

	if _, ok, err := s.channelBaseline(ctx, input.GuildID, input.CategoryID, input.ChannelID); err != nil || !ok {
		return err
	}

	if !s.canManageChannels(ctx, input.GuildID, input.ChannelID) {
		return nil
	}

	current, err := s.roster.ChannelUserLimit(ctx, input.ChannelID)
	if err != nil {
		return fmt.Errorf("failed to read limit for channel %s: %w", input.ChannelID, err)
	}

	return s.setLimit(ctx, input.GuildID, input.ChannelID, current+1)
}

// HandleVoiceLeave recomputes the channel's limit from scratch when a
// privileged member leaves: the original baseline plus one seat per
// privileged non-bot occupant still present. Recomputing absolutely, rather
// than decrementing, self-heals any drift from missed events.
func (s *service) HandleVoiceLeave(ctx context.Context, input *VoiceEventInput) error {
	if input.Member.IsBot {
		return nil
	}
	if !s.classifier.Classify(input.Member).IsPrivileged() {
		return nil
	}

	baseline, ok, err := s.channelBaseline(ctx, input.GuildID, input.CategoryID, input.ChannelID)
	if err != nil || !ok {
		return err
	}

	if !s.canManageChannels(ctx, input.GuildID, input.ChannelID) {
		return nil
	}

	members, err := s.roster.ChannelMembers(ctx, input.GuildID, input.ChannelID)
	if err != nil {
		return fmt.Errorf("failed to list channel members: %w", err)
	}

	privileged := 0
	for _, m := range members {
		if m.IsBot || m.UserID == input.Member.UserID {
			continue
		}
		if s.classifier.Classify(m).IsPrivileged() {
			privileged++
		}
	}

	return s.setLimit(ctx, input.GuildID, input.ChannelID, baseline+privileged)
}

// HandlePrivilegeChange reacts to a nickname prefix flip for a member
// currently in a voice channel, treating a gained privilege as a join and a
// lost one as a leave
func (s *service) HandlePrivilegeChange(ctx context.Context, input *PrivilegeChangeInput) error {
	was := s.classifier.Classify(models.Occupant{
		UserID:      input.UserID,
		DisplayName: input.OldDisplayName,
		IsBot:       input.IsBot,
	}).IsPrivileged()
	now := s.classifier.Classify(models.Occupant{
		UserID:      input.UserID,
		DisplayName: input.NewDisplayName,
		IsBot:       input.IsBot,
	}).IsPrivileged()

	if was == now {
		return nil
	}

	event := &VoiceEventInput{
		GuildID:    input.GuildID,
		CategoryID: input.CategoryID,
		ChannelID:  input.ChannelID,
		Member: models.Occupant{
			UserID: input.UserID,
			IsBot:  input.IsBot,
			// Classify against whichever name carries the privilege
			DisplayName: input.NewDisplayName,
		},
	}

	if now {
		return s.HandleVoiceJoin(ctx, event)
	}

	event.Member.DisplayName = input.OldDisplayName
	return s.HandleVoiceLeave(ctx, event)
}

// CallTownspeople gathers every eligible member in the category into the
// session's destination channel. Bots, the exception channel, and anyone
// already in the destination are skipped; moves run in batches with a short
// pause between them; per-member failures are counted, never retried.
func (s *service) CallTownspeople(ctx context.Context, input *CallTownspeopleInput) (*CallTownspeopleOutput, error) {
	sess, err := s.sessions.GetSession(ctx, &sessionSvc.GetSessionInput{
		GuildID:    input.GuildID,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		if errors.Is(err, sessionSvc.ErrSessionNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if sess.DestinationChannelID == "" {
		return nil, ErrNoDestinationChannel
	}

	out := &CallTownspeopleOutput{}

	if input.CancelPendingTimer && s.timers != nil {
		preempted, err := s.timers.Preempt(ctx, &timerSvc.PreemptInput{GuildID: input.GuildID})
		if err != nil {
			log.Printf("failed to preempt timer for guild %s: %v", input.GuildID, err)
		} else {
			out.TimerPreempted = preempted.Preempted
		}
	}

	canMove, err := s.permissions.CanMoveMembers(ctx, input.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to check move permission: %w", err)
	}
	if !canMove {
		log.Printf("skipping town call in guild %s: missing move members permission", input.GuildID)
		s.skipped.Add(1)
		return out, nil
	}

	channels, err := s.roster.CategoryVoiceChannels(ctx, input.GuildID, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category channels: %w", err)
	}

	var toMove []string
	for _, channelID := range channels {
		if channelID == sess.DestinationChannelID || channelID == sess.ExceptionChannelID {
			continue
		}
		members, err := s.roster.ChannelMembers(ctx, input.GuildID, channelID)
		if err != nil {
			return nil, fmt.Errorf("failed to list members of channel %s: %w", channelID, err)
		}
		for _, m := range members {
			if m.IsBot {
				out.Skipped++
				continue
			}
			toMove = append(toMove, m.UserID)
		}
	}

	for i, userID := range toMove {
		if i > 0 && i%moveBatchSize == 0 {
			time.Sleep(moveBatchDelay)
		}
		if err := s.mover.MoveMember(ctx, input.GuildID, userID, sess.DestinationChannelID); err != nil {
			log.Printf("failed to move member %s in guild %s: %v", userID, input.GuildID, err)
			out.Failed++
			continue
		}
		out.Moved++
	}

	return out, nil
}

// MuteAll server-mutes every non-bot occupant of the destination channel
func (s *service) MuteAll(ctx context.Context, input *MuteInput) (*MuteOutput, error) {
	return s.setMute(ctx, input, true)
}

// UnmuteAll lifts the server-mute from the destination channel
func (s *service) UnmuteAll(ctx context.Context, input *MuteInput) (*MuteOutput, error) {
	return s.setMute(ctx, input, false)
}

func (s *service) setMute(ctx context.Context, input *MuteInput, mute bool) (*MuteOutput, error) {
	sess, err := s.sessions.GetSession(ctx, &sessionSvc.GetSessionInput{
		GuildID:    input.GuildID,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		if errors.Is(err, sessionSvc.ErrSessionNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if sess.DestinationChannelID == "" {
		return nil, ErrNoDestinationChannel
	}

	members, err := s.roster.ChannelMembers(ctx, input.GuildID, sess.DestinationChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list destination members: %w", err)
	}

	out := &MuteOutput{}
	for _, m := range members {
		if m.IsBot {
			continue
		}
		if err := s.muter.MuteMember(ctx, input.GuildID, m.UserID, mute); err != nil {
			log.Printf("failed to set mute=%t for member %s: %v", mute, m.UserID, err)
			out.Failed++
			continue
		}
		out.Affected++
	}

	return out, nil
}

// SkippedAdjustments reports how many adjustments were dropped for missing
// permissions since startup
func (s *service) SkippedAdjustments() int64 {
	return s.skipped.Load()
}

// channelBaseline returns the snapshotted limit for a channel, reporting
// whether the channel is managed at all. Events for unbound categories or
// unmanaged channels are routine and never an error.
func (s *service) channelBaseline(ctx context.Context, guildID, categoryID, channelID string) (int, bool, error) {
	sess, err := s.sessions.GetSession(ctx, &sessionSvc.GetSessionInput{
		GuildID:    guildID,
		CategoryID: categoryID,
	})
	if err != nil {
		if errors.Is(err, sessionSvc.ErrSessionNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	baseline, ok := sess.VoiceCaps[channelID]
	return baseline, ok, nil
}

// canManageChannels checks the capability, logging and counting the skip
// when it is absent. Permission absence is a silent no-op, never an error.
func (s *service) canManageChannels(ctx context.Context, guildID, channelID string) bool {
	can, err := s.permissions.CanManageChannels(ctx, guildID)
	if err != nil {
		log.Printf("failed to check manage channels permission in guild %s: %v", guildID, err)
		s.skipped.Add(1)
		return false
	}
	if !can {
		log.Printf("skipping capacity adjustment for channel %s: missing manage channels permission", channelID)
		s.skipped.Add(1)
		return false
	}
	return true
}

func (s *service) setLimit(ctx context.Context, guildID, channelID string, limit int) error {
	if err := s.editor.SetUserLimit(ctx, channelID, limit); err != nil {
		return fmt.Errorf("failed to set user limit on channel %s: %w", channelID, err)
	}
	if s.onChanged != nil {
		s.onChanged(guildID, channelID, limit)
	}
	return nil
}
