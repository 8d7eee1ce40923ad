package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/grimkeeper/grimkeeper/internal/models"
	sessionSvc "github.com/grimkeeper/grimkeeper/internal/services/session"
)

// The adapters in this file back the service-layer collaborator interfaces
// (timer.Notifier, timer.ChannelResolver, voice.Roster, voice.ChannelEditor,
// voice.Mover, voice.Muter, voice.PermissionChecker) with a live discordgo
// session. Reads go through the gateway state cache; writes hit the REST API.

// Notifier posts and deletes timer announcements
type Notifier struct {
	session *discordgo.Session
}

// NewNotifier creates a discordgo-backed notifier
func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{session: session}
}

// Send posts a message and returns its ID
func (n *Notifier) Send(ctx context.Context, channelID, content string) (string, error) {
	msg, err := n.session.ChannelMessageSend(channelID, content)
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}
	return msg.ID, nil
}

// Delete removes a previously posted message
func (n *Notifier) Delete(ctx context.Context, channelID, messageID string) error {
	return n.session.ChannelMessageDelete(channelID, messageID)
}

// ChannelResolver picks announcement channels for restored timers
type ChannelResolver struct {
	session  *discordgo.Session
	sessions sessionSvc.Service
}

// NewChannelResolver creates a resolver preferring the owning session's
// announce channel, falling back to the guild's system channel
func NewChannelResolver(session *discordgo.Session, sessions sessionSvc.Service) *ChannelResolver {
	return &ChannelResolver{session: session, sessions: sessions}
}

// ResolveAnnounceChannel resolves where a restored timer should announce
func (r *ChannelResolver) ResolveAnnounceChannel(ctx context.Context, guildID, categoryID string) (string, error) {
	if categoryID != "" {
		sess, err := r.sessions.GetSession(ctx, &sessionSvc.GetSessionInput{
			GuildID:    guildID,
			CategoryID: categoryID,
		})
		if err == nil && sess.AnnounceChannelID != "" {
			return sess.AnnounceChannelID, nil
		}
	}

	guild, err := r.session.State.Guild(guildID)
	if err != nil {
		return "", fmt.Errorf("guild %s not in state cache: %w", guildID, err)
	}
	if guild.SystemChannelID == "" {
		return "", errors.New("guild has no system channel")
	}
	return guild.SystemChannelID, nil
}

// Roster reads voice channel state from the gateway cache
type Roster struct {
	session *discordgo.Session
}

// NewRoster creates a discordgo-backed roster
func NewRoster(session *discordgo.Session) *Roster {
	return &Roster{session: session}
}

// CategoryVoiceChannels lists the voice channel IDs under a category
func (r *Roster) CategoryVoiceChannels(ctx context.Context, guildID, categoryID string) ([]string, error) {
	guild, err := r.session.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("guild %s not in state cache: %w", guildID, err)
	}

	var channels []string
	for _, ch := range guild.Channels {
		if ch.Type == discordgo.ChannelTypeGuildVoice && ch.ParentID == categoryID {
			channels = append(channels, ch.ID)
		}
	}
	return channels, nil
}

// ChannelMembers lists a voice channel's current occupants
func (r *Roster) ChannelMembers(ctx context.Context, guildID, channelID string) ([]models.Occupant, error) {
	guild, err := r.session.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("guild %s not in state cache: %w", guildID, err)
	}

	var occupants []models.Occupant
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID != channelID {
			continue
		}
		member, err := r.session.State.Member(guildID, vs.UserID)
		if err != nil {
			// Uncached member, count them as a plain occupant
			occupants = append(occupants, models.Occupant{UserID: vs.UserID})
			continue
		}
		occupants = append(occupants, occupantFromMember(member))
	}
	return occupants, nil
}

// ChannelUserLimit returns a voice channel's current user limit
func (r *Roster) ChannelUserLimit(ctx context.Context, channelID string) (int, error) {
	ch, err := r.session.State.Channel(channelID)
	if err != nil {
		return 0, fmt.Errorf("channel %s not in state cache: %w", channelID, err)
	}
	return ch.UserLimit, nil
}

// ChannelEditor mutates voice channel settings
type ChannelEditor struct {
	session *discordgo.Session
}

// NewChannelEditor creates a discordgo-backed channel editor
func NewChannelEditor(session *discordgo.Session) *ChannelEditor {
	return &ChannelEditor{session: session}
}

// SetUserLimit sets a voice channel's user limit
func (e *ChannelEditor) SetUserLimit(ctx context.Context, channelID string, limit int) error {
	_, err := e.session.ChannelEdit(channelID, &discordgo.ChannelEdit{UserLimit: limit})
	return err
}

// Mover relocates members between voice channels
type Mover struct {
	session *discordgo.Session
}

// NewMover creates a discordgo-backed mover
func NewMover(session *discordgo.Session) *Mover {
	return &Mover{session: session}
}

// MoveMember moves a member into a voice channel
func (m *Mover) MoveMember(ctx context.Context, guildID, userID, channelID string) error {
	return m.session.GuildMemberMove(guildID, userID, &channelID)
}

// Muter toggles server-mutes
type Muter struct {
	session *discordgo.Session
}

// NewMuter creates a discordgo-backed muter
func NewMuter(session *discordgo.Session) *Muter {
	return &Muter{session: session}
}

// MuteMember sets a member's server-mute
func (m *Muter) MuteMember(ctx context.Context, guildID, userID string, mute bool) error {
	return m.session.GuildMemberMute(guildID, userID, mute)
}

// PermissionChecker reports the bot's own guild-level capabilities
type PermissionChecker struct {
	session *discordgo.Session
}

// NewPermissionChecker creates a discordgo-backed permission checker
func NewPermissionChecker(session *discordgo.Session) *PermissionChecker {
	return &PermissionChecker{session: session}
}

// CanManageChannels reports whether the bot may edit channels
func (p *PermissionChecker) CanManageChannels(ctx context.Context, guildID string) (bool, error) {
	return p.hasPermission(guildID, discordgo.PermissionManageChannels)
}

// CanMoveMembers reports whether the bot may move members between channels
func (p *PermissionChecker) CanMoveMembers(ctx context.Context, guildID string) (bool, error) {
	return p.hasPermission(guildID, discordgo.PermissionVoiceMoveMembers)
}

func (p *PermissionChecker) hasPermission(guildID string, permission int64) (bool, error) {
	guild, err := p.session.State.Guild(guildID)
	if err != nil {
		return false, fmt.Errorf("guild %s not in state cache: %w", guildID, err)
	}

	botID := p.session.State.User.ID
	member, err := p.session.State.Member(guildID, botID)
	if err != nil {
		return false, fmt.Errorf("bot member not in state cache: %w", err)
	}

	var perms int64
	for _, role := range guild.Roles {
		// The @everyone role shares the guild's ID and applies to all
		if role.ID == guildID {
			perms |= role.Permissions
			continue
		}
		for _, roleID := range member.Roles {
			if role.ID == roleID {
				perms |= role.Permissions
				break
			}
		}
	}

	if perms&discordgo.PermissionAdministrator != 0 {
		return true, nil
	}
	return perms&permission != 0, nil
}

// occupantFromMember converts a cached guild member to an occupant
func occupantFromMember(member *discordgo.Member) models.Occupant {
	return models.Occupant{
		UserID:      member.User.ID,
		DisplayName: memberDisplayName(member),
		IsBot:       member.User.Bot,
	}
}

// memberDisplayName mirrors what Discord shows in the member list: the guild
// nickname when set, otherwise the account's display name
func memberDisplayName(member *discordgo.Member) string {
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}
