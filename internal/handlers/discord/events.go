package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	voiceSvc "github.com/grimkeeper/grimkeeper/internal/services/voice"
)

// handleVoiceStateUpdate feeds channel joins, leaves and moves to the
// capacity reconciler. A move is a leave from the old channel plus a join to
// the new one.
func (b *Bot) handleVoiceStateUpdate(s *discordgo.Session, vsu *discordgo.VoiceStateUpdate) {
	oldChannelID := ""
	if vsu.BeforeUpdate != nil {
		oldChannelID = vsu.BeforeUpdate.ChannelID
	}
	newChannelID := vsu.ChannelID

	// Mute toggles and the like fire this event too
	if oldChannelID == newChannelID {
		return
	}

	member := vsu.Member
	if member == nil {
		cached, err := s.State.Member(vsu.GuildID, vsu.UserID)
		if err != nil {
			return
		}
		member = cached
	}
	occupant := occupantFromMember(member)

	ctx := context.Background()

	if oldChannelID != "" {
		if err := b.voice.HandleVoiceLeave(ctx, &voiceSvc.VoiceEventInput{
			GuildID:    vsu.GuildID,
			CategoryID: b.categoryOf(oldChannelID),
			ChannelID:  oldChannelID,
			Member:     occupant,
		}); err != nil {
			log.Printf("failed to handle voice leave in guild %s: %v", vsu.GuildID, err)
		}
	}

	if newChannelID != "" {
		if err := b.voice.HandleVoiceJoin(ctx, &voiceSvc.VoiceEventInput{
			GuildID:    vsu.GuildID,
			CategoryID: b.categoryOf(newChannelID),
			ChannelID:  newChannelID,
			Member:     occupant,
		}); err != nil {
			log.Printf("failed to handle voice join in guild %s: %v", vsu.GuildID, err)
		}
	}
}

// handleGuildMemberUpdate watches for role prefix flips on members sitting
// in voice: gaining or losing "(ST) ", "(Co-ST) " or "!" adjusts their
// channel's capacity as if they had joined or left
func (b *Bot) handleGuildMemberUpdate(s *discordgo.Session, gmu *discordgo.GuildMemberUpdate) {
	if gmu.BeforeUpdate == nil || gmu.User == nil {
		return
	}

	oldName := memberDisplayName(gmu.BeforeUpdate)
	newName := memberDisplayName(gmu.Member)
	if oldName == newName {
		return
	}

	vs, err := s.State.VoiceState(gmu.GuildID, gmu.User.ID)
	if err != nil || vs.ChannelID == "" {
		return
	}

	if err := b.voice.HandlePrivilegeChange(context.Background(), &voiceSvc.PrivilegeChangeInput{
		GuildID:        gmu.GuildID,
		CategoryID:     b.categoryOf(vs.ChannelID),
		ChannelID:      vs.ChannelID,
		UserID:         gmu.User.ID,
		OldDisplayName: oldName,
		NewDisplayName: newName,
		IsBot:          gmu.User.Bot,
	}); err != nil {
		log.Printf("failed to handle privilege change in guild %s: %v", gmu.GuildID, err)
	}
}
