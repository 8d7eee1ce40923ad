package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/grimkeeper/grimkeeper/internal/common/duration"
	"github.com/grimkeeper/grimkeeper/internal/models"
	"github.com/grimkeeper/grimkeeper/internal/roles"
	gameSvc "github.com/grimkeeper/grimkeeper/internal/services/game"
	sessionSvc "github.com/grimkeeper/grimkeeper/internal/services/session"
	timerSvc "github.com/grimkeeper/grimkeeper/internal/services/timer"
	voiceSvc "github.com/grimkeeper/grimkeeper/internal/services/voice"
)

// handleMessageCreate dispatches chat commands. Everything the bot listens
// for starts with the command prefix; a bare duration like "*5m" is timer
// shorthand.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, commandPrefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(content, commandPrefix))
	if len(fields) == 0 {
		return
	}

	cmd := strings.ToLower(fields[0])
	args := fields[1:]
	ctx := context.Background()
	categoryID := b.categoryOf(m.ChannelID)

	switch cmd {
	case "setup":
		b.cmdSetup(ctx, m, categoryID)
	case "teardown":
		b.cmdTeardown(ctx, m, categoryID)
	case "call":
		b.cmdCall(ctx, m, categoryID)
	case "timer":
		b.cmdTimer(ctx, m, categoryID, args)
	case "game":
		b.cmdGame(ctx, m, categoryID, args)
	case "mute":
		b.cmdMute(ctx, m, categoryID, true)
	case "unmute":
		b.cmdMute(ctx, m, categoryID, false)
	case "grim":
		b.cmdGrim(ctx, m, categoryID, args)
	case "stats":
		b.cmdStats(ctx, m)
	case "sessions":
		b.cmdSessions(ctx, m, args)
	default:
		// "*5m" shorthand
		if d, err := duration.Parse(cmd); err == nil {
			b.startTimer(ctx, m, categoryID, d)
		}
	}
}

// cmdSetup binds the surrounding category to a new session. The invoker's
// current voice channel becomes Town Square, the command channel becomes the
// announce channel.
func (b *Bot) cmdSetup(ctx context.Context, m *discordgo.MessageCreate, categoryID string) {
	if categoryID == "" {
		b.reply(m.ChannelID, "Run this inside a category to bind it.")
		return
	}

	vs, err := b.session.State.VoiceState(m.GuildID, m.Author.ID)
	if err != nil || vs.ChannelID == "" {
		b.reply(m.ChannelID, "Join the Town Square voice channel first, then run `*setup`.")
		return
	}

	snapshot, err := b.voice.SnapshotCaps(ctx, &voiceSvc.SnapshotCapsInput{
		GuildID:    m.GuildID,
		CategoryID: categoryID,
	})
	if err != nil {
		log.Printf("failed to snapshot caps for guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Couldn't read this category's voice channels.")
		return
	}

	out, err := b.sessions.CreateSession(ctx, &sessionSvc.CreateSessionInput{
		GuildID:              m.GuildID,
		CategoryID:           categoryID,
		DestinationChannelID: vs.ChannelID,
		AnnounceChannelID:    m.ChannelID,
		VoiceCaps:            snapshot.Caps,
	})
	if err != nil {
		log.Printf("failed to create session for guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Couldn't create the session.")
		return
	}

	if !out.Created {
		b.reply(m.ChannelID, fmt.Sprintf("This category is already bound as **%s**.", out.Session.SessionCode))
		return
	}
	b.reply(m.ChannelID, fmt.Sprintf("Session **%s** is ready. Town Square is <#%s>.",
		out.Session.SessionCode, vs.ChannelID))
}

// cmdTeardown unbinds the surrounding category, discarding its active game
func (b *Bot) cmdTeardown(ctx context.Context, m *discordgo.MessageCreate, categoryID string) {
	if categoryID == "" {
		b.reply(m.ChannelID, "Run this inside a bound category.")
		return
	}

	out, err := b.sessions.DeleteSession(ctx, &sessionSvc.DeleteSessionInput{
		GuildID:    m.GuildID,
		CategoryID: categoryID,
	})
	if err != nil {
		log.Printf("failed to delete session for guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Couldn't remove the session.")
		return
	}
	if !out.Deleted {
		b.reply(m.ChannelID, "This category isn't bound to a session.")
		return
	}
	b.reply(m.ChannelID, "Session removed.")
}

// cmdCall gathers everyone to Town Square, preempting a pending timer
func (b *Bot) cmdCall(ctx context.Context, m *discordgo.MessageCreate, categoryID string) {
	out, err := b.voice.CallTownspeople(ctx, &voiceSvc.CallTownspeopleInput{
		GuildID:            m.GuildID,
		CategoryID:         categoryID,
		CancelPendingTimer: true,
	})
	if err != nil {
		switch {
		case errors.Is(err, voiceSvc.ErrNoSession):
			b.reply(m.ChannelID, "No session is bound here. Run `*setup` first.")
		case errors.Is(err, voiceSvc.ErrNoDestinationChannel):
			b.reply(m.ChannelID, "This session has no Town Square configured.")
		default:
			log.Printf("failed to call townspeople in guild %s: %v", m.GuildID, err)
			b.reply(m.ChannelID, "Couldn't call the town.")
		}
		return
	}

	msg := fmt.Sprintf("📣 Moved **%d** to Town Square.", out.Moved)
	if out.Failed > 0 {
		msg += fmt.Sprintf(" %d couldn't be moved.", out.Failed)
	}
	b.reply(m.ChannelID, msg)
}

// cmdTimer handles `*timer`, `*timer <duration>`, and the
// cancel/pause/resume subcommands
func (b *Bot) cmdTimer(ctx context.Context, m *discordgo.MessageCreate, categoryID string, args []string) {
	if len(args) == 0 {
		b.timerStatus(ctx, m)
		return
	}

	switch strings.ToLower(args[0]) {
	case "cancel", "stop":
		if _, err := b.timers.StopTimer(ctx, &timerSvc.StopTimerInput{GuildID: m.GuildID}); err != nil {
			b.reply(m.ChannelID, "No timer is running.")
			return
		}
		b.reply(m.ChannelID, "Timer cancelled.")
	case "pause":
		out, err := b.timers.PauseTimer(ctx, &timerSvc.PauseTimerInput{GuildID: m.GuildID})
		if err != nil {
			b.reply(m.ChannelID, "There's no running timer to pause.")
			return
		}
		b.reply(m.ChannelID, fmt.Sprintf("Timer paused with **%s** left.", duration.Humanize(out.Remaining)))
	case "resume":
		out, err := b.timers.ResumeTimer(ctx, &timerSvc.ResumeTimerInput{GuildID: m.GuildID})
		if err != nil {
			b.reply(m.ChannelID, "There's no paused timer to resume.")
			return
		}
		b.reply(m.ChannelID, fmt.Sprintf("Timer resumed — ends %s.", duration.FormatEndTime(out.EndTime)))
	default:
		d, err := duration.Parse(strings.Join(args, ""))
		if err != nil {
			b.reply(m.ChannelID, "I couldn't read that duration. Try `*timer 5m` or `*timer 1:30`.")
			return
		}
		b.startTimer(ctx, m, categoryID, d)
	}
}

func (b *Bot) timerStatus(ctx context.Context, m *discordgo.MessageCreate) {
	status, err := b.timers.GetStatus(ctx, &timerSvc.GetStatusInput{GuildID: m.GuildID})
	if err != nil {
		b.reply(m.ChannelID, "No timer is running.")
		return
	}
	if status.Paused {
		b.reply(m.ChannelID, fmt.Sprintf("⏸ Timer paused with **%s** left.", duration.Humanize(status.Remaining)))
		return
	}
	b.reply(m.ChannelID, fmt.Sprintf("⏳ **%s** remaining — ends %s.",
		duration.Humanize(status.Remaining), duration.FormatEndTime(status.EndTime)))
}

func (b *Bot) startTimer(ctx context.Context, m *discordgo.MessageCreate, categoryID string, d time.Duration) {
	_, err := b.timers.StartTimer(ctx, &timerSvc.StartTimerInput{
		GuildID:    m.GuildID,
		CategoryID: categoryID,
		CreatorID:  m.Author.ID,
		ChannelID:  m.ChannelID,
		Duration:   d,
	})
	if err != nil {
		if errors.Is(err, timerSvc.ErrInvalidDuration) {
			b.reply(m.ChannelID, "Timers run from one second up to 24 hours.")
			return
		}
		log.Printf("failed to start timer in guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Couldn't start the timer.")
	}
}

// cmdGame handles the game lifecycle subcommands
func (b *Bot) cmdGame(ctx context.Context, m *discordgo.MessageCreate, categoryID string, args []string) {
	if len(args) == 0 {
		b.reply(m.ChannelID, "Usage: `*game start <script>`, `*game end <good|evil|tie>`, `*game cancel`, `*game history`")
		return
	}

	switch strings.ToLower(args[0]) {
	case "start":
		b.gameStart(ctx, m, categoryID, strings.Join(args[1:], " "))
	case "end":
		if len(args) < 2 {
			b.reply(m.ChannelID, "Who won? `*game end good`, `*game end evil`, or `*game end tie`.")
			return
		}
		b.gameEnd(ctx, m, categoryID, args[1])
	case "cancel":
		if err := b.games.CancelGame(ctx, &gameSvc.CancelGameInput{
			GuildID:    m.GuildID,
			CategoryID: categoryID,
		}); err != nil {
			b.reply(m.ChannelID, "There's no game to cancel.")
			return
		}
		b.reply(m.ChannelID, "Game cancelled. Nothing was recorded.")
	case "history":
		b.gameHistory(ctx, m)
	case "delete":
		b.gameDelete(ctx, m)
	case "clearhistory":
		out, err := b.games.ClearHistory(ctx, &gameSvc.ClearHistoryInput{GuildID: m.GuildID})
		if err != nil {
			log.Printf("failed to clear history for guild %s: %v", m.GuildID, err)
			b.reply(m.ChannelID, "Couldn't clear the game history.")
			return
		}
		b.reply(m.ChannelID, fmt.Sprintf("Cleared **%d** games from the history. Storyteller stats are unchanged.", out.Deleted))
	default:
		b.reply(m.ChannelID, "Usage: `*game start <script>`, `*game end <good|evil|tie>`, `*game cancel`, `*game history`")
	}
}

// gameDelete removes the most recent completed game, rolling its storyteller
// stats back
func (b *Bot) gameDelete(ctx context.Context, m *discordgo.MessageCreate) {
	games, err := b.games.GetHistory(ctx, &gameSvc.GetHistoryInput{GuildID: m.GuildID, Limit: 1})
	if err != nil || len(games) == 0 {
		b.reply(m.ChannelID, "No completed games to delete.")
		return
	}

	game := games[0]
	if err := b.games.DeleteGame(ctx, &gameSvc.DeleteGameInput{
		GuildID: m.GuildID,
		GameID:  game.ID,
	}); err != nil {
		log.Printf("failed to delete game %s in guild %s: %v", game.ID, m.GuildID, err)
		b.reply(m.ChannelID, "Couldn't delete that game.")
		return
	}
	b.reply(m.ChannelID, fmt.Sprintf("Deleted the last game (**%s**, %s won) and rolled its stats back.",
		game.Script, game.Winner))
}

func (b *Bot) gameStart(ctx context.Context, m *discordgo.MessageCreate, categoryID, script string) {
	if script == "" {
		script = "Trouble Brewing"
	}

	occupants, err := b.categoryOccupants(m.GuildID, categoryID)
	if err != nil {
		log.Printf("failed to snapshot occupancy in guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Couldn't read who's in voice.")
		return
	}

	out, err := b.games.StartGame(ctx, &gameSvc.StartGameInput{
		GuildID:    m.GuildID,
		CategoryID: categoryID,
		Script:     script,
		Occupants:  occupants,
	})
	if err != nil {
		switch {
		case errors.Is(err, gameSvc.ErrNoSession):
			b.reply(m.ChannelID, "No session is bound here. Run `*setup` first.")
		case errors.Is(err, gameSvc.ErrGameInProgress):
			b.reply(m.ChannelID, "A game is already running. End or cancel it first.")
		case errors.Is(err, gameSvc.ErrNoStoryteller):
			b.reply(m.ChannelID, "No storyteller found — someone needs the `(ST) ` prefix.")
		case errors.Is(err, gameSvc.ErrMultipleStorytellers):
			b.reply(m.ChannelID, "More than one `(ST) ` prefix — co-storytellers use `(Co-ST) `.")
		default:
			log.Printf("failed to start game in guild %s: %v", m.GuildID, err)
			b.reply(m.ChannelID, "Couldn't start the game.")
		}
		return
	}

	b.reply(m.ChannelID, fmt.Sprintf("🎭 **%s** begins with **%d** players. Good luck!",
		out.Game.Script, out.Game.PlayerCount))
}

func (b *Bot) gameEnd(ctx context.Context, m *discordgo.MessageCreate, categoryID, winnerArg string) {
	var winner models.Winner
	switch strings.ToLower(winnerArg) {
	case "good":
		winner = models.WinnerGood
	case "evil":
		winner = models.WinnerEvil
	case "tie", "draw":
		winner = models.WinnerTie
	default:
		b.reply(m.ChannelID, "Who won? `good`, `evil`, or `tie`.")
		return
	}

	active, err := b.games.GetActiveGame(ctx, &gameSvc.GetActiveGameInput{
		GuildID:    m.GuildID,
		CategoryID: categoryID,
	})
	if err != nil {
		b.reply(m.ChannelID, "There's no game to end.")
		return
	}

	out, err := b.games.EndGame(ctx, &gameSvc.EndGameInput{
		GuildID:         m.GuildID,
		CategoryID:      categoryID,
		Winner:          winner,
		StorytellerName: b.storytellerName(m.GuildID, active.StorytellerID),
	})
	if err != nil {
		log.Printf("failed to end game in guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Couldn't end the game.")
		return
	}

	msg := fmt.Sprintf("🏁 Game over after **%s**", duration.Humanize(out.Game.Duration()))
	if winner == models.WinnerTie {
		msg += " — it's a tie!"
	} else {
		msg += fmt.Sprintf(" — **%s** wins!", winner)
	}
	b.reply(m.ChannelID, msg)
}

func (b *Bot) gameHistory(ctx context.Context, m *discordgo.MessageCreate) {
	games, err := b.games.GetHistory(ctx, &gameSvc.GetHistoryInput{
		GuildID: m.GuildID,
		Limit:   10,
	})
	if err != nil {
		log.Printf("failed to fetch history for guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Couldn't fetch the game history.")
		return
	}
	if len(games) == 0 {
		b.reply(m.ChannelID, "No completed games yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("**Recent games**\n")
	for _, g := range games {
		fmt.Fprintf(&sb, "• %s — %s won, %d players, %s\n",
			g.Script, g.Winner, g.PlayerCount, duration.Humanize(g.Duration()))
	}
	b.reply(m.ChannelID, sb.String())
}

// cmdMute toggles the server-mute for everyone in Town Square
func (b *Bot) cmdMute(ctx context.Context, m *discordgo.MessageCreate, categoryID string, mute bool) {
	input := &voiceSvc.MuteInput{GuildID: m.GuildID, CategoryID: categoryID}

	var out *voiceSvc.MuteOutput
	var err error
	if mute {
		out, err = b.voice.MuteAll(ctx, input)
	} else {
		out, err = b.voice.UnmuteAll(ctx, input)
	}
	if err != nil {
		if errors.Is(err, voiceSvc.ErrNoSession) {
			b.reply(m.ChannelID, "No session is bound here. Run `*setup` first.")
			return
		}
		log.Printf("failed to toggle mute in guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Couldn't change mutes.")
		return
	}

	verb := "Muted"
	if !mute {
		verb = "Unmuted"
	}
	b.reply(m.ChannelID, fmt.Sprintf("🔇 %s **%d** members.", verb, out.Affected))
}

// cmdSessions lists the guild's sessions, or shows one looked up by code
func (b *Bot) cmdSessions(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) > 0 {
		sess, err := b.sessions.GetSessionByCode(ctx, &sessionSvc.GetSessionByCodeInput{
			GuildID:     m.GuildID,
			SessionCode: args[0],
		})
		if err != nil {
			b.reply(m.ChannelID, fmt.Sprintf("No session with code `%s`.", args[0]))
			return
		}
		b.reply(m.ChannelID, fmt.Sprintf("**%s** — category <#%s>, Town Square <#%s>",
			sess.SessionCode, sess.CategoryID, sess.DestinationChannelID))
		return
	}

	sessions, err := b.sessions.ListGuildSessions(ctx, &sessionSvc.ListGuildSessionsInput{
		GuildID: m.GuildID,
	})
	if err != nil {
		log.Printf("failed to list sessions for guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Couldn't list sessions.")
		return
	}
	if len(sessions) == 0 {
		b.reply(m.ChannelID, "No sessions bound. Run `*setup` inside a category.")
		return
	}

	var sb strings.Builder
	sb.WriteString("**Sessions**\n")
	for _, sess := range sessions {
		fmt.Fprintf(&sb, "• %s — <#%s>\n", sess.SessionCode, sess.CategoryID)
	}
	b.reply(m.ChannelID, sb.String())
}

// cmdStats shows the guild's storyteller leaderboard
func (b *Bot) cmdStats(ctx context.Context, m *discordgo.MessageCreate) {
	stats, err := b.games.ListStorytellerStats(ctx, &gameSvc.ListStorytellerStatsInput{
		GuildID: m.GuildID,
	})
	if err != nil {
		log.Printf("failed to list storyteller stats for guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Couldn't fetch storyteller stats.")
		return
	}
	if len(stats) == 0 {
		b.reply(m.ChannelID, "No games on record yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("**Storytellers**\n")
	for _, st := range stats {
		name := st.StorytellerName
		if name == "" {
			name = st.StorytellerID
		}
		fmt.Fprintf(&sb, "• %s — %d games (good %d / evil %d)\n",
			name, st.TotalGames, st.GoodWins, st.EvilWins)
	}
	b.reply(m.ChannelID, sb.String())
}

// cmdGrim shows or updates the session's grimoire link
func (b *Bot) cmdGrim(ctx context.Context, m *discordgo.MessageCreate, categoryID string, args []string) {
	sess, err := b.sessions.GetSession(ctx, &sessionSvc.GetSessionInput{
		GuildID:    m.GuildID,
		CategoryID: categoryID,
	})
	if err != nil {
		b.reply(m.ChannelID, "No session is bound here. Run `*setup` first.")
		return
	}

	if len(args) == 0 {
		if sess.GrimoireLink == "" {
			b.reply(m.ChannelID, "No grimoire link set. Use `*grim <url>`.")
			return
		}
		b.reply(m.ChannelID, fmt.Sprintf("📖 Grimoire: %s", sess.GrimoireLink))
		return
	}

	sess.GrimoireLink = args[0]
	if err := b.sessions.UpdateSession(ctx, &sessionSvc.UpdateSessionInput{Session: sess}); err != nil {
		log.Printf("failed to update grimoire link for guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Couldn't save the grimoire link.")
		return
	}
	b.reply(m.ChannelID, "📖 Grimoire link updated.")
}

// categoryOf resolves the category a channel sits under, empty when the
// channel is uncached or top-level
func (b *Bot) categoryOf(channelID string) string {
	ch, err := b.session.State.Channel(channelID)
	if err != nil {
		return ""
	}
	return ch.ParentID
}

// categoryOccupants snapshots everyone currently in the category's voice
// channels
func (b *Bot) categoryOccupants(guildID, categoryID string) ([]models.Occupant, error) {
	guild, err := b.session.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("guild %s not in state cache: %w", guildID, err)
	}

	voiceChannels := make(map[string]bool)
	for _, ch := range guild.Channels {
		if ch.Type == discordgo.ChannelTypeGuildVoice && ch.ParentID == categoryID {
			voiceChannels[ch.ID] = true
		}
	}

	var occupants []models.Occupant
	for _, vs := range guild.VoiceStates {
		if !voiceChannels[vs.ChannelID] {
			continue
		}
		member, err := b.session.State.Member(guildID, vs.UserID)
		if err != nil {
			occupants = append(occupants, models.Occupant{UserID: vs.UserID})
			continue
		}
		occupants = append(occupants, occupantFromMember(member))
	}
	return occupants, nil
}

// storytellerName resolves a storyteller's clean display name, empty when
// the member is uncached
func (b *Bot) storytellerName(guildID, userID string) string {
	if userID == "" {
		return ""
	}
	member, err := b.session.State.Member(guildID, userID)
	if err != nil {
		return ""
	}
	return roles.CleanName(memberDisplayName(member))
}
