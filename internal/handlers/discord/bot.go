package discord

import (
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	gameSvc "github.com/grimkeeper/grimkeeper/internal/services/game"
	sessionSvc "github.com/grimkeeper/grimkeeper/internal/services/session"
	timerSvc "github.com/grimkeeper/grimkeeper/internal/services/timer"
	voiceSvc "github.com/grimkeeper/grimkeeper/internal/services/voice"
)

// commandPrefix marks chat messages addressed to the bot
const commandPrefix = "*"

// Bot represents the Discord bot instance
type Bot struct {
	session *discordgo.Session
	config  *Config

	sessions sessionSvc.Service
	games    gameSvc.Service
	timers   timerSvc.Service
	voice    voiceSvc.Service
}

// Config holds the configuration for the bot
type Config struct {
	// Session is the gateway session. The caller owns it so the service
	// adapters can share the same connection.
	Session *discordgo.Session

	// Services
	SessionService sessionSvc.Service
	GameService    gameSvc.Service
	TimerService   timerSvc.Service
	VoiceService   voiceSvc.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}
	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}
	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}
	if cfg.TimerService == nil {
		return nil, errors.New("timer service cannot be nil")
	}
	if cfg.VoiceService == nil {
		return nil, errors.New("voice service cannot be nil")
	}

	session := cfg.Session
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	bot := &Bot{
		session:  session,
		config:   cfg,
		sessions: cfg.SessionService,
		games:    cfg.GameService,
		timers:   cfg.TimerService,
		voice:    cfg.VoiceService,
	}

	session.AddHandler(bot.handleMessageCreate)
	session.AddHandler(bot.handleVoiceStateUpdate)
	session.AddHandler(bot.handleGuildMemberUpdate)

	return bot, nil
}

// Session exposes the underlying gateway session for adapter construction
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// Start opens the gateway connection
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	return b.session.Close()
}

// reply posts a message back to the channel a command came from
func (b *Bot) reply(channelID, content string) {
	if _, err := b.session.ChannelMessageSend(channelID, content); err != nil {
		log.Printf("failed to send message to channel %s: %v", channelID, err)
	}
}
