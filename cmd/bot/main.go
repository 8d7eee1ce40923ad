package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"

	"github.com/grimkeeper/grimkeeper/internal/common/clock"
	"github.com/grimkeeper/grimkeeper/internal/common/uuid"
	"github.com/grimkeeper/grimkeeper/internal/config"
	"github.com/grimkeeper/grimkeeper/internal/handlers/discord"
	gameRepo "github.com/grimkeeper/grimkeeper/internal/repositories/game"
	sessionRepo "github.com/grimkeeper/grimkeeper/internal/repositories/session"
	storytellerRepo "github.com/grimkeeper/grimkeeper/internal/repositories/storyteller"
	timerRepo "github.com/grimkeeper/grimkeeper/internal/repositories/timer"
	"github.com/grimkeeper/grimkeeper/internal/roles"
	gameService "github.com/grimkeeper/grimkeeper/internal/services/game"
	sessionService "github.com/grimkeeper/grimkeeper/internal/services/session"
	timerService "github.com/grimkeeper/grimkeeper/internal/services/timer"
	voiceService "github.com/grimkeeper/grimkeeper/internal/services/voice"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// The gateway session is created up front so the service adapters and
	// the bot share one connection
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	// Initialize repositories
	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	games, err := gameRepo.NewRedis(&gameRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create game repository: %v", err)
	}

	timers, err := timerRepo.NewRedis(&timerRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create timer repository: %v", err)
	}

	storytellers, err := storytellerRepo.NewRedis(&storytellerRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create storyteller repository: %v", err)
	}

	clk := &clock.DefaultClock{}
	classifier := roles.NewPrefixClassifier()

	// Initialize services
	sessionSvc, err := sessionService.NewService(&sessionService.Config{
		SessionRepo: sessions,
		GameRepo:    games,
		Clock:       clk,
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	gameSvc, err := gameService.NewService(&gameService.Config{
		GameRepo:        games,
		StorytellerRepo: storytellers,
		SessionService:  sessionSvc,
		Classifier:      classifier,
		Clock:           clk,
		UUIDGenerator:   uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create game service: %v", err)
	}

	// The timer's fire callback gathers the town, and a manual gather can
	// preempt the timer, so the two services reference each other. The timer
	// is built first against a variable the voice service fills in after.
	var voiceSvc voiceService.Service

	timerSvc, err := timerService.NewService(&timerService.Config{
		TimerRepo: timers,
		Notifier:  discord.NewNotifier(dg),
		Resolver:  discord.NewChannelResolver(dg, sessionSvc),
		Clock:     clk,
		OnFired: func(ctx context.Context, guildID, categoryID string) {
			if voiceSvc == nil {
				return
			}
			out, err := voiceSvc.CallTownspeople(ctx, &voiceService.CallTownspeopleInput{
				GuildID:    guildID,
				CategoryID: categoryID,
			})
			if err != nil {
				log.Printf("failed to call townspeople in guild %s: %v", guildID, err)
				return
			}
			log.Printf("timer fired in guild %s: moved %d, skipped %d, failed %d",
				guildID, out.Moved, out.Skipped, out.Failed)
		},
	})
	if err != nil {
		log.Fatalf("Failed to create timer service: %v", err)
	}

	voiceSvc, err = voiceService.NewService(&voiceService.Config{
		SessionService: sessionSvc,
		Classifier:     classifier,
		Roster:         discord.NewRoster(dg),
		Editor:         discord.NewChannelEditor(dg),
		Mover:          discord.NewMover(dg),
		Muter:          discord.NewMuter(dg),
		Permissions:    discord.NewPermissionChecker(dg),
		TimerService:   timerSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create voice service: %v", err)
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Session:        dg,
		SessionService: sessionSvc,
		GameService:    gameSvc,
		TimerService:   timerSvc,
		VoiceService:   voiceSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Reschedule countdowns that were live before the last shutdown
	restored, err := timerSvc.Restore(context.Background())
	if err != nil {
		log.Printf("Failed to restore timers: %v", err)
	} else if restored.Restored > 0 || restored.Dropped > 0 {
		log.Printf("Restored %d timers, dropped %d stale", restored.Restored, restored.Dropped)
	}

	// Sweep sessions nobody has touched in a long time
	cleanupDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(6 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-cleanupDone:
				return
			case <-ticker.C:
				if _, err := sessionSvc.CleanupInactive(context.Background(), &sessionService.CleanupInactiveInput{
					MaxIdle: 30 * 24 * time.Hour,
				}); err != nil {
					log.Printf("Failed to clean up inactive sessions: %v", err)
				}
			}
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	close(cleanupDone)

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}
