package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/grimkeeper/grimkeeper/internal/common/clock"
	"github.com/grimkeeper/grimkeeper/internal/common/uuid"
	"github.com/grimkeeper/grimkeeper/internal/models"
	gameRepo "github.com/grimkeeper/grimkeeper/internal/repositories/game"
	storytellerRepo "github.com/grimkeeper/grimkeeper/internal/repositories/storyteller"
	"github.com/grimkeeper/grimkeeper/internal/roles"
	sessionSvc "github.com/grimkeeper/grimkeeper/internal/services/session"
)

// service implements the Service interface
type service struct {
	gameRepo        gameRepo.Repository
	storytellerRepo storytellerRepo.Repository
	sessions        sessionSvc.Service
	classifier      roles.Classifier
	clock           clock.Clock
	uuider          uuid.UUID
}

// NewService creates a new game service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}
	if cfg.StorytellerRepo == nil {
		return nil, ErrNilStorytellerRepo
	}
	if cfg.SessionService == nil {
		return nil, ErrNilSessionService
	}
	if cfg.Classifier == nil {
		return nil, ErrNilClassifier
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		gameRepo:        cfg.GameRepo,
		storytellerRepo: cfg.StorytellerRepo,
		sessions:        cfg.SessionService,
		classifier:      cfg.Classifier,
		clock:           cfg.Clock,
		uuider:          cfg.UUIDGenerator,
	}, nil
}

// StartGame starts a new game from an occupancy snapshot. The session must
// exist, no game may already be active, and the snapshot must contain exactly
// one primary storyteller.
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
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

	existing, err := s.gameRepo.GetActiveGame(ctx, &gameRepo.GetActiveGameInput{
		GuildID:    input.GuildID,
		CategoryID: input.CategoryID,
	})
	if err != nil && !errors.Is(err, gameRepo.ErrGameNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrGameInProgress
	}

	storytellerID, players, err := s.classifySnapshot(input.Occupants)
	if err != nil {
		return nil, err
	}

	game := &models.Game{
		ID:            s.uuider.NewUUID(),
		GuildID:       input.GuildID,
		CategoryID:    input.CategoryID,
		Script:        input.Script,
		CustomName:    input.CustomName,
		StartTime:     s.clock.Now(),
		Players:       players,
		PlayerCount:   len(players),
		StorytellerID: storytellerID,
		IsActive:      true,
	}

	if err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{Game: game}); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	sess.ActiveGameID = game.ID
	sess.StorytellerUserID = storytellerID
	if err := s.sessions.UpdateSession(ctx, &sessionSvc.UpdateSessionInput{Session: sess}); err != nil {
		return nil, fmt.Errorf("failed to link game to session: %w", err)
	}

	return &StartGameOutput{Game: game}, nil
}

// EndGame concludes the active game. Aggregates are applied only for a
// decisive Good or Evil result told by a known storyteller.
func (s *service) EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error) {
	if !input.Winner.IsValid() {
		return nil, ErrInvalidWinner
	}

	game, err := s.gameRepo.GetActiveGame(ctx, &gameRepo.GetActiveGameInput{
		GuildID:    input.GuildID,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrNoActiveGame
		}
		return nil, err
	}

	now := s.clock.Now()
	game.EndTime = now
	game.CompletedAt = now
	game.Winner = input.Winner
	game.IsActive = false

	// Aggregates go first. Once the closing write lands the active index is
	// gone and a retry cannot reach this game again, so a failed stats
	// write here leaves the game active and retryable; a failed closing
	// write below reverses the increments.
	statsApplied := false
	result := gameResult(game, input.StorytellerName)
	if result != nil {
		if err := s.storytellerRepo.ApplyGameResult(ctx, &storytellerRepo.ApplyGameResultInput{
			Result: result,
		}); err != nil {
			return nil, fmt.Errorf("failed to apply storyteller stats: %w", err)
		}
		statsApplied = true
	}

	if err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{Game: game}); err != nil {
		if statsApplied {
			if rerr := s.storytellerRepo.ReverseGameResult(ctx, &storytellerRepo.ReverseGameResultInput{
				Result: result,
			}); rerr != nil {
				log.Printf("failed to roll back storyteller stats for game %s: %v", game.ID, rerr)
			}
		}
		return nil, fmt.Errorf("failed to complete game: %w", err)
	}

	if err := s.sessions.ClearActiveGameRefs(ctx, &sessionSvc.ClearActiveGameRefsInput{
		GuildID: input.GuildID,
		GameID:  game.ID,
	}); err != nil {
		log.Printf("failed to clear active game refs for game %s: %v", game.ID, err)
	}

	return &EndGameOutput{Game: game, StatsApplied: statsApplied}, nil
}

// CancelGame discards the active game. Nothing is recorded: no completed
// game, no aggregates.
func (s *service) CancelGame(ctx context.Context, input *CancelGameInput) error {
	game, err := s.gameRepo.GetActiveGame(ctx, &gameRepo.GetActiveGameInput{
		GuildID:    input.GuildID,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return ErrNoActiveGame
		}
		return err
	}

	if err := s.gameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{GameID: game.ID}); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	if err := s.sessions.ClearActiveGameRefs(ctx, &sessionSvc.ClearActiveGameRefsInput{
		GuildID: input.GuildID,
		GameID:  game.ID,
	}); err != nil {
		log.Printf("failed to clear active game refs for game %s: %v", game.ID, err)
	}

	return nil
}

// DeleteGame removes a game record. For a completed game that updated
// aggregates, the exact inverse deltas are applied first so the storyteller's
// totals end up as if the game never happened.
func (s *service) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{GameID: input.GameID})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	if game.GuildID != input.GuildID {
		return ErrGameNotFound
	}

	if result := gameResult(game, ""); result != nil {
		if err := s.storytellerRepo.ReverseGameResult(ctx, &storytellerRepo.ReverseGameResultInput{
			Result: result,
		}); err != nil {
			return fmt.Errorf("failed to reverse storyteller stats: %w", err)
		}
	}

	if err := s.gameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{GameID: game.ID}); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	if game.IsActive {
		if err := s.sessions.ClearActiveGameRefs(ctx, &sessionSvc.ClearActiveGameRefsInput{
			GuildID: input.GuildID,
			GameID:  game.ID,
		}); err != nil {
			log.Printf("failed to clear active game refs for game %s: %v", game.ID, err)
		}
	}

	return nil
}

// GetActiveGame retrieves the session's active game, if any
func (s *service) GetActiveGame(ctx context.Context, input *GetActiveGameInput) (*models.Game, error) {
	game, err := s.gameRepo.GetActiveGame(ctx, &gameRepo.GetActiveGameInput{
		GuildID:    input.GuildID,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrNoActiveGame
		}
		return nil, err
	}
	return game, nil
}

// GetHistory retrieves a guild's completed games, newest first
func (s *service) GetHistory(ctx context.Context, input *GetHistoryInput) ([]*models.Game, error) {
	return s.gameRepo.GetCompletedGames(ctx, &gameRepo.GetCompletedGamesInput{
		GuildID: input.GuildID,
		Limit:   input.Limit,
	})
}

// ClearHistory removes all completed games for a guild. Aggregates are left
// alone: wiping history is housekeeping, not a retroactive score change.
func (s *service) ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error) {
	games, err := s.gameRepo.GetCompletedGames(ctx, &gameRepo.GetCompletedGamesInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, err
	}

	deleted := 0
	for _, game := range games {
		if err := s.gameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{GameID: game.ID}); err != nil {
			return nil, fmt.Errorf("failed to delete game %s: %w", game.ID, err)
		}
		deleted++
	}

	return &ClearHistoryOutput{Deleted: deleted}, nil
}

// GetStorytellerStats retrieves one storyteller's aggregates
func (s *service) GetStorytellerStats(ctx context.Context, input *GetStorytellerStatsInput) (*models.StorytellerStats, error) {
	return s.storytellerRepo.GetStats(ctx, &storytellerRepo.GetStatsInput{
		GuildID:       input.GuildID,
		StorytellerID: input.StorytellerID,
	})
}

// ListStorytellerStats retrieves every storyteller's aggregates for a guild,
// most games first
func (s *service) ListStorytellerStats(ctx context.Context, input *ListStorytellerStatsInput) ([]*models.StorytellerStats, error) {
	stats, err := s.storytellerRepo.ListStats(ctx, &storytellerRepo.ListStatsInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].TotalGames > stats[j].TotalGames
	})
	return stats, nil
}

// classifySnapshot splits an occupancy snapshot into the primary storyteller
// and the player list. Bots never count; co-storytellers and spectators are
// present but take no player slot.
func (s *service) classifySnapshot(occupants []models.Occupant) (string, []string, error) {
	storytellerID := ""
	players := make([]string, 0, len(occupants))

	for _, occ := range occupants {
		if occ.IsBot {
			continue
		}
		switch s.classifier.Classify(occ) {
		case models.RoleStoryteller:
			if storytellerID != "" {
				return "", nil, ErrMultipleStorytellers
			}
			storytellerID = occ.UserID
		case models.RolePlayer:
			players = append(players, occ.UserID)
		}
	}

	if storytellerID == "" {
		return "", nil, ErrNoStoryteller
	}

	return storytellerID, players, nil
}

// gameResult builds the aggregate deltas for a game, nil when the game does
// not move aggregates (tie, or no storyteller on record)
func gameResult(game *models.Game, storytellerName string) *storytellerRepo.GameResult {
	if game.StorytellerID == "" {
		return nil
	}
	if game.Winner != models.WinnerGood && game.Winner != models.WinnerEvil {
		return nil
	}

	return &storytellerRepo.GameResult{
		GuildID:         game.GuildID,
		StorytellerID:   game.StorytellerID,
		StorytellerName: storytellerName,
		Winner:          game.Winner,
		Script:          models.ScriptCategory(game.Script),
		DurationSeconds: int64(game.Duration().Seconds()),
		PlayerCount:     game.PlayerCount,
		CompletedAtUnix: game.CompletedAt.Unix(),
	}
}
