package game

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/grimkeeper/grimkeeper/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) activeGame(id string) *models.Game {
	return &models.Game{
		ID:            id,
		GuildID:       "guild-1",
		CategoryID:    "cat-10",
		Script:        "Trouble Brewing",
		StartTime:     s.testNow,
		Players:       []string{"player-a", "player-b", "player-c"},
		PlayerCount:   3,
		StorytellerID: "st-1",
		IsActive:      true,
	}
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetGame() {
	game := s.activeGame("test-game-id")

	err := s.repo.SaveGame(context.Background(), &SaveGameInput{Game: game})
	s.Require().NoError(err)

	got, err := s.repo.GetGame(context.Background(), &GetGameInput{GameID: "test-game-id"})
	s.Require().NoError(err)
	s.Equal("test-game-id", got.ID)
	s.Equal("guild-1", got.GuildID)
	s.Equal("cat-10", got.CategoryID)
	s.Equal("Trouble Brewing", got.Script)
	s.Equal([]string{"player-a", "player-b", "player-c"}, got.Players)
	s.Equal(3, got.PlayerCount)
	s.True(got.IsActive)
	s.Equal(s.testNow.Unix(), got.StartTime.Unix())
}

func (s *RedisRepositoryTestSuite) TestGetActiveGame() {
	game := s.activeGame("test-game-id")
	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: game}))

	got, err := s.repo.GetActiveGame(context.Background(), &GetActiveGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-10",
	})
	s.Require().NoError(err)
	s.Equal("test-game-id", got.ID)

	// Another category has no active game
	_, err = s.repo.GetActiveGame(context.Background(), &GetActiveGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-20",
	})
	s.Require().ErrorIs(err, ErrGameNotFound)
}

func (s *RedisRepositoryTestSuite) TestEndingGameClearsActiveIndex() {
	game := s.activeGame("test-game-id")
	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: game}))

	game.IsActive = false
	game.Winner = models.WinnerEvil
	game.EndTime = s.testNow.Add(time.Hour)
	game.CompletedAt = s.testNow.Add(time.Hour)
	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: game}))

	_, err := s.repo.GetActiveGame(context.Background(), &GetActiveGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-10",
	})
	s.Require().ErrorIs(err, ErrGameNotFound)

	got, err := s.repo.GetGame(context.Background(), &GetGameInput{GameID: "test-game-id"})
	s.Require().NoError(err)
	s.False(got.IsActive)
	s.Equal(models.WinnerEvil, got.Winner)
}

func (s *RedisRepositoryTestSuite) TestGetCompletedGames() {
	for i, id := range []string{"game-1", "game-2", "game-3"} {
		game := s.activeGame(id)
		game.IsActive = false
		game.Winner = models.WinnerGood
		game.EndTime = s.testNow.Add(time.Duration(i+1) * time.Hour)
		game.CompletedAt = game.EndTime
		s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: game}))
	}

	games, err := s.repo.GetCompletedGames(context.Background(), &GetCompletedGamesInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	// Newest first
	s.Equal("game-3", games[0].ID)
	s.Equal("game-1", games[2].ID)

	games, err = s.repo.GetCompletedGames(context.Background(), &GetCompletedGamesInput{
		GuildID: "guild-1",
		Limit:   2,
	})
	s.Require().NoError(err)
	s.Len(games, 2)
}

func (s *RedisRepositoryTestSuite) TestDeleteGame() {
	game := s.activeGame("test-game-id")
	game.IsActive = false
	game.Winner = models.WinnerTie
	game.EndTime = s.testNow.Add(time.Hour)
	game.CompletedAt = game.EndTime
	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: game}))

	s.Require().NoError(s.repo.DeleteGame(context.Background(), &DeleteGameInput{GameID: "test-game-id"}))

	_, err := s.repo.GetGame(context.Background(), &GetGameInput{GameID: "test-game-id"})
	s.Require().ErrorIs(err, ErrGameNotFound)

	games, err := s.repo.GetCompletedGames(context.Background(), &GetCompletedGamesInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *RedisRepositoryTestSuite) TestDeleteActiveGameDropsIndex() {
	game := s.activeGame("test-game-id")
	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: game}))

	s.Require().NoError(s.repo.DeleteGame(context.Background(), &DeleteGameInput{GameID: "test-game-id"}))

	_, err := s.repo.GetActiveGame(context.Background(), &GetActiveGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-10",
	})
	s.Require().ErrorIs(err, ErrGameNotFound)
}
