package game

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	clockMocks "github.com/grimkeeper/grimkeeper/internal/common/clock/mocks"
	uuidMocks "github.com/grimkeeper/grimkeeper/internal/common/uuid/mocks"
	"github.com/grimkeeper/grimkeeper/internal/models"
	gameRepo "github.com/grimkeeper/grimkeeper/internal/repositories/game"
	sessionRepo "github.com/grimkeeper/grimkeeper/internal/repositories/session"
	storytellerRepo "github.com/grimkeeper/grimkeeper/internal/repositories/storyteller"
	"github.com/grimkeeper/grimkeeper/internal/roles"
	sessionSvc "github.com/grimkeeper/grimkeeper/internal/services/session"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type GameServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mr           *miniredis.Miniredis
	client       *redis.Client
	games        gameRepo.Repository
	storytellers storytellerRepo.Repository
	sessions     sessionSvc.Service
	clk          *clockMocks.MockClock
	uuider       *uuidMocks.MockUUID
	svc          Service
	now          time.Time
	idSeq        int
}

func (s *GameServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	sessRepo, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.games, err = gameRepo.NewRedis(&gameRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.storytellers, err = storytellerRepo.NewRedis(&storytellerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.now = time.Date(2025, 4, 5, 20, 0, 0, 0, time.UTC)
	s.idSeq = 0

	s.clk = clockMocks.NewMockClock(s.ctrl)
	s.clk.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()

	s.uuider = uuidMocks.NewMockUUID(s.ctrl)
	s.uuider.EXPECT().NewUUID().DoAndReturn(func() string {
		s.idSeq++
		return fmt.Sprintf("game-%d", s.idSeq)
	}).AnyTimes()

	s.sessions, err = sessionSvc.NewService(&sessionSvc.Config{
		SessionRepo: sessRepo,
		GameRepo:    s.games,
		Clock:       s.clk,
	})
	s.Require().NoError(err)

	svc, err := NewService(&Config{
		GameRepo:        s.games,
		StorytellerRepo: s.storytellers,
		SessionService:  s.sessions,
		Classifier:      roles.NewPrefixClassifier(),
		Clock:           s.clk,
		UUIDGenerator:   s.uuider,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *GameServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.ctrl.Finish()
}

func TestGameServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}

func (s *GameServiceTestSuite) bindSession() {
	_, err := s.sessions.CreateSession(context.Background(), &sessionSvc.CreateSessionInput{
		GuildID:              "guild-1",
		CategoryID:           "cat-1",
		DestinationChannelID: "town-square",
	})
	s.Require().NoError(err)
}

// townOccupants is a typical lobby: a storyteller, three players, a
// spectator, and the bot itself
func townOccupants() []models.Occupant {
	return []models.Occupant{
		{UserID: "st-1", DisplayName: "(ST) Sam"},
		{UserID: "player-a", DisplayName: "Alice"},
		{UserID: "player-b", DisplayName: "Bob"},
		{UserID: "player-c", DisplayName: "Carol"},
		{UserID: "spec-1", DisplayName: "!Watcher"},
		{UserID: "bot-1", DisplayName: "Grimkeeper", IsBot: true},
	}
}

func (s *GameServiceTestSuite) startGame() *models.Game {
	out, err := s.svc.StartGame(context.Background(), &StartGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
		Script:     "Trouble Brewing",
		Occupants:  townOccupants(),
	})
	s.Require().NoError(err)
	return out.Game
}

func (s *GameServiceTestSuite) TestStartGameRequiresSession() {
	_, err := s.svc.StartGame(context.Background(), &StartGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-unbound",
		Occupants:  townOccupants(),
	})
	s.Require().ErrorIs(err, ErrNoSession)
}

func (s *GameServiceTestSuite) TestStartGameBuildsRosterFromSnapshot() {
	s.bindSession()

	game := s.startGame()
	s.Equal("game-1", game.ID)
	s.Equal("st-1", game.StorytellerID)
	s.Equal([]string{"player-a", "player-b", "player-c"}, game.Players)
	s.Equal(3, game.PlayerCount)
	s.True(game.IsActive)

	// The session now points at the game
	sess, err := s.sessions.GetSession(context.Background(), &sessionSvc.GetSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	})
	s.Require().NoError(err)
	s.Equal("game-1", sess.ActiveGameID)
	s.Equal("st-1", sess.StorytellerUserID)
}

func (s *GameServiceTestSuite) TestStartGameRequiresExactlyOneStoryteller() {
	s.bindSession()

	_, err := s.svc.StartGame(context.Background(), &StartGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
		Occupants: []models.Occupant{
			{UserID: "player-a", DisplayName: "Alice"},
		},
	})
	s.Require().ErrorIs(err, ErrNoStoryteller)

	_, err = s.svc.StartGame(context.Background(), &StartGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
		Occupants: []models.Occupant{
			{UserID: "st-1", DisplayName: "(ST) Sam"},
			{UserID: "st-2", DisplayName: "(ST) Pat"},
		},
	})
	s.Require().ErrorIs(err, ErrMultipleStorytellers)

	// A co-storyteller does not trip the check
	_, err = s.svc.StartGame(context.Background(), &StartGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
		Occupants: []models.Occupant{
			{UserID: "st-1", DisplayName: "(ST) Sam"},
			{UserID: "st-2", DisplayName: "(Co-ST) Pat"},
			{UserID: "player-a", DisplayName: "Alice"},
		},
	})
	s.Require().NoError(err)
}

func (s *GameServiceTestSuite) TestOnlyOneActiveGamePerSession() {
	s.bindSession()
	s.startGame()

	_, err := s.svc.StartGame(context.Background(), &StartGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
		Occupants:  townOccupants(),
	})
	s.Require().ErrorIs(err, ErrGameInProgress)
}

func (s *GameServiceTestSuite) TestEndGameAppliesStorytellerStats() {
	s.bindSession()
	s.startGame()

	s.now = s.now.Add(90 * time.Minute)
	out, err := s.svc.EndGame(context.Background(), &EndGameInput{
		GuildID:         "guild-1",
		CategoryID:      "cat-1",
		Winner:          models.WinnerEvil,
		StorytellerName: "Sam",
	})
	s.Require().NoError(err)
	s.True(out.StatsApplied)
	s.False(out.Game.IsActive)
	s.Equal(models.WinnerEvil, out.Game.Winner)
	s.Equal(90*time.Minute, out.Game.Duration())

	stats, err := s.storytellers.GetStats(context.Background(), &storytellerRepo.GetStatsInput{
		GuildID:       "guild-1",
		StorytellerID: "st-1",
	})
	s.Require().NoError(err)
	s.Equal(1, stats.TotalGames)
	s.Equal(1, stats.EvilWins)
	s.Equal(0, stats.GoodWins)
	s.Equal(1, stats.TBGames)
	s.Equal(1, stats.TBEvilWins)
	s.Equal(int64(5400), stats.TotalDuration)
	s.Equal(3, stats.TotalPlayerCount)
	s.Equal("Sam", stats.StorytellerName)

	// The session's active game pointer is cleared
	sess, err := s.sessions.GetSession(context.Background(), &sessionSvc.GetSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	})
	s.Require().NoError(err)
	s.Empty(sess.ActiveGameID)
}

// flakyGameRepo fails completion writes on demand
type flakyGameRepo struct {
	gameRepo.Repository
	failCompletions bool
}

func (r *flakyGameRepo) SaveGame(ctx context.Context, input *gameRepo.SaveGameInput) error {
	if r.failCompletions && !input.Game.IsActive {
		return errors.New("connection reset")
	}
	return r.Repository.SaveGame(ctx, input)
}

func (s *GameServiceTestSuite) TestEndGameIsRetryableAfterFailedCompletion() {
	s.bindSession()

	flaky := &flakyGameRepo{Repository: s.games, failCompletions: true}
	svc, err := NewService(&Config{
		GameRepo:        flaky,
		StorytellerRepo: s.storytellers,
		SessionService:  s.sessions,
		Classifier:      roles.NewPrefixClassifier(),
		Clock:           s.clk,
		UUIDGenerator:   s.uuider,
	})
	s.Require().NoError(err)

	_, err = svc.StartGame(context.Background(), &StartGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
		Script:     "Trouble Brewing",
		Occupants:  townOccupants(),
	})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Hour)
	_, err = svc.EndGame(context.Background(), &EndGameInput{
		GuildID:         "guild-1",
		CategoryID:      "cat-1",
		Winner:          models.WinnerGood,
		StorytellerName: "Sam",
	})
	s.Require().Error(err)

	// The game is still active and the aggregates net out to nothing
	_, err = svc.GetActiveGame(context.Background(), &GetActiveGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	})
	s.Require().NoError(err)

	stats, err := s.storytellers.GetStats(context.Background(), &storytellerRepo.GetStatsInput{
		GuildID:       "guild-1",
		StorytellerID: "st-1",
	})
	s.Require().NoError(err)
	s.Zero(stats.TotalGames)
	s.Zero(stats.GoodWins)
	s.Zero(stats.TotalDuration)

	// The retry completes and applies the stats exactly once
	flaky.failCompletions = false
	out, err := svc.EndGame(context.Background(), &EndGameInput{
		GuildID:         "guild-1",
		CategoryID:      "cat-1",
		Winner:          models.WinnerGood,
		StorytellerName: "Sam",
	})
	s.Require().NoError(err)
	s.True(out.StatsApplied)

	stats, err = s.storytellers.GetStats(context.Background(), &storytellerRepo.GetStatsInput{
		GuildID:       "guild-1",
		StorytellerID: "st-1",
	})
	s.Require().NoError(err)
	s.Equal(1, stats.TotalGames)
	s.Equal(1, stats.GoodWins)

	_, err = svc.GetActiveGame(context.Background(), &GetActiveGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	})
	s.Require().ErrorIs(err, ErrNoActiveGame)
}

func (s *GameServiceTestSuite) TestEndGameTieSkipsStats() {
	s.bindSession()
	s.startGame()

	out, err := s.svc.EndGame(context.Background(), &EndGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
		Winner:     models.WinnerTie,
	})
	s.Require().NoError(err)
	s.False(out.StatsApplied)

	stats, err := s.storytellers.GetStats(context.Background(), &storytellerRepo.GetStatsInput{
		GuildID:       "guild-1",
		StorytellerID: "st-1",
	})
	s.Require().NoError(err)
	s.Zero(stats.TotalGames)
}

func (s *GameServiceTestSuite) TestEndGameValidatesWinner() {
	s.bindSession()
	s.startGame()

	_, err := s.svc.EndGame(context.Background(), &EndGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
		Winner:     models.Winner("Neutral"),
	})
	s.Require().ErrorIs(err, ErrInvalidWinner)
}

func (s *GameServiceTestSuite) TestEndGameWithoutActiveGame() {
	s.bindSession()

	_, err := s.svc.EndGame(context.Background(), &EndGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
		Winner:     models.WinnerGood,
	})
	s.Require().ErrorIs(err, ErrNoActiveGame)
}

func (s *GameServiceTestSuite) TestCancelGameLeavesNoTrace() {
	s.bindSession()
	game := s.startGame()

	s.Require().NoError(s.svc.CancelGame(context.Background(), &CancelGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	}))

	_, err := s.games.GetGame(context.Background(), &gameRepo.GetGameInput{GameID: game.ID})
	s.Require().ErrorIs(err, gameRepo.ErrGameNotFound)

	history, err := s.svc.GetHistory(context.Background(), &GetHistoryInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Empty(history)

	// A new game can start immediately
	s.startGame()
}

func (s *GameServiceTestSuite) TestDeleteGameRestoresAggregatesExactly() {
	s.bindSession()

	// First game: Good wins after an hour
	game := s.startGame()
	s.now = s.now.Add(time.Hour)
	_, err := s.svc.EndGame(context.Background(), &EndGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
		Winner:     models.WinnerGood,
	})
	s.Require().NoError(err)

	// Second game: Evil wins after two hours
	second := s.startGame()
	s.now = s.now.Add(2 * time.Hour)
	_, err = s.svc.EndGame(context.Background(), &EndGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
		Winner:     models.WinnerEvil,
	})
	s.Require().NoError(err)

	before, err := s.storytellers.GetStats(context.Background(), &storytellerRepo.GetStatsInput{
		GuildID:       "guild-1",
		StorytellerID: "st-1",
	})
	s.Require().NoError(err)
	s.Equal(2, before.TotalGames)

	// Deleting the second game must restore the aggregates to exactly the
	// post-first-game state
	s.Require().NoError(s.svc.DeleteGame(context.Background(), &DeleteGameInput{
		GuildID: "guild-1",
		GameID:  second.ID,
	}))

	after, err := s.storytellers.GetStats(context.Background(), &storytellerRepo.GetStatsInput{
		GuildID:       "guild-1",
		StorytellerID: "st-1",
	})
	s.Require().NoError(err)
	s.Equal(1, after.TotalGames)
	s.Equal(1, after.GoodWins)
	s.Equal(0, after.EvilWins)
	s.Equal(1, after.TBGames)
	s.Equal(1, after.TBGoodWins)
	s.Equal(0, after.TBEvilWins)
	s.Equal(int64(3600), after.TotalDuration)
	s.Equal(3, after.TotalPlayerCount)

	// The first game's record survives
	_, err = s.games.GetGame(context.Background(), &gameRepo.GetGameInput{GameID: game.ID})
	s.Require().NoError(err)
}

func (s *GameServiceTestSuite) TestDeleteGameScopedToGuild() {
	s.bindSession()
	game := s.startGame()

	err := s.svc.DeleteGame(context.Background(), &DeleteGameInput{
		GuildID: "guild-other",
		GameID:  game.ID,
	})
	s.Require().ErrorIs(err, ErrGameNotFound)
}

func (s *GameServiceTestSuite) TestHistoryAndClearHistory() {
	s.bindSession()

	for i := 0; i < 3; i++ {
		s.startGame()
		s.now = s.now.Add(time.Hour)
		_, err := s.svc.EndGame(context.Background(), &EndGameInput{
			GuildID:    "guild-1",
			CategoryID: "cat-1",
			Winner:     models.WinnerGood,
		})
		s.Require().NoError(err)
	}

	history, err := s.svc.GetHistory(context.Background(), &GetHistoryInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Require().Len(history, 3)
	// Newest first
	s.Equal("game-3", history[0].ID)

	out, err := s.svc.ClearHistory(context.Background(), &ClearHistoryInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Equal(3, out.Deleted)

	history, err = s.svc.GetHistory(context.Background(), &GetHistoryInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Empty(history)
}

func (s *GameServiceTestSuite) TestStorytellerLeaderboardOrder() {
	s.bindSession()

	// Sam tells two games, Dana tells one
	for i := 0; i < 2; i++ {
		s.startGame()
		s.now = s.now.Add(time.Hour)
		_, err := s.svc.EndGame(context.Background(), &EndGameInput{
			GuildID:         "guild-1",
			CategoryID:      "cat-1",
			Winner:          models.WinnerGood,
			StorytellerName: "Sam",
		})
		s.Require().NoError(err)
	}

	_, err := s.svc.StartGame(context.Background(), &StartGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
		Script:     "Bad Moon Rising",
		Occupants: []models.Occupant{
			{UserID: "st-2", DisplayName: "(ST) Dana"},
			{UserID: "player-a", DisplayName: "Alice"},
			{UserID: "player-b", DisplayName: "Bob"},
		},
	})
	s.Require().NoError(err)
	s.now = s.now.Add(time.Hour)
	_, err = s.svc.EndGame(context.Background(), &EndGameInput{
		GuildID:         "guild-1",
		CategoryID:      "cat-1",
		Winner:          models.WinnerEvil,
		StorytellerName: "Dana",
	})
	s.Require().NoError(err)

	stats, err := s.svc.ListStorytellerStats(context.Background(), &ListStorytellerStatsInput{
		GuildID: "guild-1",
	})
	s.Require().NoError(err)
	s.Require().Len(stats, 2)
	s.Equal("st-1", stats[0].StorytellerID)
	s.Equal(2, stats[0].TotalGames)
	s.Equal("st-2", stats[1].StorytellerID)
	s.Equal(1, stats[1].EvilWins)

	one, err := s.svc.GetStorytellerStats(context.Background(), &GetStorytellerStatsInput{
		GuildID:       "guild-1",
		StorytellerID: "st-2",
	})
	s.Require().NoError(err)
	s.Equal("Dana", one.StorytellerName)
	s.Equal(1, one.BMRGames)
}
