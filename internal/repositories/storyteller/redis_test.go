package storyteller

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

func (s *RedisRepositoryTestSuite) result(winner models.Winner, script models.ScriptKind) *GameResult {
	return &GameResult{
		GuildID:         "guild-1",
		StorytellerID:   "st-1",
		StorytellerName: "Alice",
		Winner:          winner,
		Script:          script,
		DurationSeconds: 3600,
		PlayerCount:     8,
		CompletedAtUnix: s.testNow.Unix(),
	}
}

func (s *RedisRepositoryTestSuite) TestGetStatsZeroValuedWhenAbsent() {
	stats, err := s.repo.GetStats(context.Background(), &GetStatsInput{
		GuildID:       "guild-1",
		StorytellerID: "st-unknown",
	})
	s.Require().NoError(err)
	s.Equal("guild-1", stats.GuildID)
	s.Equal("st-unknown", stats.StorytellerID)
	s.Zero(stats.TotalGames)
	s.Zero(stats.GoodWins)
	s.True(stats.LastGameAt.IsZero())
}

func (s *RedisRepositoryTestSuite) TestApplyGameResult() {
	err := s.repo.ApplyGameResult(context.Background(), &ApplyGameResultInput{
		Result: s.result(models.WinnerEvil, models.ScriptTroubleBrewing),
	})
	s.Require().NoError(err)

	stats, err := s.repo.GetStats(context.Background(), &GetStatsInput{
		GuildID:       "guild-1",
		StorytellerID: "st-1",
	})
	s.Require().NoError(err)
	s.Equal(1, stats.TotalGames)
	s.Equal(0, stats.GoodWins)
	s.Equal(1, stats.EvilWins)
	s.Equal(1, stats.TBGames)
	s.Equal(1, stats.TBEvilWins)
	s.Equal(0, stats.TBGoodWins)
	s.Equal(int64(3600), stats.TotalDuration)
	s.Equal(8, stats.TotalPlayerCount)
	s.Equal("Alice", stats.StorytellerName)
	s.Equal(s.testNow.Unix(), stats.LastGameAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestApplyAccumulatesAcrossGames() {
	s.Require().NoError(s.repo.ApplyGameResult(context.Background(), &ApplyGameResultInput{
		Result: s.result(models.WinnerGood, models.ScriptTroubleBrewing),
	}))
	s.Require().NoError(s.repo.ApplyGameResult(context.Background(), &ApplyGameResultInput{
		Result: s.result(models.WinnerEvil, models.ScriptSectsAndViolets),
	}))

	stats, err := s.repo.GetStats(context.Background(), &GetStatsInput{
		GuildID:       "guild-1",
		StorytellerID: "st-1",
	})
	s.Require().NoError(err)
	s.Equal(2, stats.TotalGames)
	s.Equal(1, stats.GoodWins)
	s.Equal(1, stats.EvilWins)
	s.Equal(1, stats.TBGames)
	s.Equal(1, stats.SNVGames)
	s.Equal(int64(7200), stats.TotalDuration)
	s.Equal(16, stats.TotalPlayerCount)
}

func (s *RedisRepositoryTestSuite) TestUntrackedScriptSkipsPerScriptCounters() {
	s.Require().NoError(s.repo.ApplyGameResult(context.Background(), &ApplyGameResultInput{
		Result: s.result(models.WinnerGood, models.ScriptOther),
	}))

	stats, err := s.repo.GetStats(context.Background(), &GetStatsInput{
		GuildID:       "guild-1",
		StorytellerID: "st-1",
	})
	s.Require().NoError(err)
	s.Equal(1, stats.TotalGames)
	s.Zero(stats.TBGames)
	s.Zero(stats.SNVGames)
	s.Zero(stats.BMRGames)
}

func (s *RedisRepositoryTestSuite) TestReverseGameResult() {
	s.Require().NoError(s.repo.ApplyGameResult(context.Background(), &ApplyGameResultInput{
		Result: s.result(models.WinnerGood, models.ScriptBadMoonRising),
	}))
	s.Require().NoError(s.repo.ApplyGameResult(context.Background(), &ApplyGameResultInput{
		Result: s.result(models.WinnerEvil, models.ScriptBadMoonRising),
	}))

	s.Require().NoError(s.repo.ReverseGameResult(context.Background(), &ReverseGameResultInput{
		Result: s.result(models.WinnerEvil, models.ScriptBadMoonRising),
	}))

	stats, err := s.repo.GetStats(context.Background(), &GetStatsInput{
		GuildID:       "guild-1",
		StorytellerID: "st-1",
	})
	s.Require().NoError(err)
	s.Equal(1, stats.TotalGames)
	s.Equal(1, stats.GoodWins)
	s.Equal(0, stats.EvilWins)
	s.Equal(1, stats.BMRGames)
	s.Equal(1, stats.BMRGoodWins)
	s.Equal(0, stats.BMREvilWins)
	s.Equal(int64(3600), stats.TotalDuration)
	s.Equal(8, stats.TotalPlayerCount)
}

func (s *RedisRepositoryTestSuite) TestReverseClampsAtZero() {
	s.Require().NoError(s.repo.ApplyGameResult(context.Background(), &ApplyGameResultInput{
		Result: s.result(models.WinnerGood, models.ScriptTroubleBrewing),
	}))

	// Reverse twice: the second pass must not drive counters negative
	for i := 0; i < 2; i++ {
		s.Require().NoError(s.repo.ReverseGameResult(context.Background(), &ReverseGameResultInput{
			Result: s.result(models.WinnerGood, models.ScriptTroubleBrewing),
		}))
	}

	stats, err := s.repo.GetStats(context.Background(), &GetStatsInput{
		GuildID:       "guild-1",
		StorytellerID: "st-1",
	})
	s.Require().NoError(err)
	s.Zero(stats.TotalGames)
	s.Zero(stats.GoodWins)
	s.Zero(stats.TBGames)
	s.Zero(stats.TotalDuration)
	s.Zero(stats.TotalPlayerCount)
}

func (s *RedisRepositoryTestSuite) TestReverseOnAbsentStatsIsNoOp() {
	err := s.repo.ReverseGameResult(context.Background(), &ReverseGameResultInput{
		Result: s.result(models.WinnerGood, models.ScriptTroubleBrewing),
	})
	s.Require().NoError(err)

	stats, err := s.repo.GetStats(context.Background(), &GetStatsInput{
		GuildID:       "guild-1",
		StorytellerID: "st-1",
	})
	s.Require().NoError(err)
	s.Zero(stats.TotalGames)
}

func (s *RedisRepositoryTestSuite) TestListStats() {
	s.Require().NoError(s.repo.ApplyGameResult(context.Background(), &ApplyGameResultInput{
		Result: s.result(models.WinnerGood, models.ScriptTroubleBrewing),
	}))

	other := s.result(models.WinnerEvil, models.ScriptSectsAndViolets)
	other.StorytellerID = "st-2"
	other.StorytellerName = "Bob"
	s.Require().NoError(s.repo.ApplyGameResult(context.Background(), &ApplyGameResultInput{Result: other}))

	stats, err := s.repo.ListStats(context.Background(), &ListStatsInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Len(stats, 2)

	// Another guild is untouched
	stats, err = s.repo.ListStats(context.Background(), &ListStatsInput{GuildID: "guild-2"})
	s.Require().NoError(err)
	s.Empty(stats)
}
