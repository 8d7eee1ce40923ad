package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	clockMocks "github.com/grimkeeper/grimkeeper/internal/common/clock/mocks"
	"github.com/grimkeeper/grimkeeper/internal/models"
	gameRepo "github.com/grimkeeper/grimkeeper/internal/repositories/game"
	sessionRepo "github.com/grimkeeper/grimkeeper/internal/repositories/session"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionServiceTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mr       *miniredis.Miniredis
	client   *redis.Client
	sessions sessionRepo.Repository
	games    gameRepo.Repository
	clock    *clockMocks.MockClock
	svc      Service
	testNow  time.Time
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	s.sessions, err = sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.games, err = gameRepo.NewRedis(&gameRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.clock = clockMocks.NewMockClock(s.ctrl)
	s.clock.EXPECT().Now().Return(s.testNow).AnyTimes()

	svc, err := NewService(&Config{
		SessionRepo: s.sessions,
		GameRepo:    s.games,
		Clock:       s.clock,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.ctrl.Finish()
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

func (s *SessionServiceTestSuite) createSession(categoryID string) *models.Session {
	out, err := s.svc.CreateSession(context.Background(), &CreateSessionInput{
		GuildID:              "guild-1",
		CategoryID:           categoryID,
		DestinationChannelID: "town-square",
		AnnounceChannelID:    "announce",
		VoiceCaps:            map[string]int{"vc-1": 5, "vc-2": 8},
	})
	s.Require().NoError(err)
	return out.Session
}

func (s *SessionServiceTestSuite) TestCreateSessionAssignsSequentialCodes() {
	first := s.createSession("cat-1")
	s.Equal("s1", first.SessionCode)

	second := s.createSession("cat-2")
	s.Equal("s2", second.SessionCode)
}

func (s *SessionServiceTestSuite) TestCreateSessionIsIdempotent() {
	first := s.createSession("cat-1")

	out, err := s.svc.CreateSession(context.Background(), &CreateSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	})
	s.Require().NoError(err)
	s.False(out.Created)
	s.Equal(first.SessionCode, out.Session.SessionCode)
	s.Equal("town-square", out.Session.DestinationChannelID)
}

func (s *SessionServiceTestSuite) TestCodesAreNeverReused() {
	s.createSession("cat-1")
	s.createSession("cat-2")

	// Deleting the holder of the highest code must not free the number
	_, err := s.svc.DeleteSession(context.Background(), &DeleteSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-2",
	})
	s.Require().NoError(err)

	third := s.createSession("cat-3")
	s.Equal("s3", third.SessionCode)

	// Nor does deleting a lower one
	_, err = s.svc.DeleteSession(context.Background(), &DeleteSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	})
	s.Require().NoError(err)

	fourth := s.createSession("cat-4")
	s.Equal("s4", fourth.SessionCode)
}

func (s *SessionServiceTestSuite) TestGetSessionServesFromCacheAfterMiss() {
	s.createSession("cat-1")
	s.svc.Invalidate(&InvalidateInput{GuildID: "guild-1", CategoryID: "cat-1"})

	got, err := s.svc.GetSession(context.Background(), &GetSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	})
	s.Require().NoError(err)
	s.Equal("s1", got.SessionCode)

	// Mutate the store behind the cache: a cached read must not see it
	s.Require().NoError(s.sessions.UpdateSession(context.Background(), &sessionRepo.UpdateSessionInput{
		Session: &models.Session{
			GuildID:     "guild-1",
			CategoryID:  "cat-1",
			SessionCode: "s1",
			GrimoireLink: "https://example.com/behind-the-cache",
			CreatedAt:   s.testNow,
			LastActive:  s.testNow,
		},
	}))

	cached, err := s.svc.GetSession(context.Background(), &GetSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	})
	s.Require().NoError(err)
	s.Empty(cached.GrimoireLink)

	// Invalidation forces the next read through to the store
	s.svc.Invalidate(&InvalidateInput{GuildID: "guild-1", CategoryID: "cat-1"})
	fresh, err := s.svc.GetSession(context.Background(), &GetSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	})
	s.Require().NoError(err)
	s.Equal("https://example.com/behind-the-cache", fresh.GrimoireLink)
}

func (s *SessionServiceTestSuite) TestGetSessionNotFound() {
	_, err := s.svc.GetSession(context.Background(), &GetSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-none",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestGetSessionByCode() {
	s.createSession("cat-1")

	got, err := s.svc.GetSessionByCode(context.Background(), &GetSessionByCodeInput{
		GuildID:     "guild-1",
		SessionCode: " S1 ",
	})
	s.Require().NoError(err)
	s.Equal("cat-1", got.CategoryID)

	_, err = s.svc.GetSessionByCode(context.Background(), &GetSessionByCodeInput{
		GuildID:     "guild-1",
		SessionCode: "s99",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestLegacySessionGetsCodeBackfilled() {
	// Persist a session with no code, as records predating codes have
	legacy := &models.Session{
		GuildID:    "guild-1",
		CategoryID: "cat-legacy",
		CreatedAt:  s.testNow,
		LastActive: s.testNow,
	}
	s.Require().NoError(s.sessions.UpdateSession(context.Background(), &sessionRepo.UpdateSessionInput{
		Session: legacy,
	}))

	got, err := s.svc.GetSession(context.Background(), &GetSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-legacy",
	})
	s.Require().NoError(err)
	s.Equal("s1", got.SessionCode)

	// The backfilled code is persisted and resolvable
	byCode, err := s.svc.GetSessionByCode(context.Background(), &GetSessionByCodeInput{
		GuildID:     "guild-1",
		SessionCode: "s1",
	})
	s.Require().NoError(err)
	s.Equal("cat-legacy", byCode.CategoryID)
}

func (s *SessionServiceTestSuite) TestUpdateSessionBumpsLastActive() {
	sess := s.createSession("cat-1")
	sess.GrimoireLink = "https://example.com/grim"

	s.Require().NoError(s.svc.UpdateSession(context.Background(), &UpdateSessionInput{Session: sess}))

	s.svc.Invalidate(&InvalidateInput{GuildID: "guild-1"})
	got, err := s.svc.GetSession(context.Background(), &GetSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	})
	s.Require().NoError(err)
	s.Equal("https://example.com/grim", got.GrimoireLink)
	s.Equal(s.testNow.Unix(), got.LastActive.Unix())
}

func (s *SessionServiceTestSuite) TestDeleteSessionCascadesToActiveGame() {
	sess := s.createSession("cat-1")

	game := &models.Game{
		ID:         "game-1",
		GuildID:    "guild-1",
		CategoryID: "cat-1",
		Script:     "Trouble Brewing",
		StartTime:  s.testNow,
		IsActive:   true,
	}
	s.Require().NoError(s.games.SaveGame(context.Background(), &gameRepo.SaveGameInput{Game: game}))

	sess.ActiveGameID = "game-1"
	s.Require().NoError(s.svc.UpdateSession(context.Background(), &UpdateSessionInput{Session: sess}))

	out, err := s.svc.DeleteSession(context.Background(), &DeleteSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	})
	s.Require().NoError(err)
	s.True(out.Deleted)

	_, err = s.games.GetGame(context.Background(), &gameRepo.GetGameInput{GameID: "game-1"})
	s.Require().ErrorIs(err, gameRepo.ErrGameNotFound)

	_, err = s.svc.GetSession(context.Background(), &GetSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestDeleteSessionAbsentIsNotAnError() {
	out, err := s.svc.DeleteSession(context.Background(), &DeleteSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-none",
	})
	s.Require().NoError(err)
	s.False(out.Deleted)
}

func (s *SessionServiceTestSuite) TestClearActiveGameRefsUpdatesCache() {
	sess := s.createSession("cat-1")
	sess.ActiveGameID = "game-1"
	s.Require().NoError(s.svc.UpdateSession(context.Background(), &UpdateSessionInput{Session: sess}))

	s.Require().NoError(s.svc.ClearActiveGameRefs(context.Background(), &ClearActiveGameRefsInput{
		GuildID: "guild-1",
		GameID:  "game-1",
	}))

	// Cached copy is cleared too
	got, err := s.svc.GetSession(context.Background(), &GetSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	})
	s.Require().NoError(err)
	s.Empty(got.ActiveGameID)
}

func (s *SessionServiceTestSuite) TestDeleteSessionClearsDanglingRefs() {
	first := s.createSession("cat-1")
	second := s.createSession("cat-2")

	game := &models.Game{
		ID:         "game-1",
		GuildID:    "guild-1",
		CategoryID: "cat-1",
		StartTime:  s.testNow,
		IsActive:   true,
	}
	s.Require().NoError(s.games.SaveGame(context.Background(), &gameRepo.SaveGameInput{Game: game}))

	first.ActiveGameID = "game-1"
	s.Require().NoError(s.svc.UpdateSession(context.Background(), &UpdateSessionInput{Session: first}))

	// A second session left pointing at the same game by a prior partial
	// failure
	second.ActiveGameID = "game-1"
	s.Require().NoError(s.svc.UpdateSession(context.Background(), &UpdateSessionInput{Session: second}))

	_, err := s.svc.DeleteSession(context.Background(), &DeleteSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-1",
	})
	s.Require().NoError(err)

	got, err := s.svc.GetSession(context.Background(), &GetSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-2",
	})
	s.Require().NoError(err)
	s.Empty(got.ActiveGameID)
}

func (s *SessionServiceTestSuite) TestCleanupInactive() {
	stale := &models.Session{
		GuildID:    "guild-1",
		CategoryID: "cat-stale",
		CreatedAt:  s.testNow.Add(-60 * 24 * time.Hour),
		LastActive: s.testNow.Add(-60 * 24 * time.Hour),
		SessionCode: "s1",
	}
	s.Require().NoError(s.sessions.UpdateSession(context.Background(), &sessionRepo.UpdateSessionInput{
		Session: stale,
	}))
	s.createSession("cat-fresh")

	out, err := s.svc.CleanupInactive(context.Background(), &CleanupInactiveInput{
		MaxIdle: 30 * 24 * time.Hour,
	})
	s.Require().NoError(err)
	s.Equal(1, out.Deleted)

	_, err = s.svc.GetSession(context.Background(), &GetSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-stale",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)

	_, err = s.svc.GetSession(context.Background(), &GetSessionInput{
		GuildID:    "guild-1",
		CategoryID: "cat-fresh",
	})
	s.Require().NoError(err)
}

func (s *SessionServiceTestSuite) TestCleanupInactiveCascadesToActiveGame() {
	stale := &models.Session{
		GuildID:      "guild-1",
		CategoryID:   "cat-stale",
		ActiveGameID: "game-1",
		CreatedAt:    s.testNow.Add(-60 * 24 * time.Hour),
		LastActive:   s.testNow.Add(-60 * 24 * time.Hour),
		SessionCode:  "s1",
	}
	s.Require().NoError(s.sessions.UpdateSession(context.Background(), &sessionRepo.UpdateSessionInput{
		Session: stale,
	}))
	s.Require().NoError(s.games.SaveGame(context.Background(), &gameRepo.SaveGameInput{
		Game: &models.Game{
			ID:         "game-1",
			GuildID:    "guild-1",
			CategoryID: "cat-stale",
			StartTime:  s.testNow.Add(-60 * 24 * time.Hour),
			IsActive:   true,
		},
	}))

	out, err := s.svc.CleanupInactive(context.Background(), &CleanupInactiveInput{
		MaxIdle: 30 * 24 * time.Hour,
	})
	s.Require().NoError(err)
	s.Equal(1, out.Deleted)

	// The game dies with the session: record and active index both gone
	_, err = s.games.GetGame(context.Background(), &gameRepo.GetGameInput{GameID: "game-1"})
	s.Require().ErrorIs(err, gameRepo.ErrGameNotFound)
	_, err = s.games.GetActiveGame(context.Background(), &gameRepo.GetActiveGameInput{
		GuildID:    "guild-1",
		CategoryID: "cat-stale",
	})
	s.Require().ErrorIs(err, gameRepo.ErrGameNotFound)
}

func (s *SessionServiceTestSuite) TestInvalidateWithoutGuildClearsEverything() {
	s.createSession("cat-1")
	_, err := s.svc.CreateSession(context.Background(), &CreateSessionInput{
		GuildID:    "guild-2",
		CategoryID: "cat-9",
	})
	s.Require().NoError(err)

	// Mutate both guilds' records behind the cache
	for _, ids := range [][2]string{{"guild-1", "cat-1"}, {"guild-2", "cat-9"}} {
		sess, err := s.sessions.GetSession(context.Background(), &sessionRepo.GetSessionInput{
			GuildID:    ids[0],
			CategoryID: ids[1],
		})
		s.Require().NoError(err)
		sess.GrimoireLink = "https://example.com/" + ids[0]
		s.Require().NoError(s.sessions.UpdateSession(context.Background(), &sessionRepo.UpdateSessionInput{
			Session: sess,
		}))
	}

	s.svc.Invalidate(&InvalidateInput{})

	for _, ids := range [][2]string{{"guild-1", "cat-1"}, {"guild-2", "cat-9"}} {
		got, err := s.svc.GetSession(context.Background(), &GetSessionInput{
			GuildID:    ids[0],
			CategoryID: ids[1],
		})
		s.Require().NoError(err)
		s.Equal("https://example.com/"+ids[0], got.GrimoireLink)
	}
}
