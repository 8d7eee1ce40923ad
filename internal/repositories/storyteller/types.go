package storyteller

import "github.com/grimkeeper/grimkeeper/internal/models"

type GetStatsInput struct {
	GuildID       string
	StorytellerID string
}

type ListStatsInput struct {
	GuildID string
}

// GameResult describes the per-game deltas applied to a storyteller's
// aggregates. The same struct drives both apply and reverse so the two
// paths cannot drift apart.
type GameResult struct {
	GuildID         string
	StorytellerID   string
	StorytellerName string
	Winner          models.Winner
	Script          models.ScriptKind

	// DurationSeconds is the game's elapsed time in seconds
	DurationSeconds int64

	// PlayerCount is the number of players in the game
	PlayerCount int

	// CompletedAtUnix is when the game completed, only used on apply
	CompletedAtUnix int64
}

type ApplyGameResultInput struct {
	Result *GameResult
}

type ReverseGameResultInput struct {
	Result *GameResult
}
