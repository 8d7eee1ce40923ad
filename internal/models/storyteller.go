package models

import "time"

// StorytellerStats holds a storyteller's rolling aggregates for one guild.
// End-of-game updates and game deletions apply exact inverse deltas to these
// counters, so every field here must stay in lockstep between the apply and
// reverse paths.
type StorytellerStats struct {
	// GuildID is the guild the aggregates are scoped to
	GuildID string

	// StorytellerID is the storyteller's user ID
	StorytellerID string

	// StorytellerName is the last known display name
	StorytellerName string

	// TotalGames is the number of completed games told
	TotalGames int

	// GoodWins counts games where the good team won
	GoodWins int

	// EvilWins counts games where the evil team won
	EvilWins int

	// Per-script counters for the three tracked official scripts
	TBGames    int
	TBGoodWins int
	TBEvilWins int

	SNVGames    int
	SNVGoodWins int
	SNVEvilWins int

	BMRGames    int
	BMRGoodWins int
	BMREvilWins int

	// TotalDuration is the accumulated game time in seconds
	TotalDuration int64

	// TotalPlayerCount is the accumulated player count across games
	TotalPlayerCount int

	// LastGameAt is when the storyteller's most recent game completed
	LastGameAt time.Time
}
