package models

import (
	"strings"
	"time"
)

// Winner represents the winning team of a completed game
type Winner string

const (
	// WinnerGood indicates the good team won
	WinnerGood Winner = "Good"

	// WinnerEvil indicates the evil team won
	WinnerEvil Winner = "Evil"

	// WinnerTie indicates the game ended in a tie
	WinnerTie Winner = "Tie"
)

// IsValid reports whether w is one of the accepted winner values.
func (w Winner) IsValid() bool {
	return w == WinnerGood || w == WinnerEvil || w == WinnerTie
}

// Game represents a single game run inside a session. Games are created on
// start and mutated only at end, cancel, or delete.
type Game struct {
	// ID is the unique identifier for the game
	ID string

	// GuildID is the Discord guild the game belongs to
	GuildID string

	// CategoryID is the owning session's category, empty for legacy records
	CategoryID string

	// Script is the script label (e.g. "Trouble Brewing")
	Script string

	// CustomName is an optional custom script name
	CustomName string

	// StartTime is when the game started
	StartTime time.Time

	// EndTime is when the game ended, zero while active
	EndTime time.Time

	// Players contains the user IDs of the players
	Players []string

	// PlayerCount is the number of players at start
	PlayerCount int

	// StorytellerID is the primary storyteller's user ID
	StorytellerID string

	// Winner is set when the game ends
	Winner Winner

	// IsActive indicates the game is still running. At most one game per
	// (guild, category) may be active.
	IsActive bool

	// CompletedAt is when the game record was closed
	CompletedAt time.Time
}

// Duration returns the elapsed game time, zero for games that never ended.
func (g *Game) Duration() time.Duration {
	if g.EndTime.IsZero() || g.EndTime.Before(g.StartTime) {
		return 0
	}
	return g.EndTime.Sub(g.StartTime)
}

// ScriptKind identifies one of the tracked official scripts.
type ScriptKind string

const (
	// ScriptTroubleBrewing is the Trouble Brewing script
	ScriptTroubleBrewing ScriptKind = "tb"

	// ScriptSectsAndViolets is the Sects & Violets script
	ScriptSectsAndViolets ScriptKind = "snv"

	// ScriptBadMoonRising is the Bad Moon Rising script
	ScriptBadMoonRising ScriptKind = "bmr"

	// ScriptOther is any custom or homebrew script
	ScriptOther ScriptKind = ""
)

// ScriptCategory classifies a script label by keyword. Unrecognized labels
// map to ScriptOther and are excluded from per-script aggregates.
func ScriptCategory(script string) ScriptKind {
	s := strings.ToLower(script)
	switch {
	case strings.Contains(s, "trouble") && strings.Contains(s, "brewing"):
		return ScriptTroubleBrewing
	case strings.Contains(s, "sects") || strings.Contains(s, "violet"):
		return ScriptSectsAndViolets
	case strings.Contains(s, "bad") && strings.Contains(s, "moon"):
		return ScriptBadMoonRising
	default:
		return ScriptOther
	}
}
