package models

import "time"

// TimerRecord is the persisted state of a scheduled countdown.
//
// Records are keyed by guild ID only: a guild holds at most one in-flight
// timer even when it runs several sessions.
type TimerRecord struct {
	// GuildID is the owning guild and the record's identity
	GuildID string

	// EndTime is the absolute expiry time
	EndTime time.Time

	// CreatorID is the user who started the timer
	CreatorID string

	// CategoryID is the session category the timer was started from,
	// empty when started outside a session
	CategoryID string

	// PausedRemaining is the remaining duration at pause time,
	// zero for running timers
	PausedRemaining time.Duration
}
