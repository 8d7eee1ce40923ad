package models

// Role is a channel occupant's role inside a game session, as determined by
// the injected role classifier.
type Role string

const (
	// RolePlayer is a regular townsperson
	RolePlayer Role = "player"

	// RoleStoryteller is the primary storyteller
	RoleStoryteller Role = "storyteller"

	// RoleCoStoryteller is an assisting storyteller
	RoleCoStoryteller Role = "co_storyteller"

	// RoleSpectator is a non-playing observer
	RoleSpectator Role = "spectator"
)

// IsPrivileged reports whether the role grants an extra voice seat.
// Storytellers, co-storytellers and spectators do not take a player slot.
func (r Role) IsPrivileged() bool {
	return r == RoleStoryteller || r == RoleCoStoryteller || r == RoleSpectator
}

// Occupant is a voice channel occupant as seen by the reconciler and the
// game state machine.
type Occupant struct {
	// UserID is the occupant's Discord user ID
	UserID string

	// DisplayName is the guild display name, including any role prefix
	DisplayName string

	// IsBot indicates the occupant is a bot account
	IsBot bool
}
