package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound SessionError = "session not found"
	ErrNilConfig       SessionError = "config cannot be nil"
	ErrNilSessionRepo  SessionError = "session repository cannot be nil"
	ErrNilGameRepo     SessionError = "game repository cannot be nil"
	ErrNilClock        SessionError = "clock cannot be nil"
	ErrMissingGuildID  SessionError = "guild ID cannot be empty"
	ErrMissingCategory SessionError = "category ID cannot be empty"
)
