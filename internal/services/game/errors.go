package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNoSession            GameError = "no session is bound to this category"
	ErrGameInProgress       GameError = "a game is already in progress"
	ErrNoActiveGame         GameError = "no game is in progress"
	ErrGameNotFound         GameError = "game not found"
	ErrNoStoryteller        GameError = "no storyteller found in the occupancy snapshot"
	ErrMultipleStorytellers GameError = "more than one primary storyteller present"
	ErrInvalidWinner        GameError = "winner must be Good, Evil, or Tie"
	ErrNilConfig            GameError = "config cannot be nil"
	ErrNilGameRepo          GameError = "game repository cannot be nil"
	ErrNilStorytellerRepo   GameError = "storyteller repository cannot be nil"
	ErrNilSessionService    GameError = "session service cannot be nil"
	ErrNilClassifier        GameError = "classifier cannot be nil"
	ErrNilClock             GameError = "clock cannot be nil"
	ErrNilUUIDGenerator     GameError = "UUID generator cannot be nil"
)
