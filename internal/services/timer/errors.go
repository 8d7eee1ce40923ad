package timer

// TimerError is a custom error type for timer-related errors
type TimerError string

// Error implements the error interface
func (e TimerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidDuration TimerError = "duration must be positive and at most 24 hours"
	ErrNoTimer         TimerError = "no timer is running"
	ErrAlreadyPaused   TimerError = "timer is already paused"
	ErrTimerExpired    TimerError = "timer has already expired"
	ErrNotPaused       TimerError = "timer is not paused"
	ErrNilConfig       TimerError = "config cannot be nil"
	ErrNilTimerRepo    TimerError = "timer repository cannot be nil"
	ErrNilNotifier     TimerError = "notifier cannot be nil"
	ErrNilResolver     TimerError = "channel resolver cannot be nil"
	ErrNilClock        TimerError = "clock cannot be nil"
)
