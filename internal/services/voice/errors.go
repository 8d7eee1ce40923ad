package voice

// VoiceError is a custom error type for voice-related errors
type VoiceError string

// Error implements the error interface
func (e VoiceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNoSession            VoiceError = "no session is bound to this category"
	ErrNoDestinationChannel VoiceError = "session has no destination channel configured"
	ErrNilConfig            VoiceError = "config cannot be nil"
	ErrNilSessionService    VoiceError = "session service cannot be nil"
	ErrNilRoster            VoiceError = "roster cannot be nil"
	ErrNilChannelEditor     VoiceError = "channel editor cannot be nil"
	ErrNilMover             VoiceError = "mover cannot be nil"
	ErrNilMuter             VoiceError = "muter cannot be nil"
	ErrNilPermissionChecker VoiceError = "permission checker cannot be nil"
	ErrNilClassifier        VoiceError = "classifier cannot be nil"
)
