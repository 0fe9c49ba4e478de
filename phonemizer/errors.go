package phonemizer

import "errors"

// Common errors for the phonemizer.
var (
	// Engine errors
	ErrEngineInit         = errors.New("espeak engine failed to initialize")
	ErrEngineNotAvailable = errors.New("espeak engine is not available")
	ErrVoiceNotFound      = errors.New("requested voice not found")
	ErrSynthesis          = errors.New("phoneme synthesis failed")

	// Facade errors
	ErrSSMLWithoutCapture = errors.New("cannot use SSML without a phoneme capture stream")
	ErrInstanceFailed     = errors.New("phonemizer instance is in a failed state")
	ErrInvalidState       = errors.New("invalid state for operation")
	ErrStateTransition    = errors.New("invalid state transition")

	// Configuration errors
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrInvalidCapture = errors.New("invalid capture mode")
	ErrMissingVoice   = errors.New("no voice configured")
)

// IsRecoverableError reports whether a later call on the same instance can
// still succeed after err.
func IsRecoverableError(err error) bool {
	if err == nil {
		return true
	}

	switch {
	case errors.Is(err, ErrEngineInit),
		errors.Is(err, ErrInstanceFailed),
		errors.Is(err, ErrEngineNotAvailable),
		errors.Is(err, ErrInvalidConfig):
		return false
	}

	// Voice and synthesis errors are local to one call.
	return true
}

// PhonemizerError provides detailed error information.
type PhonemizerError struct {
	Err       error  // The underlying error
	Component string // Component that generated the error
	Action    string // Action being performed when error occurred
	Voice     string // Voice in effect, if any
	Text      string // Input text, if relevant
}

// Error implements the error interface.
func (e *PhonemizerError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown phonemizer error"
}

// Unwrap returns the underlying error.
func (e *PhonemizerError) Unwrap() error {
	return e.Err
}

// IsRecoverable checks if the error is recoverable.
func (e *PhonemizerError) IsRecoverable() bool {
	return IsRecoverableError(e.Err)
}

// NewPhonemizerError creates a new phonemizer error with context.
func NewPhonemizerError(err error, component, action string) *PhonemizerError {
	return &PhonemizerError{
		Err:       err,
		Component: component,
		Action:    action,
	}
}

// WithVoice records the voice that was in effect.
func (e *PhonemizerError) WithVoice(voice string) *PhonemizerError {
	e.Voice = voice
	return e
}

// WithText records the input text being phonemized.
func (e *PhonemizerError) WithText(text string) *PhonemizerError {
	e.Text = text
	return e
}
