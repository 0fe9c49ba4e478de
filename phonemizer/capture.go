package phonemizer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ClauseEvent is one unit of phoneme output, emitted by the engine for each
// clause it segments from the input during a single synthesis call.
type ClauseEvent struct {
	// Index is the sequence position of the clause. Events are never
	// reordered or deduplicated; insertion order defines output order.
	Index int

	// Phonemes is the raw IPA text for the clause. It may contain embedded
	// language-switching flags and stress diacritics. Empty when the clause
	// was degraded during capture.
	Phonemes string

	// Terminator is the clause-breaking character that ended the clause,
	// or zero when the clause had none.
	Terminator rune
}

// HasTerminator reports whether the clause ended with a breaker character.
func (ev ClauseEvent) HasTerminator() bool {
	return ev.Terminator != 0
}

// ClauseFunc is the callback target registered with the native engine. It is
// invoked synchronously on the synthesis call stack, once per clause, with
// the raw phoneme bytes for that clause. Returning false signals the engine
// to stop; the default contract always continues.
type ClauseFunc func(raw []byte) bool

// SynthesisRequest carries the per-call knobs for the native synthesis entry
// point.
type SynthesisRequest struct {
	// SSML enables SSML interpretation of the input text.
	SSML bool

	// PhonemeSeparator, when non-zero, is inserted by the engine between
	// phonemes within a word. Encoded into the phoneme trace flags.
	PhonemeSeparator rune
}

// Engine is the native speech-synthesis handle. Implementations must block
// in Synthesize until the engine reports completion; clause callbacks fire
// on the same logical call stack. One Engine instance must not be invoked
// concurrently.
type Engine interface {
	// Initialize loads and initializes the engine. Idempotent: a second
	// call on an initialized engine is a no-op.
	Initialize(dataPath string) error

	// SetVoice selects the active voice. On failure the previous voice
	// remains in effect.
	SetVoice(name string) error

	// Synthesize runs the engine over text with audio output suppressed,
	// invoking emit once per clause. A nil emit discards phoneme output.
	Synthesize(text string, req SynthesisRequest, emit ClauseFunc) error
}

// CaptureMode selects how phoneme events are captured from the engine.
type CaptureMode string

const (
	// CaptureMemory buffers clause events in memory. The default.
	CaptureMemory CaptureMode = "memory"

	// CaptureNone registers no capture target. The engine runs but no
	// phoneme text is recoverable; Phonemize always yields an empty
	// string. A documented degraded mode, not an error state.
	CaptureNone CaptureMode = "none"
)

// ParseCaptureMode validates and normalizes a capture mode string.
func ParseCaptureMode(s string) (CaptureMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "memory":
		return CaptureMemory, nil
	case "none", "null":
		return CaptureNone, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: memory, none)", ErrInvalidCapture, s)
	}
}

// capture receives per-clause callbacks during one synthesis call and owns
// the event buffer for that call. The variant is fixed at construction.
type capture interface {
	mode() CaptureMode

	// begin resets the buffer for a new synthesis call.
	begin()

	// clauseFunc returns the callback to register with the engine, or nil
	// when the variant captures nothing.
	clauseFunc() ClauseFunc

	// drain consumes and returns the events accumulated during the call.
	drain() []ClauseEvent
}

// bufferCapture accumulates one ClauseEvent per callback into an ordered
// in-memory buffer.
type bufferCapture struct {
	buf []ClauseEvent
}

func newBufferCapture() *bufferCapture {
	return &bufferCapture{}
}

func (c *bufferCapture) mode() CaptureMode { return CaptureMemory }

func (c *bufferCapture) begin() {
	c.buf = c.buf[:0]
}

func (c *bufferCapture) clauseFunc() ClauseFunc {
	return func(raw []byte) bool {
		ev := ClauseEvent{Index: len(c.buf)}

		// A malformed clause must never abort the request. Errors cannot
		// cross the native callback boundary, so a bad clause degrades to
		// an empty phoneme string and synthesis continues.
		if utf8.Valid(raw) {
			ev.Phonemes = string(raw)
		}

		c.buf = append(c.buf, ev)
		return true
	}
}

func (c *bufferCapture) drain() []ClauseEvent {
	events := c.buf
	c.buf = nil
	return events
}

// nullCapture is the no-op capture path for environments where the native
// capture mechanism is unavailable.
type nullCapture struct{}

func (nullCapture) mode() CaptureMode      { return CaptureNone }
func (nullCapture) begin()                 {}
func (nullCapture) clauseFunc() ClauseFunc { return nil }
func (nullCapture) drain() []ClauseEvent   { return nil }
