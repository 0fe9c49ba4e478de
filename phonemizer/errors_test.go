package phonemizer

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorDefinitions(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrEngineInit", ErrEngineInit, "espeak engine failed to initialize"},
		{"ErrEngineNotAvailable", ErrEngineNotAvailable, "espeak engine is not available"},
		{"ErrVoiceNotFound", ErrVoiceNotFound, "requested voice not found"},
		{"ErrSynthesis", ErrSynthesis, "phoneme synthesis failed"},
		{"ErrSSMLWithoutCapture", ErrSSMLWithoutCapture, "cannot use SSML without a phoneme capture stream"},
		{"ErrInstanceFailed", ErrInstanceFailed, "phonemizer instance is in a failed state"},
		{"ErrInvalidConfig", ErrInvalidConfig, "invalid configuration"},
		{"ErrInvalidCapture", ErrInvalidCapture, "invalid capture mode"},
		{"ErrMissingVoice", ErrMissingVoice, "no voice configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error is nil")
			}
			if tt.err.Error() != tt.msg {
				t.Errorf("message = %q, want %q", tt.err.Error(), tt.msg)
			}
		})
	}
}

func TestIsRecoverableError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		recoverable bool
	}{
		{"nil", nil, true},
		{"engine init", ErrEngineInit, false},
		{"wrapped engine init", fmt.Errorf("%w: rate -1", ErrEngineInit), false},
		{"instance failed", ErrInstanceFailed, false},
		{"invalid config", ErrInvalidConfig, false},
		{"voice not found", ErrVoiceNotFound, true},
		{"synthesis", ErrSynthesis, true},
		{"arbitrary", errors.New("other"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecoverableError(tt.err); got != tt.recoverable {
				t.Errorf("IsRecoverableError(%v) = %v, want %v", tt.err, got, tt.recoverable)
			}
		})
	}
}

func TestPhonemizerErrorWrapping(t *testing.T) {
	perr := NewPhonemizerError(ErrVoiceNotFound, "facade", "set_voice").
		WithVoice("xx").
		WithText("hello")

	if perr.Error() != ErrVoiceNotFound.Error() {
		t.Errorf("Error() = %q", perr.Error())
	}
	if !errors.Is(perr, ErrVoiceNotFound) {
		t.Error("Unwrap chain broken")
	}
	if !perr.IsRecoverable() {
		t.Error("voice errors should be recoverable")
	}
	if perr.Voice != "xx" || perr.Text != "hello" || perr.Component != "facade" {
		t.Errorf("context not recorded: %+v", perr)
	}

	empty := &PhonemizerError{}
	if empty.Error() != "unknown phonemizer error" {
		t.Errorf("empty error message = %q", empty.Error())
	}
}
