//go:build noespeak
// +build noespeak

package espeak

import (
	"github.com/rhasspy/espeak-phonemizer-go/phonemizer"
)

// Stub implementations for builds without libespeak-ng.

// Handle is a stub engine handle for noespeak builds.
type Handle struct{}

// New returns a stub handle; every operation fails with
// phonemizer.ErrEngineNotAvailable.
func New() *Handle {
	return &Handle{}
}

// Available always reports false in noespeak builds.
func (h *Handle) Available() bool {
	return false
}

// SampleRate always returns zero in noespeak builds.
func (h *Handle) SampleRate() int {
	return 0
}

func (h *Handle) Initialize(dataPath string) error {
	return phonemizer.ErrEngineNotAvailable
}

func (h *Handle) SetVoice(name string) error {
	return phonemizer.ErrEngineNotAvailable
}

func (h *Handle) Synthesize(text string, req phonemizer.SynthesisRequest, emit phonemizer.ClauseFunc) error {
	return phonemizer.ErrEngineNotAvailable
}
