// Package phonemizer converts text to IPA phoneme strings using the
// espeak-ng speech synthesis engine, with audio output suppressed.
//
// The native engine only exposes phoneme data as a side effect of an
// audio-synthesis callback. This package bridges that interface into a
// synchronous request/response API: a capture target buffers one clause
// event per callback, and after the (blocking) synthesis call returns the
// buffer is folded into a single formatted string.
//
// A Phonemizer instance is not safe for concurrent use; the native engine
// offers no concurrency guarantees, so callers must serialize calls per
// instance.
package phonemizer

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Phonemizer is the public facade. It owns one native engine handle and one
// capture target, selected at construction and fixed for the instance's
// lifetime.
type Phonemizer struct {
	cfg    Config
	engine Engine
	cap    capture
	sm     *stateMachine

	// currentVoice is the voice the engine currently has loaded. It only
	// changes via a successful SetVoice.
	currentVoice string
}

// New creates a Phonemizer over the given engine. The capture variant is
// chosen from cfg.Capture and cannot be switched later.
func New(cfg Config, engine Engine) (*Phonemizer, error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: nil engine", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Phonemizer{
		cfg:    cfg,
		engine: engine,
		sm:     newStateMachine(),
	}

	switch CaptureMode(cfg.Capture) {
	case CaptureMemory:
		p.cap = newBufferCapture()
	case CaptureNone:
		p.cap = nullCapture{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidCapture, cfg.Capture)
	}

	return p, nil
}

// State returns the lifecycle state of the instance.
func (p *Phonemizer) State() StateType {
	return p.sm.state()
}

// CaptureMode returns the capture variant selected at construction.
func (p *Phonemizer) CaptureMode() CaptureMode {
	return p.cap.mode()
}

// CurrentVoice returns the voice the engine currently has loaded, or empty
// when no voice has been set yet.
func (p *Phonemizer) CurrentVoice() string {
	return p.currentVoice
}

// Phonemize returns the IPA string for text. Blocking; the engine's clause
// callbacks fire on this call stack. Not safe for concurrent use.
func (p *Phonemizer) Phonemize(text string, opts Options) (string, error) {
	if opts.SSML && p.cap.mode() == CaptureNone {
		return "", ErrSSMLWithoutCapture
	}

	if err := p.ensureInitialized(); err != nil {
		return "", err
	}

	voice := opts.Voice
	if voice == "" {
		voice = p.cfg.DefaultVoice
	}
	if voice != "" && voice != p.currentVoice {
		if err := p.engine.SetVoice(voice); err != nil {
			// Current-voice state is unchanged; the caller may retry
			// with a different voice.
			if !errors.Is(err, ErrVoiceNotFound) {
				err = fmt.Errorf("%w: %q: %v", ErrVoiceNotFound, voice, err)
			}
			return "", NewPhonemizerError(err, "facade", "set_voice").WithVoice(voice)
		}
		p.currentVoice = voice
	}

	var breakers []rune
	if opts.KeepClauseBreakers {
		breakers = CollectClauseBreakers(text, p.cfg.ClauseBreakers)
	}

	req := SynthesisRequest{
		SSML:             opts.SSML,
		PhonemeSeparator: opts.separatorRune(),
	}

	p.cap.begin()
	if err := p.engine.Synthesize(text, req, p.cap.clauseFunc()); err != nil {
		// Discard partial results; truncated phoneme text is never
		// exposed.
		p.cap.drain()
		return "", NewPhonemizerError(fmt.Errorf("%w: %v", ErrSynthesis, err), "engine", "synthesize").
			WithVoice(voice).
			WithText(text)
	}

	events := p.cap.drain()
	attachTerminators(events, breakers)

	log.Debug("phonemized text", "voice", voice, "clauses", len(events))

	return Assemble(events, opts), nil
}

// ensureInitialized runs the lazy one-time engine initialization. A failed
// initialization is cached: every later call fails with the same error and
// is never retried.
func (p *Phonemizer) ensureInitialized() error {
	switch p.sm.state() {
	case StateReady:
		if !p.sm.transition(StateReady) {
			return fmt.Errorf("%w: %s -> %s", ErrStateTransition, StateReady, StateReady)
		}
		return nil

	case StateFailed:
		return p.sm.failure()

	case StateUninitialized:
		if !p.sm.transition(StateInitializing) {
			return fmt.Errorf("%w: %s -> %s", ErrStateTransition, StateUninitialized, StateInitializing)
		}

		if err := p.engine.Initialize(p.cfg.DataPath); err != nil {
			wrapped := NewPhonemizerError(fmt.Errorf("%w: %v", ErrEngineInit, err), "engine", "initialize")
			p.sm.fail(wrapped)
			log.Error("engine initialization failed", "error", err)
			return wrapped
		}

		if !p.sm.transition(StateReady) {
			return fmt.Errorf("%w: %s -> %s", ErrStateTransition, StateInitializing, StateReady)
		}
		log.Debug("engine initialized", "data_path", p.cfg.DataPath)
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrInvalidState, p.sm.state())
	}
}
