package phonemizer

import (
	"fmt"
	"strings"
)

// Config contains construction-time settings for a Phonemizer instance.
type Config struct {
	// DefaultVoice is used when a call does not name a voice.
	DefaultVoice string `yaml:"voice" env:"ESPEAK_PHONEMIZER_VOICE"`

	// DataPath points at the espeak-ng data directory. Empty uses the
	// library's compiled-in default.
	DataPath string `yaml:"data_path" env:"ESPEAK_PHONEMIZER_DATA_PATH"`

	// ClauseBreakers is the set of characters recognized as clause
	// terminators. Read-only after construction.
	ClauseBreakers string `yaml:"clause_breakers" env:"ESPEAK_PHONEMIZER_CLAUSE_BREAKERS" envDefault:",;:.!?"`

	// Capture selects how phoneme events are recovered from the engine:
	// "memory" (default) or "none".
	Capture string `yaml:"capture" env:"ESPEAK_PHONEMIZER_CAPTURE" envDefault:"memory"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ClauseBreakers: DefaultClauseBreakers,
		Capture:        string(CaptureMemory),
	}
}

// Validate checks configuration values and normalizes the capture mode.
func (c *Config) Validate() error {
	if c.ClauseBreakers == "" {
		c.ClauseBreakers = DefaultClauseBreakers
	}

	mode, err := ParseCaptureMode(c.Capture)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.Capture = string(mode)

	if strings.TrimSpace(c.ClauseBreakers) != c.ClauseBreakers {
		return fmt.Errorf("%w: clause breakers must not contain whitespace", ErrInvalidConfig)
	}

	return nil
}
