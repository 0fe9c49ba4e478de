package phonemizer

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// LoadConfigFromViper loads phonemizer configuration from Viper, layered on
// top of the defaults.
func LoadConfigFromViper() (Config, error) {
	cfg := DefaultConfig()

	if viper.IsSet("voice") {
		cfg.DefaultVoice = viper.GetString("voice")
	}
	if viper.IsSet("data_path") {
		cfg.DataPath = viper.GetString("data_path")
	}
	if viper.IsSet("clause_breakers") {
		cfg.ClauseBreakers = viper.GetString("clause_breakers")
	}
	if viper.IsSet("capture") {
		cfg.Capture = viper.GetString("capture")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigFromEnv loads phonemizer configuration from the environment
// (ESPEAK_PHONEMIZER_* variables), layered on top of the defaults.
func LoadConfigFromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return cfg, fmt.Errorf("error parsing config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
