package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/lixenwraith/card-deck/gesture"
)

// EnvPrefix namespaces environment overrides, e.g. DECK_DECK_THRESHOLD
const EnvPrefix = "DECK"

func setDefaults(v *viper.Viper) {
	def := gesture.DefaultOption()
	v.SetDefault("deck.visible_cards", def.VisibleCards)
	v.SetDefault("deck.max_rotation", def.MaxRotation)
	v.SetDefault("deck.threshold", def.Threshold)
	v.SetDefault("deck.allowed", []string{"all"})

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.master_volume", 0.5)
	v.SetDefault("audio.sample_rate", 44100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("demo.cards", 100)
	v.SetDefault("demo.quota", 0)
	v.SetDefault("demo.frame_rate", 60)
}

// Load reads configuration
// An empty path looks for deck.toml in the working directory and tolerates its
// absence; an explicit path must exist
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("deck")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints, failures wrap ErrInvalid
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
