// Package config loads deck and demo settings from an optional TOML file and
// DECK_ prefixed environment variables
//
// Environment variables take precedence over the file, which takes precedence
// over defaults. The result is validated before it is returned.
package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/lixenwraith/card-deck/gesture"
)

// ErrInvalid marks configuration that loaded but failed validation
var ErrInvalid = errors.New("invalid configuration")

// Config holds all settings
type Config struct {
	Deck  DeckConfig  `mapstructure:"deck"`
	Audio AudioConfig `mapstructure:"audio"`
	Log   LogConfig   `mapstructure:"log"`
	Demo  DemoConfig  `mapstructure:"demo"`
}

// DeckConfig maps onto gesture.Option
type DeckConfig struct {
	VisibleCards int      `mapstructure:"visible_cards" validate:"gte=1,lte=20"`
	MaxRotation  float64  `mapstructure:"max_rotation" validate:"gte=0,lte=90"`
	Threshold    float64  `mapstructure:"threshold" validate:"gt=0"`
	Allowed      []string `mapstructure:"allowed" validate:"min=1,dive,oneof=left top right bottom vertical horizontal all"`
}

// AudioConfig controls the cue player
type AudioConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	MasterVolume float64 `mapstructure:"master_volume" validate:"gte=0,lte=1"`
	SampleRate   int     `mapstructure:"sample_rate" validate:"oneof=22050 44100 48000"`
}

// LogConfig controls the slog sink
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	// File receives log output; empty discards it since stdout belongs to the screen
	File string `mapstructure:"file"`
}

// DemoConfig shapes the terminal host
type DemoConfig struct {
	Cards int `mapstructure:"cards" validate:"gte=1,lte=1000"`
	// Quota caps commits before rejects kick in, 0 is unlimited
	Quota     int `mapstructure:"quota" validate:"gte=0"`
	FrameRate int `mapstructure:"frame_rate" validate:"gte=10,lte=240"`
}

// Option converts the deck section to gesture options
func (c *Config) Option() gesture.Option {
	return gesture.Option{
		VisibleCards: c.Deck.VisibleCards,
		MaxRotation:  c.Deck.MaxRotation,
		Allowed:      gesture.ParseAllowed(c.Deck.Allowed),
		Threshold:    c.Deck.Threshold,
	}.Normalize()
}

// LogLevel maps the configured level name to slog
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
