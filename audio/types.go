// Package audio plays short synthesized cues for deck transitions
//
// Cues are rendered once from beep streamers into mono float buffers, mixed on a
// background goroutine and piped as raw s16le PCM into whatever command-line
// player the host has installed. Missing audio support degrades to silence.
package audio

import (
	"errors"
)

// Cue identifies a sound effect
type Cue int

const (
	CueJudged Cue = iota // Card committed
	CueBack              // Commit undone
	CueReject            // Vetoed commit returning
	CueCancel            // Drag released below threshold
	cueCount
)

var cueNames = [cueCount]string{"judged", "back", "reject", "cancel"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Config controls playback
type Config struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
	// CueVolumes scales individual cues, missing entries play at 1.0
	CueVolumes map[Cue]float64
}

// DefaultConfig returns the stock configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
		CueVolumes: map[Cue]float64{
			CueJudged: 0.6,
			CueBack:   0.5,
			CueReject: 0.7,
			CueCancel: 0.3,
		},
	}
}

// BackendType identifies the audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
	BackendOSS
)

// BackendConfig describes a CLI audio backend
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
)

// bytesPerFrame is interleaved stereo s16le
const bytesPerFrame = 4
