package audio

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/card-deck/events"
)

// Player plays cues; implementations must be safe to call from the UI loop
type Player interface {
	Play(cue Cue) bool
	// ToggleMute flips mute and reports whether sound is now on
	ToggleMute() bool
	Muted() bool
	SetVolume(vol float64)
	Volume() float64
	Stats() (played, dropped uint64)
	Close()
}

// NopPlayer discards every cue and stays muted
type NopPlayer struct{}

func (NopPlayer) Play(Cue) bool                   { return false }
func (NopPlayer) ToggleMute() bool                { return false }
func (NopPlayer) Muted() bool                     { return true }
func (NopPlayer) SetVolume(float64)               {}
func (NopPlayer) Volume() float64                 { return 0 }
func (NopPlayer) Stats() (played, dropped uint64) { return 0, 0 }
func (NopPlayer) Close()                          {}

// Engine pipes mixed cues into an external PCM player process
type Engine struct {
	config *Config
	cache  *cueCache
	mixer  *Mixer

	cmd     *exec.Cmd
	stdin   io.WriteCloser
	ossFile *os.File

	running atomic.Bool
	muted   atomic.Bool
	mu      sync.RWMutex
	wg      sync.WaitGroup
}

// NewEngine creates an engine writing to out, bypassing backend detection
func NewEngine(cfg *Config, out io.Writer) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{config: cfg, cache: newCueCache(beep.SampleRate(cfg.SampleRate))}
	e.cache.preload()
	e.muted.Store(!cfg.Enabled)
	e.mixer = NewMixer(out, e.cache)
	e.mixer.Start()
	e.running.Store(true)

	e.wg.Add(1)
	go e.monitorMixer()
	return e
}

// NewPlayer starts a backend-driven engine, falling back to NopPlayer when
// audio is disabled or no backend can be started; failures are logged, not returned
func NewPlayer(cfg *Config, log *slog.Logger) Player {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if !cfg.Enabled {
		return NopPlayer{}
	}

	backend, err := DetectBackend(cfg.SampleRate)
	if err != nil {
		log.Warn("audio disabled", "error", err)
		return NopPlayer{}
	}

	out, cmd, err := openBackend(backend)
	if err != nil {
		log.Warn("audio disabled", "backend", backend.Name, "error", err)
		return NopPlayer{}
	}

	e := NewEngine(cfg, out)
	e.cmd = cmd
	if cmd != nil {
		e.stdin = out
		e.wg.Add(1)
		go e.monitorProcess()
	} else if f, ok := out.(*os.File); ok {
		e.ossFile = f
	}
	log.Info("audio started", "backend", backend.Name, "rate", cfg.SampleRate)
	return e
}

func openBackend(b *BackendConfig) (io.WriteCloser, *exec.Cmd, error) {
	if b.Type == BackendOSS {
		f, err := os.OpenFile(b.Path, os.O_WRONLY, 0)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", b.Path, err)
		}
		return f, nil, nil
	}

	cmd := exec.Command(b.Path, b.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, nil, fmt.Errorf("start %s: %w", b.Name, err)
	}
	return stdin, cmd, nil
}

func (e *Engine) monitorProcess() {
	defer e.wg.Done()
	_ = e.cmd.Wait()
	e.running.Store(false)
}

func (e *Engine) monitorMixer() {
	defer e.wg.Done()
	select {
	case <-e.mixer.Errors():
		e.running.Store(false)
	case <-e.mixer.done:
	}
}

// Play queues cue at its configured volume
func (e *Engine) Play(cue Cue) bool {
	if !e.running.Load() || e.muted.Load() {
		return false
	}
	e.mu.RLock()
	vol := e.config.MasterVolume
	if cv, ok := e.config.CueVolumes[cue]; ok {
		vol *= cv
	}
	e.mu.RUnlock()

	e.mixer.Play(cue, vol)
	return true
}

// ToggleMute flips mute state and reports whether sound is now on
func (e *Engine) ToggleMute() bool {
	muted := !e.muted.Load()
	e.muted.Store(muted)
	return !muted
}

// Muted reports whether cues are currently suppressed
func (e *Engine) Muted() bool {
	return e.muted.Load()
}

// Volume returns the master volume
func (e *Engine) Volume() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config.MasterVolume
}

// SetVolume updates master volume, clamped to [0,1]
func (e *Engine) SetVolume(vol float64) {
	e.mu.Lock()
	e.config.MasterVolume = min(max(vol, 0), 1)
	e.mu.Unlock()
}

// Stats returns played and dropped counts
func (e *Engine) Stats() (played, dropped uint64) {
	return e.mixer.Stats()
}

// Close stops mixing and terminates the backend
func (e *Engine) Close() {
	e.running.Store(false)
	e.mixer.Stop()
	if e.stdin != nil {
		e.stdin.Close()
	}
	if e.ossFile != nil {
		e.ossFile.Close()
	}
	if e.cmd != nil && e.cmd.Process != nil {
		e.cmd.Process.Kill()
	}
	e.wg.Wait()
}

// Handler plays the matching cue for deck events
func Handler(p Player) events.Handler {
	return events.HandlerFunc(func(ev events.Event) {
		switch ev.Type {
		case events.EventJudged:
			p.Play(CueJudged)
		case events.EventBack:
			p.Play(CueBack)
		case events.EventRejected:
			p.Play(CueReject)
		case events.EventCancelled:
			p.Play(CueCancel)
		}
	}, events.EventJudged, events.EventBack, events.EventRejected, events.EventCancelled)
}
