package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer producing duration of wave at freq
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration with the given attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := max(e.totalSamples-e.releaseSamples, e.attackSamples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		switch {
		case e.position < e.attackSamples:
			vol = float64(e.position) / float64(e.attackSamples)
		case e.position >= releaseStart && e.releaseSamples > 0:
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s at linear gain vol; zero or less is silent since Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is one enveloped oscillator note
func tone(freq float64, d time.Duration, wave WaveType, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// judgedCue is a rising fifth, E5 then B5
func judgedCue(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		tone(659.25, 60*time.Millisecond, WaveSine, 5*time.Millisecond, 20*time.Millisecond, rate),
		tone(987.77, 120*time.Millisecond, WaveSine, 5*time.Millisecond, 80*time.Millisecond, rate),
	)
}

// backCue is the judged cue reversed with a saw edge
func backCue(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		tone(987.77, 60*time.Millisecond, WaveSaw, 5*time.Millisecond, 20*time.Millisecond, rate),
		tone(659.25, 100*time.Millisecond, WaveSaw, 5*time.Millisecond, 60*time.Millisecond, rate),
	)
}

// rejectCue is a low square buzz with a soft octave under it
func rejectCue(rate beep.SampleRate) beep.Streamer {
	d := 180 * time.Millisecond
	return beep.Mix(
		newVolume(tone(110, d, WaveSquare, 5*time.Millisecond, 60*time.Millisecond, rate), 0.7),
		newVolume(tone(55, d, WaveSine, 5*time.Millisecond, 90*time.Millisecond, rate), 0.3),
	)
}

// cancelCue is a short noise whoosh
func cancelCue(rate beep.SampleRate) beep.Streamer {
	d := 90 * time.Millisecond
	return tone(0, d, WaveNoise, 20*time.Millisecond, 60*time.Millisecond, rate)
}

// CueStreamer returns the unity-gain streamer for cue, nil for unknown cues
func CueStreamer(cue Cue, rate beep.SampleRate) beep.Streamer {
	switch cue {
	case CueJudged:
		return judgedCue(rate)
	case CueBack:
		return backCue(rate)
	case CueReject:
		return rejectCue(rate)
	case CueCancel:
		return cancelCue(rate)
	default:
		return nil
	}
}
