package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// render drains s into a mono buffer, averaging the two channels
func render(s beep.Streamer) floatBuffer {
	if s == nil {
		return nil
	}
	var out floatBuffer
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			out = append(out, (chunk[i][0]+chunk[i][1])/2)
		}
		if !ok {
			return out
		}
	}
}

// cueCache stores rendered cue buffers for one sample rate
type cueCache struct {
	rate  beep.SampleRate
	mu    sync.RWMutex
	store [cueCount]floatBuffer
	ready [cueCount]bool
}

func newCueCache(rate beep.SampleRate) *cueCache {
	return &cueCache{rate: rate}
}

// get returns the cached buffer, rendering on first use
func (c *cueCache) get(cue Cue) floatBuffer {
	if cue < 0 || cue >= cueCount {
		return nil
	}

	c.mu.RLock()
	if c.ready[cue] {
		buf := c.store[cue]
		c.mu.RUnlock()
		return buf
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready[cue] {
		return c.store[cue]
	}
	buf := render(CueStreamer(cue, c.rate))
	c.store[cue] = buf
	c.ready[cue] = true
	return buf
}

// preload renders every cue so the first commit does not stall the mixer
func (c *cueCache) preload() {
	for cue := Cue(0); cue < cueCount; cue++ {
		c.get(cue)
	}
}
