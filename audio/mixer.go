package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// mixTick is the mixer period and output latency
const mixTick = 20 * time.Millisecond

// activeCue tracks a playing cue instance
type activeCue struct {
	buffer floatBuffer
	pos    int
	volume float64
}

type playRequest struct {
	cue    Cue
	volume float64
}

// Mixer sums active cues and writes PCM to an output every tick
type Mixer struct {
	output io.Writer
	cache  *cueCache
	frames int

	playQueue chan playRequest
	stopChan  chan struct{}
	started   atomic.Bool
	stopped   atomic.Bool
	done      chan struct{}

	// Accessed only by the mix goroutine
	active []activeCue

	statsMu sync.Mutex
	played  uint64
	dropped uint64

	errChan chan error
}

// NewMixer creates a mixer writing to out
func NewMixer(out io.Writer, cache *cueCache) *Mixer {
	return &Mixer{
		output:    out,
		cache:     cache,
		frames:    cache.rate.N(mixTick),
		playQueue: make(chan playRequest, 32),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
		active:    make([]activeCue, 0, 8),
		errChan:   make(chan error, 1),
	}
}

// Start begins the mixing loop
func (m *Mixer) Start() {
	if m.started.CompareAndSwap(false, true) {
		go m.loop()
	}
}

// Stop halts the mixer and waits for the loop to exit
func (m *Mixer) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
	}
	if m.started.Load() {
		<-m.done
	}
}

// Play queues cue at volume; dropped when the queue is full
func (m *Mixer) Play(cue Cue, volume float64) {
	if m.stopped.Load() {
		return
	}
	select {
	case m.playQueue <- playRequest{cue: cue, volume: volume}:
	default:
		m.statsMu.Lock()
		m.dropped++
		m.statsMu.Unlock()
	}
}

// Errors returns the channel reporting output failures
func (m *Mixer) Errors() <-chan error {
	return m.errChan
}

func (m *Mixer) loop() {
	defer close(m.done)
	ticker := time.NewTicker(mixTick)
	defer ticker.Stop()

	mixBuf := make([]float64, m.frames)
	outBytes := make([]byte, m.frames*bytesPerFrame)

	for {
		select {
		case <-m.stopChan:
			return

		case req := <-m.playQueue:
			m.enqueue(req)
			m.drainQueue(4)

		case <-ticker.C:
			clear(mixBuf)
			m.active = m.mixActive(mixBuf)
			floatToBytes(mixBuf, outBytes)

			// Silence is written too, keeping the pipe alive
			if _, err := m.output.Write(outBytes); err != nil {
				select {
				case m.errChan <- fmt.Errorf("%w: %v", ErrPipeClosed, err):
				default:
				}
				return
			}
		}
	}
}

func (m *Mixer) enqueue(req playRequest) {
	buf := m.cache.get(req.cue)
	if len(buf) == 0 {
		return
	}
	m.active = append(m.active, activeCue{buffer: buf, volume: req.volume})
	m.statsMu.Lock()
	m.played++
	m.statsMu.Unlock()
}

// drainQueue processes up to n additional queued requests
func (m *Mixer) drainQueue(n int) {
	for range n {
		select {
		case req := <-m.playQueue:
			m.enqueue(req)
		default:
			return
		}
	}
}

// mixActive adds active cues into buf and returns those still playing
func (m *Mixer) mixActive(buf []float64) []activeCue {
	remaining := m.active[:0]
	for i := range m.active {
		s := &m.active[i]
		for j := 0; j < len(buf) && s.pos < len(s.buffer); j++ {
			buf[j] += s.buffer[s.pos] * s.volume
			s.pos++
		}
		if s.pos < len(s.buffer) {
			remaining = append(remaining, *s)
		}
	}
	return remaining
}

// floatToBytes converts mono floats to interleaved stereo s16le with soft limiting
func floatToBytes(in []float64, out []byte) {
	for i, v := range in {
		if v > 0.8 {
			v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
		} else if v < -0.8 {
			v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
		}
		v = min(max(v, -1), 1)

		s := uint16(int16(v * 32767))
		idx := i * bytesPerFrame
		binary.LittleEndian.PutUint16(out[idx:], s)
		binary.LittleEndian.PutUint16(out[idx+2:], s)
	}
}

// Stats returns played and dropped counts
func (m *Mixer) Stats() (played, dropped uint64) {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	return m.played, m.dropped
}
