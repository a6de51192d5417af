package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/word-fall/arcade"
)

const (
	// maxVoices bounds simultaneous sounds; the oldest is cut when exceeded
	maxVoices = 6

	// drainBurst is how many extra queued requests are taken per wakeup
	drainBurst = 4

	// stopWait bounds Stop when the loop is stuck writing to an unclosable sink
	stopWait = 250 * time.Millisecond
)

// activeSound tracks a playing sound instance
type activeSound struct {
	buffer floatBuffer
	pos    int
	volume float64
}

type playRequest struct {
	cue    arcade.Cue
	volume float64
}

// Mixer sums active sounds and writes PCM to output on a fixed tick
type Mixer struct {
	output         io.Writer
	cache          *soundCache
	samplesPerTick int

	playQueue chan playRequest
	stopChan  chan struct{}
	done      chan struct{}
	started   atomic.Bool
	stopped   atomic.Bool

	// Accessed only by mix goroutine
	active []activeSound

	played  atomic.Uint64
	dropped atomic.Uint64

	errChan chan error
}

// NewMixer creates a mixer writing to out
func NewMixer(out io.Writer, cache *soundCache) *Mixer {
	return &Mixer{
		output:         out,
		cache:          cache,
		samplesPerTick: cache.rate.N(bufferDuration),
		playQueue:      make(chan playRequest, queueSize),
		stopChan:       make(chan struct{}),
		done:           make(chan struct{}),
		active:         make([]activeSound, 0, 8),
		errChan:        make(chan error, 1),
	}
}

// Start begins the mixing loop
func (m *Mixer) Start() {
	if m.started.CompareAndSwap(false, true) {
		go m.loop()
	}
}

// Stop halts the mixer and waits up to stopWait for the loop to exit.
// Close the output first so a blocked write returns.
func (m *Mixer) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
	}
	if !m.started.Load() {
		return
	}
	select {
	case <-m.done:
	case <-time.After(stopWait):
	}
}

// Play queues a cue at the given gain without blocking
func (m *Mixer) Play(cue arcade.Cue, volume float64) error {
	if m.stopped.Load() {
		return ErrNotRunning
	}

	select {
	case m.playQueue <- playRequest{cue: cue, volume: volume}:
		return nil
	default:
		m.dropped.Add(1)
		return ErrQueueFull
	}
}

// Errors returns channel for pipe errors
func (m *Mixer) Errors() <-chan error {
	return m.errChan
}

func (m *Mixer) loop() {
	defer close(m.done)

	ticker := time.NewTicker(bufferDuration)
	defer ticker.Stop()

	mixBuf := make([]float64, m.samplesPerTick)
	outBytes := make([]byte, m.samplesPerTick*bytesPerFrame)

	for {
		select {
		case <-m.stopChan:
			return

		case req := <-m.playQueue:
			m.activate(req)
			m.drainQueue(drainBurst)

		case <-ticker.C:
			if len(m.active) == 0 {
				// Silence keeps the pipe alive
				clear(outBytes)
			} else {
				clear(mixBuf)
				m.active = m.mixActive(mixBuf, m.samplesPerTick)
				floatToBytes(mixBuf, outBytes)
			}

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

func (m *Mixer) activate(req playRequest) {
	buf := m.cache.get(req.cue)
	if len(buf) == 0 {
		return
	}
	if len(m.active) >= maxVoices {
		copy(m.active, m.active[1:])
		m.active = m.active[:len(m.active)-1]
		m.dropped.Add(1)
	}
	m.active = append(m.active, activeSound{buffer: buf, volume: req.volume})
	m.played.Add(1)
}

// drainQueue processes up to n additional queued requests
func (m *Mixer) drainQueue(n int) {
	for i := 0; i < n; i++ {
		select {
		case req := <-m.playQueue:
			m.activate(req)
		default:
			return
		}
	}
}

// mixActive mixes all active sounds into buf, returns remaining sounds
func (m *Mixer) mixActive(buf []float64, samples int) []activeSound {
	remaining := m.active[:0]

	for i := range m.active {
		s := &m.active[i]
		for j := 0; j < samples && s.pos < len(s.buffer); j++ {
			buf[j] += s.buffer[s.pos] * s.volume
			s.pos++
		}
		if s.pos < len(s.buffer) {
			remaining = append(remaining, *s)
		}
	}

	return remaining
}

// floatToBytes converts float64 mono to interleaved stereo int16 LE bytes
// Applies soft limiting before hard clip
func floatToBytes(in []float64, out []byte) {
	for i, v := range in {
		if v > 0.8 {
			v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
		} else if v < -0.8 {
			v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
		}

		if v > 1.0 {
			v = 1.0
		} else if v < -1.0 {
			v = -1.0
		}

		i16 := int16(v * 32767)
		idx := i * bytesPerFrame
		binary.LittleEndian.PutUint16(out[idx:], uint16(i16))   // L
		binary.LittleEndian.PutUint16(out[idx+2:], uint16(i16)) // R
	}
}

// Stats returns started and dropped counts; cut voices count as dropped
func (m *Mixer) Stats() (played, dropped uint64) {
	return m.played.Load(), m.dropped.Load()
}
