package audio

import (
	"sync"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/word-fall/arcade"
)

// soundCache stores pre-rendered unity-gain buffers per cue
type soundCache struct {
	rate  beep.SampleRate
	mu    sync.RWMutex
	store map[arcade.Cue]floatBuffer
}

func newSoundCache(rate beep.SampleRate) *soundCache {
	return &soundCache{rate: rate, store: make(map[arcade.Cue]floatBuffer)}
}

// get returns the cached buffer or renders it on demand
func (c *soundCache) get(cue arcade.Cue) floatBuffer {
	c.mu.RLock()
	buf, ok := c.store[cue]
	c.mu.RUnlock()
	if ok {
		return buf
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if buf, ok := c.store[cue]; ok {
		return buf
	}

	s := CueStreamer(cue, c.rate)
	if s == nil {
		return nil
	}
	buf = renderStreamer(s, cueLength(cue, c.rate))
	c.store[cue] = buf
	return buf
}

// preload renders the per-word cues so the first match does not stall the mixer
func (c *soundCache) preload() {
	c.get(arcade.CueMatch)
	c.get(arcade.CueMiss)
}
