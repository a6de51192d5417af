package audio

import (
	"github.com/lixenwraith/word-fall/arcade"
)

// Config holds playback settings
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
	Volumes      map[arcade.Cue]float64
}

// DefaultConfig returns audible defaults at 44.1kHz
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
		Volumes: map[arcade.Cue]float64{
			arcade.CueMatch:    0.6,
			arcade.CueMiss:     0.5,
			arcade.CueGameOver: 0.7,
		},
	}
}

// volume is the effective gain for cue, clamped to [0, 1]
func (c Config) volume(cue arcade.Cue) float64 {
	v := c.MasterVolume
	if ev, ok := c.Volumes[cue]; ok {
		v *= ev
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
