// Package audio plays word-fall sound cues by piping raw PCM into a system
// player (pacat, pw-cat, aplay, sox, ffplay) or the OSS device.
// Cue sounds are synthesized once with beep streamers and cached.
package audio

import (
	"errors"
	"time"
)

// Output format: interleaved stereo, signed 16-bit little endian
const (
	channels      = 2
	bytesPerFrame = channels * 2

	// bufferDuration sets latency and the mixer tick rate
	bufferDuration = 50 * time.Millisecond

	queueSize = 32
)

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
	ErrNotRunning     = errors.New("audio engine not running")
	ErrAlreadyRunning = errors.New("audio engine already running")
	ErrMuted          = errors.New("audio muted")
	ErrQueueFull      = errors.New("audio queue full")
)
