package audio

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/word-fall/arcade"
)

var _ arcade.SoundPlayer = (*Engine)(nil)

// Engine plays cues through a system audio backend
type Engine struct {
	config Config
	cache  *soundCache
	mixer  *Mixer

	backend *BackendConfig
	cmd     *exec.Cmd
	sink    io.Closer // player stdin or the OSS device
	quit    chan struct{}

	running    atomic.Bool
	muted      atomic.Bool
	silentMode atomic.Bool

	mu sync.RWMutex // Protects config
	wg sync.WaitGroup
}

// NewEngine creates a stopped engine; a disabled config starts muted
func NewEngine(cfg Config) *Engine {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	e := &Engine{
		config: cfg,
		cache:  newSoundCache(beep.SampleRate(cfg.SampleRate)),
	}
	e.muted.Store(!cfg.Enabled)
	return e
}

// Start detects a backend and launches it with the mixer.
// Without a backend the engine stays stopped and Play reports ErrNotRunning.
func (e *Engine) Start() error {
	if e.running.Load() {
		return ErrAlreadyRunning
	}

	backend, err := DetectBackend(e.config.SampleRate)
	if err != nil {
		return err
	}
	e.backend = backend

	var writer io.Writer
	if backend.Type == BackendOSS {
		f, err := os.OpenFile(backend.Path, os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("open %s: %w", backend.Path, err)
		}
		writer = f
	} else {
		cmd := exec.Command(backend.Path, backend.Args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return fmt.Errorf("%s stdin: %w", backend.Name, err)
		}
		if err := cmd.Start(); err != nil {
			stdin.Close()
			return fmt.Errorf("start %s: %w", backend.Name, err)
		}
		e.cmd = cmd
		writer = stdin

		e.wg.Add(1)
		go e.monitorProcess()
	}

	return e.StartWriter(writer)
}

// StartWriter runs the mixer against an arbitrary PCM sink.
// A sink that is also an io.Closer is closed by Stop.
func (e *Engine) StartWriter(w io.Writer) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	if c, ok := w.(io.Closer); ok {
		e.sink = c
	}
	e.quit = make(chan struct{})

	e.cache.preload()
	e.mixer = NewMixer(w, e.cache)
	e.mixer.Start()

	e.wg.Add(1)
	go e.monitorMixer(e.mixer)
	return nil
}

// monitorProcess watches for subprocess exit
func (e *Engine) monitorProcess() {
	defer e.wg.Done()

	err := e.cmd.Wait()
	if err != nil && e.running.Load() {
		e.silentMode.Store(true)
	}
}

// monitorMixer watches for pipe errors
func (e *Engine) monitorMixer(m *Mixer) {
	defer e.wg.Done()

	select {
	case <-m.Errors():
		e.silentMode.Store(true)
	case <-m.done:
	case <-e.quit:
	}
}

// Stop terminates the mixer and backend; safe to call more than once
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}

	close(e.quit)

	// Sink goes first: a stalled player leaves the mixer blocked in Write
	if e.sink != nil {
		e.sink.Close()
	}
	if e.cmd != nil && e.cmd.Process != nil {
		e.cmd.Process.Kill()
	}
	if e.mixer != nil {
		e.mixer.Stop()
	}

	e.wg.Wait()
}

// Play queues cue for playback and returns immediately
func (e *Engine) Play(cue arcade.Cue) error {
	if !e.running.Load() || e.silentMode.Load() || e.mixer == nil {
		return ErrNotRunning
	}
	if e.muted.Load() {
		return ErrMuted
	}

	e.mu.RLock()
	vol := e.config.volume(cue)
	e.mu.RUnlock()

	return e.mixer.Play(cue, vol)
}

// SetMuted silences or restores playback
func (e *Engine) SetMuted(muted bool) {
	e.muted.Store(muted)
}

// IsMuted returns current mute state
func (e *Engine) IsMuted() bool {
	return e.muted.Load()
}

// Backend names the active backend, empty when none
func (e *Engine) Backend() string {
	if e.backend == nil {
		return ""
	}
	return e.backend.Name
}

// Stats returns played and dropped counts
func (e *Engine) Stats() (played, dropped uint64) {
	if e.mixer == nil {
		return 0, 0
	}
	return e.mixer.Stats()
}
