package audio

import (
	"encoding/binary"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/word-fall/arcade"
)

// pcmSink records whether any non-silent frame was written
type pcmSink struct {
	mu     sync.Mutex
	writes int
	sound  bool
}

func (p *pcmSink) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writes++
	for i := 0; i+1 < len(b); i += 2 {
		if binary.LittleEndian.Uint16(b[i:]) != 0 {
			p.sound = true
			break
		}
	}
	return len(b), nil
}

func (p *pcmSink) heard() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sound
}

func (p *pcmSink) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

func TestPlayBeforeStart(t *testing.T) {
	e := NewEngine(DefaultConfig())
	assert.ErrorIs(t, e.Play(arcade.CueMatch), ErrNotRunning)
	e.Stop() // no-op
}

func TestEngineWritesCue(t *testing.T) {
	e := NewEngine(DefaultConfig())
	sink := &pcmSink{}
	require.NoError(t, e.StartWriter(sink))
	defer e.Stop()

	// Silence is written while idle
	require.Eventually(t, func() bool { return sink.count() > 0 }, 2*time.Second, 10*time.Millisecond)
	assert.False(t, sink.heard())

	require.NoError(t, e.Play(arcade.CueMatch))
	require.Eventually(t, sink.heard, 2*time.Second, 10*time.Millisecond)

	played, dropped := e.Stats()
	assert.Equal(t, uint64(1), played)
	assert.Zero(t, dropped)
}

func TestEngineMuted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	e := NewEngine(cfg)
	require.NoError(t, e.StartWriter(&pcmSink{}))
	defer e.Stop()

	assert.True(t, e.IsMuted())
	assert.ErrorIs(t, e.Play(arcade.CueMiss), ErrMuted)

	e.SetMuted(false)
	assert.NoError(t, e.Play(arcade.CueMiss))
}

func TestEngineStopIdempotent(t *testing.T) {
	e := NewEngine(DefaultConfig())
	require.NoError(t, e.StartWriter(&pcmSink{}))
	assert.ErrorIs(t, e.StartWriter(&pcmSink{}), ErrAlreadyRunning)

	e.Stop()
	e.Stop()
	assert.ErrorIs(t, e.Play(arcade.CueMatch), ErrNotRunning)
}

// stuckWriter blocks every Write until released and cannot be closed
type stuckWriter struct{ release chan struct{} }

func (w stuckWriter) Write(b []byte) (int, error) {
	<-w.release
	return len(b), nil
}

// stopsWithin runs e.Stop and fails if it has not returned by limit
func stopsWithin(t *testing.T, e *Engine, limit time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		e.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(limit):
		t.Fatalf("Stop did not return within %v", limit)
	}
}

func TestEngineStopStalledPlayer(t *testing.T) {
	pr, pw := io.Pipe()
	defer pr.Close()

	e := NewEngine(DefaultConfig())
	require.NoError(t, e.StartWriter(pw))

	// Nothing reads pr, so the first tick blocks in Write
	time.Sleep(120 * time.Millisecond)
	stopsWithin(t, e, 2*time.Second)
	assert.ErrorIs(t, e.Play(arcade.CueMatch), ErrNotRunning)
}

func TestEngineStopUnclosableSink(t *testing.T) {
	w := stuckWriter{release: make(chan struct{})}
	defer close(w.release)

	e := NewEngine(DefaultConfig())
	require.NoError(t, e.StartWriter(w))

	time.Sleep(120 * time.Millisecond)
	stopsWithin(t, e, 2*time.Second)
}

func TestConfigVolume(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, 0.3, cfg.volume(arcade.CueMatch), 1e-9)

	cfg.MasterVolume = 3
	cfg.Volumes[arcade.CueMiss] = 1
	assert.Equal(t, 1.0, cfg.volume(arcade.CueMiss))

	cfg.MasterVolume = -1
	assert.Zero(t, cfg.volume(arcade.CueMatch))
}

func TestFloatToBytesLimits(t *testing.T) {
	out := make([]byte, 3*bytesPerFrame)
	floatToBytes([]float64{0, 5, -5}, out)

	assert.Equal(t, int16(0), int16(binary.LittleEndian.Uint16(out[0:])))
	hi := int16(binary.LittleEndian.Uint16(out[4:]))
	lo := int16(binary.LittleEndian.Uint16(out[8:]))
	assert.Greater(t, hi, int16(26000))
	assert.LessOrEqual(t, hi, int16(32767))
	assert.Equal(t, -hi, lo)
	// Stereo channels match
	assert.Equal(t, out[4:6], out[6:8])
}

func TestMixActiveDropsFinished(t *testing.T) {
	m := NewMixer(&pcmSink{}, newSoundCache(testRate))
	m.active = []activeSound{
		{buffer: floatBuffer{1, 1}, volume: 0.5},
		{buffer: floatBuffer{1, 1, 1, 1, 1}, volume: 1},
	}

	buf := make([]float64, 3)
	m.active = m.mixActive(buf, 3)

	assert.Equal(t, []float64{1.5, 1.5, 1}, buf)
	require.Len(t, m.active, 1)
	assert.Equal(t, 3, m.active[0].pos)
}

func TestActivateCapsVoices(t *testing.T) {
	m := NewMixer(&pcmSink{}, newSoundCache(testRate))
	for i := 0; i < maxVoices+1; i++ {
		m.activate(playRequest{cue: arcade.CueMatch, volume: float64(i)})
	}

	require.Len(t, m.active, maxVoices)
	assert.Equal(t, 1.0, m.active[0].volume, "oldest voice is cut")
	played, dropped := m.Stats()
	assert.Equal(t, uint64(maxVoices+1), played)
	assert.Equal(t, uint64(1), dropped)
}
