package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedHandler advances the mock clock every frame and stops after maxFrames
type scriptedHandler struct {
	mu        sync.Mutex
	clock     *MockTimeProvider
	step      time.Duration
	maxFrames int
	dts       []time.Duration
	events    []tcell.Event
	stopOnEv  bool
}

func (h *scriptedHandler) Frame(dt time.Duration) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dts = append(h.dts, dt)
	h.clock.Advance(h.step)
	return h.maxFrames == 0 || len(h.dts) < h.maxFrames
}

func (h *scriptedHandler) Event(ev tcell.Event) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
	return !h.stopOnEv
}

func (h *scriptedHandler) frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.dts)
}

func TestLoop_FrameDeltasFromClock(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	h := &scriptedHandler{clock: clock, step: 10 * time.Millisecond, maxFrames: 3}

	err := NewLoop(clock, 500, h).Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{0, 10 * time.Millisecond, 10 * time.Millisecond}, h.dts)
}

func TestLoop_ClampsLongFrames(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	h := &scriptedHandler{clock: clock, step: 5 * time.Second, maxFrames: 2}

	require.NoError(t, NewLoop(clock, 500, h).Run(context.Background(), nil))
	assert.Equal(t, MaxFrameDelta, h.dts[1])
}

func TestLoop_EventStopsLoop(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	h := &scriptedHandler{clock: clock, stopOnEv: true}
	events := make(chan tcell.Event, 1)
	events <- tcell.NewEventInterrupt(nil)

	// Long period so the event is handled before any tick
	require.NoError(t, NewLoop(clock, 1, h).Run(context.Background(), events))
	assert.Len(t, h.events, 1)
}

func TestLoop_ClosedEventsStopLoop(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	h := &scriptedHandler{clock: clock}
	events := make(chan tcell.Event)
	close(events)

	require.NoError(t, NewLoop(clock, 1, h).Run(context.Background(), events))
	assert.Empty(t, h.events)
}

func TestLoop_CancelStopsTicks(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	h := &scriptedHandler{clock: clock, step: time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- NewLoop(clock, 200, h).Run(ctx, nil) }()

	require.Eventually(t, func() bool { return h.frames() >= 2 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	after := h.frames()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, h.frames(), "no frame after Run returns")
}
