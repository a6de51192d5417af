package engine

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
)

const (
	// DefaultFPS matches the nominal arcade frame
	DefaultFPS = 60

	// MaxFrameDelta caps dt after a stall (suspend, slow terminal) so items do not teleport
	MaxFrameDelta = 250 * time.Millisecond
)

// Handler receives frames and terminal events, always from the loop goroutine.
// Returning false from either stops the loop.
type Handler interface {
	Frame(dt time.Duration) bool
	Event(ev tcell.Event) bool
}

// Loop serializes ticks and input for one Handler
type Loop struct {
	clock   Clock
	period  time.Duration
	handler Handler
}

// NewLoop creates a loop ticking fps times per second; fps <= 0 uses DefaultFPS
func NewLoop(clock Clock, fps int, handler Handler) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{
		clock:   clock,
		period:  time.Second / time.Duration(fps),
		handler: handler,
	}
}

// Run drives the handler until it asks to stop, events closes, or ctx is cancelled.
// No Frame or Event call happens after Run returns.
func (l *Loop) Run(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	last := l.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok || !l.handler.Event(ev) {
				return nil
			}

		case <-ticker.C:
			// Cancellation wins over a ready tick
			if ctx.Err() != nil {
				return nil
			}
			now := l.clock.Now()
			dt := now.Sub(last)
			last = now
			if dt > MaxFrameDelta {
				dt = MaxFrameDelta
			}
			if !l.handler.Frame(dt) {
				return nil
			}
		}
	}
}
