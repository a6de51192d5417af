package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/word-fall/arcade"
	"github.com/lixenwraith/word-fall/observe"
	"github.com/lixenwraith/word-fall/render"
)

// Muter is the optional sound switch bound to F2
type Muter interface {
	SetMuted(muted bool)
	IsMuted() bool
}

// Game binds a session to a terminal screen and implements Handler
type Game struct {
	ctx      context.Context
	session  *arcade.Session
	screen   tcell.Screen
	renderer *render.Renderer
	metrics  *observe.Metrics
	muter    Muter
	log      *slog.Logger

	finished bool
	result   arcade.Result
}

// GameOption customizes a Game
type GameOption func(*Game)

// WithMetrics records session events; without it DefaultMetrics is used
func WithMetrics(m *observe.Metrics) GameOption {
	return func(g *Game) { g.metrics = m }
}

// WithMuter enables the mute toggle
func WithMuter(m Muter) GameOption {
	return func(g *Game) { g.muter = m }
}

// WithLogger sets the event logger
func WithLogger(l *slog.Logger) GameOption {
	return func(g *Game) { g.log = l }
}

// NewGame fits session to the screen's play area and opens it in metrics
func NewGame(ctx context.Context, screen tcell.Screen, session *arcade.Session, opts ...GameOption) *Game {
	g := &Game{
		ctx:      ctx,
		session:  session,
		screen:   screen,
		renderer: render.NewRenderer(screen),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.metrics == nil {
		g.metrics = observe.DefaultMetrics()
	}
	if g.log == nil {
		g.log = slog.New(slog.DiscardHandler)
	}
	if g.muter != nil {
		g.renderer.SetMuted(g.muter.IsMuted())
	}

	g.session.Resize(g.renderer.PlayArea())
	g.metrics.SessionStarted(ctx)
	g.log.Info("session started",
		"session", session.ID(),
		"pool", session.Pool().Len(),
		"spawn_interval", session.SpawnInterval(),
	)
	return g
}

// Session returns the driven session
func (g *Game) Session() *arcade.Session {
	return g.session
}

// Frame advances the simulation and redraws
func (g *Game) Frame(dt time.Duration) bool {
	if g.finished {
		return false
	}
	g.session.Tick(dt)
	g.drain()
	g.renderer.Draw(g.session)
	return true
}

// Event dispatches terminal events
func (g *Game) Event(ev tcell.Event) bool {
	if g.finished {
		return false
	}
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.Key(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Resize()
		g.session.Resize(g.renderer.PlayArea())
		g.renderer.Draw(g.session)
	}
	return true
}

// Key applies one key press. Returns false when the player leaves.
func (g *Game) Key(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false

	case tcell.KeyEnter:
		if g.session.Phase() == arcade.PhaseGameOver {
			return false
		}
		g.session.Submit()

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if in := []rune(g.session.Input()); len(in) > 0 {
			g.session.SetInput(string(in[:len(in)-1]))
		}

	case tcell.KeyCtrlU:
		g.session.SetInput("")

	case tcell.KeyF2:
		if g.muter != nil {
			muted := !g.muter.IsMuted()
			g.muter.SetMuted(muted)
			g.renderer.SetMuted(muted)
		}

	case tcell.KeyRune:
		g.session.SetInput(g.session.Input() + string(r))
	}

	g.drain()
	return true
}

// Finish ends the session and reports it once; later calls return the same result
func (g *Game) Finish() arcade.Result {
	if g.finished {
		return g.result
	}
	g.finished = true
	g.result = g.session.Exit()
	g.drain()

	g.metrics.SessionFinished(g.ctx, g.result)
	g.log.Info("session finished",
		"session", g.result.SessionID,
		"score", g.result.Score,
		"level", g.result.Level,
		"xp", g.result.XPAwarded,
		"learned", len(g.result.Learned),
		"struggles", len(g.result.Struggles),
		"duration", g.result.Duration,
		"game_over", g.result.GameOver,
	)
	return g.result
}

// drain forwards queued session events to metrics and the log
func (g *Game) drain() {
	for _, ev := range g.session.DrainEvents() {
		g.metrics.RecordEvent(g.ctx, ev)

		switch ev.Type {
		case arcade.EventGameOver:
			g.log.Info("game over", "score", ev.Score)
		case arcade.EventSpawn:
			g.log.Debug("spawn", "id", ev.ItemID, "source", ev.Source, "new", ev.IsNew)
		default:
			g.log.Debug(ev.Type.String(), "id", ev.ItemID, "source", ev.Source, "score", ev.Score, "lives", ev.Lives)
		}
	}
}
