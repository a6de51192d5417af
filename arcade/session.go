package arcade

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Session is the state of one play, from open to game over or exit
type Session struct {
	id    string
	cfg   Config
	pool  Pool
	sound SoundPlayer
	rng   *rand.Rand

	fallback []VocabularyItem

	items     []FallingItem
	particles []Particle
	history   []string

	score    int
	lives    int
	phase    Phase
	interval time.Duration
	input    string
	nextID   uint64

	sinceSpawn time.Duration
	flash      time.Duration
	elapsed    time.Duration

	learned    []VocabularyItem
	learnedSet map[string]struct{}
	struggles  map[string]*Struggle

	events []Event
}

// Option customizes a Session at construction
type Option func(*Session)

// WithSound injects the cue player; sessions are silent without one
func WithSound(p SoundPlayer) Option {
	return func(s *Session) { s.sound = p }
}

// WithFallback replaces FallbackVocabulary as the padding list
func WithFallback(items []VocabularyItem) Option {
	return func(s *Session) { s.fallback = items }
}

// WithRand replaces the seeded random source, used by tests for exact placement
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// NewSession opens a session over the caller's learned vocabulary
func NewSession(cfg Config, learned []VocabularyItem, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		id:         uuid.NewString(),
		cfg:        cfg,
		fallback:   FallbackVocabulary,
		lives:      cfg.StartLives,
		phase:      PhasePlaying,
		interval:   cfg.SpawnInterval(0),
		learnedSet: make(map[string]struct{}),
		struggles:  make(map[string]*Struggle),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}

	s.pool = BuildPool(learned, cfg.MinLearned, s.fallback)
	s.history = make([]string, 0, cfg.HistorySize+1)
	// First tick spawns immediately
	s.sinceSpawn = s.interval
	return s, nil
}

func (s *Session) ID() string                   { return s.id }
func (s *Session) Config() Config               { return s.cfg }
func (s *Session) Pool() Pool                   { return s.pool }
func (s *Session) Score() int                   { return s.score }
func (s *Session) Lives() int                   { return s.lives }
func (s *Session) Level() int                   { return s.cfg.Level(s.score) }
func (s *Session) Phase() Phase                 { return s.phase }
func (s *Session) Input() string                { return s.input }
func (s *Session) SpawnInterval() time.Duration { return s.interval }
func (s *Session) Elapsed() time.Duration       { return s.elapsed }

// Flashing reports whether the miss flash is still showing
func (s *Session) Flashing() bool {
	return s.flash > 0
}

// Items returns a copy of the live falling items in spawn order
func (s *Session) Items() []FallingItem {
	out := make([]FallingItem, len(s.items))
	copy(out, s.items)
	return out
}

// Particles returns a copy of the live particles
func (s *Session) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// History returns the recently spawned sources, oldest first
func (s *Session) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Learned returns new words matched this session, in match order
func (s *Session) Learned() []VocabularyItem {
	out := make([]VocabularyItem, len(s.learned))
	copy(out, s.learned)
	return out
}

// DrainEvents returns queued events in order and clears the queue
func (s *Session) DrainEvents() []Event {
	ev := s.events
	s.events = nil
	return ev
}

// Resize changes the play area. Live items are pulled back inside it; an item
// below the new bottom lands on the last row instead of counting as a miss.
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.cfg.Width = width
	s.cfg.Height = height
	maxY := float64(height - 1)
	for i := range s.items {
		if maxX := s.maxX(s.items[i].Source); s.items[i].X > maxX {
			s.items[i].X = maxX
		}
		if s.items[i].Y > maxY {
			s.items[i].Y = maxY
		}
	}
}

// Exit ends the session from outside. A playing session moves to PhaseExited;
// a finished one keeps its phase. The result is the same either way.
func (s *Session) Exit() Result {
	if s.phase == PhasePlaying {
		s.phase = PhaseExited
	}
	return s.Result()
}

// Result summarizes the session so far
func (s *Session) Result() Result {
	return Result{
		SessionID: s.id,
		Score:     s.score,
		Level:     s.Level(),
		XPAwarded: s.score / 10,
		Learned:   s.Learned(),
		Struggles: s.Struggles(),
		Duration:  s.elapsed,
		GameOver:  s.phase == PhaseGameOver,
	}
}

// Struggles returns the words missed or nearly typed, most troublesome first
func (s *Session) Struggles() []Struggle {
	out := make([]Struggle, 0, len(s.struggles))
	for _, st := range s.struggles {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total() != out[j].Total() {
			return out[i].Total() > out[j].Total()
		}
		return out[i].Item.Source < out[j].Item.Source
	})
	return out
}

func (s *Session) struggle(item VocabularyItem) *Struggle {
	st, ok := s.struggles[item.Source]
	if !ok {
		st = &Struggle{Item: item}
		s.struggles[item.Source] = st
	}
	return st
}

func (s *Session) learn(item VocabularyItem) {
	if _, ok := s.learnedSet[item.Source]; ok {
		return
	}
	s.learnedSet[item.Source] = struct{}{}
	s.learned = append(s.learned, item)
}

func (s *Session) emit(t EventType, item *FallingItem) {
	ev := Event{Type: t, Score: s.score, Lives: s.lives}
	if item != nil {
		ev.ItemID = item.ID
		ev.Source = item.Source
		ev.IsNew = item.IsNew
	}
	s.events = append(s.events, ev)
}

// play is fire-and-forget; a failing sound device never touches game state
func (s *Session) play(cue Cue) {
	if s.sound == nil {
		return
	}
	_ = s.sound.Play(cue)
}
