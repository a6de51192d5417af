package arcade

import (
	"time"

	"github.com/mattn/go-runewidth"
)

// updateSpawn fires one spawn attempt once the interval has elapsed.
// The timer restarts even when the screen is saturated and nothing spawns.
func (s *Session) updateSpawn(dt time.Duration) {
	s.sinceSpawn += dt
	if s.sinceSpawn < s.interval {
		return
	}
	s.sinceSpawn = 0
	s.spawn()
}

func (s *Session) spawn() {
	candidates := s.candidates(true)
	if len(candidates) == 0 {
		// Everything off-screen was recently used: forget history, keep the on-screen rule
		s.history = s.history[:0]
		candidates = s.candidates(false)
	}
	if len(candidates) == 0 {
		return
	}

	e := candidates[s.rng.Intn(len(candidates))]

	x := 0.0
	if maxX := int(s.maxX(e.item.Source)); maxX > 0 {
		x = float64(s.rng.Intn(maxX + 1))
	}

	speed := s.cfg.BaseSpeed(s.score)
	if s.cfg.SpeedJitter > 0 {
		speed += s.rng.Float64() * s.cfg.SpeedJitter
	}

	s.nextID++
	s.items = append(s.items, FallingItem{
		ID:     s.nextID,
		Source: e.item.Source,
		Target: e.item.Target,
		X:      x,
		Y:      -1,
		Speed:  speed,
		IsNew:  e.isNew,
		Origin: e.item,
	})
	s.remember(e.item.Source)
	s.emit(EventSpawn, &s.items[len(s.items)-1])
}

// candidates filters the pool against live items and, optionally, recent history
func (s *Session) candidates(withHistory bool) []poolEntry {
	excluded := make(map[string]struct{}, len(s.items)+len(s.history))
	for _, it := range s.items {
		excluded[it.Source] = struct{}{}
	}
	if withHistory {
		for _, src := range s.history {
			excluded[src] = struct{}{}
		}
	}

	out := make([]poolEntry, 0, len(s.pool.entries))
	for _, e := range s.pool.entries {
		if _, skip := excluded[e.item.Source]; !skip {
			out = append(out, e)
		}
	}
	return out
}

func (s *Session) remember(source string) {
	if s.cfg.HistorySize == 0 {
		return
	}
	s.history = append(s.history, source)
	if over := len(s.history) - s.cfg.HistorySize; over > 0 {
		s.history = append(s.history[:0], s.history[over:]...)
	}
}

// maxX is the rightmost column a word can start at without clipping
func (s *Session) maxX(text string) float64 {
	maxX := s.cfg.Width - runewidth.StringWidth(text) - s.cfg.SpawnMargin
	if maxX < 0 {
		return 0
	}
	return float64(maxX)
}
