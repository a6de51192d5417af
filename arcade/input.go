package arcade

import (
	"github.com/antzucaro/matchr"
)

// SetInput replaces the input line and checks it against live items.
// Called on every keystroke. Returns true on a match, which clears the line.
func (s *Session) SetInput(text string) bool {
	if s.phase != PhasePlaying {
		return false
	}
	s.input = text
	return s.tryMatch()
}

// Submit checks the current line on explicit submit. A rejected line that is
// close to a live target is recorded as a near miss; the line is kept.
func (s *Session) Submit() bool {
	if s.phase != PhasePlaying {
		return false
	}
	if s.tryMatch() {
		return true
	}
	s.checkNearMiss()
	return false
}

// tryMatch removes the first live item, in spawn order, whose target equals the input
func (s *Session) tryMatch() bool {
	want := Normalize(s.input)
	if want == "" {
		return false
	}
	for i := range s.items {
		if Normalize(s.items[i].Target) == want {
			s.match(i)
			return true
		}
	}
	return false
}

func (s *Session) match(i int) {
	item := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)

	s.score += s.cfg.MatchScore
	s.interval = s.cfg.SpawnInterval(s.score)
	s.input = ""
	s.burst(item.X, item.Y)
	s.play(CueMatch)

	if item.IsNew {
		s.learn(item.Origin)
	}
	s.emit(EventMatch, &item)
}

func (s *Session) checkNearMiss() {
	got := Normalize(s.input)
	if got == "" {
		return
	}

	best, bestScore := -1, 0.0
	for i := range s.items {
		score := matchr.JaroWinkler(got, Normalize(s.items[i].Target), false)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore < s.cfg.NearMissThreshold {
		return
	}

	item := s.items[best]
	s.struggle(item.Origin).NearMisses++
	s.emit(EventNearMiss, &item)
}
