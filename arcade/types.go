// Package arcade implements the falling-words vocabulary game: spawn scheduling,
// the per-frame simulation, input matching and session bookkeeping.
//
// A Session is owned by a single goroutine. The host calls Tick once per frame
// and SetInput/Submit from key events on that same goroutine; nothing here locks.
package arcade

import (
	"time"
)

// VocabularyItem is an immutable word pair, identified by Source
type VocabularyItem struct {
	Source       string `yaml:"source"`
	Target       string `yaml:"target"`
	PartOfSpeech string `yaml:"pos,omitempty"`
}

// FallingItem is a live on-screen word
type FallingItem struct {
	ID     uint64
	Source string // displayed
	Target string // typed
	X, Y   float64
	Speed  float64 // rows per Frame
	IsNew  bool    // originated from the fallback list
	Origin VocabularyItem
}

// Particle is a cosmetic burst fragment
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Color  uint32 // 0xRRGGBB
}

// Phase is the session state machine
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
	PhaseExited
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	case PhaseExited:
		return "exited"
	default:
		return "unknown"
	}
}

// EventType identifies session events drained by the host
type EventType int

const (
	EventSpawn EventType = iota
	EventMatch
	EventMiss     // item passed the bottom, life lost
	EventNearMiss // submit rejected but close to a live target
	EventGameOver
)

func (t EventType) String() string {
	switch t {
	case EventSpawn:
		return "spawn"
	case EventMatch:
		return "match"
	case EventMiss:
		return "miss"
	case EventNearMiss:
		return "near_miss"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event records one state change, in occurrence order
type Event struct {
	Type   EventType
	ItemID uint64
	Source string
	IsNew  bool
	Score  int
	Lives  int
}

// Cue names a sound effect
type Cue int

const (
	CueMatch Cue = iota
	CueMiss
	CueGameOver
)

// SoundPlayer plays cues best-effort; returned errors are ignored by the session
type SoundPlayer interface {
	Play(cue Cue) error
}

// Struggle counts how often a word was missed or nearly typed in one session
type Struggle struct {
	Item       VocabularyItem
	Misses     int
	NearMisses int
}

// Total is the weight used for ordering review candidates
func (s Struggle) Total() int {
	return s.Misses + s.NearMisses
}

// Result is reported to the caller when a session ends, by game over or exit
type Result struct {
	SessionID string
	Score     int
	Level     int
	XPAwarded int
	Learned   []VocabularyItem
	Struggles []Struggle
	Duration  time.Duration
	GameOver  bool
}
