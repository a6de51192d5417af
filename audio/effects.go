package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/word-fall/arcade"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Match chime: A5 with an octave overtone
const (
	matchDuration         = 600 * time.Millisecond
	matchAttack           = 5 * time.Millisecond
	matchFundamentalDecay = 550 * time.Millisecond
	matchOvertoneDecay    = 200 * time.Millisecond
)

// Miss buzz
const (
	missDuration = 120 * time.Millisecond
	missAttack   = 5 * time.Millisecond
	missRelease  = 40 * time.Millisecond
)

// Game over: descending square notes, last one held
const (
	gameOverNote    = 150 * time.Millisecond
	gameOverLast    = 450 * time.Millisecond
	gameOverAttack  = 5 * time.Millisecond
	gameOverRelease = 60 * time.Millisecond
)

var gameOverNotes = []float64{659.25, 523.25, 392.00, 261.63} // E5 C5 G4 C4

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator streamer
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is expressed as Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateMatchSound is a bell ding for a typed word
func CreateMatchSound(rate beep.SampleRate) beep.Streamer {
	fund := NewOscillator(880.0, matchDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, matchDuration, matchAttack, matchFundamentalDecay, rate)

	over := NewOscillator(1760.0, matchDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, matchDuration, matchAttack, matchOvertoneDecay, rate)

	// Bounded so the mix ends with its inputs
	return beep.Take(rate.N(matchDuration), beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	))
}

// CreateMissSound is a low saw buzz for a word that reached the bottom
func CreateMissSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(100.0, missDuration, WaveSaw, rate)
	return NewEnvelope(osc, missDuration, missAttack, missRelease, rate)
}

// CreateGameOverSound plays a falling four-note phrase
func CreateGameOverSound(rate beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(gameOverNotes))
	for i, freq := range gameOverNotes {
		d := gameOverNote
		if i == len(gameOverNotes)-1 {
			d = gameOverLast
		}
		osc := NewOscillator(freq, d, WaveSquare, rate)
		notes = append(notes, newVolume(NewEnvelope(osc, d, gameOverAttack, gameOverRelease, rate), 0.5))
	}
	return beep.Seq(notes...)
}

// CueStreamer returns a fresh unity-gain streamer for cue, nil if unknown
func CueStreamer(cue arcade.Cue, rate beep.SampleRate) beep.Streamer {
	switch cue {
	case arcade.CueMatch:
		return CreateMatchSound(rate)
	case arcade.CueMiss:
		return CreateMissSound(rate)
	case arcade.CueGameOver:
		return CreateGameOverSound(rate)
	default:
		return nil
	}
}

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// renderStreamer drains s into a mono buffer, reading at most limit samples
func renderStreamer(s beep.Streamer, limit int) floatBuffer {
	out := make(floatBuffer, 0, limit)
	chunk := make([][2]float64, 512)
	for len(out) < limit {
		want := limit - len(out)
		if want > len(chunk) {
			want = len(chunk)
		}
		n, ok := s.Stream(chunk[:want])
		for i := 0; i < n; i++ {
			out = append(out, (chunk[i][0]+chunk[i][1])/2)
		}
		if !ok || n == 0 {
			break
		}
	}
	return out
}

// cueLength is the upper bound on a cue's sample count
func cueLength(cue arcade.Cue, rate beep.SampleRate) int {
	switch cue {
	case arcade.CueMatch:
		return rate.N(matchDuration)
	case arcade.CueMiss:
		return rate.N(missDuration)
	case arcade.CueGameOver:
		return rate.N(gameOverNote*time.Duration(len(gameOverNotes)-1) + gameOverLast)
	default:
		return 0
	}
}
