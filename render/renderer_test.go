package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/word-fall/arcade"
)

// fakeScene is a fixed snapshot
type fakeScene struct {
	items     []arcade.FallingItem
	particles []arcade.Particle
	score     int
	level     int
	lives     int
	input     string
	flashing  bool
	phase     arcade.Phase
	learned   []arcade.VocabularyItem
}

func (f *fakeScene) Items() []arcade.FallingItem      { return f.items }
func (f *fakeScene) Particles() []arcade.Particle     { return f.particles }
func (f *fakeScene) Score() int                       { return f.score }
func (f *fakeScene) Level() int                       { return f.level }
func (f *fakeScene) Lives() int                       { return f.lives }
func (f *fakeScene) Input() string                    { return f.input }
func (f *fakeScene) Flashing() bool                   { return f.flashing }
func (f *fakeScene) Phase() arcade.Phase              { return f.phase }
func (f *fakeScene) Learned() []arcade.VocabularyItem { return f.learned }

var _ Scene = (*arcade.Session)(nil)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := s.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func fgAt(s tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := s.GetContent(x, y)
	fg, _, _ := style.Decompose()
	return fg
}

func bgAt(s tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := s.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestPlayArea(t *testing.T) {
	s := newTestScreen(t, 60, 20)
	r := NewRenderer(s)

	w, h := r.PlayArea()
	assert.Equal(t, 60, w)
	assert.Equal(t, 17, h)

	s.SetSize(30, 2)
	r.Resize()
	w, h = r.PlayArea()
	assert.Equal(t, 30, w)
	assert.Equal(t, 1, h)
}

func TestDrawLayout(t *testing.T) {
	s := newTestScreen(t, 40, 12)
	r := NewRenderer(s)

	scene := &fakeScene{
		items: []arcade.FallingItem{
			{Source: "chat", Target: "kedi", X: 3, Y: 2},
			{Source: "chien", Target: "köpek", X: 20, Y: 5, IsNew: true},
			{Source: "eau", Target: "su", X: 10, Y: -1}, // above the area
		},
		score: 30,
		level: 1,
		lives: 2,
		input: "ked",
	}
	r.Draw(scene)

	hud := rowText(s, 0)
	assert.Contains(t, hud, "Score 30")
	assert.Contains(t, hud, "Level 1")
	assert.Equal(t, 2, strings.Count(hud, "♥"))

	assert.Equal(t, "chat", rowText(s, 3)[3:7])
	assert.Equal(t, "chien", rowText(s, 6)[20:25])
	for y := 1; y < 10; y++ {
		assert.NotContains(t, rowText(s, y), "eau")
	}

	assert.True(t, strings.HasPrefix(rowText(s, 11), "> ked"))
	assert.Equal(t, strings.Repeat("─", 40), rowText(s, 10))

	// "ked" is a prefix of kedi: highlighted; chien is new: gold
	assert.Equal(t, ColorHighlight, fgAt(s, 3, 3))
	assert.Equal(t, ColorNewWord, fgAt(s, 20, 6))
}

func TestHighlightUsesNormalizedTarget(t *testing.T) {
	s := newTestScreen(t, 40, 12)
	r := NewRenderer(s)

	r.Draw(&fakeScene{
		items: []arcade.FallingItem{{Source: "chien", Target: "köpek", X: 0, Y: 0}},
		lives: 3,
		input: "KOP",
	})
	assert.Equal(t, ColorHighlight, fgAt(s, 0, 1))

	r.Draw(&fakeScene{
		items: []arcade.FallingItem{{Source: "chien", Target: "köpek", X: 0, Y: 0}},
		lives: 3,
		input: "kx",
	})
	assert.Equal(t, ColorWord, fgAt(s, 0, 1))
}

func TestFlashBackground(t *testing.T) {
	s := newTestScreen(t, 20, 8)
	r := NewRenderer(s)

	r.Draw(&fakeScene{lives: 2, flashing: true})
	assert.Equal(t, RgbFlash.Color(), bgAt(s, 5, 3))

	r.Draw(&fakeScene{lives: 2})
	assert.Equal(t, RgbBackground.Color(), bgAt(s, 5, 3))
}

func TestParticlesFade(t *testing.T) {
	s := newTestScreen(t, 20, 8)
	r := NewRenderer(s)

	r.Draw(&fakeScene{
		lives: 1,
		particles: []arcade.Particle{
			{X: 2, Y: 1, Life: 1, Color: 0xFF0000},
			{X: 6, Y: 1, Life: 0.2, Color: 0xFF0000},
			{X: -1, Y: 1, Life: 1, Color: 0xFF0000},
		},
	})

	ch, _, _, _ := s.GetContent(2, 2)
	assert.Equal(t, '*', ch)
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fgAt(s, 2, 2))

	ch, _, _, _ = s.GetContent(6, 2)
	assert.Equal(t, '·', ch)
	assert.NotEqual(t, tcell.NewRGBColor(255, 0, 0), fgAt(s, 6, 2))
}

func TestGameOverOverlay(t *testing.T) {
	s := newTestScreen(t, 40, 14)
	r := NewRenderer(s)

	r.Draw(&fakeScene{
		score:   120,
		level:   2,
		phase:   arcade.PhaseGameOver,
		learned: []arcade.VocabularyItem{{Source: "chat", Target: "kedi"}},
	})

	var screen strings.Builder
	for y := 0; y < 14; y++ {
		screen.WriteString(rowText(s, y))
		screen.WriteByte('\n')
	}
	out := screen.String()
	assert.Contains(t, out, "GAME OVER")
	assert.Contains(t, out, "Score 120  Level 2")
	assert.Contains(t, out, "1 new words learned")
	assert.Contains(t, rowText(s, 0), "-", "no lives left")
}

func TestHudRightSideYieldsToLives(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		muted   bool
		want    string
		notWant string
	}{
		{"wide shows everything", 60, false, "learned 0  esc quit", ""},
		{"narrow drops help", 40, false, "learned 0", "esc quit"},
		{"narrow muted keeps marker only", 40, true, "muted", "learned"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScreen(t, tt.width, 12)
			r := NewRenderer(s)
			r.SetMuted(tt.muted)

			r.Draw(&fakeScene{score: 30, level: 1, lives: 2})

			hud := rowText(s, 0)
			assert.Equal(t, 2, strings.Count(hud, "♥"))
			assert.Contains(t, hud, tt.want)
			if tt.notWant != "" {
				assert.NotContains(t, hud, tt.notWant)
			}
		})
	}
}

func TestDrawClipsLongWords(t *testing.T) {
	s := newTestScreen(t, 10, 6)
	r := NewRenderer(s)

	assert.NotPanics(t, func() {
		r.Draw(&fakeScene{
			items: []arcade.FallingItem{{Source: "anticonstitutionnellement", Target: "x", X: 4, Y: 0}},
			lives: 1,
			input: strings.Repeat("a", 30),
		})
	})
	assert.Equal(t, "antico", rowText(s, 1)[4:10])
}

func TestHexRGBAndBlend(t *testing.T) {
	c := HexRGB(0x112233)
	assert.Equal(t, RGB{0x11, 0x22, 0x33}, c)

	assert.Equal(t, c, Blend(RGB{}, c, 1))
	assert.Equal(t, RGB{}, Blend(RGB{}, c, 0))
	assert.Equal(t, RGB{100, 100, 100}, Blend(RGB{0, 0, 0}, RGB{200, 200, 200}, 0.5))
}
