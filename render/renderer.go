// Package render draws a word-fall session onto a tcell screen.
//
// Layout, top to bottom: one HUD row, the play area, a separator row and
// the input line. Play area coordinates map 1:1 to arcade item positions.
package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/word-fall/arcade"
)

const (
	hudRows    = 1
	footerRows = 2 // separator + input
	prompt     = "> "
)

// Scene is the read-only session view the renderer needs; *arcade.Session satisfies it
type Scene interface {
	Items() []arcade.FallingItem
	Particles() []arcade.Particle
	Score() int
	Level() int
	Lives() int
	Input() string
	Flashing() bool
	Phase() arcade.Phase
	Learned() []arcade.VocabularyItem
}

// Renderer handles all terminal drawing
type Renderer struct {
	screen tcell.Screen
	width  int
	height int
	muted  bool
}

// NewRenderer creates a renderer sized to the screen
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	r.Resize()
	return r
}

// Resize re-reads the screen size
func (r *Renderer) Resize() {
	r.width, r.height = r.screen.Size()
}

// SetMuted toggles the HUD sound indicator
func (r *Renderer) SetMuted(muted bool) {
	r.muted = muted
}

// PlayArea returns the play area size in cells
func (r *Renderer) PlayArea() (width, height int) {
	h := r.height - hudRows - footerRows
	if h < 1 {
		h = 1
	}
	w := r.width
	if w < 1 {
		w = 1
	}
	return w, h
}

// Draw renders one frame
func (r *Renderer) Draw(scene Scene) {
	flashing := scene.Flashing()
	base := baseStyle(flashing)

	r.fill(0, r.height, base)
	r.drawHud(scene)
	r.drawParticles(scene.Particles(), flashing)
	r.drawItems(scene.Items(), scene.Input(), base)
	r.drawInput(scene.Input(), scene.Phase())

	if scene.Phase() == arcade.PhaseGameOver {
		r.drawGameOver(scene)
	}

	r.screen.Show()
}

// fill clears rows [from, to)
func (r *Renderer) fill(from, to int, style tcell.Style) {
	for y := from; y < to; y++ {
		for x := 0; x < r.width; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawText writes s at (x, y) clipped to the screen width, returns the next column
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	if y < 0 || y >= r.height {
		return x
	}
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > r.width {
			break
		}
		if x >= 0 {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x += w
	}
	return x
}

func (r *Renderer) drawHud(scene Scene) {
	hud := tcell.StyleDefault.Background(RgbHudBg.Color())
	r.fill(0, hudRows, hud)

	x := r.drawText(1, 0, fmt.Sprintf("Score %d", scene.Score()), hud.Foreground(ColorScore).Bold(true))
	x = r.drawText(x+2, 0, fmt.Sprintf("Level %d", scene.Level()), hud.Foreground(ColorInput))
	x = r.drawText(x+2, 0, "Lives ", hud.Foreground(ColorInput))

	lives := scene.Lives()
	for i := 0; i < max(lives, 0); i++ {
		x = r.drawText(x, 0, "♥", hud.Foreground(ColorLives))
	}
	if lives <= 0 {
		x = r.drawText(x, 0, "-", hud.Foreground(ColorLifeLost))
	}

	// Right side gives way to the left; the longest variant that keeps a gap wins
	for _, right := range r.hudRight(len(scene.Learned())) {
		if start := r.width - runewidth.StringWidth(right); start > x+1 {
			r.drawText(start, 0, right, hud.Foreground(ColorMuted))
			break
		}
	}
}

func (r *Renderer) hudRight(learned int) []string {
	full := fmt.Sprintf("learned %d  esc quit ", learned)
	short := fmt.Sprintf("learned %d ", learned)
	if r.muted {
		return []string{"muted  " + full, "muted  " + short, "muted "}
	}
	return []string{full, short}
}

func (r *Renderer) drawParticles(particles []arcade.Particle, flashing bool) {
	bg := RgbBackground
	if flashing {
		bg = RgbFlash
	}
	_, areaH := r.PlayArea()

	for _, p := range particles {
		x, y := int(p.X), int(p.Y)
		if p.X < 0 || x >= r.width || p.Y < 0 || y >= areaH {
			continue
		}
		// Fade toward the background as life runs out
		fg := Blend(bg, HexRGB(p.Color), p.Life)
		ch := '·'
		if p.Life > 0.5 {
			ch = '*'
		}
		r.screen.SetContent(x, y+hudRows, ch, nil, tcell.StyleDefault.Background(bg.Color()).Foreground(fg.Color()))
	}
}

func (r *Renderer) drawItems(items []arcade.FallingItem, input string, base tcell.Style) {
	typed := arcade.Normalize(input)
	_, areaH := r.PlayArea()

	for _, it := range items {
		if it.Y < 0 {
			continue
		}
		y := int(it.Y)
		if y >= areaH {
			continue
		}

		style := base.Foreground(ColorWord)
		if it.IsNew {
			style = base.Foreground(ColorNewWord)
		}
		if typed != "" && strings.HasPrefix(arcade.Normalize(it.Target), typed) {
			style = base.Foreground(ColorHighlight).Bold(true)
		}
		r.drawText(int(it.X), y+hudRows, it.Source, style)
	}
}

func (r *Renderer) drawInput(input string, phase arcade.Phase) {
	sepY := r.height - footerRows
	inY := r.height - 1
	if sepY <= hudRows-1 {
		return
	}

	base := tcell.StyleDefault.Background(RgbBackground.Color())
	sep := base.Foreground(RgbSeparator.Color())
	for x := 0; x < r.width; x++ {
		r.screen.SetContent(x, sepY, '─', nil, sep)
	}
	r.fill(inY, inY+1, base)

	x := r.drawText(0, inY, prompt, base.Foreground(ColorPrompt))
	x = r.drawText(x, inY, input, base.Foreground(ColorInput))
	if phase == arcade.PhasePlaying && x < r.width {
		r.screen.SetContent(x, inY, '▏', nil, base.Foreground(ColorInput))
	}
}

func (r *Renderer) drawGameOver(scene Scene) {
	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("Score %d  Level %d", scene.Score(), scene.Level()),
		fmt.Sprintf("%d new words learned", len(scene.Learned())),
		"",
		"Enter or Esc to leave",
	}

	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, runewidth.StringWidth(l))
	}
	boxW += 4
	boxH := len(lines) + 2

	left := (r.width - boxW) / 2
	top := (r.height - boxH) / 2
	box := tcell.StyleDefault.Background(RgbHudBg.Color()).Foreground(ColorInput)

	for y := top; y < top+boxH; y++ {
		for x := left; x < left+boxW; x++ {
			if x >= 0 && x < r.width && y >= 0 && y < r.height {
				r.screen.SetContent(x, y, ' ', nil, box)
			}
		}
	}

	for i, l := range lines {
		style := box
		if i == 0 {
			style = box.Foreground(ColorGameOver).Bold(true)
		}
		x := left + (boxW-runewidth.StringWidth(l))/2
		r.drawText(x, top+1+i, l, style)
	}
}
