package render

import "github.com/gdamore/tcell/v2"

var (
	RgbBackground = RGB{26, 27, 38}  // Tokyo Night background
	RgbFlash      = RGB{90, 20, 20}  // Miss flash background
	RgbHudBg      = RGB{40, 42, 58}  // HUD strip
	RgbSeparator  = RGB{80, 82, 100} // Input divider

	ColorWord      = tcell.NewRGBColor(220, 220, 220) // Known word
	ColorNewWord   = tcell.NewRGBColor(255, 215, 0)   // Fallback word, gold
	ColorHighlight = tcell.NewRGBColor(50, 255, 50)   // Input is a prefix of its target
	ColorInput     = tcell.NewRGBColor(255, 255, 255)
	ColorPrompt    = tcell.NewRGBColor(135, 206, 250)
	ColorScore     = tcell.NewRGBColor(0, 255, 255)
	ColorLives     = tcell.NewRGBColor(255, 80, 80)
	ColorLifeLost  = tcell.NewRGBColor(90, 60, 60)
	ColorMuted     = tcell.NewRGBColor(150, 150, 150)
	ColorGameOver  = tcell.NewRGBColor(255, 80, 80)
)

// baseStyle is the background style for the current flash state
func baseStyle(flashing bool) tcell.Style {
	if flashing {
		return tcell.StyleDefault.Background(RgbFlash.Color())
	}
	return tcell.StyleDefault.Background(RgbBackground.Color())
}
