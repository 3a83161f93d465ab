package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// HUDState is the data shown in the status bar.
type HUDState struct {
	Distance   float64
	Speed      float64
	Destroyed  int
	Collisions int
	Message    string
}

// DrawHUD renders the status bar and the last message at the bottom of
// the screen.
func (b *ScreenBatch) DrawHUD(s HUDState) {
	_, screenH := b.screen.Size()
	hudY := screenH - HUDRows

	// Separator line.
	b.drawHLine(hudY, tcell.ColorGray)

	status := fmt.Sprintf("Distance: %.0f  Speed: %.1f  Destroyed: %d  Hits: %d",
		s.Distance, s.Speed, s.Destroyed, s.Collisions)
	b.drawText(0, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	if s.Message != "" {
		b.drawText(0, hudY+2, s.Message, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
}

func (b *ScreenBatch) drawHLine(y int, color tcell.Color) {
	w, _ := b.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		b.screen.SetContent(x, y, '─', nil, style)
	}
}

func (b *ScreenBatch) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		b.screen.SetContent(col, y, ch, nil, style)
		col++
	}
}
