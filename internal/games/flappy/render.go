package flappy

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	BirdChar      = '●'
	BirdBeakChar  = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// Render draws the current game state to the screen.
// World units are mapped to cells using the render section of the config.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.engine.Snapshot()
	cw, ch := g.cfg.Render.CellWidth, g.cfg.Render.CellHeight

	// Ground
	groundY := dst.Height() - 1
	dst.DrawHLine(0, groundY, dst.Width(), GroundChar, core.ColorOrange)

	for _, o := range snap.Obstacles {
		drawPipe(dst, o.Top.Cells(cw, ch), true)
		drawPipe(dst, o.Bottom.Cells(cw, ch), false)
	}

	drawBird(dst, snap.Bird.Cells(cw, ch))

	// HUD
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorWhite)
	if snap.LastScore > 0 {
		last := fmt.Sprintf(" Last: %d ", snap.LastScore)
		dst.DrawTextColored(dst.Width()-len(last)-2, 0, last, core.ColorGray)
	}

	switch {
	case snap.GameOverVisible:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  SPACE to retry", snap.LastScore), core.ColorRed)
	case snap.Phase == PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorYellow)
	case snap.Phase == PhaseNotStarted:
		drawCenteredMessage(dst, g.title, "Press SPACE or click to flap", core.ColorCyan)
	}
}

// drawPipe fills a pipe segment and draws its cap on the edge facing the gap.
func drawPipe(dst *core.Screen, r core.Rect, top bool) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	dst.DrawRectColored(r, PipeChar, core.ColorGreen)
	if top {
		dst.DrawHLine(r.X, r.Bottom()-1, r.W, PipeCapTop, core.ColorBrightGreen)
	} else {
		dst.DrawHLine(r.X, r.Y, r.W, PipeCapBottom, core.ColorBrightGreen)
	}
}

// drawBird fills the bird hitbox with a beak on the top-right cell.
func drawBird(dst *core.Screen, r core.Rect) {
	for dy := 0; dy < r.H; dy++ {
		for dx := 0; dx < r.W; dx++ {
			ch := BirdChar
			if dx == r.W-1 && dy == 0 {
				ch = BirdBeakChar
			}
			dst.SetColored(r.X+dx, r.Y+dy, ch, core.ColorBrightYellow)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, c)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
