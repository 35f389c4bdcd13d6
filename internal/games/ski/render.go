package ski

import (
	"fmt"

	"github.com/vovakirdan/tui-ski/internal/core"
)

// DrawRequest asks the renderer to draw one visual at a board position.
type DrawRequest struct {
	Visual Visual
	X, Y   int
}

// DrawList returns this tick's draw requests, back to front: hazards,
// bonuses, ramps, the player's shadow, then the player lifted by the jump.
func (g *Game) DrawList() []DrawRequest {
	list := make([]DrawRequest, 0, g.hazards.Len()+g.bonuses.Len()+g.ramps.Len()+2)

	for _, pv := range []struct {
		pool   *Pool
		visual Visual
	}{
		{g.hazards, VisualHazard},
		{g.bonuses, VisualBonus},
		{g.ramps, VisualRamp},
	} {
		visual := pv.visual
		pv.pool.Each(func(_ int, e Entity) {
			list = append(list, DrawRequest{Visual: visual, X: e.X, Y: e.Y})
		})
	}

	p := &g.player
	list = append(list,
		DrawRequest{Visual: VisualShadow, X: p.X, Y: p.Y},
		DrawRequest{Visual: p.Visual(), X: p.X, Y: p.DrawY()},
	)
	return list
}

// SpriteName maps a visual to its configured sprite.
func (g *Game) SpriteName(v Visual) string {
	switch v {
	case VisualBankLeft:
		return g.cfg.Player.Variant("sw")
	case VisualBankRight:
		return g.cfg.Player.Variant("se")
	case VisualCrashed:
		return g.cfg.Player.Variant("stunned")
	case VisualShadow:
		return g.cfg.Player.Variant("shadow")
	case VisualHazard:
		return g.cfg.Pools.Hazard.Sprite
	case VisualBonus:
		return g.cfg.Pools.Bonus.Sprite
	case VisualRamp:
		return g.cfg.Pools.Ramp.Sprite
	default:
		return g.cfg.Player.Variant("")
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	cellW, cellH := g.cfg.Board.CellWidth, g.cfg.Board.CellHeight
	for _, req := range g.DrawList() {
		sp := g.sprites.Sprite(g.SpriteName(req.Visual))
		sp.Draw(dst, floorDiv(req.X, cellW), floorDiv(req.Y, cellH))
	}

	st := g.Stats()
	dst.DrawTextColored(2, dst.Height()-1, fmt.Sprintf("Score: %d  Crashes: %d/%d", st.Score, st.Crashes, st.CrashMax), core.ColorBrightMagenta)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d", st.Score))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// floorDiv divides rounding toward negative infinity, so entities partly
// above the top edge land on row -1 rather than row 0.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
