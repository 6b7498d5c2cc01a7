package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/skygate/internal/core"
	"github.com/vovakirdan/skygate/internal/engine"
)

// projection maps play-field coordinates (origin centred, +Y up) onto
// screen cells (origin top-left, +Y down).
type projection struct {
	sx, sy float64
	fw, fh float64
}

func newProjection(field engine.Vec2, w, h int) projection {
	return projection{
		sx: float64(w) / field.X,
		sy: float64(h) / field.Y,
		fw: field.X,
		fh: field.Y,
	}
}

// point returns the cell containing p.
func (p projection) point(v engine.Vec2) (int, int) {
	x := int(math.Floor((v.X + p.fw/2) * p.sx))
	y := int(math.Floor((p.fh/2 - v.Y) * p.sy))
	return x, y
}

// rect returns the smallest cell rectangle covering b.
func (p projection) rect(b engine.AABB) core.Rect {
	x0 := int(math.Floor((b.Min.X + p.fw/2) * p.sx))
	x1 := int(math.Ceil((b.Max.X + p.fw/2) * p.sx))
	y0 := int(math.Floor((p.fh/2 - b.Max.Y) * p.sy))
	y1 := int(math.Ceil((p.fh/2 - b.Min.Y) * p.sy))
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil || dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	snap := g.session.Snapshot()
	proj := newProjection(snap.Field, dst.Width(), dst.Height())
	bounds := dst.Bounds()

	// Entities arrive back to front.
	for _, e := range snap.Entities {
		r := proj.rect(engine.FromCenter(e.Pos, e.Half))
		switch e.Kind {
		case engine.KindGate:
			drawGate(dst, r.Clip(bounds), r, e.Flipped)
		case engine.KindFlyer:
			drawFlyer(dst, r)
		}
	}

	if g.debug {
		for _, c := range snap.Colliders {
			dst.DrawBox(proj.rect(c), core.ColorCollider)
		}
		cx, cy := proj.point(engine.Vec2{})
		dst.SetColored(cx, cy, '+', core.ColorDim)
	}

	// Draw HUD
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorHUD)
	if g.debug {
		debugText := fmt.Sprintf(" tick %d  gates %d ", snap.Tick, len(snap.Entities)-1)
		dst.DrawTextColored(dst.Width()-len(debugText)-2, 0, debugText, core.ColorDim)
	}

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if snap.Banner != nil {
		drawCenteredMessage(dst, snap.Banner.Title, snap.Banner.Subtitle)
	}
}

// drawGate fills a gate and caps the edge that faces the gap.
func drawGate(dst *core.Screen, visible, full core.Rect, flipped bool) {
	if visible.Empty() {
		return
	}
	dst.DrawRect(visible, GateChar, core.ColorGate)

	capY := full.Y
	capRune := GateCapFloor
	if flipped {
		capY = full.Bottom() - 1
		capRune = GateCapCeil
	}
	if capY >= visible.Y && capY < visible.Bottom() {
		dst.DrawHLine(visible.X, capY, visible.W, capRune, core.ColorGateCap)
	}
}

// drawFlyer fills the flyer's cells with a beak on the top-right cell.
func drawFlyer(dst *core.Screen, r core.Rect) {
	if r.W < 1 || r.H < 1 {
		return
	}
	dst.DrawRect(r, FlyerChar, core.ColorFlyer)
	dst.SetColored(r.Right()-1, r.Y, FlyerBeakChar, core.ColorBeak)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorHUD)

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorBanner)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
