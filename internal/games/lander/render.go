package lander

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander/sim"
)

// Visual characters for rendering
const (
	SurfaceChar = '▓'
	PadChar     = '═'
	HullChar    = '█'
	FlameChar   = '*'
)

const (
	hudRows    = 2    // Rows reserved for the HUD at the top
	cellAspect = 2.0  // Terminal cells are about twice as tall as wide
	minScale   = 0.25 // Closest zoom, world units per column
	fuelBarLen = 10
)

// noseGlyphs maps the craft's on-screen heading to an arrow, clockwise from up.
var noseGlyphs = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// view projects world coordinates onto the screen. The camera is rotated so
// the local "up" under the craft points to the top of the screen.
type view struct {
	center core.Vec2 // World point at the middle of the play area
	rot    float64   // Rotation applied to world offsets, radians
	scale  float64   // World units per column
	w, h   int       // Play area size
	top    int       // First row of the play area
}

// newView frames the craft and the ground beneath it.
func newView(body *sim.Body, craft sim.Craft, w, h, top int) view {
	up := body.UpAt(craft.Pos)
	alt := math.Max(0, craft.Pos.Distance(body.Center)-body.SurfaceRadiusAt(craft.Pos))

	// Fit altitude plus the craft and some margin into 80% of the rows
	span := alt + 2*craft.HalfH + 4
	scale := math.Max(minScale, span/(0.8*float64(max(h, 1))*cellAspect))

	return view{
		center: craft.Pos.Sub(up.Scale(alt / 2)),
		rot:    math.Pi/2 - math.Atan2(up.Y, up.X),
		scale:  scale,
		w:      w,
		h:      h,
		top:    top,
	}
}

// project maps a world point to a screen cell.
func (v view) project(p core.Vec2) (int, int) {
	d := p.Sub(v.center).Rotate(v.rot)
	x := float64(v.w)/2 + d.X/v.scale
	y := float64(v.top) + float64(v.h)/2 - d.Y/(v.scale*cellAspect)
	return int(math.Round(x)), int(math.Round(y))
}

// visible reports whether a segment between two projected cells may cross the
// play area and is short enough to rasterize.
func (v view) visible(x0, y0, x1, y1 int) bool {
	if (x0 < 0 && x1 < 0) || (x0 >= v.w && x1 >= v.w) {
		return false
	}
	if (y0 < v.top && y1 < v.top) || (y0 >= v.top+v.h && y1 >= v.top+v.h) {
		return false
	}
	limit := 4 * (v.w + v.h)
	return abs(x1-x0) <= limit && abs(y1-y0) <= limit
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		msg := "no session"
		if g.err != nil {
			msg = g.err.Error()
		}
		g.drawCenteredMessage(dst, "CANNOT START", msg, core.ColorWarning)
		return
	}

	body := g.session.Body()
	craft := g.session.Craft()
	tm := g.session.Telemetry()
	v := newView(body, craft, dst.Width(), dst.Height()-hudRows, hudRows)

	g.drawSurface(dst, v, body)
	g.drawCraft(dst, v, craft, tm.RelAngle)
	g.drawHUD(dst, tm, body, craft)

	switch g.session.State() {
	case sim.StateCountdown:
		g.drawCountdown(dst)
	case sim.StateEnded:
		g.drawOutcome(dst)
	}

	if g.session.Paused() {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorHUD)
	}
}

// drawSurface draws every visible outline segment, the pad highlighted.
func (g *Game) drawSurface(dst *core.Screen, v view, body *sim.Body) {
	outline := body.Outline()
	n := len(outline)
	for i := range outline {
		x0, y0 := v.project(outline[i])
		x1, y1 := v.project(outline[(i+1)%n])
		if !v.visible(x0, y0, x1, y1) {
			continue
		}
		ch, color := SurfaceChar, core.ColorSurface
		if i == body.Zone.Start || i == body.Zone.Start+1 {
			ch, color = PadChar, core.ColorPad
		}
		dst.DrawLine(x0, y0, x1, y1, ch, color)
	}
}

// drawCraft draws the hull outline, a heading arrow and the engine flame.
func (g *Game) drawCraft(dst *core.Screen, v view, craft sim.Craft, relAngle float64) {
	corners := craft.Corners()
	for i := range corners {
		x0, y0 := v.project(corners[i])
		x1, y1 := v.project(corners[(i+1)%len(corners)])
		dst.DrawLine(x0, y0, x1, y1, HullChar, core.ColorCraft)
	}

	if craft.Thrusting {
		tail := craft.Pos.Sub(craft.Nose().Scale(craft.HalfH + 2*v.scale*cellAspect))
		fx, fy := v.project(tail)
		dst.SetColored(fx, fy, FlameChar, core.ColorFlame)
	}

	cx, cy := v.project(craft.Pos)
	dst.SetColored(cx, cy, noseGlyph(relAngle), core.ColorCraft)
}

// noseGlyph picks the arrow closest to an on-screen heading in degrees.
func noseGlyph(relAngle float64) rune {
	a := core.WrapDegrees(relAngle)
	if a < 0 {
		a += 360
	}
	idx := int(math.Round(a/45)) % len(noseGlyphs)
	return noseGlyphs[idx]
}

// drawHUD draws flight instruments on the top rows.
func (g *Game) drawHUD(dst *core.Screen, tm sim.Telemetry, body *sim.Body, craft sim.Craft) {
	limits := g.cfg.Landing

	speedColor := core.ColorHUD
	if tm.Speed > limits.MaxSpeed {
		speedColor = core.ColorWarning
	}
	angleColor := core.ColorHUD
	if math.Abs(tm.RelAngle) > limits.MaxAngle {
		angleColor = core.ColorWarning
	}
	fuelColor := core.ColorHUD
	if g.cfg.Craft.Fuel > 0 && tm.Fuel < 0.2*g.cfg.Craft.Fuel {
		fuelColor = core.ColorWarning
	}

	x, y := 1, 0
	put := func(text string, c core.Color) {
		dst.DrawTextColored(x, y, text, c)
		x += len([]rune(text)) + 2
	}
	put(fmt.Sprintf("ALT %6.1f", tm.Altitude), core.ColorHUD)
	put(fmt.Sprintf("HS %+6.2f", tm.Horizontal), speedColor)
	put(fmt.Sprintf("VS %+6.2f", tm.Vertical), speedColor)
	put(fmt.Sprintf("ANG %+4.0f°", tm.RelAngle), angleColor)
	put("FUEL "+fuelBar(tm.Fuel, g.cfg.Craft.Fuel), fuelColor)

	x, y = 1, 1
	put(fmt.Sprintf("T %5.1fs", tm.Elapsed), core.ColorHUD)
	put(fmt.Sprintf("SCORE %4d", tm.Score()), core.ColorHUD)
	put("PAD "+padDirection(body, craft), core.ColorPad)
	put(g.Title(), core.ColorGray)
}

// fuelBar renders the remaining fuel as a gauge and a number.
func fuelBar(fuel, capacity float64) string {
	filled := 0
	if capacity > 0 {
		filled = int(math.Round(fuel / capacity * fuelBarLen))
	}
	filled = max(0, min(fuelBarLen, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", fuelBarLen-filled) + fmt.Sprintf(" %4.1f", fuel)
}

// padDirection points from the craft toward the pad along the surface.
// Counter-clockwise around the body is screen left.
func padDirection(body *sim.Body, craft sim.Craft) string {
	d := craft.Pos.Sub(body.Center)
	diff := core.WrapDegrees(core.RadToDeg(body.ZoneWorldAngle() - math.Atan2(d.Y, d.X)))
	switch {
	case diff > 1:
		return fmt.Sprintf("← %3.0f°", diff)
	case diff < -1:
		return fmt.Sprintf("→ %3.0f°", -diff)
	default:
		return "↓ below"
	}
}

// drawCountdown shows the seconds left before the engines go live.
func (g *Game) drawCountdown(dst *core.Screen) {
	ticks := g.session.CountdownRemaining()
	hz := max(g.cfg.Timing.StepHz, 1)
	secs := (ticks + hz - 1) / hz
	g.drawCenteredMessage(dst, fmt.Sprintf("GET READY  %d", secs), "←/→ rotate  ↑ thrust", core.ColorHUD)
}

// drawOutcome explains how the round ended.
func (g *Game) drawOutcome(dst *core.Screen) {
	o, _ := g.session.Outcome()
	if o.Landed() {
		g.drawCenteredMessage(dst, "TOUCHDOWN!",
			fmt.Sprintf("Score: %d  |  Press R to fly again", g.session.Score()), core.ColorPad)
		return
	}
	g.drawCenteredMessage(dst, "CRASHED: "+crashText(o, g.cfg.Landing),
		"Press R to try again", core.ColorWarning)
}

// crashText describes a crash reason with the measured value.
func crashText(o sim.Outcome, limits config.LandingConfig) string {
	switch o.Reason {
	case sim.ReasonMissedZone:
		return "missed the landing pad"
	case sim.ReasonNotUpright:
		return fmt.Sprintf("tilted %.0f° (max %.0f°)", math.Abs(o.RelAngle), limits.MaxAngle)
	case sim.ReasonTooFast:
		return fmt.Sprintf("too fast %.1f (max %.1f)", o.Speed, limits.MaxSpeed)
	default:
		return o.Label()
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)

	dst.DrawTextCentered(boxY+1, title, c)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorDefault)
}
