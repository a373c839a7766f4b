package sim

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Telemetry is a read-only snapshot of the session handed to presentation.
type Telemetry struct {
	State      State
	Altitude   float64 // Distance above the local surface
	Horizontal float64 // Tangential velocity, positive = clockwise around the body
	Vertical   float64 // Radial velocity, positive = away from the body
	Speed      float64 // Speed relative to the body
	Angle      float64 // World orientation, degrees
	RelAngle   float64 // Orientation relative to local up, degrees
	Fuel       float64
	Elapsed    float64 // Seconds of active flight
	Thrusting  bool
}

// Score derives the round score from the snapshot alone.
// Fuel counts ten points per unit, time subtracts from a 500 point bonus.
func (t Telemetry) Score() int {
	bonus := math.Max(0, 500-5*t.Elapsed)
	return int(math.Round(t.Fuel*10 + bonus))
}

// snapshot builds telemetry for craft c over body.
func snapshot(state State, c Craft, body *Body, elapsed float64) Telemetry {
	up := body.UpAt(c.Pos)
	tangent := core.V(up.Y, -up.X)
	rel := body.RelativeVelocity(c.Vel)

	return Telemetry{
		State:      state,
		Altitude:   c.Pos.Distance(body.Center) - body.SurfaceRadiusAt(c.Pos),
		Horizontal: rel.Dot(tangent),
		Vertical:   rel.Dot(up),
		Speed:      rel.Len(),
		Angle:      c.Angle,
		RelAngle:   RelativeAngle(c, body),
		Fuel:       c.Fuel,
		Elapsed:    elapsed,
		Thrusting:  c.Thrusting,
	}
}
