package sim

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// CraftParams describes the craft's fixed properties and starting position.
type CraftParams struct {
	HalfW         float64 // Half of the silhouette width
	HalfH         float64 // Half of the silhouette height
	FuelCapacity  float64
	StartAltitude float64 // Height above the nominal radius at spawn
}

// Craft is the player-controlled vehicle. Angle is in degrees, 0 pointing the
// nose along world +Y, positive values rotating clockwise.
type Craft struct {
	Pos       core.Vec2
	Vel       core.Vec2
	Angle     float64
	Fuel      float64
	HalfW     float64
	HalfH     float64
	Thrusting bool // Engine fired during the last tick (presentation only)
}

// SpawnCraft places a fresh craft above the landing zone, pointing radially up
// and moving with the body.
func SpawnCraft(p CraftParams, body *Body) Craft {
	angle := body.ZoneWorldAngle()
	pos := body.Center.Add(core.FromAngle(angle, body.Radius+p.StartAltitude))
	return Craft{
		Pos:   pos,
		Vel:   body.Motion.Drift,
		Angle: radialAngleDeg(pos.Sub(body.Center)),
		Fuel:  p.FuelCapacity,
		HalfW: p.HalfW,
		HalfH: p.HalfH,
	}
}

// Nose returns the unit vector the craft's nose points along.
func (c Craft) Nose() core.Vec2 {
	rad := core.DegToRad(c.Angle)
	return core.V(math.Sin(rad), math.Cos(rad))
}

// Corners returns the silhouette corners in world space, in winding order:
// bottom-left, bottom-right, top-right, top-left.
func (c Craft) Corners() [4]core.Vec2 {
	up := c.Nose()
	right := core.V(up.Y, -up.X)

	at := func(lx, ly float64) core.Vec2 {
		return c.Pos.Add(right.Scale(lx)).Add(up.Scale(ly))
	}
	return [4]core.Vec2{
		at(-c.HalfW, -c.HalfH),
		at(c.HalfW, -c.HalfH),
		at(c.HalfW, c.HalfH),
		at(-c.HalfW, c.HalfH),
	}
}

// Speed returns the magnitude of the velocity.
func (c Craft) Speed() float64 {
	return c.Vel.Len()
}

// radialAngleDeg converts a direction into the craft angle convention.
func radialAngleDeg(d core.Vec2) float64 {
	return core.RadToDeg(math.Atan2(d.X, d.Y))
}
