package sim

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// DefaultMinGravityDistance keeps the gravity direction finite near the center.
const DefaultMinGravityDistance = 1e-6

// Controls is the input provider's view of the player for one tick.
// The zero value means no input.
type Controls struct {
	RotateLeft  bool
	RotateRight bool
	Thrust      bool
}

// PhysicsParams holds the integrator tunables.
type PhysicsParams struct {
	Gravity            float64 // Acceleration toward the body center, units/s²
	ThrustAccel        float64 // Engine acceleration along the nose, units/s²
	RotationRate       float64 // Degrees per second while a rotate control is held
	BurnRate           float64 // Fuel consumed per second of thrust
	FuelCapacity       float64
	MinGravityDistance float64 // Clamp for the gravity normalization; defaults when <= 0
}

// Integrate advances the craft by one fixed step of dt seconds.
// Order: rotation, thrust, gravity, position.
func Integrate(c *Craft, body *Body, in Controls, p PhysicsParams, dt float64) {
	if c == nil || body == nil || dt <= 0 {
		return
	}

	if in.RotateLeft {
		c.Angle -= p.RotationRate * dt
	}
	if in.RotateRight {
		c.Angle += p.RotationRate * dt
	}
	c.Angle = core.WrapDegrees(c.Angle)

	c.Thrusting = false
	if in.Thrust && c.Fuel > 0 {
		c.Vel = c.Vel.Add(c.Nose().Scale(p.ThrustAccel * dt))
		c.Fuel = math.Max(0, c.Fuel-p.BurnRate*dt)
		c.Thrusting = true
	}

	c.Vel = c.Vel.Add(gravityAccel(c.Pos, body.Center, p).Scale(dt))
	c.Pos = c.Pos.Add(c.Vel.Scale(dt))

	c.Fuel = core.ClampF(c.Fuel, 0, p.FuelCapacity)
}

// gravityAccel returns the acceleration toward center. The distance used for
// normalization is clamped so coincident points produce no force instead of NaN.
func gravityAccel(pos, center core.Vec2, p PhysicsParams) core.Vec2 {
	minDist := p.MinGravityDistance
	if minDist <= 0 {
		minDist = DefaultMinGravityDistance
	}

	d := center.Sub(pos)
	dist := math.Max(d.Len(), minDist)
	return d.Scale(p.Gravity / dist)
}
