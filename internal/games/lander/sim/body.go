package sim

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// BodyMotion describes how the body moves over time.
type BodyMotion struct {
	AngularRate float64   // Spin rate, radians per second (positive = counter-clockwise)
	Drift       core.Vec2 // Velocity of the body center, units per second
}

// Body is the celestial body the craft lands on. Its surface is stored
// unrotated and relative to Center; rotation is applied only by Outline.
type Body struct {
	Center   core.Vec2
	Radius   float64
	Rotation float64 // Accumulated spin, radians; grows without wrapping
	Motion   BodyMotion
	Surface  Surface
	Zone     LandingZone

	outline       []core.Vec2
	outlineValid  bool
	outlineCenter core.Vec2 // Center the cached outline was built at
	outlineRot    float64   // Rotation the cached outline was built at
}

// NewBody creates a body at center with the given generated geometry.
func NewBody(center core.Vec2, surface Surface, zone LandingZone, motion BodyMotion) *Body {
	return &Body{
		Center:  center,
		Radius:  surface.Radius,
		Motion:  motion,
		Surface: surface,
		Zone:    zone,
	}
}

// Advance spins and drifts the body by dt seconds.
func (b *Body) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	b.Rotation += b.Motion.AngularRate * dt
	b.Center = b.Center.Add(b.Motion.Drift.Scale(dt))
}

// Outline returns the surface in world coordinates at the current rotation.
// The result is cached for the Center and Rotation it was built at; callers
// must not modify it.
func (b *Body) Outline() []core.Vec2 {
	if !b.outlineValid || b.outlineCenter != b.Center || b.outlineRot != b.Rotation {
		world := Translate(b.Surface.Positions(), b.Center)
		b.outline = Rotate(world, b.Center, b.Rotation)
		b.outlineCenter = b.Center
		b.outlineRot = b.Rotation
		b.outlineValid = true
	}
	return b.outline
}

// LocalAngle converts a world point into the body's unrotated polar angle.
func (b *Body) LocalAngle(p core.Vec2) float64 {
	d := p.Sub(b.Center)
	return math.Atan2(d.Y, d.X) - b.Rotation
}

// SurfaceRadiusAt returns the surface radius beneath a world point.
func (b *Body) SurfaceRadiusAt(p core.Vec2) float64 {
	return b.Surface.RadiusAt(b.LocalAngle(p))
}

// SegmentBeneath returns the segment index directly under a world point.
func (b *Body) SegmentBeneath(p core.Vec2) int {
	return b.Surface.SegmentAt(b.LocalAngle(p))
}

// ZoneWorldAngle returns the current world angle of the pad midpoint, radians.
func (b *Body) ZoneWorldAngle() float64 {
	return b.Zone.CenterAngle + b.Rotation
}

// UpAt returns the local "up" unit vector (radially outward) at a world point.
// Points at the center fall back to world +Y.
func (b *Body) UpAt(p core.Vec2) core.Vec2 {
	d := p.Sub(b.Center)
	if d.LenSq() == 0 {
		return core.V(0, 1)
	}
	return d.Normalize()
}

// RelativeVelocity returns v as seen from the drifting body.
func (b *Body) RelativeVelocity(v core.Vec2) core.Vec2 {
	return v.Sub(b.Motion.Drift)
}
