// Package sim is the lander simulation core: surface generation, rotation,
// physics integration, collision detection, outcome classification and the
// session lifecycle. It performs no I/O; presentation layers observe it through
// TelemetrySink and OutcomeSink.
package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// ErrInvalidSurface is returned when surface parameters cannot produce a body.
var ErrInvalidSurface = errors.New("sim: invalid surface parameters")

// padPoints is the number of flat points forming the landing pad (two segments).
const padPoints = 3

// Rand is the random source used by the generator.
// *rand.Rand from math/rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// SurfaceParams configures surface generation.
type SurfaceParams struct {
	Segments   int     // Number of points (and segments) in the ring
	Radius     float64 // Nominal body radius
	Bumpiness  float64 // Peak-to-peak radial noise as a fraction of Radius
	ZoneSpread int     // Max index offset of the pad from the quarter-turn
}

// SurfacePoint is one vertex of the ring, relative to the body center.
type SurfacePoint struct {
	Pos    core.Vec2
	Offset float64 // Radial offset from the nominal radius
}

// Surface is the unrotated ring of points around the body center.
// Segment i joins point i to point (i+1) % len.
type Surface struct {
	Points []SurfacePoint
	Radius float64
}

// LandingZone marks the flat two-segment pad [Start, Start+1].
type LandingZone struct {
	Start       int
	CenterAngle float64 // Unrotated angle of the pad midpoint, radians
}

// Contains reports whether segment lies within one neighbor of the pad start.
func (z LandingZone) Contains(segment int) bool {
	d := segment - z.Start
	return d >= -1 && d <= 1
}

// Validate checks the generation parameters.
func (p SurfaceParams) Validate() error {
	switch {
	case p.Segments < 8:
		return fmt.Errorf("%w: segments must be at least 8, got %d", ErrInvalidSurface, p.Segments)
	case !(p.Radius > 0):
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidSurface, p.Radius)
	case p.Bumpiness < 0 || p.Bumpiness >= 2:
		return fmt.Errorf("%w: bumpiness must be in [0, 2), got %v", ErrInvalidSurface, p.Bumpiness)
	case p.ZoneSpread < 0:
		return fmt.Errorf("%w: zone spread must not be negative, got %d", ErrInvalidSurface, p.ZoneSpread)
	}
	return nil
}

// GenerateSurface builds a near-circular ring with radial noise everywhere
// except across the landing pad. Output is fully determined by params and rng.
func GenerateSurface(params SurfaceParams, rng Rand) (Surface, LandingZone, error) {
	if err := params.Validate(); err != nil {
		return Surface{}, LandingZone{}, err
	}

	n := params.Segments
	start := n/4 - 1
	if params.ZoneSpread > 0 {
		start += rng.Intn(2*params.ZoneSpread+1) - params.ZoneSpread
	}
	start = min(max(start, 0), n-padPoints)

	amp := params.Radius * params.Bumpiness / 2
	points := make([]SurfacePoint, n)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(n)
		offset := 0.0
		if i < start || i >= start+padPoints {
			offset = (rng.Float64()*2 - 1) * amp
		}
		points[i] = SurfacePoint{
			Pos:    core.FromAngle(angle, params.Radius+offset),
			Offset: offset,
		}
	}

	zone := LandingZone{
		Start:       start,
		CenterAngle: 2 * math.Pi * (float64(start) + 1) / float64(n),
	}
	return Surface{Points: points, Radius: params.Radius}, zone, nil
}

// Len returns the number of points (equal to the number of segments).
func (s Surface) Len() int {
	return len(s.Points)
}

// Positions returns the point positions relative to the body center.
func (s Surface) Positions() []core.Vec2 {
	out := make([]core.Vec2, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Pos
	}
	return out
}

// MinRadius returns the smallest distance from the center to any point.
func (s Surface) MinRadius() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	r := math.Inf(1)
	for _, p := range s.Points {
		r = math.Min(r, s.Radius+p.Offset)
	}
	return r
}

// SegmentAt returns the index of the segment spanning the unrotated angle.
func (s Surface) SegmentAt(angle float64) int {
	n := len(s.Points)
	if n == 0 {
		return -1
	}
	step := 2 * math.Pi / float64(n)
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return int(a/step) % n
}

// RadiusAt interpolates the surface radius at an unrotated angle (radians).
func (s Surface) RadiusAt(angle float64) float64 {
	n := len(s.Points)
	if n == 0 {
		return s.Radius
	}
	i := s.SegmentAt(angle)
	step := 2 * math.Pi / float64(n)
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	frac := (a - float64(i)*step) / step
	r0 := s.Radius + s.Points[i].Offset
	r1 := s.Radius + s.Points[(i+1)%n].Offset
	return r0 + (r1-r0)*frac
}

// Validate checks that the closed ring does not intersect itself.
func (s Surface) Validate() error {
	if len(s.Points) < 3 {
		return fmt.Errorf("%w: ring needs at least 3 points, got %d", ErrInvalidSurface, len(s.Points))
	}

	flat := make([]float64, 0, 2*(len(s.Points)+1))
	for _, p := range s.Points {
		flat = append(flat, p.Pos.X, p.Pos.Y)
	}
	flat = append(flat, s.Points[0].Pos.X, s.Points[0].Pos.Y)

	ring, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSurface, err)
	}
	if !ring.IsSimple() {
		return fmt.Errorf("%w: surface ring intersects itself", ErrInvalidSurface)
	}
	return nil
}
