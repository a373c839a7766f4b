package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-lander/internal/core"
)

const eps = 1e-9

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// flatBody returns a perfectly round, static body of radius 100 at the origin.
// With 32 segments the pad starts at segment 7 and is centered on the top.
func flatBody(t *testing.T) *Body {
	t.Helper()
	surface, zone, err := GenerateSurface(SurfaceParams{Segments: 32, Radius: 100}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("GenerateSurface: %v", err)
	}
	return NewBody(core.Vec2{}, surface, zone, BodyMotion{})
}

func testConfig() SessionConfig {
	return SessionConfig{
		Surface: SurfaceParams{Segments: 32, Radius: 100, Bumpiness: 0.3, ZoneSpread: 2},
		Physics: PhysicsParams{
			Gravity:      1.62,
			ThrustAccel:  4,
			RotationRate: 90,
			BurnRate:     1,
		},
		Craft:            CraftParams{HalfW: 1, HalfH: 1.5, FuelCapacity: 50, StartAltitude: 40},
		Limits:           LandingLimits{MaxSpeed: 2.5, MaxAngle: 10},
		CountdownTicks:   3,
		Dt:               1.0 / 64,
		MaxStepsPerFrame: 8,
		Seed:             42,
	}
}

type telemetryRecorder struct {
	snaps []Telemetry
}

func (r *telemetryRecorder) Telemetry(t Telemetry) {
	r.snaps = append(r.snaps, t)
}

type outcomeRecorder struct {
	outcomes []Outcome
}

func (r *outcomeRecorder) Outcome(o Outcome) {
	r.outcomes = append(r.outcomes, o)
}
