package sim

import (
	"testing"

	"github.com/vovakirdan/tui-lander/internal/core"
)

func TestClassifyScenarios(t *testing.T) {
	body := flatBody(t)
	limits := LandingLimits{MaxSpeed: 2.5, MaxAngle: 10}
	start := body.Zone.Start

	tests := []struct {
		name    string
		segment int
		vel     core.Vec2
		angle   float64
		kind    OutcomeKind
		reason  CrashReason
	}{
		{"landing", start, core.V(0, -1), 0, OutcomeLanded, ReasonNone},
		{"zone miss", start + 10, core.V(0, 0), 0, OutcomeCrashed, ReasonMissedZone},
		{"zone miss beats everything", start + 10, core.V(0, -10), 90, OutcomeCrashed, ReasonMissedZone},
		{"too fast", start, core.V(0, -10), 0, OutcomeCrashed, ReasonTooFast},
		{"not upright", start, core.V(0, 0), 90, OutcomeCrashed, ReasonNotUpright},
		{"not upright beats too fast", start, core.V(0, -10), 90, OutcomeCrashed, ReasonNotUpright},
		{"pad neighbor segment", start + 1, core.V(0, -2), -8, OutcomeLanded, ReasonNone},
		{"segment before pad", start - 1, core.V(0, 0), 0, OutcomeLanded, ReasonNone},
		{"two past pad", start + 2, core.V(0, 0), 0, OutcomeCrashed, ReasonMissedZone},
		{"speed at limit", start, core.V(0, -2.5), 0, OutcomeLanded, ReasonNone},
		{"angle at limit", start, core.V(0, 0), 10, OutcomeLanded, ReasonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Craft{Pos: core.V(0, 101), Vel: tt.vel, Angle: tt.angle, HalfW: 1, HalfH: 1}
			out := Classify(tt.segment, c, body, limits)

			if out.Kind != tt.kind || out.Reason != tt.reason {
				t.Errorf("got %s, want %s:%s", out.Label(), tt.kind, tt.reason)
			}
			if out.Segment != tt.segment {
				t.Errorf("segment %d, want %d", out.Segment, tt.segment)
			}
			if out.Landed() != (tt.kind == OutcomeLanded) {
				t.Error("Landed() disagrees with Kind")
			}
		})
	}
}

func TestRelativeAngleUsesLocalUp(t *testing.T) {
	body := flatBody(t)

	tests := []struct {
		name  string
		pos   core.Vec2
		angle float64
		want  float64
	}{
		{"top upright", core.V(0, 101), 0, 0},
		{"right side upright", core.V(101, 0), 90, 0},
		{"bottom upright", core.V(0, -101), 180, 0},
		{"left side upright", core.V(-101, 0), -90, 0},
		{"right side world-upright is sideways", core.V(101, 0), 0, -90},
		{"wraps across 180", core.V(0, -101), -170, 10},
		{"normalized to 180", core.V(0, 101), 180, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Craft{Pos: tt.pos, Angle: tt.angle}
			if got := RelativeAngle(c, body); !approx(got, tt.want, 1e-9) {
				t.Errorf("RelativeAngle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyUsesSpeedRelativeToBody(t *testing.T) {
	body := flatBody(t)
	body.Motion.Drift = core.V(5, 0)

	c := Craft{Pos: core.V(0, 101), Vel: core.V(5, -1)}
	out := Classify(body.Zone.Start, c, body, LandingLimits{MaxSpeed: 2.5, MaxAngle: 10})
	if !out.Landed() {
		t.Errorf("expected landing when moving with the body, got %s", out.Label())
	}
	if !approx(out.Speed, 1, 1e-9) {
		t.Errorf("relative speed %v, want 1", out.Speed)
	}
}

func TestOutcomeLabels(t *testing.T) {
	tests := []struct {
		out  Outcome
		want string
	}{
		{Outcome{Kind: OutcomeLanded}, "landed"},
		{Outcome{Kind: OutcomeCrashed, Reason: ReasonMissedZone}, "crashed:missed_zone"},
		{Outcome{Kind: OutcomeCrashed, Reason: ReasonNotUpright}, "crashed:not_upright"},
		{Outcome{Kind: OutcomeCrashed, Reason: ReasonTooFast}, "crashed:too_fast"},
	}
	for _, tt := range tests {
		if got := tt.out.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}
