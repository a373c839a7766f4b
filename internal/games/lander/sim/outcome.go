package sim

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// OutcomeKind is the terminal result class of a session.
type OutcomeKind int

const (
	OutcomeLanded OutcomeKind = iota
	OutcomeCrashed
)

// String returns the storage/display label for the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeLanded:
		return "landed"
	case OutcomeCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// CrashReason explains why a touchdown was a crash.
type CrashReason int

const (
	ReasonNone CrashReason = iota
	ReasonMissedZone
	ReasonNotUpright
	ReasonTooFast
)

// String returns the storage/display label for the reason.
func (r CrashReason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonMissedZone:
		return "missed_zone"
	case ReasonNotUpright:
		return "not_upright"
	case ReasonTooFast:
		return "too_fast"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of the session's single touchdown.
type Outcome struct {
	Kind     OutcomeKind
	Reason   CrashReason // ReasonNone when Kind is OutcomeLanded
	Segment  int         // Surface segment touched
	Speed    float64     // Speed relative to the body at touchdown
	RelAngle float64     // Orientation relative to local up, degrees
}

// Landed reports whether the outcome is a successful landing.
func (o Outcome) Landed() bool {
	return o.Kind == OutcomeLanded
}

// Label returns a short "kind" or "kind:reason" string.
func (o Outcome) Label() string {
	if o.Reason == ReasonNone {
		return o.Kind.String()
	}
	return o.Kind.String() + ":" + o.Reason.String()
}

// LandingLimits are the tolerances for a safe touchdown.
type LandingLimits struct {
	MaxSpeed float64 // Units per second
	MaxAngle float64 // Degrees either side of local up
}

// RelativeAngle returns the craft orientation relative to the radial "up" at
// its position, normalized into (-180, 180].
func RelativeAngle(c Craft, body *Body) float64 {
	up := radialAngleDeg(c.Pos.Sub(body.Center))
	return core.WrapDegrees(c.Angle - up)
}

// Classify evaluates a touchdown on segment. Checks run in a fixed order and
// the first failure is reported: zone, then upright, then speed.
func Classify(segment int, c Craft, body *Body, limits LandingLimits) Outcome {
	out := Outcome{
		Kind:     OutcomeLanded,
		Segment:  segment,
		Speed:    body.RelativeVelocity(c.Vel).Len(),
		RelAngle: RelativeAngle(c, body),
	}

	switch {
	case !body.Zone.Contains(segment):
		out.Kind, out.Reason = OutcomeCrashed, ReasonMissedZone
	case math.Abs(out.RelAngle) > limits.MaxAngle:
		out.Kind, out.Reason = OutcomeCrashed, ReasonNotUpright
	case out.Speed > limits.MaxSpeed:
		out.Kind, out.Reason = OutcomeCrashed, ReasonTooFast
	}
	return out
}
