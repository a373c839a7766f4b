// Package config provides YAML-based lander configuration loading,
// validation and difficulty presets.
package config

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander/sim"
)

// ErrInvalidConfig is returned when a configuration cannot drive a session.
var ErrInvalidConfig = errors.New("config: invalid lander config")

// LanderConfig contains all configuration for the lander game.
type LanderConfig struct {
	Body     BodyConfig     `yaml:"body"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Craft    CraftConfig    `yaml:"craft"`
	Landing  LandingConfig  `yaml:"landing"`
	Timing   TimingConfig   `yaml:"timing"`
	Controls ControlsConfig `yaml:"controls"`
}

// BodyConfig defines the celestial body and its surface.
type BodyConfig struct {
	Segments    int     `yaml:"segments"`
	Radius      float64 `yaml:"radius"`
	Bumpiness   float64 `yaml:"bumpiness"`    // Peak-to-peak noise as a fraction of radius
	ZoneSpread  int     `yaml:"zone_spread"`  // Max pad offset in segments
	AngularRate float64 `yaml:"angular_rate"` // Degrees per second, positive = counter-clockwise
	DriftX      float64 `yaml:"drift_x"`      // Center velocity in drift mode
	DriftY      float64 `yaml:"drift_y"`
}

// PhysicsConfig defines the integrator constants.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	ThrustAccel  float64 `yaml:"thrust_accel"`
	RotationRate float64 `yaml:"rotation_rate"` // Degrees per second
	BurnRate     float64 `yaml:"burn_rate"`     // Fuel units per second of thrust
}

// CraftConfig defines the craft silhouette and tank.
type CraftConfig struct {
	HalfWidth     float64 `yaml:"half_width"`
	HalfHeight    float64 `yaml:"half_height"`
	Fuel          float64 `yaml:"fuel"`
	StartAltitude float64 `yaml:"start_altitude"`
}

// LandingConfig defines the touchdown tolerances.
type LandingConfig struct {
	MaxSpeed float64 `yaml:"max_speed"`
	MaxAngle float64 `yaml:"max_angle"` // Degrees either side of local up
}

// TimingConfig defines the fixed-step clock.
type TimingConfig struct {
	StepHz           int `yaml:"step_hz"`
	CountdownTicks   int `yaml:"countdown_ticks"`
	MaxStepsPerFrame int `yaml:"max_steps_per_frame"`
}

// ControlsConfig defines terminal input handling.
type ControlsConfig struct {
	HoldTicks int `yaml:"hold_ticks"` // Frames a key press stays held
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the supported presets in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, s)
	}
}

// Validate checks every field and test-generates a surface.
func (c LanderConfig) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Physics.Gravity >= 0, "physics.gravity must not be negative"},
		{c.Physics.ThrustAccel > 0, "physics.thrust_accel must be positive"},
		{c.Physics.RotationRate > 0, "physics.rotation_rate must be positive"},
		{c.Physics.BurnRate >= 0, "physics.burn_rate must not be negative"},
		{c.Craft.HalfWidth > 0 && c.Craft.HalfHeight > 0, "craft size must be positive"},
		{c.Craft.Fuel >= 0, "craft.fuel must not be negative"},
		{c.Craft.StartAltitude > c.Craft.HalfHeight, "craft.start_altitude must clear the surface"},
		{c.Landing.MaxSpeed > 0, "landing.max_speed must be positive"},
		{c.Landing.MaxAngle > 0 && c.Landing.MaxAngle <= 180, "landing.max_angle must be in (0, 180]"},
		{c.Timing.StepHz > 0, "timing.step_hz must be positive"},
		{c.Timing.CountdownTicks >= 0, "timing.countdown_ticks must not be negative"},
		{c.Timing.MaxStepsPerFrame > 0, "timing.max_steps_per_frame must be positive"},
		{c.Controls.HoldTicks > 0, "controls.hold_ticks must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.msg)
		}
	}

	surface, _, err := sim.GenerateSurface(c.surfaceParams(), rand.New(rand.NewSource(1)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := surface.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Dt returns the fixed simulation step in seconds.
func (c LanderConfig) Dt() float64 {
	if c.Timing.StepHz <= 0 {
		return 0
	}
	return 1 / float64(c.Timing.StepHz)
}

// SessionConfig maps the YAML onto the simulation. Drift is applied only
// when drift is true.
func (c LanderConfig) SessionConfig(seed int64, drift bool) sim.SessionConfig {
	motion := sim.BodyMotion{AngularRate: core.DegToRad(c.Body.AngularRate)}
	if drift {
		motion.Drift = core.V(c.Body.DriftX, c.Body.DriftY)
	}

	return sim.SessionConfig{
		Surface: c.surfaceParams(),
		Physics: sim.PhysicsParams{
			Gravity:      c.Physics.Gravity,
			ThrustAccel:  c.Physics.ThrustAccel,
			RotationRate: c.Physics.RotationRate,
			BurnRate:     c.Physics.BurnRate,
			FuelCapacity: c.Craft.Fuel,
		},
		Craft: sim.CraftParams{
			HalfW:         c.Craft.HalfWidth,
			HalfH:         c.Craft.HalfHeight,
			FuelCapacity:  c.Craft.Fuel,
			StartAltitude: c.Craft.StartAltitude,
		},
		Limits: sim.LandingLimits{
			MaxSpeed: c.Landing.MaxSpeed,
			MaxAngle: c.Landing.MaxAngle,
		},
		Motion:           motion,
		CountdownTicks:   c.Timing.CountdownTicks,
		Dt:               c.Dt(),
		MaxStepsPerFrame: c.Timing.MaxStepsPerFrame,
		Seed:             seed,
	}
}

func (c LanderConfig) surfaceParams() sim.SurfaceParams {
	return sim.SurfaceParams{
		Segments:   c.Body.Segments,
		Radius:     c.Body.Radius,
		Bumpiness:  c.Body.Bumpiness,
		ZoneSpread: c.Body.ZoneSpread,
	}
}
