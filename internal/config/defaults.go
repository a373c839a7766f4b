package config

import (
	"bytes"
	_ "embed"
)

//go:embed defaults/lander.yaml
var defaultLanderYAML []byte

// DefaultYAML returns a copy of the embedded default configuration file.
func DefaultYAML() []byte {
	return bytes.Clone(defaultLanderYAML)
}

// DefaultLanderConfig returns the default lander configuration.
// It mirrors defaults/lander.yaml and is used if the embedded file is unreadable.
func DefaultLanderConfig() LanderConfig {
	return LanderConfig{
		Body: BodyConfig{
			Segments:    72,
			Radius:      100,
			Bumpiness:   0.12,
			ZoneSpread:  6,
			AngularRate: 0.4,
			DriftX:      0.6,
			DriftY:      -0.2,
		},
		Physics: PhysicsConfig{
			Gravity:      1.62,
			ThrustAccel:  4.0,
			RotationRate: 90,
			BurnRate:     1.0,
		},
		Craft: CraftConfig{
			HalfWidth:     1.5,
			HalfHeight:    1.5,
			Fuel:          60,
			StartAltitude: 30,
		},
		Landing: LandingConfig{
			MaxSpeed: 2.5,
			MaxAngle: 10,
		},
		Timing: TimingConfig{
			StepHz:           60,
			CountdownTicks:   180,
			MaxStepsPerFrame: 8,
		},
		Controls: ControlsConfig{
			HoldTicks: 15,
		},
	}
}
