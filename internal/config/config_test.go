package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultLanderConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	if embeddedDefault() != DefaultLanderConfig() {
		t.Errorf("embedded YAML and DefaultLanderConfig differ:\n%+v\n%+v", embeddedDefault(), DefaultLanderConfig())
	}
}

func TestDefaultYAMLParses(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg != DefaultLanderConfig() {
		t.Errorf("DefaultYAML does not round-trip to the defaults: %+v", cfg)
	}
}

func TestUserConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if got, want := UserConfigPath(), filepath.Join(home, ".lander", "configs", ConfigFile); got != want {
		t.Errorf("UserConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadLanderFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadLander("")
	if err != nil {
		t.Fatalf("LoadLander: %v", err)
	}
	if cfg != DefaultLanderConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadLanderUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".lander", "configs", ConfigFile), "physics:\n  gravity: 3.7\n")

	cfg, err := LoadLander("")
	if err != nil {
		t.Fatalf("LoadLander: %v", err)
	}
	if cfg.Physics.Gravity != 3.7 {
		t.Errorf("expected user gravity 3.7, got %v", cfg.Physics.Gravity)
	}
	if cfg.Body.Segments != DefaultLanderConfig().Body.Segments {
		t.Error("fields missing from the file should keep their defaults")
	}
}

func TestLoadLanderSkipsInvalidUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".lander", "configs", ConfigFile), "body:\n  segments: 2\n")

	cfg, err := LoadLander("")
	if err != nil {
		t.Fatalf("LoadLander: %v", err)
	}
	if cfg.Body.Segments != DefaultLanderConfig().Body.Segments {
		t.Errorf("invalid user config should be ignored, got %d segments", cfg.Body.Segments)
	}
}

func TestLoadLanderCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "craft:\n  fuel: 250\nlanding:\n  max_angle: 20\n")

	cfg, err := LoadLander(path)
	if err != nil {
		t.Fatalf("LoadLander: %v", err)
	}
	if cfg.Craft.Fuel != 250 || cfg.Landing.MaxAngle != 20 {
		t.Errorf("custom values not applied: %+v", cfg)
	}
}

func TestLoadLanderCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadLander(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "body: [not, a, map]\n")
	if _, err := LoadLander(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "timing:\n  step_hz: 0\n")
	if _, err := LoadLander(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*LanderConfig)
	}{
		{"few segments", func(c *LanderConfig) { c.Body.Segments = 4 }},
		{"bumpiness too high", func(c *LanderConfig) { c.Body.Bumpiness = 2 }},
		{"zero thrust", func(c *LanderConfig) { c.Physics.ThrustAccel = 0 }},
		{"negative gravity", func(c *LanderConfig) { c.Physics.Gravity = -1 }},
		{"zero craft", func(c *LanderConfig) { c.Craft.HalfWidth = 0 }},
		{"spawn inside surface", func(c *LanderConfig) { c.Craft.StartAltitude = 1 }},
		{"zero max speed", func(c *LanderConfig) { c.Landing.MaxSpeed = 0 }},
		{"max angle too wide", func(c *LanderConfig) { c.Landing.MaxAngle = 181 }},
		{"zero step rate", func(c *LanderConfig) { c.Timing.StepHz = 0 }},
		{"zero hold", func(c *LanderConfig) { c.Controls.HoldTicks = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultLanderConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"normal", DifficultyNormal, false},
		{"fixed", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyLanderPreset(t *testing.T) {
	base := DefaultLanderConfig()

	easy := base
	ApplyLanderPreset(&easy, DifficultyEasy)
	if easy.Landing.MaxSpeed <= base.Landing.MaxSpeed || easy.Craft.Fuel <= base.Craft.Fuel {
		t.Errorf("easy should loosen limits: %+v", easy.Landing)
	}
	if easy.Body.AngularRate != 0 {
		t.Error("easy should stop the spin")
	}

	hard := base
	ApplyLanderPreset(&hard, DifficultyHard)
	if hard.Landing.MaxSpeed >= base.Landing.MaxSpeed || hard.Landing.MaxAngle >= base.Landing.MaxAngle {
		t.Errorf("hard should tighten limits: %+v", hard.Landing)
	}

	normal := base
	ApplyLanderPreset(&normal, DifficultyNormal)
	if normal != base {
		t.Error("normal should not change the config")
	}

	for _, p := range Presets {
		cfg := DefaultLanderConfig()
		ApplyLanderPreset(&cfg, p)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s produced invalid config: %v", p, err)
		}
	}
}

func TestSessionConfigMapping(t *testing.T) {
	cfg := DefaultLanderConfig()

	sc := cfg.SessionConfig(7, false)
	if sc.Seed != 7 {
		t.Errorf("seed %d, want 7", sc.Seed)
	}
	if math.Abs(sc.Dt-1.0/60) > 1e-12 {
		t.Errorf("dt %v, want 1/60", sc.Dt)
	}
	if math.Abs(sc.Motion.AngularRate-cfg.Body.AngularRate*math.Pi/180) > 1e-12 {
		t.Errorf("angular rate %v not converted to radians", sc.Motion.AngularRate)
	}
	if sc.Motion.Drift.X != 0 || sc.Motion.Drift.Y != 0 {
		t.Error("drift should be zero outside drift mode")
	}
	if sc.Physics.FuelCapacity != cfg.Craft.Fuel || sc.Craft.FuelCapacity != cfg.Craft.Fuel {
		t.Error("fuel capacity not mapped")
	}
	if err := sc.Validate(); err != nil {
		t.Errorf("mapped session config invalid: %v", err)
	}

	drift := cfg.SessionConfig(7, true)
	if drift.Motion.Drift.X != cfg.Body.DriftX || drift.Motion.Drift.Y != cfg.Body.DriftY {
		t.Errorf("drift %+v not applied", drift.Motion.Drift)
	}
}
