package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the lander config file name in every search location.
const ConfigFile = "lander.yaml"

// LoadLander loads lander configuration.
// Search order: customPath -> ~/.lander/configs/lander.yaml -> ./configs/lander.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func LoadLander(customPath string) (LanderConfig, error) {
	// Custom path errors are reported, everything else falls through
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return DefaultLanderConfig(), err
		}
		if err := cfg.Validate(); err != nil {
			return DefaultLanderConfig(), fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(ConfigFile),
		filepath.Join("configs", ConfigFile),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	return embeddedDefault(), nil
}

// loadFile reads and decodes one YAML file over the defaults.
func loadFile(path string) (LanderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LanderConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return LanderConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the embedded defaults.
func Parse(data []byte) (LanderConfig, error) {
	cfg := embeddedDefault()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LanderConfig{}, err
	}
	return cfg, nil
}

// embeddedDefault decodes the embedded YAML, falling back to the hardcoded default.
func embeddedDefault() LanderConfig {
	cfg := DefaultLanderConfig()
	if err := yaml.Unmarshal(defaultLanderYAML, &cfg); err != nil {
		return DefaultLanderConfig()
	}
	return cfg
}

// Dir returns the per-user lander directory (~/.lander), or empty if home is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lander")
}

// UserConfigPath returns ~/.lander/configs/lander.yaml, or empty if home is unavailable.
func UserConfigPath() string {
	return userConfigPath(ConfigFile)
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// ApplyLanderPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyLanderPreset(cfg *LanderConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Landing.MaxSpeed *= 1.6
		cfg.Landing.MaxAngle *= 1.5
		cfg.Craft.Fuel *= 1.5
		cfg.Body.Bumpiness /= 2
		cfg.Body.AngularRate = 0
	case DifficultyHard:
		cfg.Landing.MaxSpeed *= 0.7
		cfg.Landing.MaxAngle *= 0.6
		cfg.Craft.Fuel *= 0.6
		cfg.Body.Bumpiness = min(cfg.Body.Bumpiness*1.5, 1.5)
		cfg.Body.AngularRate *= 2
		cfg.Body.ZoneSpread *= 2
	}
}
