package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSkirmish loads Battle Strategy configuration.
// Search order: customPath -> ~/.tactics/configs/skirmish.yaml -> ./configs/skirmish.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a file may set only the keys
// it wants to change. A custom path that is missing or invalid is an error;
// the other locations are skipped when unreadable.
func LoadSkirmish(customPath string) (SkirmishConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := decodeSkirmishFile(customPath)
		if err != nil {
			return DefaultSkirmishConfig(), err
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("skirmish.yaml"), filepath.Join("configs", "skirmish.yaml")} {
		if path == "" {
			continue
		}
		if cfg, err := decodeSkirmishFile(path); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultSkirmishConfig()
	if err := yaml.Unmarshal(defaultSkirmishYAML, &cfg); err != nil {
		return DefaultSkirmishConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseSkirmish decodes YAML on top of the defaults and validates the result.
func ParseSkirmish(data []byte) (SkirmishConfig, error) {
	cfg := DefaultSkirmishConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// decodeSkirmishFile reads and parses a single config file.
func decodeSkirmishFile(path string) (SkirmishConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SkirmishConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := ParseSkirmish(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tactics", "configs", filename)
}
