package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration for a flappy variant.
// Search order: customPath -> ~/.flappy/configs/<variant>.yaml ->
// ./configs/<variant>.yaml -> embedded default -> hard-coded default.
//
// Every YAML source is decoded on top of the hard-coded default, so a file
// only needs the keys it overrides.
func Load(variant, customPath string) (FlappyConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(variant, customPath)
		if err != nil {
			return DefaultFor(variant), err
		}
		return cfg, nil
	}

	filename := variant + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, err := loadFile(variant, userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(variant, filepath.Join("configs", filename)); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	if data := GetDefaultYAML(variant); data != nil {
		if cfg, err := decode(variant, data); err == nil {
			return cfg, nil
		}
	}
	return DefaultFor(variant), nil // Fallback to hardcoded if embed fails
}

func loadFile(variant, path string) (FlappyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FlappyConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := decode(variant, data)
	if err != nil {
		return FlappyConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func decode(variant string, data []byte) (FlappyConfig, error) {
	cfg := DefaultFor(variant)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg FlappyConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", filename)
}
