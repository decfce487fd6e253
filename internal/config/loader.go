package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

const rulesFile = "rules.yaml"

// Load reads the rules configuration.
// Search order: customPath -> ~/.memorygame/rules.yaml -> ./configs/rules.yaml -> embedded default.
// Missing keys keep their default values. An explicit customPath must exist
// and parse; the other locations are skipped when unreadable.
func Load(customPath string) (Rules, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Rules{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Rules{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	if userCfgPath := userConfigPath(rulesFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, cfg.Validate()
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", rulesFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, cfg.Validate()
		}
	}

	cfg, err := parse(defaultRulesYAML)
	if err != nil {
		return Default(), nil
	}
	return cfg, cfg.Validate()
}

func parse(data []byte) (Rules, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Rules{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".memorygame", filename)
}
