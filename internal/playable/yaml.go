package playable

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML reads a creative definition and normalizes it.
func ParseYAML(data []byte) (Configuration, error) {
	var cfg Configuration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Configuration{}, fmt.Errorf("parse creative: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// EncodeYAML renders cfg as a creative definition file.
func EncodeYAML(cfg Configuration) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode creative: %w", err)
	}
	return out, nil
}
