package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML file configuration
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{filename: filename}
}

// LoadConfig reads and parses the YAML configuration file, applying
// defaults for unset fields.
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	data, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", y.filename, err)
	}

	cfg := &ConfigData{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", y.filename, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// Close is a no-op for YAML configuration
func (y *YAMLProvider) Close() error {
	return nil
}
