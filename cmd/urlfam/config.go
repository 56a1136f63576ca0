package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr    = "localhost:8080"
	DefaultTimeout = 30 * time.Second
)

// Config is read from the file given with --config.
type Config struct {
	Addr       string        `yaml:"addr"`
	Timeout    time.Duration `yaml:"timeout"`
	Verbose    bool          `yaml:"verbose"`
	JSONIndent string        `yaml:"json_indent"`
}

func DefaultConfig() *Config {
	return &Config{
		Addr:    DefaultAddr,
		Timeout: DefaultTimeout,
	}
}

// LoadConfig reads path over the defaults. An empty path or a file that does
// not exist yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Timeout <= 0 {
		return nil, fmt.Errorf("invalid timeout: %v", config.Timeout)
	}
	return config, nil
}
