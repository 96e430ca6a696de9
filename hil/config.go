package hil

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds the harness settings. Zero fields fall back to defaults, so
// a config file only needs the values it changes.
type Config struct {
	// Port is the serial device of the board under test.
	Port string `yaml:"port"`
	// Baud is the line rate. USB CDC links ignore it.
	Baud int `yaml:"baud"`
	// ReadTimeoutMS bounds a single read so the session can poll.
	ReadTimeoutMS int `yaml:"read_timeout_ms"`
	// DeadlineMS bounds the whole run.
	DeadlineMS int `yaml:"deadline_ms"`
}

// DefaultConfig returns the settings used when nothing is specified.
func DefaultConfig() *Config {
	return &Config{
		Port:          "/dev/ttyACM0",
		Baud:          115200,
		ReadTimeoutMS: 100,
		DeadlineMS:    10_000,
	}
}

// LoadConfig reads a YAML config file and fills unset fields with defaults.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hil: read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("hil: parse config %s: %w", path, err)
	}
	def := DefaultConfig()
	if cfg.Port == "" {
		cfg.Port = def.Port
	}
	if cfg.Baud == 0 {
		cfg.Baud = def.Baud
	}
	if cfg.ReadTimeoutMS == 0 {
		cfg.ReadTimeoutMS = def.ReadTimeoutMS
	}
	if cfg.DeadlineMS == 0 {
		cfg.DeadlineMS = def.DeadlineMS
	}
	return cfg, nil
}
