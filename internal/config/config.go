package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default file names probed by LoadDefault, in order.
var defaultNames = []string{".ribbon.yaml", ".ribbon.yml", ".ribbon.json"}

// Config carries host-level settings shared by the run and serve commands.
// Zero values mean "not set"; Load layers file values over Default().
type Config struct {
	// Interval is the pause between rendered phases, in seconds.
	Interval float64 `yaml:"interval" json:"interval"`

	// MaxSteps bounds the number of logical steps a run may take.
	// Zero means unbounded.
	MaxSteps int `yaml:"max_steps" json:"max_steps"`

	// Listen is the address the session server binds to.
	Listen string `yaml:"listen" json:"listen"`

	// LogFile, when set, mirrors log records as JSON into this file.
	LogFile string `yaml:"log_file" json:"log_file"`

	// Debug lowers the log level to debug.
	Debug bool `yaml:"debug" json:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Interval: 0.3,
		Listen:   ":8080",
	}
}

// Load reads a configuration file (YAML or JSON, by extension) and layers it
// over the defaults. The file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefault probes dir for a .ribbon config file. A missing file is not an
// error; the defaults are returned unchanged.
func LoadDefault(dir string) (Config, error) {
	for _, name := range defaultNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return Load(path)
	}
	return Default(), nil
}

// Validate rejects values the runner and server cannot work with.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	return nil
}
