package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures how meta locates the Python environment and the project's
// distribution.
type Config struct {
	Version      int           `yaml:"version"`
	EgginfoPath  string        `yaml:"egginfo_path"`
	Python       string        `yaml:"python"`
	SearchPaths  []string      `yaml:"search_paths,omitempty"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	Strict       bool          `yaml:"strict"`
	Log          LogConfig     `yaml:"log"`
}

// LogConfig controls the diagnostic log written to stderr.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version:      1,
		EgginfoPath:  "./src",
		Python:       "python3",
		ProbeTimeout: 5 * time.Second,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills fields the YAML left empty.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.EgginfoPath == "" {
		c.EgginfoPath = defaults.EgginfoPath
	}
	if c.Python == "" {
		c.Python = defaults.Python
	}
	if c.ProbeTimeout == 0 {
		c.ProbeTimeout = defaults.ProbeTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}
