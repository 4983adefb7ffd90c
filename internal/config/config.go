package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the optional per-project config file, found by walking up from
// the working directory.
const FileName = "darsum.yaml"

var validModels = map[string]bool{
	"opus":   true,
	"sonnet": true,
	"haiku":  true,
}

type Config struct {
	Model         string            `yaml:"model"`          // agent model: opus, sonnet, haiku
	ParserBin     string            `yaml:"parser-bin"`     // dump tool binary
	ParserTimeout int               `yaml:"parser-timeout"` // minutes, 0 = no limit
	AgentTimeout  int               `yaml:"agent-timeout"`  // minutes, 0 = no limit
	Tuning        map[string]string `yaml:"tuning"`         // FS parameters being tuned, name -> description
}

// Default returns the configuration used when no darsum.yaml exists.
func Default() *Config {
	return &Config{
		Model:         "sonnet",
		ParserBin:     "darshan-parser",
		ParserTimeout: 5,
		AgentTimeout:  30,
	}
}

// Load reads and validates a darsum.yaml. Unset fields fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values. Load calls it; the CLI also calls it after
// applying flag overrides.
func Validate(cfg *Config) error {
	if !validModels[cfg.Model] {
		return fmt.Errorf("config: unknown model %q (must be opus, sonnet, or haiku)", cfg.Model)
	}
	if cfg.ParserBin == "" {
		return errors.New("config: 'parser-bin' must not be empty")
	}
	if cfg.ParserTimeout < 0 {
		return errors.New("config: 'parser-timeout' must be >= 0")
	}
	if cfg.AgentTimeout < 0 {
		return errors.New("config: 'agent-timeout' must be >= 0")
	}
	for name := range cfg.Tuning {
		if strings.TrimSpace(name) == "" {
			return errors.New("config: tuning parameter names must be non-empty")
		}
	}
	return nil
}

// Find walks up from dir looking for a darsum.yaml. Returns the path and true
// if found.
func Find(dir string) (string, bool) {
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Resolve loads the nearest darsum.yaml above dir, or returns defaults when
// none exists. A config file that exists but fails to load or validate is an
// error; silently ignoring a broken config would mask typos.
func Resolve(dir string) (*Config, error) {
	path, ok := Find(dir)
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// ParserTimeoutDuration returns the dump tool timeout as a duration.
func (c *Config) ParserTimeoutDuration() time.Duration {
	return time.Duration(c.ParserTimeout) * time.Minute
}

// AgentTimeoutDuration returns the per-invocation agent timeout as a duration.
func (c *Config) AgentTimeoutDuration() time.Duration {
	return time.Duration(c.AgentTimeout) * time.Minute
}
