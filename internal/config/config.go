package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/minicodemonkey/chime/internal/melody"
	"github.com/minicodemonkey/chime/internal/synth"
	"gopkg.in/yaml.v3"
)

// Config holds generation settings for chime.
type Config struct {
	SampleRate int      `yaml:"sampleRate"`
	Gain       float64  `yaml:"gain"`
	OutputDir  string   `yaml:"outputDir"`
	Timbres    []string `yaml:"timbres"`
	Melodies   []string `yaml:"melodies"`
	Seed       uint64   `yaml:"seed"`
	Workers    int      `yaml:"workers"`
}

// Default returns a Config that renders every timbre and melody at 44.1 kHz.
func Default() *Config {
	cfg := &Config{
		SampleRate: 44100,
		Gain:       1.0,
		OutputDir:  "sounds",
	}
	for _, t := range synth.Timbres() {
		cfg.Timbres = append(cfg.Timbres, string(t))
	}
	for _, m := range melody.Names() {
		cfg.Melodies = append(cfg.Melodies, string(m))
	}
	return cfg
}

// Exists checks if the config file exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads the config at path. Fields missing from the file keep their
// defaults, and a missing file returns Default() (no error).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sampleRate must be positive, got %d", c.SampleRate)
	}
	if c.Gain <= 0 || c.Gain > 1 {
		return fmt.Errorf("gain must be in (0, 1], got %v", c.Gain)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("outputDir must not be empty")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := c.ParsedTimbres(); err != nil {
		return err
	}
	if _, err := c.ParsedMelodies(); err != nil {
		return err
	}
	return nil
}

// ParsedTimbres returns the selected timbres.
func (c *Config) ParsedTimbres() ([]synth.Timbre, error) {
	if len(c.Timbres) == 0 {
		return nil, fmt.Errorf("no timbres selected")
	}
	out := make([]synth.Timbre, 0, len(c.Timbres))
	for _, name := range c.Timbres {
		t, err := synth.ParseTimbre(name)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// ParsedMelodies returns the selected melodies.
func (c *Config) ParsedMelodies() ([]melody.Name, error) {
	if len(c.Melodies) == 0 {
		return nil, fmt.Errorf("no melodies selected")
	}
	out := make([]melody.Name, 0, len(c.Melodies))
	for _, name := range c.Melodies {
		m, err := melody.ParseName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// YAML renders the config as it would be saved.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
