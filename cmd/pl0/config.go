package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "pl0.yaml"

// fileConfig is the on-disk shape of pl0.yaml. Flags override every field.
type fileConfig struct {
	Mode     string   `yaml:"mode"`
	MaxSteps int64    `yaml:"max_steps"`
	Stats    bool     `yaml:"stats"`
	LogLevel string   `yaml:"log_level"`
	LogFile  string   `yaml:"log_file"`
	Inputs   []string `yaml:"inputs"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Mode:     "auto",
		LogLevel: "warn",
	}
}

// loadConfig reads path. An empty path falls back to ./pl0.yaml, which may
// be absent; an explicit path must exist.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	if err := decodeConfig(f, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *fileConfig) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return cfg.normalize()
}

func (c *fileConfig) normalize() error {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if c.Mode == "" {
		c.Mode = "auto"
	}
	switch c.Mode {
	case "auto", "plain", "tui":
	default:
		return fmt.Errorf("unsupported mode %q (use auto|plain|tui)", c.Mode)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative")
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c fileConfig) level() (slog.Level, error) {
	var lvl slog.Level
	raw := strings.TrimSpace(c.LogLevel)
	if raw == "" {
		return slog.LevelWarn, nil
	}
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
