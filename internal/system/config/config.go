// Released under an MIT license. See LICENSE.

// Package config loads modal's configuration file.
//
// The file is YAML:
//
//	rules:
//	  - ~/modal/*.modal
//	standard: true
//	mode: quiet
//	max_steps: 10000
//	history: ~/.modal_history
//	watch: false
//	log_level: warn
//
// Every field is optional. MODAL_MAX_STEPS and MODAL_MODE override the
// corresponding fields.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/michaelmacinnis/modal/internal/engine"
	"github.com/michaelmacinnis/modal/internal/engine/debug"
)

// Name is the name of the configuration file in the home directory.
const Name = ".modal.yaml"

// T (config) is modal's configuration.
type T struct {
	History  string   `yaml:"history"`
	LogLevel string   `yaml:"log_level"`
	MaxSteps int      `yaml:"max_steps"`
	Mode     string   `yaml:"mode"`
	Rules    []string `yaml:"rules"`
	Standard *bool    `yaml:"standard"`
	Watch    bool     `yaml:"watch"`
}

// Default returns the configuration used when there is no file.
func Default() *T {
	c := &T{}
	ApplyDefaults(c)

	return c
}

// Load loads the configuration file at path. If path is empty the file
// in the home directory is used, if it exists.
func Load(path string) (*T, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return finish(Default())
		}

		path = filepath.Join(home, Name)

		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return finish(Default())
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var c T
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&c)

	return finish(&c)
}

// ApplyDefaults fills in every field that was not set.
func ApplyDefaults(c *T) {
	if c.History == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.History = filepath.Join(home, ".modal_history")
		}
	}

	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}

	if c.MaxSteps == 0 {
		c.MaxSteps = engine.DefaultMaxSteps
	}

	if c.Mode == "" {
		c.Mode = debug.QuietMode.String()
	}

	if c.Standard == nil {
		standard := true
		c.Standard = &standard
	}

	for i, r := range c.Rules {
		c.Rules[i] = expand(r)
	}

	c.History = expand(c.History)
}

// Level returns the configured log level.
func (c *T) Level() zapcore.Level {
	l, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.WarnLevel
	}

	return l
}

// Validate returns an error describing every invalid field.
func Validate(c *T) error {
	var errs []error

	if c.MaxSteps < 1 {
		errs = append(errs, fmt.Errorf("max_steps must be positive, got %d", c.MaxSteps))
	}

	if _, err := debug.ParseMode(c.Mode); err != nil {
		errs = append(errs, fmt.Errorf("mode: %w", err))
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	return errors.Join(errs...)
}

// UseStandard returns true if the standard rules should be loaded.
func (c *T) UseStandard() bool {
	return c.Standard == nil || *c.Standard
}

func applyEnvOverrides(c *T) {
	if val := os.Getenv("MODAL_MAX_STEPS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.MaxSteps = n
		}
	}

	if val := os.Getenv("MODAL_MODE"); val != "" {
		c.Mode = val
	}
}

func expand(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}

	return path
}

func finish(c *T) (*T, error) {
	applyEnvOverrides(c)

	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return c, nil
}
