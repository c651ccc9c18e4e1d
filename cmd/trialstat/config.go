// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the trialstat configuration. It can be loaded from a YAML
// file with --config; flags given on the command line take precedence.
type Config struct {
	// Format is the report format: "text", "csv" or "trials".
	Format string `yaml:"format"`

	// Strict rejects logs whose trials differ in shape.
	Strict bool `yaml:"strict"`

	// Filter, if set, is a regular expression selecting the labels
	// to report.
	Filter string `yaml:"filter"`

	// KeepGoing reports per-file errors and moves on to the next
	// file instead of exiting.
	KeepGoing bool `yaml:"keep_going"`

	// Prompt is printed before reading each filename.
	Prompt string `yaml:"prompt"`

	// LogLevel is the minimum level of diagnostic logs.
	LogLevel string `yaml:"log_level"`

	filter *regexp.Regexp
	level  zapcore.Level
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Format:   "text",
		Prompt:   "Enter the filename: ",
		LogLevel: "warn",
		level:    zapcore.WarnLevel,
	}
}

// LoadConfig reads a configuration file on top of the defaults. The
// result is not yet validated.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cfg for errors and compiles its filter and log
// level.
func (cfg *Config) Validate() error {
	switch cfg.Format {
	case "text", "csv", "trials":
	default:
		return fmt.Errorf("format: must be text, csv or trials, not %q", cfg.Format)
	}

	cfg.filter = nil
	if cfg.Filter != "" {
		re, err := regexp.Compile(cfg.Filter)
		if err != nil {
			return fmt.Errorf("filter: %w", err)
		}
		cfg.filter = re
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	cfg.level = level

	if cfg.Prompt == "" {
		return errors.New("prompt: must not be empty")
	}
	return nil
}
