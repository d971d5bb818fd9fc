// Package config loads the interpreter's runtime configuration: a YAML file
// for checked-in defaults, overlaid with environment variables for
// per-invocation overrides, the way the reference CLI layers its settings.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Config holds the settings that affect how a Lox program is scanned, run
// and reported on.
type Config struct {
	// MaxCallDepth bounds Go call-stack recursion for nested Lox function
	// calls, turning runaway Lox recursion into a reported runtime error
	// instead of a host stack overflow.
	MaxCallDepth int `yaml:"max_call_depth" env:"LOXI_MAX_CALL_DEPTH"`

	// Debug enables the `.debug on` REPL toggle by default, printing the
	// parsed AST of every line before evaluating it.
	Debug bool `yaml:"debug" env:"LOXI_DEBUG"`

	// PromptPrefix is the string the REPL prints before reading each line.
	PromptPrefix string `yaml:"prompt_prefix" env:"LOXI_PROMPT_PREFIX"`
}

// Default returns the built-in configuration, used when no config file is
// given and no environment variables are set.
func Default() Config {
	return Config{MaxCallDepth: 255, PromptPrefix: "> "}
}

// Load reads a YAML config file from path (if path is non-empty) and then
// overlays any matching LOXI_* environment variables on top of it, env
// taking precedence the way a one-off invocation should be able to override
// a checked-in config without editing it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment overrides: %w", err)
	}
	return cfg, nil
}
