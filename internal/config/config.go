// Package config parses the dashboard's command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Defaults for a Raspberry Pi with the counter button on BCM 17.
const (
	DefaultAddr       = "0.0.0.0:5000"
	DefaultResultsDir = "GAME RESULTS"
	DefaultChip       = "gpiochip0"
	DefaultPin        = 17
	DefaultDebounce   = 20 * time.Millisecond
)

type Config struct {
	Addr       string
	ResultsDir string
	Chip       string
	Pin        int
	Debounce   time.Duration
	NoGPIO     bool
	LogLevel   zerolog.Level
}

// Parse reads flags from args (without the program name).
func Parse(args []string) (Config, error) {
	var (
		cfg   Config
		level string
	)

	fs := flag.NewFlagSet("agilegame", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", DefaultAddr, "HTTP listen address")
	fs.StringVar(&cfg.ResultsDir, "results", DefaultResultsDir, "Directory for CSV snapshots")
	fs.StringVar(&cfg.Chip, "chip", DefaultChip, "GPIO chip of the counter button")
	fs.IntVar(&cfg.Pin, "pin", DefaultPin, "GPIO line offset of the counter button")
	fs.DurationVar(&cfg.Debounce, "debounce", DefaultDebounce, "Button debounce period")
	fs.BoolVar(&cfg.NoGPIO, "no-gpio", false, "Run web-only without the button")
	fs.StringVar(&level, "log-level", "info", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if cfg.Addr == "" {
		return Config{}, errors.New("listen address required")
	}
	if cfg.ResultsDir == "" {
		return Config{}, errors.New("results directory required")
	}
	if cfg.Pin < 0 {
		return Config{}, errors.New("pin must not be negative")
	}
	if cfg.Debounce < 0 {
		return Config{}, errors.New("debounce must not be negative")
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.LogLevel = lvl

	return cfg, nil
}
