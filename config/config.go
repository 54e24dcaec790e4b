// Package config provides configuration management for the playlist checker.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

var (
	// ErrInputRequired is returned when no input path is provided.
	ErrInputRequired = errors.New("input path is required")
	// ErrWorkersPositive is returned when the worker count is not positive.
	ErrWorkersPositive = errors.New("worker count must be positive")
	// ErrTimeoutPositive is returned when the probe timeout is not positive.
	ErrTimeoutPositive = errors.New("timeout must be positive")
	// ErrRetriesPositive is returned when the retry count is not positive.
	ErrRetriesPositive = errors.New("retry count must be positive")
	// ErrInvalidPort is returned when the serve port is invalid.
	ErrInvalidPort = errors.New("invalid port number")
	// ErrInvalidLogLevel is returned when the log level is invalid.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config holds the application configuration.
type Config struct {
	InputPath    string
	OutputPath   string
	Workers      int
	Timeout      time.Duration
	Retries      int
	Quiet        bool
	FilterDupDir string
	LabelFile    string
	LogLevel     string
	Serve        bool
	Port         int
}

// New creates a new configuration instance by parsing command-line flags.
// The input path is the first positional argument.
func New() (*Config, error) {
	cfg := &Config{}

	flag.StringVar(&cfg.OutputPath, "o", "", "Output file for working entries (default: derived from input)")
	flag.IntVar(&cfg.Workers, "workers", 20, "Number of concurrent workers")
	flag.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "Per-probe request timeout")
	flag.IntVar(&cfg.Retries, "retries", 3, "Probe attempts per URL")
	flag.BoolVar(&cfg.Quiet, "q", false, "Suppress progress output")
	flag.StringVar(&cfg.FilterDupDir, "filter-duplicates", "", "Directory of playlists to filter duplicate channel ids against")
	flag.StringVar(&cfg.LabelFile, "labels", "", "YAML file mapping source filenames to group labels")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&cfg.Serve, "serve", false, "Serve the output playlist directory over HTTP instead of checking")
	flag.IntVar(&cfg.Port, "port", 8081, "Port to listen on in serve mode")

	flag.Parse()

	cfg.InputPath = flag.Arg(0)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return ErrInputRequired
	}

	if c.Workers < 1 {
		return fmt.Errorf("%w: %d", ErrWorkersPositive, c.Workers)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrTimeoutPositive, c.Timeout)
	}

	if c.Retries < 1 {
		return fmt.Errorf("%w: %d", ErrRetriesPositive, c.Retries)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("%w: %s (must be debug, info, warn, or error)", ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}
