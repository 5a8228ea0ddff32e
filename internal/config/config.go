// Package config holds the API server settings read from the environment and
// the batch job files read by the CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultMaxIntervals    = 10000
	DefaultServiceName     = "simpson-api"
)

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// MaxIntervals caps n for HTTP callers. Zero disables the cap.
	MaxIntervals int
	OTelLogs     bool
	ServiceName  string
}

func Default() Config {
	return Config{
		Addr:            DefaultAddr,
		ShutdownTimeout: DefaultShutdownTimeout,
		MaxIntervals:    DefaultMaxIntervals,
		ServiceName:     DefaultServiceName,
	}
}

// FromEnv reads HTTP_ADDR, SHUTDOWN_TIMEOUT, MAX_INTERVALS, OTEL_LOGS_ENABLED
// and OTEL_SERVICE_NAME. Unset or empty variables keep their defaults.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	if v, ok := get("HTTP_ADDR"); ok {
		cfg.Addr = v
	}

	if v, ok := get("SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: must be positive, got %s", d)
		}
		cfg.ShutdownTimeout = d
	}

	if v, ok := get("MAX_INTERVALS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("MAX_INTERVALS: %w", err)
		}
		if n < 0 {
			return Config{}, fmt.Errorf("MAX_INTERVALS: must not be negative, got %d", n)
		}
		cfg.MaxIntervals = n
	}

	if v, ok := get("OTEL_LOGS_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("OTEL_LOGS_ENABLED: %w", err)
		}
		cfg.OTelLogs = b
	}

	if v, ok := get("OTEL_SERVICE_NAME"); ok {
		cfg.ServiceName = v
	}

	return cfg, nil
}
