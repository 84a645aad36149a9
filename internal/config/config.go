// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

// Package config loads service configuration from built-in defaults, an optional
// YAML file and environment variables, in that order of precedence (lowest first).
package config

import "time"

// Config is the root configuration shared by cmd/server and cmd/synthctl.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Cache    CacheConfig    `koanf:"cache"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig holds DuckDB settings. Path ":memory:" opens a private in-memory catalog.
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"` // 0 = runtime.NumCPU()
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
	SeedOnStart            bool   `koanf:"seed_on_start"` // seed the fixture when the catalog is empty
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// SecurityConfig holds browser-facing protections. There is no authentication.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	Backend    string        `koanf:"backend"` // memory | badger
	TTL        time.Duration `koanf:"ttl"`
	BadgerPath string        `koanf:"badger_path"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// BreakerConfig tunes the circuit breaker guarding stats queries.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"` // allowed through while half-open
	Interval         time.Duration `koanf:"interval"`     // closed-state count reset period
	Timeout          time.Duration `koanf:"timeout"`      // open-state duration
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Cache backends
const (
	CacheBackendMemory = "memory"
	CacheBackendBadger = "badger"
)

// Load reads configuration from defaults, the first config file found and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// HasWildcardCORS reports whether any allowed origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
