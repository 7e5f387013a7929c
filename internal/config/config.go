// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

// Package config provides centralized configuration management for recwarden.
//
// Configuration is loaded via Koanf v2 with layered sources, highest
// priority last:
//
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (config.yaml)
//  3. Environment variables: override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Motion  MotionConfig  `koanf:"motion"`
	Storage StorageConfig `koanf:"storage"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_HOST: bind address (default: 0.0.0.0)
//   - HTTP_PORT: listen port (default: 7980)
//   - HTTP_TIMEOUT: read/write timeout (default: 30s)
//   - PROXY_NAME: name of the portal/proxy this agent sits behind,
//     reported verbatim in status payloads (default: local hostname)
type ServerConfig struct {
	Host      string        `koanf:"host"`
	Port      int           `koanf:"port"`
	Timeout   time.Duration `koanf:"timeout"`
	ProxyName string        `koanf:"proxy_name"`
}

// MotionConfig locates the capture software's own configuration.
//
// Environment Variables:
//   - MOTION_CONF: path to the Motion configuration file
//     (default: /etc/motion/motion.conf)
//   - MOTION_RESCAN_INTERVAL: how often the file is re-read for camera
//     or storage changes (default: 5m)
type MotionConfig struct {
	ConfPath       string        `koanf:"conf_path"`
	RescanInterval time.Duration `koanf:"rescan_interval"`
}

// StorageConfig holds the recording-tree housekeeping settings.
//
// The storage root normally comes from the Motion configuration
// (target_dir); Root here is a fallback and override for deployments
// where the Motion configuration does not name one.
//
// Environment Variables:
//   - STORAGE_ROOT: recording tree root (default: /videos)
//   - STORAGE_CLEAN_PERCENT: disk usage percentage above which the
//     globally oldest recording is evicted, 0 disables cleanup
//     (default: 0)
type StorageConfig struct {
	Root         string `koanf:"root"`
	CleanPercent int    `koanf:"clean_percent"`
}

// LoggingConfig holds log output settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load loads and validates the configuration. It is the single entry point
// used by main().
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Storage.CleanPercent < 0 || c.Storage.CleanPercent > 100 {
		return fmt.Errorf("STORAGE_CLEAN_PERCENT must be between 0 and 100, got %d", c.Storage.CleanPercent)
	}
	if c.Motion.RescanInterval < time.Second {
		return fmt.Errorf("MOTION_RESCAN_INTERVAL must be at least 1s, got %v", c.Motion.RescanInterval)
	}
	return c.validateLogging()
}

// validateLogging checks log level and format values.
func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
