// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 7980 {
		t.Errorf("default port = %d, want 7980", cfg.Server.Port)
	}
	if cfg.Motion.ConfPath != "/etc/motion/motion.conf" {
		t.Errorf("default motion conf = %q", cfg.Motion.ConfPath)
	}
	if cfg.Motion.RescanInterval != 5*time.Minute {
		t.Errorf("default rescan interval = %v", cfg.Motion.RescanInterval)
	}
	if cfg.Storage.Root != "/videos" {
		t.Errorf("default storage root = %q", cfg.Storage.Root)
	}
	if cfg.Storage.CleanPercent != 0 {
		t.Errorf("default clean percent = %d, want 0 (disabled)", cfg.Storage.CleanPercent)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("default logging = %+v", cfg.Logging)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("MOTION_CONF", "/opt/motion/motion.conf")
	t.Setenv("STORAGE_ROOT", "/srv/recordings")
	t.Setenv("STORAGE_CLEAN_PERCENT", "85")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Motion.ConfPath != "/opt/motion/motion.conf" {
		t.Errorf("motion conf = %q", cfg.Motion.ConfPath)
	}
	if cfg.Storage.Root != "/srv/recordings" {
		t.Errorf("storage root = %q", cfg.Storage.Root)
	}
	if cfg.Storage.CleanPercent != 85 {
		t.Errorf("clean percent = %d, want 85", cfg.Storage.CleanPercent)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 8123
storage:
  root: /mnt/cctv
  clean_percent: 70
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8123 {
		t.Errorf("port = %d, want 8123", cfg.Server.Port)
	}
	if cfg.Storage.Root != "/mnt/cctv" {
		t.Errorf("storage root = %q", cfg.Storage.Root)
	}
	if cfg.Storage.CleanPercent != 70 {
		t.Errorf("clean percent = %d, want 70", cfg.Storage.CleanPercent)
	}
	// Unset values keep their defaults.
	if cfg.Motion.ConfPath != "/etc/motion/motion.conf" {
		t.Errorf("motion conf = %q, want default", cfg.Motion.ConfPath)
	}
}

func TestEnvironmentBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8123\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("port = %d, want the environment value 9001", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return defaultConfig()
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, true},
		{"negative clean percent", func(c *Config) { c.Storage.CleanPercent = -1 }, true},
		{"clean percent above 100", func(c *Config) { c.Storage.CleanPercent = 101 }, true},
		{"clean percent 100 is valid", func(c *Config) { c.Storage.CleanPercent = 100 }, false},
		{"rescan below a second", func(c *Config) { c.Motion.RescanInterval = 500 * time.Millisecond }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"console format is valid", func(c *Config) { c.Logging.Format = "console" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformIgnoresUnknownVariables(t *testing.T) {
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("expected unrelated variables to be dropped, got %q", got)
	}
	if got := envTransformFunc("HTTP_PORT"); got != "server.port" {
		t.Errorf("HTTP_PORT mapped to %q", got)
	}
}
