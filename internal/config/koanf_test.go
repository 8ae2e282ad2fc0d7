// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	// Engine defaults
	if cfg.Engine.Vocabulary != "v2" {
		t.Errorf("Engine.Vocabulary = %q, want v2", cfg.Engine.Vocabulary)
	}
	if len(cfg.Engine.CustomTags) != 0 {
		t.Errorf("Engine.CustomTags should be empty by default, got %v", cfg.Engine.CustomTags)
	}
	if cfg.Engine.TopK != 100 {
		t.Errorf("Engine.TopK = %d, want 100", cfg.Engine.TopK)
	}
	if cfg.Engine.Seed != 42 {
		t.Errorf("Engine.Seed = %d, want 42", cfg.Engine.Seed)
	}
	if cfg.Engine.Eta0 != 0.01 {
		t.Errorf("Engine.Eta0 = %v, want 0.01", cfg.Engine.Eta0)
	}
	if cfg.Engine.Alpha != 0.0001 {
		t.Errorf("Engine.Alpha = %v, want 0.0001", cfg.Engine.Alpha)
	}
	if cfg.Engine.Tol != 0.001 {
		t.Errorf("Engine.Tol = %v, want 0.001", cfg.Engine.Tol)
	}
	if cfg.Engine.Stall != 5 {
		t.Errorf("Engine.Stall = %d, want 5", cfg.Engine.Stall)
	}

	// Storage defaults
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Storage.Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != "/data/whatnow/model.db" {
		t.Errorf("Storage.Path = %q, want /data/whatnow/model.db", cfg.Storage.Path)
	}

	// Catalog defaults
	if cfg.Catalog.Snapshot != "activities.json" {
		t.Errorf("Catalog.Snapshot = %q, want activities.json", cfg.Catalog.Snapshot)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
	if cfg.Logging.Caller {
		t.Error("Logging.Caller should be false by default")
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Engine
		{"WHATNOW_VOCABULARY", "engine.vocabulary"},
		{"WHATNOW_CUSTOM_TAGS", "engine.custom_tags"},
		{"WHATNOW_TOP_K", "engine.top_k"},
		{"WHATNOW_SEED", "engine.seed"},
		{"WHATNOW_ETA0", "engine.eta0"},
		{"WHATNOW_ALPHA", "engine.alpha"},
		{"WHATNOW_TOL", "engine.tol"},
		{"WHATNOW_STALL", "engine.stall"},

		// Storage
		{"WHATNOW_STORAGE_BACKEND", "storage.backend"},
		{"WHATNOW_STORAGE_PATH", "storage.path"},

		// Catalog
		{"WHATNOW_CATALOG_SNAPSHOT", "catalog.snapshot"},

		// Logging
		{"WHATNOW_LOG_LEVEL", "logging.level"},
		{"WHATNOW_LOG_FORMAT", "logging.format"},
		{"WHATNOW_LOG_CALLER", "logging.caller"},

		// Unknown (should return empty)
		{"RANDOM_VAR", ""},
		{"PATH", ""},
		{"HOME", ""},
		{"WHATNOW_UNKNOWN_SETTING", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := envTransformFunc(tt.input)
			if result != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Errorf("failed to restore working directory: %v", err)
		}
	})

	t.Run("no config file exists", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")

		result := findConfigFile()
		if result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")

		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("logging:\n  level: info\n"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(configPath)

		result := findConfigFile()
		if result != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", result)
		}
	})

	t.Run("WHATNOW_CONFIG takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom_config.yaml")
		if err := os.WriteFile(customPath, []byte("logging:\n  level: info\n"), 0o644); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		defer os.Remove(customPath)

		t.Setenv(ConfigPathEnvVar, customPath)

		result := findConfigFile()
		if result != customPath {
			t.Errorf("findConfigFile() = %q, want %q", result, customPath)
		}
	})

	t.Run("WHATNOW_CONFIG with non-existent file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")

		result := findConfigFile()
		if result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})
}

// TestLoadFileEnvVars tests loading configuration from environment variables
func TestLoadFileEnvVars(t *testing.T) {
	t.Setenv("WHATNOW_TOP_K", "10")
	t.Setenv("WHATNOW_SEED", "7")
	t.Setenv("WHATNOW_STORAGE_BACKEND", "memory")
	t.Setenv("WHATNOW_LOG_LEVEL", "debug")

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	// Verify custom overrides
	if cfg.Engine.TopK != 10 {
		t.Errorf("Engine.TopK = %d, want 10", cfg.Engine.TopK)
	}
	if cfg.Engine.Seed != 7 {
		t.Errorf("Engine.Seed = %d, want 7", cfg.Engine.Seed)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("Storage.Backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	// Verify defaults are still applied for unset values
	if cfg.Engine.Vocabulary != "v2" {
		t.Errorf("Engine.Vocabulary = %q, want v2 (default)", cfg.Engine.Vocabulary)
	}
	if cfg.Engine.Eta0 != 0.01 {
		t.Errorf("Engine.Eta0 = %v, want 0.01 (default)", cfg.Engine.Eta0)
	}
	if cfg.Catalog.Snapshot != "activities.json" {
		t.Errorf("Catalog.Snapshot = %q, want activities.json (default)", cfg.Catalog.Snapshot)
	}
}

// TestLoadFileYAML tests loading configuration from a YAML file
func TestLoadFileYAML(t *testing.T) {
	configContent := `
engine:
  vocabulary: "v1"
  top_k: 25
  seed: 99

storage:
  backend: "file"
  path: "/tmp/whatnow-test/model.json"

logging:
  level: "warn"
  format: "json"
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	// Verify values from config file
	if cfg.Engine.Vocabulary != "v1" {
		t.Errorf("Engine.Vocabulary = %q, want v1", cfg.Engine.Vocabulary)
	}
	if cfg.Engine.TopK != 25 {
		t.Errorf("Engine.TopK = %d, want 25", cfg.Engine.TopK)
	}
	if cfg.Engine.Seed != 99 {
		t.Errorf("Engine.Seed = %d, want 99", cfg.Engine.Seed)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("Storage.Backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != "/tmp/whatnow-test/model.json" {
		t.Errorf("Storage.Path = %q, want /tmp/whatnow-test/model.json", cfg.Storage.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}

	// Verify defaults are still applied for unset values
	if cfg.Engine.Stall != 5 {
		t.Errorf("Engine.Stall = %d, want 5 (default)", cfg.Engine.Stall)
	}
}

// TestLoadFileEnvOverridesFile tests that env vars override config file values
func TestLoadFileEnvOverridesFile(t *testing.T) {
	configContent := `
engine:
  top_k: 25

storage:
  backend: "memory"
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	t.Setenv("WHATNOW_TOP_K", "50")

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Engine.TopK != 50 {
		t.Errorf("Engine.TopK = %d, want 50 (env overrides file)", cfg.Engine.TopK)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("Storage.Backend = %q, want memory (from file)", cfg.Storage.Backend)
	}
}

// TestLoadFileCustomTags tests custom vocabulary parsing from both sources
func TestLoadFileCustomTags(t *testing.T) {
	t.Run("comma-separated env var", func(t *testing.T) {
		t.Setenv("WHATNOW_CUSTOM_TAGS", "sunny, rainy ,windy,")
		t.Setenv("WHATNOW_STORAGE_BACKEND", "memory")

		cfg, err := LoadFile("")
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}

		want := []string{"sunny", "rainy", "windy"}
		if !reflect.DeepEqual(cfg.Engine.CustomTags, want) {
			t.Errorf("Engine.CustomTags = %v, want %v", cfg.Engine.CustomTags, want)
		}
	})

	t.Run("yaml list", func(t *testing.T) {
		configContent := `
engine:
  custom_tags:
    - sunny
    - rainy
    - windy

storage:
  backend: "memory"
`
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}

		cfg, err := LoadFile(configPath)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}

		want := []string{"sunny", "rainy", "windy"}
		if !reflect.DeepEqual(cfg.Engine.CustomTags, want) {
			t.Errorf("Engine.CustomTags = %v, want %v", cfg.Engine.CustomTags, want)
		}
	})
}

// TestLoadFileErrors tests that malformed sources fail loading
func TestLoadFileErrors(t *testing.T) {
	t.Run("missing config file", func(t *testing.T) {
		if _, err := LoadFile("/non/existent/config.yaml"); err == nil {
			t.Error("LoadFile() with a missing file should fail")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(configPath, []byte("engine: [broken\n"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}

		if _, err := LoadFile(configPath); err == nil {
			t.Error("LoadFile() with malformed YAML should fail")
		}
	})

	t.Run("invalid backend", func(t *testing.T) {
		t.Setenv("WHATNOW_STORAGE_BACKEND", "redis")

		if _, err := LoadFile(""); err == nil {
			t.Error("LoadFile() with an unknown backend should fail validation")
		}
	})
}
