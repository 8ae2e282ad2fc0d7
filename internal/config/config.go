// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package config

// Config holds all application configuration loaded from defaults, an
// optional YAML config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via WHATNOW_* variables
//
// Configuration Categories:
//
//  1. Engine: Context vocabulary, learner hyperparameters, sampling policy
//  2. Storage: Model persistence backend and location
//  3. Catalog: Activity snapshot source
//  4. Logging: Log levels and output formats
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	// cfg.Engine.TopK, cfg.Storage.Backend, etc. are now populated
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Engine  EngineConfig  `koanf:"engine"`
	Storage StorageConfig `koanf:"storage"`
	Catalog CatalogConfig `koanf:"catalog"`
	Logging LoggingConfig `koanf:"logging"`
}

// EngineConfig holds the recommendation engine settings: the context
// vocabulary, the online learner hyperparameters and the sampling policy.
//
// Environment Variables:
//   - WHATNOW_VOCABULARY: Built-in vocabulary version: v1, v2 (default: v2)
//   - WHATNOW_CUSTOM_TAGS: Comma-separated tag list replacing the built-in vocabulary
//   - WHATNOW_TOP_K: Recommendations per session (default: 100)
//   - WHATNOW_SEED: Sampling seed for reproducible runs (default: 42)
//   - WHATNOW_ETA0: Initial learning rate (default: 0.01)
//   - WHATNOW_ALPHA: L2 regularization strength (default: 0.0001)
//   - WHATNOW_TOL: Loss improvement tolerance for the adaptive schedule (default: 0.001)
//   - WHATNOW_STALL: Stalled updates before the learning rate decays (default: 5)
type EngineConfig struct {
	// Vocabulary selects a built-in tag vocabulary. Ignored when CustomTags
	// is set.
	// Default: v2
	Vocabulary string `koanf:"vocabulary" validate:"omitempty,oneof=v1 v2"`

	// CustomTags replaces the built-in vocabulary with an explicit tag list.
	// Tag order fixes the encoding, so changing it invalidates stored models.
	CustomTags []string `koanf:"custom_tags"`

	// TopK is the number of recommendations sampled per session.
	// Default: 100
	TopK int `koanf:"top_k" validate:"gte=0"`

	// Seed drives the sampling source so identical deployments recommend
	// identically.
	// Default: 42
	Seed int64 `koanf:"seed"`

	// Eta0 is the initial SGD learning rate.
	// Default: 0.01
	Eta0 float64 `koanf:"eta0" validate:"gte=0"`

	// Alpha is the L2 regularization strength applied to the weights.
	// Default: 0.0001
	Alpha float64 `koanf:"alpha" validate:"gte=0"`

	// Tol is the minimum log-loss improvement that counts as progress for
	// the adaptive learning rate schedule.
	// Default: 0.001
	Tol float64 `koanf:"tol" validate:"gte=0"`

	// Stall is the number of non-improving updates tolerated before the
	// learning rate is divided by five.
	// Default: 5
	Stall int `koanf:"stall" validate:"gte=0"`
}

// StorageConfig holds model persistence settings.
//
// The Path meaning depends on the backend: the sqlite backend stores a
// database file there, the file backend a checksummed snapshot file, and
// the badger backend uses it as its data directory. The memory backend
// ignores Path.
//
// Environment Variables:
//   - WHATNOW_STORAGE_BACKEND: sqlite, file, badger, memory (default: sqlite)
//   - WHATNOW_STORAGE_PATH: Backend-specific storage location
type StorageConfig struct {
	// Backend selects the model store implementation.
	// Default: sqlite
	Backend string `koanf:"backend" validate:"required,oneof=sqlite file badger memory"`

	// Path is the backend-specific storage location. Required for every
	// backend except memory.
	// Default: /data/whatnow/model.db
	Path string `koanf:"path"`
}

// CatalogConfig holds the activity catalog source.
//
// Environment Variables:
//   - WHATNOW_CATALOG_SNAPSHOT: Path to the activity snapshot JSON (default: activities.json)
type CatalogConfig struct {
	// Snapshot is the path to the activity snapshot payload produced by the
	// embedding pipeline.
	// Default: activities.json
	Snapshot string `koanf:"snapshot"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - WHATNOW_LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - WHATNOW_LOG_FORMAT: json, console (default: console)
//   - WHATNOW_LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended when output is collected by a log pipeline;
	// console is the default for interactive CLI use.
	// Default: console
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}
