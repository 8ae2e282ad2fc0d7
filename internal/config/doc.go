// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

/*
Package config provides centralized configuration management for WhatNow.

This package handles loading, layering, and validation of configuration for
all application components. Values come from built-in defaults, an optional
YAML config file, and WHATNOW_* environment variables, with later sources
overriding earlier ones.

# Configuration Sources

The package reads configuration in precedence order (lowest first):

  - Built-in defaults (defaultConfig)
  - YAML config file: config.yaml, config.yml, /etc/whatnow/config.yaml,
    /etc/whatnow/config.yml, or the file named by WHATNOW_CONFIG
  - Environment variables (highest priority)

# Configuration Structure

The package organizes configuration into logical groups:

  - EngineConfig: Vocabulary, learner hyperparameters, sampling policy
  - StorageConfig: Model persistence backend and location
  - CatalogConfig: Activity snapshot source
  - LoggingConfig: Log levels and output formats

# Environment Variables

Engine (EngineConfig):
  - WHATNOW_VOCABULARY: Built-in vocabulary version: v1, v2 (default: v2)
  - WHATNOW_CUSTOM_TAGS: Comma-separated tag list replacing the built-in vocabulary
  - WHATNOW_TOP_K: Recommendations per session (default: 100)
  - WHATNOW_SEED: Sampling seed (default: 42)
  - WHATNOW_ETA0: Initial learning rate (default: 0.01)
  - WHATNOW_ALPHA: L2 regularization strength (default: 0.0001)
  - WHATNOW_TOL: Loss improvement tolerance (default: 0.001)
  - WHATNOW_STALL: Stalled updates before learning rate decay (default: 5)

Storage (StorageConfig):
  - WHATNOW_STORAGE_BACKEND: sqlite, file, badger, memory (default: sqlite)
  - WHATNOW_STORAGE_PATH: Backend-specific storage location (default: /data/whatnow/model.db)

Catalog (CatalogConfig):
  - WHATNOW_CATALOG_SNAPSHOT: Path to the activity snapshot JSON (default: activities.json)

Logging (LoggingConfig):
  - WHATNOW_LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - WHATNOW_LOG_FORMAT: json, console (default: console)
  - WHATNOW_LOG_CALLER: Include caller file:line (default: false)

# Usage Example

Basic configuration loading:

	import "github.com/whatnowai/whatnow/internal/config"

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load config")
	}

	fmt.Printf("Storage backend: %s\n", cfg.Storage.Backend)
	fmt.Printf("Vocabulary: %s\n", cfg.Engine.Vocabulary)

Testing with custom configuration:

	t.Setenv("WHATNOW_STORAGE_BACKEND", "memory")
	t.Setenv("WHATNOW_TOP_K", "10")

	cfg, err := config.Load()
	// Use cfg for testing

# Validation

Field-level constraints are declared as validate struct tags and checked by
the internal/validation package: the storage backend must be one of sqlite,
file, badger, memory; numeric hyperparameters must be non-negative. Rules
that tags cannot express follow in Go: non-memory backends require a storage
path, and a custom vocabulary must be free of blank and duplicate tags.

Validation runs as the last step of Load, so a successfully loaded Config is
always usable as-is.
*/
package config
