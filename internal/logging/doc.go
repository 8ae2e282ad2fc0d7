// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

// Package logging provides centralized zerolog-based structured logging for WhatNow.
//
// This package implements a unified logging layer using zerolog, providing
// zero-allocation structured JSON logging for production and human-readable
// console output for interactive CLI use.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output format for production (machine-parseable)
//   - Console output format for interactive use (human-readable)
//   - A process-wide logger configured once at startup
//   - Component loggers carrying default fields
//
// # Quick Start
//
//	import "github.com/whatnowai/whatnow/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	    Caller: false,
//	})
//
//	// Log messages with structured fields
//	logging.Info().Str("backend", "sqlite").Msg("Model store opened")
//	logging.Error().Err(err).Str("activity", id).Msg("Training failed")
//
// # Configuration
//
// Logging is configured from the application configuration (see
// internal/config), which resolves values from the config file and
// WHATNOW_LOG_* environment variables before calling Init:
//
//	logging.Init(logging.Config{
//	    Level:     "debug",    // trace, debug, info, warn, error, fatal
//	    Format:    "console",  // json or console
//	    Caller:    true,       // Include caller info
//	    Timestamp: true,       // Include timestamps
//	    Output:    os.Stderr,  // Output writer
//	})
//
// # Log Levels
//
// Supported log levels (from most to least verbose):
//
//	trace  - Very detailed diagnostic information
//	debug  - Detailed diagnostic information
//	info   - General operational information (default)
//	warn   - Warning conditions that should be addressed
//	error  - Error conditions requiring attention
//	fatal  - Fatal errors that terminate the program
//
// # Structured Logging Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Use structured fields instead of string formatting:
//
//	// Good - structured, searchable, efficient
//	logging.Info().
//	    Str("branch", branch).
//	    Int("recommendations", n).
//	    Dur("elapsed", duration).
//	    Msg("Session started")
//
//	// Avoid - unstructured, harder to parse
//	logging.Info().Msgf("Started %s session with %d recommendations in %v", branch, n, duration)
//
// # Component Loggers
//
// Create component-specific loggers with default fields:
//
//	catalogLogger := logging.With().Str("component", "catalog").Logger()
//	catalogLogger.Info().Msg("Snapshot loaded")
//	catalogLogger.Error().Err(err).Msg("Snapshot reload failed")
//
// The engine, catalog and storage constructors accept a zerolog.Logger, so
// callers stay in control of where their output goes. Tests typically pass
// zerolog.Nop().
//
// # Output Formats
//
// JSON Format (Production):
//
//	{"level":"info","time":"2026-03-01T10:30:00Z","message":"Session started","branch":"cold_start"}
//
// Console Format (Interactive):
//
//	10:30:00 INF Session started branch=cold_start
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
//
// # Testing
//
// Create test loggers that capture output:
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
//	output := buf.String()
//
// # See Also
//
//   - github.com/rs/zerolog: Underlying logging library
//   - internal/config: Resolves the logging configuration passed to Init
package logging
