// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

// Package storage persists the engine's single model record.
//
// There is exactly one record per store. Save overwrites it in place and
// Load returns (nil, nil) while no record has ever been saved, so a fresh
// deployment starts from an unfitted model without any error branch.
//
// # Backends
//
//   - sqlite: a singleton row in an embedded SQLite database (modernc.org/sqlite)
//   - file: a gob+gzip snapshot with a SHA-256 checksum, replaced atomically
//   - badger: a single fixed key in a BadgerDB directory
//   - memory: process-local, for tests and development
//
// # Failure Taxonomy
//
// Backends classify failures into two error types: TransientError for
// conditions a retry may clear (I/O, locking, connections) and
// IntegrityError for stored bytes that cannot be trusted (checksum or
// decode failures). Callers branch with errors.As.
package storage
