// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

// Package catalog provides the activity catalog the recommendation engine
// draws candidates from.
//
// # Architecture
//
// The package has three parts:
//   - Provider: the read-only lookup interface the engine consumes
//   - Snapshot: a parser for the bulk activity payload produced by the
//     embedding tooling (activity names plus sentence embeddings)
//   - MemoryCatalog: an in-memory Provider built from a snapshot or from
//     literal activities in tests
//
// Activities are read-only once loaded. There is no create/update/delete
// surface; refreshing the catalog means loading a new snapshot and building
// a new provider.
//
// # Snapshot Format
//
// A snapshot is a JSON document of the form
//
//	{
//	  "activities": [{"name": "...", "embedding": "[0.1, ...]"}, ...],
//	  "count": 123,
//	  "model": "all-MiniLM-L6-v2",
//	  "embedding_dimension": 384
//	}
//
// where each embedding is itself a JSON-encoded float list. Entries with a
// blank name, a malformed embedding, a dimension that contradicts the
// declared one or a name already seen are skipped with a logged warning;
// surviving entries get sequential ids in payload order.
//
// # Thread Safety
//
// MemoryCatalog is immutable after construction and safe for concurrent use.
package catalog
