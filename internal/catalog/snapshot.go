// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package catalog

import (
	"fmt"
	"os"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Snapshot is a parsed activity payload.
type Snapshot struct {
	// Activities is the surviving entries in payload order, with
	// sequential ids assigned.
	Activities []Activity

	// Model names the embedding model that produced the payload.
	Model string

	// Dimension is the embedding dimension the payload declares.
	Dimension int

	// Skipped counts entries dropped during parsing.
	Skipped int
}

// snapshotPayload mirrors the bulk payload written by the embedding tooling.
// Each embedding is a JSON-encoded float list inside a JSON string.
type snapshotPayload struct {
	Activities []struct {
		Name      string `json:"name"`
		Embedding string `json:"embedding"`
	} `json:"activities"`
	Count              int    `json:"count"`
	Model              string `json:"model"`
	EmbeddingDimension int    `json:"embedding_dimension"`
}

// LoadSnapshot reads and parses an activity payload file.
func LoadSnapshot(path string, logger zerolog.Logger) (*Snapshot, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog snapshot: %w", err)
	}
	return ParseSnapshot(data, logger)
}

// ParseSnapshot parses activity payload bytes. Entries that cannot be used
// are skipped with a warning; only an unreadable payload is an error.
func ParseSnapshot(data []byte, logger zerolog.Logger) (*Snapshot, error) {
	var payload snapshotPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse catalog snapshot: %w", err)
	}

	if payload.Count != 0 && payload.Count != len(payload.Activities) {
		logger.Warn().
			Int("declared", payload.Count).
			Int("actual", len(payload.Activities)).
			Msg("Catalog snapshot count does not match its activity list")
	}

	snap := &Snapshot{
		Activities: make([]Activity, 0, len(payload.Activities)),
		Model:      payload.Model,
		Dimension:  payload.EmbeddingDimension,
	}

	seen := make(map[string]bool, len(payload.Activities))

	for i, entry := range payload.Activities {
		if entry.Name == "" {
			logger.Warn().Int("index", i).Msg("Skipping catalog entry with blank name")
			snap.Skipped++
			continue
		}
		if seen[entry.Name] {
			logger.Warn().Str("name", entry.Name).Msg("Skipping duplicate catalog entry")
			snap.Skipped++
			continue
		}

		var embedding []float32
		if entry.Embedding != "" {
			if err := json.Unmarshal([]byte(entry.Embedding), &embedding); err != nil {
				logger.Warn().Str("name", entry.Name).Err(err).
					Msg("Skipping catalog entry with malformed embedding")
				snap.Skipped++
				continue
			}
			if payload.EmbeddingDimension > 0 && len(embedding) != payload.EmbeddingDimension {
				logger.Warn().Str("name", entry.Name).
					Int("dimension", len(embedding)).
					Int("declared", payload.EmbeddingDimension).
					Msg("Skipping catalog entry with wrong embedding dimension")
				snap.Skipped++
				continue
			}
		}

		seen[entry.Name] = true
		snap.Activities = append(snap.Activities, Activity{
			ID:        strconv.Itoa(len(snap.Activities) + 1),
			Name:      entry.Name,
			Embedding: embedding,
		})
	}

	logger.Info().
		Int("loaded", len(snap.Activities)).
		Int("skipped", snap.Skipped).
		Str("model", snap.Model).
		Msg("Catalog snapshot parsed")

	return snap, nil
}
