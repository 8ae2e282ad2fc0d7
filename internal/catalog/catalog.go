// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an activity id is not in the catalog.
var ErrNotFound = errors.New("activity not found")

// Activity is one recommendable activity.
type Activity struct {
	// ID is the opaque catalog identifier.
	ID string `json:"id"`

	// Name is the human-readable activity name.
	Name string `json:"name"`

	// Embedding is the sentence embedding of the name, nil when the
	// source payload carried none. It is not used for recommendation,
	// only for similarity inspection.
	Embedding []float32 `json:"embedding,omitempty"`
}

// Provider is the read-only catalog interface the engine consumes.
type Provider interface {
	// All returns every activity. The returned slice is owned by the
	// caller.
	All(ctx context.Context) ([]Activity, error)

	// Get returns the activity with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (Activity, error)
}
