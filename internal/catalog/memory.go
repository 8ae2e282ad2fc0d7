// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package catalog

import (
	"context"
	"fmt"
)

// MemoryCatalog is an immutable in-memory Provider. It preserves the order
// activities were loaded in.
type MemoryCatalog struct {
	activities []Activity
	byID       map[string]int
}

// NewMemoryCatalog builds a catalog from the given activities. Ids must be
// unique and non-empty.
func NewMemoryCatalog(activities []Activity) (*MemoryCatalog, error) {
	c := &MemoryCatalog{
		activities: make([]Activity, len(activities)),
		byID:       make(map[string]int, len(activities)),
	}
	copy(c.activities, activities)

	for i, a := range c.activities {
		if a.ID == "" {
			return nil, fmt.Errorf("activity %q has no id", a.Name)
		}
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate activity id %q", a.ID)
		}
		c.byID[a.ID] = i
	}
	return c, nil
}

// All returns a copy of every activity in load order.
func (c *MemoryCatalog) All(_ context.Context) ([]Activity, error) {
	out := make([]Activity, len(c.activities))
	copy(out, c.activities)
	return out, nil
}

// Get returns the activity with the given id.
func (c *MemoryCatalog) Get(_ context.Context, id string) (Activity, error) {
	i, ok := c.byID[id]
	if !ok {
		return Activity{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.activities[i], nil
}

// Len returns the number of activities.
func (c *MemoryCatalog) Len() int {
	return len(c.activities)
}

var _ Provider = (*MemoryCatalog)(nil)
