// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package catalog

import (
	"fmt"
	"sort"

	"github.com/viant/vec/search"
)

// Match pairs an activity with its cosine similarity to a query activity.
type Match struct {
	// Activity is the matched catalog entry.
	Activity Activity `json:"activity"`

	// Similarity is the cosine similarity in [-1, 1].
	Similarity float32 `json:"similarity"`
}

// MostSimilar returns the k activities most similar to the one named name,
// by cosine similarity of their embeddings. Activities without a usable
// embedding are ignored. This is an inspection helper; the recommendation
// path does not rank candidates.
func MostSimilar(activities []Activity, name string, k int) ([]Match, error) {
	var query *Activity
	for i := range activities {
		if activities[i].Name == name {
			query = &activities[i]
			break
		}
	}
	if query == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if len(query.Embedding) == 0 {
		return nil, fmt.Errorf("activity %q has no embedding", name)
	}

	queryVec := search.Float32s(query.Embedding)
	queryMag := queryVec.Magnitude()
	if queryMag == 0 {
		return nil, fmt.Errorf("activity %q has a zero-magnitude embedding", name)
	}

	matches := make([]Match, 0, len(activities))
	for i := range activities {
		candidate := &activities[i]
		if candidate.Name == query.Name {
			continue
		}
		if len(candidate.Embedding) != len(query.Embedding) {
			continue
		}

		mag := search.Float32s(candidate.Embedding).Magnitude()
		if mag == 0 {
			continue
		}

		distance := queryVec.CosineDistanceWithMagnitude(candidate.Embedding, queryMag, mag)
		matches = append(matches, Match{
			Activity:   *candidate,
			Similarity: 1 - distance,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}
