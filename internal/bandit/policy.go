// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package bandit

import (
	"math"
	"math/rand"
	"sync"
)

// Branch identifies which policy path produced a set of recommendations.
type Branch int

const (
	// BranchCold is uniform exploration before the model is fitted.
	BranchCold Branch = iota

	// BranchWarmWide is the full-size sample when the fitted model scores
	// the context positive.
	BranchWarmWide

	// BranchWarmNarrow is the half-size sample when the fitted model
	// scores the context non-positive.
	BranchWarmNarrow

	// BranchDegraded is the fallback when a fitted model fails to produce
	// a usable score.
	BranchDegraded
)

// String returns the branch name used in logs and metric labels.
func (b Branch) String() string {
	switch b {
	case BranchCold:
		return "cold_start"
	case BranchWarmWide:
		return "warm_wide"
	case BranchWarmNarrow:
		return "warm_narrow"
	case BranchDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Policy selects candidate activities for a session.
//
// The model contributes a single scalar, the score of the session context,
// and the policy only varies how many candidates it samples: the full top-k
// while exploring or when the score is positive, half of it when the score
// is non-positive. Every branch samples uniformly without replacement, so
// recommendations stay diverse even for a well-trained model.
type Policy struct {
	topK int

	// rng is deliberately seeded so runs are reproducible.
	rng *rand.Rand
	mu  sync.Mutex
}

// NewPolicy creates a policy that samples up to topK candidates using a
// deterministic source seeded with seed.
func NewPolicy(topK int, seed int64) *Policy {
	if topK <= 0 {
		topK = 100
	}

	return &Policy{
		topK: topK,
		rng:  rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic sampling needs a seeded non-crypto source
	}
}

// Select picks distinct positions in [0, n) for one session.
//
// fitted reports whether the model has been trained, score is the model's
// decision value for the session context and scoreOK whether that value was
// produced at all. Non-finite scores are treated the same as a scoring
// failure. Select never fails; an unusable score degrades to uniform
// exploration.
func (p *Policy) Select(n int, fitted bool, score float64, scoreOK bool) ([]int, Branch) {
	if n <= 0 {
		return nil, BranchCold
	}

	switch {
	case !fitted:
		return p.sample(n, min(p.topK, n)), BranchCold
	case !scoreOK, math.IsNaN(score), math.IsInf(score, 0):
		return p.sample(n, min(p.topK, n)), BranchDegraded
	case score > 0:
		return p.sample(n, min(p.topK, n)), BranchWarmWide
	default:
		return p.sample(n, min(p.topK/2, n)), BranchWarmNarrow
	}
}

// sample draws k distinct indices from [0, n) by a partial Fisher-Yates
// shuffle. The result preserves the random order of the draw.
func (p *Policy) sample(n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := 0; i < k; i++ {
		j := i + p.rng.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
