// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package bandit

// Config contains configuration for the recommendation engine.
type Config struct {
	// Vocabulary names a builtin vocabulary.
	// Default: "v2". Ignored when CustomTags is set.
	Vocabulary string

	// CustomTags is an ordered tag list defining a custom vocabulary.
	// When non-empty it takes precedence over Vocabulary. The position of
	// each tag is its feature index, so the order must stay stable across
	// deployments or stored models become unusable.
	CustomTags []string

	// TopK is the maximum number of recommendations per session.
	// Default: 100.
	TopK int

	// Seed seeds the policy's sampling source. Runs with the same seed
	// and inputs reproduce the same samples.
	// Default: 42.
	Seed int64

	// Learner configures the online classifier.
	Learner LearnerConfig
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Vocabulary: DefaultVocabulary,
		TopK:       100,
		Seed:       42,
		Learner:    DefaultLearnerConfig(),
	}
}

// withDefaults fills unset fields. Learner zero values are handled by
// NewClassifier.
func (c Config) withDefaults() Config {
	if c.Vocabulary == "" {
		c.Vocabulary = DefaultVocabulary
	}
	if c.TopK <= 0 {
		c.TopK = 100
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	return c
}

// buildVocabulary resolves the configured vocabulary.
func (c Config) buildVocabulary() (*Vocabulary, error) {
	if len(c.CustomTags) > 0 {
		return NewVocabulary("custom", c.CustomTags)
	}
	return Builtin(c.Vocabulary)
}
