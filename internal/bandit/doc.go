// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

// Package bandit implements a contextual-bandit recommendation engine for
// activities.
//
// # Architecture
//
// The engine combines four small components behind a two-call protocol:
//
//   - Vocabulary: a fixed tag vocabulary and a pure one-hot context encoder
//   - Classifier: an online binary logistic model updated one example at a
//     time with log-loss SGD and an adaptive learning rate
//   - Policy: candidate selection that widens or narrows the returned set
//     based on the model's decision score
//   - Engine: the Start/Train session protocol over an injected catalog
//     provider and model store
//
// # Design Principles
//
//   - Deterministic: same seed and same call sequence produce identical
//     recommendations and identical model parameters
//   - Injected state: the engine holds no hidden globals; the model lives in
//     the store and is loaded per call
//   - Auditable: operations are logged with structured fields
//   - Observable: Prometheus metrics cover sessions, training, and storage
//
// # Usage
//
//	cfg := bandit.DefaultConfig()
//	engine, err := bandit.NewEngine(cfg, store, provider, logger)
//	if err != nil {
//	    return err
//	}
//
//	start, err := engine.Start(ctx, bandit.StartRequest{
//	    Tags: []string{"sunny", "morning", "chill"},
//	})
//
//	_, err = engine.Train(ctx, bandit.TrainRequest{
//	    Token:      start.Token,
//	    ActivityID: start.Recommendations[0].ID,
//	    Tags:       []string{"sunny", "morning", "chill"},
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Train serializes the whole
// load-update-save cycle behind an exclusive lock; Start runs concurrently
// against whatever model snapshot the store returns.
package bandit
