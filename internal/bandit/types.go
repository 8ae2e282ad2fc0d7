// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package bandit

import "time"

// StartRequest opens a recommendation session from the caller's current
// context tags.
type StartRequest struct {
	// Tags describe the caller's current context, 3 to 8 of them.
	// Tags outside the configured vocabulary are dropped during encoding.
	Tags []string `json:"tags" validate:"required,min=3,max=8,dive,required"`
}

// StartResponse carries the session token and the sampled candidates.
type StartResponse struct {
	// Token identifies the session in a later Train call. It is opaque
	// and never checked against any store.
	Token string `json:"token"`

	// Recommendations is a duplicate-free subset of the catalog. The
	// order carries no meaning.
	Recommendations []Recommendation `json:"recommendations"`

	// Branch names the policy path that produced the sample.
	Branch string `json:"branch"`
}

// Recommendation is one candidate activity returned to the caller.
type Recommendation struct {
	// ID is the catalog identifier of the activity.
	ID string `json:"id"`

	// Name is the human-readable activity name.
	Name string `json:"name"`
}

// TrainRequest reports which activity the caller chose for a session.
type TrainRequest struct {
	// Token is the session token returned by Start. Presence is required
	// but the value is never validated.
	Token string `json:"token" validate:"required"`

	// ActivityID is the catalog identifier of the chosen activity.
	ActivityID string `json:"activity_id" validate:"required"`

	// Tags is the context the choice was made in, usually the same tags
	// the session started with.
	Tags []string `json:"tags" validate:"required,min=1,dive,required"`
}

// TrainResponse confirms a completed training step.
type TrainResponse struct {
	// Trained echoes the activity the model was trained on.
	Trained Recommendation `json:"trained"`

	// Reward is the reward that was applied. Choosing an activity is the
	// only feedback signal, so this is always 1.
	Reward float64 `json:"reward"`

	// Fitted reports whether the model is fitted after the update.
	Fitted bool `json:"fitted"`
}

// Status describes the engine's model at a point in time.
type Status struct {
	// Fitted reports whether a trained model is available.
	Fitted bool `json:"fitted"`

	// Dim is the context dimension of the configured vocabulary.
	Dim int `json:"dimension"`

	// Vocabulary is the name of the configured vocabulary.
	Vocabulary string `json:"vocabulary"`

	// Backend identifies the persistence backend in use.
	Backend string `json:"backend"`

	// Updates is the number of training examples applied to the stored
	// model, zero when no model is stored.
	Updates int64 `json:"updates"`

	// LastTrained is the time of the most recent training step, zero when
	// no model is stored.
	LastTrained time.Time `json:"last_trained"`
}
