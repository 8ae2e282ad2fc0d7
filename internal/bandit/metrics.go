// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package bandit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Session Metrics

	// SessionsStartedTotal counts started sessions by policy branch.
	SessionsStartedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_sessions_started_total",
			Help: "Total number of recommendation sessions started",
		},
		[]string{"branch"}, // "cold_start", "warm_wide", "warm_narrow", "degraded"
	)

	// RecommendationsReturnedTotal counts individual recommendations handed out.
	RecommendationsReturnedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bandit_recommendations_returned_total",
			Help: "Total number of recommendations returned across all sessions",
		},
	)

	// UnknownTagsTotal counts context tags that were outside the vocabulary.
	UnknownTagsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bandit_unknown_tags_total",
			Help: "Total number of context tags dropped as unknown to the vocabulary",
		},
	)

	// Training Metrics

	// TrainingTotal counts training calls by outcome.
	TrainingTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_training_total",
			Help: "Total number of training calls",
		},
		[]string{"result"}, // "success", "validation_error", "not_found", "catalog_error", "storage_error"
	)

	// TrainingDuration tracks the latency of complete training calls.
	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "bandit_training_duration_seconds",
			Help: "Duration of training calls in seconds",
			// Buckets sized for a load, one SGD step and a save
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	// Model Metrics

	// ModelSavesTotal counts model persistence writes by backend and result.
	ModelSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_model_saves_total",
			Help: "Total number of model save attempts",
		},
		[]string{"backend", "result"}, // result: "success", "failure"
	)

	// ModelLoadsTotal counts model persistence reads by backend and result.
	ModelLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_model_loads_total",
			Help: "Total number of model load attempts",
		},
		[]string{"backend", "result"}, // result: "success", "absent", "transient_error", "integrity_error"
	)

	// ModelFitted reports whether the stored model is fitted (1) or not (0).
	ModelFitted = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bandit_model_fitted",
			Help: "Whether the model has been fitted (1) or is still cold (0)",
		},
	)

	// ModelLearningRate tracks the current adaptive learning rate.
	ModelLearningRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bandit_model_learning_rate",
			Help: "Current learning rate of the adaptive SGD schedule",
		},
	)

	// ModelUpdates tracks the number of training examples in the stored model.
	ModelUpdates = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bandit_model_updates",
			Help: "Number of training examples applied to the stored model",
		},
	)
)

// RecordSessionStarted records a started session and the number of
// recommendations it returned.
func RecordSessionStarted(branch Branch, recommendations int) {
	SessionsStartedTotal.WithLabelValues(branch.String()).Inc()
	RecommendationsReturnedTotal.Add(float64(recommendations))
}

// RecordUnknownTags records context tags dropped during encoding.
func RecordUnknownTags(count int) {
	if count > 0 {
		UnknownTagsTotal.Add(float64(count))
	}
}

// RecordTraining records the outcome and duration of a training call.
func RecordTraining(result string, duration time.Duration) {
	TrainingTotal.WithLabelValues(result).Inc()
	TrainingDuration.Observe(duration.Seconds())
}

// RecordModelSave records a model save attempt.
func RecordModelSave(backend string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	ModelSavesTotal.WithLabelValues(backend, result).Inc()
}

// RecordModelLoad records a model load attempt.
// result is one of "success", "absent", "transient_error", "integrity_error".
func RecordModelLoad(backend, result string) {
	ModelLoadsTotal.WithLabelValues(backend, result).Inc()
}

// UpdateModelGauges refreshes the fitted, learning-rate and update-count
// gauges from a classifier.
func UpdateModelGauges(c *Classifier) {
	fitted := 0.0
	if c.Fitted() {
		fitted = 1.0
	}
	ModelFitted.Set(fitted)
	ModelLearningRate.Set(c.LearningRate())
	ModelUpdates.Set(float64(c.Updates()))
}
