// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package bandit

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/whatnowai/whatnow/internal/bandit/storage"
)

// LearnerConfig contains configuration for the online classifier.
type LearnerConfig struct {
	// Eta0 is the initial learning rate.
	// Typical range: 0.001-0.1.
	Eta0 float64

	// Alpha is the L2 regularization strength applied to the weights.
	// The intercept is not regularized.
	Alpha float64

	// Tol is the minimum log-loss improvement that counts as progress
	// for the adaptive learning-rate schedule.
	Tol float64

	// Stall is the number of consecutive non-improving updates after
	// which the learning rate is reduced.
	Stall int
}

// DefaultLearnerConfig returns default classifier configuration.
func DefaultLearnerConfig() LearnerConfig {
	return LearnerConfig{
		Eta0:  0.01,
		Alpha: 0.0001,
		Tol:   0.001,
		Stall: 5,
	}
}

const (
	// etaDecayFactor divides the learning rate when progress stalls.
	etaDecayFactor = 5.0

	// lossClampEps bounds predicted probabilities away from 0 and 1 so
	// the log loss stays finite.
	lossClampEps = 1e-15
)

// Classifier is an online logistic regression model trained by stochastic
// gradient descent, one example per update:
//
//	p = sigmoid(w . x + b)
//	w <- w - eta * (alpha * w + (p - y) * x)
//	b <- b - eta * (p - y)
//
// where y is 1 for positive reward and 0 otherwise. The log loss of each
// example is measured against the parameters before the step; whenever
// Stall consecutive updates fail to improve the best observed loss by at
// least Tol, eta is divided by 5.
//
// A new classifier starts unfitted with zero weights. The first update
// registers the class labels {0, 1} and marks the model fitted; the model
// never returns to the unfitted state.
type Classifier struct {
	cfg LearnerConfig
	dim int

	weights []float64
	bias    float64
	classes []int
	fitted  bool

	// Adaptive schedule state. Rebuilt from scratch on restore, only the
	// fitted parameters above are persisted.
	eta      float64
	bestLoss float64
	stalled  int

	updates   int64
	trainedAt time.Time

	mu sync.RWMutex
}

// NewClassifier creates an unfitted classifier for dim-dimensional contexts.
func NewClassifier(dim int, cfg LearnerConfig) *Classifier {
	if cfg.Eta0 <= 0 {
		cfg.Eta0 = 0.01
	}
	if cfg.Alpha < 0 {
		cfg.Alpha = 0.0001
	}
	if cfg.Tol <= 0 {
		cfg.Tol = 0.001
	}
	if cfg.Stall <= 0 {
		cfg.Stall = 5
	}

	return &Classifier{
		cfg:      cfg,
		dim:      dim,
		weights:  make([]float64, dim),
		eta:      cfg.Eta0,
		bestLoss: math.Inf(1),
	}
}

// RestoreClassifier rebuilds a classifier from a stored record. A nil
// record yields a fresh unfitted classifier. A fitted record whose weight
// vector does not match dim is rejected; the caller decides whether to
// discard the stored model.
func RestoreClassifier(rec *storage.Record, dim int, cfg LearnerConfig) (*Classifier, error) {
	c := NewClassifier(dim, cfg)
	if rec == nil {
		return c, nil
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if !rec.Fitted {
		return c, nil
	}
	if len(rec.Weights) != dim {
		return nil, fmt.Errorf("stored model has dimension %d, vocabulary has %d", len(rec.Weights), dim)
	}

	copy(c.weights, rec.Weights)
	c.bias = rec.Bias
	c.classes = append([]int(nil), rec.Classes...)
	c.fitted = true
	c.updates = rec.Updates
	c.trainedAt = rec.TrainedAt
	return c, nil
}

// Fitted reports whether the model has seen at least one training example.
func (c *Classifier) Fitted() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fitted
}

// Dim returns the context dimension the model was built for.
func (c *Classifier) Dim() int {
	return c.dim
}

// Updates returns the number of training examples applied so far.
func (c *Classifier) Updates() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updates
}

// LastTrained returns the time of the most recent update, zero if none.
func (c *Classifier) LastTrained() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trainedAt
}

// LearningRate returns the current learning rate of the adaptive schedule.
func (c *Classifier) LearningRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.eta
}

// Score returns the raw decision value w . x + b for a context vector.
// It returns ErrNotFitted before the first update.
func (c *Classifier) Score(ctxVec []float64) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.fitted {
		return 0, ErrNotFitted
	}
	if len(ctxVec) != c.dim {
		return 0, fmt.Errorf("context has dimension %d, model has %d", len(ctxVec), c.dim)
	}

	return dot(c.weights, ctxVec) + c.bias, nil
}

// Update applies one SGD step for a context vector and its observed reward.
// Any positive reward is the positive class. The first successful update
// marks the model fitted. A dimension mismatch leaves the model unchanged.
func (c *Classifier) Update(ctxVec []float64, reward float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(ctxVec) != c.dim {
		return newValidationError("context has dimension %d, model has %d", len(ctxVec), c.dim)
	}

	y := 0.0
	if reward > 0 {
		y = 1.0
	}

	p := sigmoid(dot(c.weights, ctxVec) + c.bias)
	loss := logLoss(p, y)

	// w = w - eta * (alpha * w + (p - y) * x)
	grad := p - y
	for i := range c.weights {
		c.weights[i] -= c.eta * (c.cfg.Alpha*c.weights[i] + grad*ctxVec[i])
	}

	// b = b - eta * (p - y)
	c.bias -= c.eta * grad

	c.advanceSchedule(loss)

	if !c.fitted {
		c.classes = []int{0, 1}
		c.fitted = true
	}
	c.updates++
	c.trainedAt = time.Now().UTC()
	return nil
}

// advanceSchedule feeds one pre-update loss observation to the adaptive
// learning-rate schedule.
func (c *Classifier) advanceSchedule(loss float64) {
	if loss > c.bestLoss-c.cfg.Tol {
		c.stalled++
	} else {
		c.stalled = 0
	}
	if loss < c.bestLoss {
		c.bestLoss = loss
	}
	if c.stalled >= c.cfg.Stall {
		c.eta /= etaDecayFactor
		c.stalled = 0
	}
}

// Snapshot returns the persistable state of the model, nil while unfitted.
func (c *Classifier) Snapshot() *storage.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.fitted {
		return nil
	}

	return &storage.Record{
		Weights:   append([]float64(nil), c.weights...),
		Bias:      c.bias,
		Classes:   append([]int(nil), c.classes...),
		Fitted:    true,
		Updates:   c.updates,
		TrainedAt: c.trainedAt,
	}
}

// dot returns the inner product of two equal-length vectors.
func dot(w, x []float64) float64 {
	var sum float64
	for i := range w {
		sum += w[i] * x[i]
	}
	return sum
}

// sigmoid maps a raw score to a probability in (0, 1).
func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// logLoss returns the binary cross entropy of a predicted probability
// against a 0/1 label, with p clamped away from the poles.
func logLoss(p, y float64) float64 {
	p = math.Min(math.Max(p, lossClampEps), 1-lossClampEps)
	if y == 1 {
		return -math.Log(p)
	}
	return -math.Log(1 - p)
}
