// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package bandit

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/whatnowai/whatnow/internal/bandit/storage"
)

func TestNewClassifier_ConfigDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  LearnerConfig
		want LearnerConfig
	}{
		{
			name: "zero config gets defaults",
			cfg:  LearnerConfig{},
			want: DefaultLearnerConfig(),
		},
		{
			name: "negative values get defaults",
			cfg:  LearnerConfig{Eta0: -1, Alpha: -1, Tol: -1, Stall: -1},
			want: DefaultLearnerConfig(),
		},
		{
			name: "explicit values kept",
			cfg:  LearnerConfig{Eta0: 0.1, Alpha: 0.001, Tol: 0.01, Stall: 3},
			want: LearnerConfig{Eta0: 0.1, Alpha: 0.001, Tol: 0.01, Stall: 3},
		},
		{
			name: "zero alpha kept",
			cfg:  LearnerConfig{Eta0: 0.1, Alpha: 0, Tol: 0.01, Stall: 3},
			want: LearnerConfig{Eta0: 0.1, Alpha: 0, Tol: 0.01, Stall: 3},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewClassifier(4, tt.cfg)
			if c.cfg != tt.want {
				t.Errorf("config = %+v, want %+v", c.cfg, tt.want)
			}
			if c.Fitted() {
				t.Error("new classifier should be unfitted")
			}
			if c.Dim() != 4 {
				t.Errorf("Dim() = %d, want 4", c.Dim())
			}
			if c.LearningRate() != tt.want.Eta0 {
				t.Errorf("LearningRate() = %v, want %v", c.LearningRate(), tt.want.Eta0)
			}
		})
	}
}

func TestClassifier_ScoreUnfitted(t *testing.T) {
	t.Parallel()

	c := NewClassifier(3, DefaultLearnerConfig())

	_, err := c.Score([]float64{1, 0, 1})
	if !errors.Is(err, ErrNotFitted) {
		t.Errorf("Score() on unfitted model error = %v, want ErrNotFitted", err)
	}
}

func TestClassifier_FirstUpdateFits(t *testing.T) {
	t.Parallel()

	c := NewClassifier(3, DefaultLearnerConfig())

	if err := c.Update([]float64{1, 0, 1}, 1.0); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !c.Fitted() {
		t.Error("Fitted() = false after first update")
	}
	if c.Updates() != 1 {
		t.Errorf("Updates() = %d, want 1", c.Updates())
	}
	if c.LastTrained().IsZero() {
		t.Error("LastTrained() should be set after first update")
	}

	snap := c.Snapshot()
	if snap == nil {
		t.Fatal("Snapshot() = nil after first update")
	}
	if len(snap.Classes) != 2 || snap.Classes[0] != 0 || snap.Classes[1] != 1 {
		t.Errorf("Classes = %v, want [0 1]", snap.Classes)
	}
}

func TestClassifier_UpdateDimensionMismatch(t *testing.T) {
	t.Parallel()

	c := NewClassifier(3, DefaultLearnerConfig())

	err := c.Update([]float64{1, 0}, 1.0)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Update() error = %v, want *ValidationError", err)
	}

	// The failed update must not touch the model.
	if c.Fitted() {
		t.Error("Fitted() = true after rejected update")
	}
	if c.Updates() != 0 {
		t.Errorf("Updates() = %d, want 0", c.Updates())
	}
}

func TestClassifier_UpdateStep(t *testing.T) {
	t.Parallel()

	const eps = 1e-12

	t.Run("positive reward pulls score up", func(t *testing.T) {
		t.Parallel()

		c := NewClassifier(3, DefaultLearnerConfig())
		x := []float64{1, 0, 1}

		if err := c.Update(x, 1.0); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		// From zero weights p = 0.5, so the step is eta * 0.5 = 0.005 on
		// each active feature and on the bias.
		if math.Abs(c.weights[0]-0.005) > eps {
			t.Errorf("weights[0] = %v, want 0.005", c.weights[0])
		}
		if c.weights[1] != 0 {
			t.Errorf("weights[1] = %v, want 0 for inactive feature", c.weights[1])
		}
		if math.Abs(c.weights[2]-0.005) > eps {
			t.Errorf("weights[2] = %v, want 0.005", c.weights[2])
		}
		if math.Abs(c.bias-0.005) > eps {
			t.Errorf("bias = %v, want 0.005", c.bias)
		}

		score, err := c.Score(x)
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		if math.Abs(score-0.015) > eps {
			t.Errorf("Score() = %v, want 0.015", score)
		}
	})

	t.Run("zero reward pulls score down", func(t *testing.T) {
		t.Parallel()

		c := NewClassifier(3, DefaultLearnerConfig())
		x := []float64{1, 0, 1}

		if err := c.Update(x, 0.0); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		score, err := c.Score(x)
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		if math.Abs(score+0.015) > eps {
			t.Errorf("Score() = %v, want -0.015", score)
		}
	})
}

func TestClassifier_RepeatedPositiveTrainingConverges(t *testing.T) {
	t.Parallel()

	c := NewClassifier(3, DefaultLearnerConfig())
	x := []float64{1, 1, 0}

	var prev float64
	for i := 0; i < 50; i++ {
		if err := c.Update(x, 1.0); err != nil {
			t.Fatalf("Update() #%d error = %v", i, err)
		}
		score, err := c.Score(x)
		if err != nil {
			t.Fatalf("Score() #%d error = %v", i, err)
		}
		if i > 0 && score <= prev {
			t.Fatalf("Score() after update %d = %v, want strictly above %v", i+1, score, prev)
		}
		prev = score
	}

	if prev <= 0 {
		t.Errorf("final score = %v, want positive after positive-only training", prev)
	}
}

func TestClassifier_Determinism(t *testing.T) {
	t.Parallel()

	examples := []struct {
		x      []float64
		reward float64
	}{
		{[]float64{1, 0, 0, 1}, 1.0},
		{[]float64{0, 1, 1, 0}, 0.0},
		{[]float64{1, 1, 0, 0}, 1.0},
		{[]float64{0, 0, 1, 1}, 1.0},
		{[]float64{1, 0, 1, 0}, 0.0},
	}

	a := NewClassifier(4, DefaultLearnerConfig())
	b := NewClassifier(4, DefaultLearnerConfig())

	for _, ex := range examples {
		if err := a.Update(ex.x, ex.reward); err != nil {
			t.Fatalf("Update(a) error = %v", err)
		}
		if err := b.Update(ex.x, ex.reward); err != nil {
			t.Fatalf("Update(b) error = %v", err)
		}
	}

	for i := range a.weights {
		if a.weights[i] != b.weights[i] {
			t.Errorf("weights[%d] diverged: %v vs %v", i, a.weights[i], b.weights[i])
		}
	}
	if a.bias != b.bias {
		t.Errorf("bias diverged: %v vs %v", a.bias, b.bias)
	}
	if a.LearningRate() != b.LearningRate() {
		t.Errorf("learning rate diverged: %v vs %v", a.LearningRate(), b.LearningRate())
	}
}

func TestClassifier_AdaptiveDecay(t *testing.T) {
	t.Parallel()

	c := NewClassifier(3, DefaultLearnerConfig())
	x := []float64{1, 0, 1}

	// Alternating labels on the same context keep the loss pinned near
	// log(2), so the schedule stalls and drops eta on the sixth update.
	rewards := []float64{1, 0, 1, 0, 1, 0}

	for i, r := range rewards[:5] {
		if err := c.Update(x, r); err != nil {
			t.Fatalf("Update() #%d error = %v", i, err)
		}
	}
	if got := c.LearningRate(); got != 0.01 {
		t.Fatalf("LearningRate() after 5 updates = %v, want 0.01", got)
	}

	if err := c.Update(x, rewards[5]); err != nil {
		t.Fatalf("Update() #6 error = %v", err)
	}
	if got, want := c.LearningRate(), 0.01/etaDecayFactor; got != want {
		t.Errorf("LearningRate() after 6 updates = %v, want %v", got, want)
	}
}

func TestClassifier_SnapshotUnfitted(t *testing.T) {
	t.Parallel()

	c := NewClassifier(3, DefaultLearnerConfig())
	if snap := c.Snapshot(); snap != nil {
		t.Errorf("Snapshot() on unfitted model = %+v, want nil", snap)
	}
}

func TestClassifier_SnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	c := NewClassifier(3, DefaultLearnerConfig())
	x := []float64{1, 0, 1}
	for _, r := range []float64{1, 0, 1, 0, 1, 0, 1} {
		if err := c.Update(x, r); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	}

	snap := c.Snapshot()
	if snap == nil {
		t.Fatal("Snapshot() = nil")
	}

	restored, err := RestoreClassifier(snap, 3, DefaultLearnerConfig())
	if err != nil {
		t.Fatalf("RestoreClassifier() error = %v", err)
	}

	if !restored.Fitted() {
		t.Error("restored model should be fitted")
	}
	if restored.Updates() != c.Updates() {
		t.Errorf("Updates() = %d, want %d", restored.Updates(), c.Updates())
	}
	if !restored.LastTrained().Equal(c.LastTrained()) {
		t.Errorf("LastTrained() = %v, want %v", restored.LastTrained(), c.LastTrained())
	}

	want, err := c.Score(x)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	got, err := restored.Score(x)
	if err != nil {
		t.Fatalf("Score() on restored model error = %v", err)
	}
	if got != want {
		t.Errorf("restored Score() = %v, want %v", got, want)
	}

	// The adaptive schedule is not persisted; a restored model starts at
	// Eta0 even when the source had decayed.
	if c.LearningRate() >= 0.01 {
		t.Fatalf("source LearningRate() = %v, expected decay before restore", c.LearningRate())
	}
	if restored.LearningRate() != 0.01 {
		t.Errorf("restored LearningRate() = %v, want 0.01", restored.LearningRate())
	}
}

func TestClassifier_SnapshotIsDetached(t *testing.T) {
	t.Parallel()

	c := NewClassifier(2, DefaultLearnerConfig())
	if err := c.Update([]float64{1, 1}, 1.0); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	snap := c.Snapshot()
	snap.Weights[0] = 99.0

	if c.weights[0] == 99.0 {
		t.Error("mutating the snapshot changed the model weights")
	}
}

func TestRestoreClassifier(t *testing.T) {
	t.Parallel()

	trained := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rec     *storage.Record
		dim     int
		wantErr bool
		verify  func(t *testing.T, c *Classifier)
	}{
		{
			name: "nil record gives fresh model",
			rec:  nil,
			dim:  3,
			verify: func(t *testing.T, c *Classifier) {
				if c.Fitted() {
					t.Error("Fitted() = true, want false")
				}
				if c.Dim() != 3 {
					t.Errorf("Dim() = %d, want 3", c.Dim())
				}
			},
		},
		{
			name: "unfitted record gives fresh model",
			rec:  &storage.Record{},
			dim:  3,
			verify: func(t *testing.T, c *Classifier) {
				if c.Fitted() {
					t.Error("Fitted() = true, want false")
				}
			},
		},
		{
			name: "fitted record restores parameters",
			rec: &storage.Record{
				Weights: []float64{0.5, -0.5, 0.25}, Bias: 0.125,
				Classes: []int{0, 1}, Fitted: true, Updates: 9, TrainedAt: trained,
			},
			dim: 3,
			verify: func(t *testing.T, c *Classifier) {
				score, err := c.Score([]float64{1, 1, 1})
				if err != nil {
					t.Fatalf("Score() error = %v", err)
				}
				if want := 0.5 - 0.5 + 0.25 + 0.125; score != want {
					t.Errorf("Score() = %v, want %v", score, want)
				}
				if c.Updates() != 9 {
					t.Errorf("Updates() = %d, want 9", c.Updates())
				}
			},
		},
		{
			name: "dimension mismatch rejected",
			rec: &storage.Record{
				Weights: []float64{0.5, -0.5}, Classes: []int{0, 1}, Fitted: true,
				TrainedAt: trained,
			},
			dim:     3,
			wantErr: true,
		},
		{
			name: "invalid record rejected",
			rec: &storage.Record{
				Weights: []float64{math.NaN(), 0, 0}, Classes: []int{0, 1}, Fitted: true,
				TrainedAt: trained,
			},
			dim:     3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := RestoreClassifier(tt.rec, tt.dim, DefaultLearnerConfig())
			if (err != nil) != tt.wantErr {
				t.Fatalf("RestoreClassifier() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.verify != nil {
				tt.verify(t, c)
			}
		})
	}
}

func TestRestoreClassifier_DoesNotAliasRecord(t *testing.T) {
	t.Parallel()

	rec := &storage.Record{
		Weights: []float64{0.5, 0.5}, Classes: []int{0, 1}, Fitted: true,
		TrainedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	c, err := RestoreClassifier(rec, 2, DefaultLearnerConfig())
	if err != nil {
		t.Fatalf("RestoreClassifier() error = %v", err)
	}

	rec.Weights[0] = 99.0
	if c.weights[0] == 99.0 {
		t.Error("restored model aliases the record weights")
	}
}
