// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package storage

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Record is the persisted model state. It is a plain data carrier; the
// engine owns the semantics.
type Record struct {
	// Weights is the model coefficient vector, one entry per context slot.
	Weights []float64 `json:"weights"`

	// Bias is the model intercept.
	Bias float64 `json:"bias"`

	// Classes are the labels registered on the first update, {0, 1}.
	Classes []int `json:"classes"`

	// Fitted reports whether the model has seen at least one update.
	Fitted bool `json:"fitted"`

	// Updates counts training updates applied over the model's lifetime.
	Updates int64 `json:"updates"`

	// TrainedAt is when the model was last updated.
	TrainedAt time.Time `json:"trained_at"`
}

// Validate checks the record for internal consistency. A record that fails
// here must be treated the same way as undecodable bytes.
func (r *Record) Validate() error {
	if r.Fitted && len(r.Weights) == 0 {
		return fmt.Errorf("fitted record has no weights")
	}
	for i, w := range r.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("weights[%d] is not finite", i)
		}
	}
	if math.IsNaN(r.Bias) || math.IsInf(r.Bias, 0) {
		return fmt.Errorf("bias is not finite")
	}
	if r.Fitted {
		if len(r.Classes) != 2 || r.Classes[0] != 0 || r.Classes[1] != 1 {
			return fmt.Errorf("classes = %v, want [0 1]", r.Classes)
		}
	}
	return nil
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.Weights = append([]float64(nil), r.Weights...)
	out.Classes = append([]int(nil), r.Classes...)
	return &out
}

// Store persists the singleton model record.
type Store interface {
	// Load returns the stored record, or (nil, nil) when none exists.
	Load(ctx context.Context) (*Record, error)

	// Save overwrites the stored record in place.
	Save(ctx context.Context, rec *Record) error

	// Backend identifies the backend for logs and metrics.
	Backend() string

	// Close releases backend resources.
	Close() error
}

// TransientError reports a storage failure that a retry may clear.
type TransientError struct {
	// Op is the failing operation, e.g. "load" or "save".
	Op string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransientError) Unwrap() error {
	return e.Err
}

// IntegrityError reports stored bytes that cannot be trusted: checksum
// mismatches, undecodable payloads, or records that fail Validate.
type IntegrityError struct {
	// Op is the failing operation.
	Op string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IntegrityError) Unwrap() error {
	return e.Err
}
