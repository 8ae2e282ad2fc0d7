// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package bandit

import (
	"errors"
	"fmt"
)

// ErrNotFitted is returned when a score is requested from a model that has
// never been trained.
var ErrNotFitted = errors.New("model not fitted")

// ValidationError reports request input or a context vector that failed
// validation. The engine state is unchanged when one is returned.
type ValidationError struct {
	// Msg describes what failed.
	Msg string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// newValidationError builds a ValidationError with a formatted message.
func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced activity that does not exist, or a
// catalog with no candidates at all.
type NotFoundError struct {
	// Resource names what was missing: "activity" or "catalog".
	Resource string

	// ID is the requested identifier, when one was given.
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s is empty", e.Resource)
}
