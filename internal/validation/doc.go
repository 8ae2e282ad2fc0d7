// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a
// thread-safe singleton validator instance with user-friendly error messages.
// The session protocol requests and the configuration loader both validate
// through it.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Error translation to human-readable messages
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	type StartRequest struct {
//	    Tags []string `validate:"required,min=3,max=8,dive,required"`
//	}
//
//	var req StartRequest
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    return nil, verr
//	}
//
// # Common Validation Tags
//
// Presence and bounds:
//   - required: Field must not be empty
//   - min=n / max=n: Length bounds for strings and slices, value bounds for
//     numbers
//   - dive: Apply the following tags to each slice element
//
// Numeric validations:
//   - gte=n, lte=n, gt=n, lt=n
//
// Enum validations:
//   - oneof=a b c: Must be one of the specified values
//
// # Error Types
//
// FieldError represents a single field validation failure:
//
//	type FieldError struct {
//	    Field()   string      // Struct field name
//	    Tag()     string      // Validation tag that failed
//	    Param()   string      // Tag parameter (e.g., "8" for max=8)
//	    Value()   interface{} // Actual value that failed
//	    Error()   string      // Human-readable message
//	}
//
// RequestValidationError aggregates multiple field errors:
//
//	type RequestValidationError struct {
//	    Errors() []FieldError
//	    Error()  string       // Combined message
//	}
//
// # Error Message Translation
//
// Human-readable messages are generated for common validation tags:
//
//	required   -> "Token is required"
//	min=3      -> "Tags must have at least 3 items"
//	max=8      -> "Tags must have at most 8 items"
//	gt=0       -> "Eta0 must be greater than 0"
//	oneof=a b  -> "Backend must be one of: a b"
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use:
//
//	validate := validation.GetValidator()  // Thread-safe
//	err := validation.ValidateStruct(&req) // Thread-safe
//
// # Performance
//
// The validator caches struct reflection information:
//   - First validation of a struct type: ~1ms (reflection + caching)
//   - Subsequent validations: ~10us (cached)
//   - Memory: ~500 bytes per cached struct type
//
// # See Also
//
//   - internal/bandit: Protocol requests validated through this package
//   - github.com/go-playground/validator/v10: Underlying library
package validation
