// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package config

import (
	"fmt"
	"strings"

	"github.com/whatnowai/whatnow/internal/validation"
)

// Validate checks that required configuration is present and valid.
//
// Field-level constraints (enum values, value ranges) are declared as
// validate struct tags and checked first. Cross-field rules that tags
// cannot express follow per section.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %w", verr)
	}

	if err := c.validateEngine(); err != nil {
		return err
	}

	return c.validateStorage()
}

// validateEngine validates the custom vocabulary, which must be usable as an
// encoding: no blank tags, no duplicates.
func (c *Config) validateEngine() error {
	seen := make(map[string]struct{}, len(c.Engine.CustomTags))
	for i, tag := range c.Engine.CustomTags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			return fmt.Errorf("WHATNOW_CUSTOM_TAGS entry %d is blank", i)
		}
		if _, dup := seen[trimmed]; dup {
			return fmt.Errorf("WHATNOW_CUSTOM_TAGS contains duplicate tag %q", trimmed)
		}
		seen[trimmed] = struct{}{}
	}
	return nil
}

// validateStorage validates the persistence location. Every backend except
// memory writes to disk and needs a path.
func (c *Config) validateStorage() error {
	if c.Storage.Backend == "memory" {
		return nil
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("WHATNOW_STORAGE_PATH is required for the %s backend", c.Storage.Backend)
	}
	return nil
}
