// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

// whatnow recommends activities for the caller's current context and learns
// from every choice it is told about.
package main

import (
	"os"

	"github.com/whatnowai/whatnow/cmd/whatnow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
