// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package cmd

import (
	"github.com/spf13/cobra"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Inspect the trained model",
}

var modelStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show model fit state, vocabulary and storage backend",
	RunE:  runModelStatus,
}

func init() {
	modelCmd.AddCommand(modelStatusCmd)
}

func runModelStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	cat, err := openCatalog(cfg)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg, store, cat)
	if err != nil {
		return err
	}

	status, err := engine.Status(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(status)
}
