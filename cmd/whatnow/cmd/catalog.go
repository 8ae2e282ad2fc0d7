// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/whatnowai/whatnow/internal/catalog"
	"github.com/whatnowai/whatnow/internal/logging"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the activity catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all activities in the catalog",
	RunE:  runCatalogList,
}

var similarTop int

var catalogSimilarCmd = &cobra.Command{
	Use:   "similar <name>",
	Short: "Find the activities most similar to the named one",
	Long: `Ranks the catalog by cosine similarity of activity embeddings against
the named activity. Activities without embeddings are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogSimilar,
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check <payload>",
	Short: "Validate an activity snapshot payload",
	Long: `Parses the given snapshot payload the way the engine would at startup
and reports how many activities survive and how many entries are skipped
as malformed.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogCheck,
}

func init() {
	catalogSimilarCmd.Flags().IntVar(&similarTop, "top", 5, "Number of matches to show (0 = all)")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSimilarCmd)
	catalogCmd.AddCommand(catalogCheckCmd)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := openCatalog(cfg)
	if err != nil {
		return err
	}

	activities, err := cat.All(cmd.Context())
	if err != nil {
		return err
	}

	// Embeddings are hundreds of floats per activity; keep the listing short.
	for i := range activities {
		activities[i].Embedding = nil
	}
	return printJSON(activities)
}

func runCatalogSimilar(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := openCatalog(cfg)
	if err != nil {
		return err
	}

	activities, err := cat.All(cmd.Context())
	if err != nil {
		return err
	}

	matches, err := catalog.MostSimilar(activities, args[0], similarTop)
	if err != nil {
		return err
	}

	for i := range matches {
		matches[i].Activity.Embedding = nil
	}
	return printJSON(matches)
}

func runCatalogCheck(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	logger := logging.With().Str("component", "catalog").Logger()
	snap, err := catalog.LoadSnapshot(args[0], logger)
	if err != nil {
		return err
	}

	return printJSON(struct {
		Activities int    `json:"activities"`
		Model      string `json:"model,omitempty"`
		Dimension  int    `json:"dimension"`
		Skipped    int    `json:"skipped"`
	}{
		Activities: len(snap.Activities),
		Model:      snap.Model,
		Dimension:  snap.Dimension,
		Skipped:    snap.Skipped,
	})
}
