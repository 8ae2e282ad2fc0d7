// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

// Package cmd implements the whatnow CLI commands.
package cmd

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/whatnowai/whatnow/internal/bandit"
	"github.com/whatnowai/whatnow/internal/bandit/storage"
	"github.com/whatnowai/whatnow/internal/catalog"
	"github.com/whatnowai/whatnow/internal/config"
	"github.com/whatnowai/whatnow/internal/logging"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "whatnow",
	Short: "Contextual activity recommendations",
	Long: `Recommends activities for the caller's current context and learns from
every choice. Sessions are two calls: 'session start' returns candidates
and a token, 'session train' records the pick and updates the model.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (overrides the default search)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(catalogCmd)
}

// loadConfig resolves configuration and initializes logging from it.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	if logLevel != "" {
		logging.SetLevelString(logLevel)
	}

	return cfg, nil
}

// openStore opens the configured model store. The caller owns the store and
// must close it.
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return storage.NewSQLiteStore(cfg.Storage.Path)
	case "file":
		return storage.NewFileStore(cfg.Storage.Path)
	case "badger":
		return storage.NewBadgerStore(cfg.Storage.Path)
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// closeStore closes the store, logging instead of failing the command.
func closeStore(store storage.Store) {
	if err := store.Close(); err != nil {
		logging.Error().Err(err).Str("backend", store.Backend()).Msg("Error closing model store")
	}
}

// openCatalog loads the configured activity snapshot into a catalog.
func openCatalog(cfg *config.Config) (*catalog.MemoryCatalog, error) {
	logger := logging.With().Str("component", "catalog").Logger()

	snap, err := catalog.LoadSnapshot(cfg.Catalog.Snapshot, logger)
	if err != nil {
		return nil, err
	}
	return catalog.NewMemoryCatalog(snap.Activities)
}

// buildEngine wires the recommendation engine from configuration.
func buildEngine(cfg *config.Config, store storage.Store, provider catalog.Provider) (*bandit.Engine, error) {
	return bandit.NewEngine(bandit.Config{
		Vocabulary: cfg.Engine.Vocabulary,
		CustomTags: cfg.Engine.CustomTags,
		TopK:       cfg.Engine.TopK,
		Seed:       cfg.Engine.Seed,
		Learner: bandit.LearnerConfig{
			Eta0:  cfg.Engine.Eta0,
			Alpha: cfg.Engine.Alpha,
			Tol:   cfg.Engine.Tol,
			Stall: cfg.Engine.Stall,
		},
	}, store, provider, logging.Logger())
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
