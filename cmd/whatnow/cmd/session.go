// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/whatnowai/whatnow/internal/bandit"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Start sessions and train on choices",
}

var startTags []string

var sessionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a recommendation session",
	Long: `Starts a session for the given context tags and prints sampled activity
candidates, the sampling branch, and a session token to pass to
'session train' once an activity is chosen.`,
	RunE: runSessionStart,
}

var (
	trainToken    string
	trainActivity string
	trainTags     []string
)

var sessionTrainCmd = &cobra.Command{
	Use:   "train",
	Short: "Record the chosen activity and update the model",
	Long: `Records which activity was chosen for the session's context tags,
applies one training step to the model and persists it.`,
	RunE: runSessionTrain,
}

func init() {
	sessionStartCmd.Flags().StringSliceVar(&startTags, "tags", nil, "Context tags, 3 to 8 (comma-separated or repeated)")

	f := sessionTrainCmd.Flags()
	f.StringVar(&trainToken, "token", "", "Session token from 'session start'")
	f.StringVar(&trainActivity, "activity", "", "ID of the chosen activity")
	f.StringSliceVar(&trainTags, "tags", nil, "Context tags the session was started with")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionTrainCmd)
}

func runSessionStart(cmd *cobra.Command, args []string) error {
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

	resp, err := engine.Start(cmd.Context(), bandit.StartRequest{Tags: startTags})
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func runSessionTrain(cmd *cobra.Command, args []string) error {
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

	resp, err := engine.Train(cmd.Context(), bandit.TrainRequest{
		Token:      trainToken,
		ActivityID: trainActivity,
		Tags:       trainTags,
	})
	if err != nil {
		return err
	}
	return printJSON(resp)
}
