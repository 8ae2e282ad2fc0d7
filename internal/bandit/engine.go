// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package bandit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/whatnowai/whatnow/internal/bandit/storage"
	"github.com/whatnowai/whatnow/internal/catalog"
	"github.com/whatnowai/whatnow/internal/validation"
)

// trainReward is the reward applied on every training call. Choosing an
// activity is the only feedback signal the protocol carries.
const trainReward = 1.0

// Engine implements the two-call session protocol on top of the vocabulary,
// the classifier, the policy and a persistence store.
//
// The engine holds no model in memory between calls. Every Start and Train
// loads the stored record, so concurrent callers and multiple processes
// sharing one store observe a consistent snapshot. Train serializes the
// load, update, save cycle under a single-writer lock; Starts run
// concurrently.
type Engine struct {
	cfg     Config
	logger  zerolog.Logger
	vocab   *Vocabulary
	store   storage.Store
	catalog catalog.Provider
	policy  *Policy

	// trainMu makes the Train read-modify-write cycle atomic within this
	// process.
	trainMu sync.Mutex
}

// NewEngine creates an engine from its collaborators. The configuration is
// completed with defaults before use.
func NewEngine(cfg Config, store storage.Store, provider catalog.Provider, logger zerolog.Logger) (*Engine, error) {
	cfg = cfg.withDefaults()

	vocab, err := cfg.buildVocabulary()
	if err != nil {
		return nil, fmt.Errorf("failed to build vocabulary: %w", err)
	}

	return &Engine{
		cfg:     cfg,
		logger:  logger.With().Str("component", "bandit").Logger(),
		vocab:   vocab,
		store:   store,
		catalog: provider,
		policy:  NewPolicy(cfg.TopK, cfg.Seed),
	}, nil
}

// Vocabulary returns the vocabulary the engine encodes contexts with.
func (e *Engine) Vocabulary() *Vocabulary {
	return e.vocab
}

// Start opens a session: it encodes the caller's context, scores it against
// the stored model and returns a sampled set of candidate activities with a
// fresh session token.
//
// Start fails only on invalid requests, an unavailable catalog or an empty
// one. Model problems never fail a Start; they degrade to uniform sampling.
func (e *Engine) Start(ctx context.Context, req StartRequest) (*StartResponse, error) {
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, &ValidationError{Msg: "invalid start request", Err: verr}
	}

	activities, err := e.catalog.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	if len(activities) == 0 {
		return nil, &NotFoundError{Resource: "catalog"}
	}

	ctxVec, unknown := e.vocab.Encode(req.Tags)
	RecordUnknownTags(unknown)
	if unknown > 0 {
		e.logger.Debug().Int("count", unknown).Msg("Dropped tags unknown to the vocabulary")
	}

	model, err := e.loadClassifier(ctx)
	if err != nil {
		// Start answers whenever candidates exist. With the store down
		// the session is served cold.
		e.logger.Warn().Err(err).Msg("Model unavailable, serving session cold")
		model = NewClassifier(e.vocab.Dim(), e.cfg.Learner)
	}

	fitted := model.Fitted()
	var score float64
	scoreOK := false
	if fitted {
		score, err = model.Score(ctxVec)
		scoreOK = err == nil
		if err != nil {
			e.logger.Error().Err(err).Msg("Scoring failed, degrading to uniform sampling")
		}
	}

	picks, branch := e.policy.Select(len(activities), fitted, score, scoreOK)

	recs := make([]Recommendation, len(picks))
	for i, j := range picks {
		recs[i] = Recommendation{ID: activities[j].ID, Name: activities[j].Name}
	}

	RecordSessionStarted(branch, len(recs))
	UpdateModelGauges(model)

	e.logger.Info().
		Str("branch", branch.String()).
		Int("candidates", len(activities)).
		Int("recommendations", len(recs)).
		Msg("Session started")

	return &StartResponse{
		Token:           uuid.NewString(),
		Recommendations: recs,
		Branch:          branch.String(),
	}, nil
}

// Train applies one SGD step for the activity the caller chose and persists
// the updated model. The session token must be present but is never checked
// against any store.
func (e *Engine) Train(ctx context.Context, req TrainRequest) (*TrainResponse, error) {
	started := time.Now()

	if verr := validation.ValidateStruct(&req); verr != nil {
		RecordTraining("validation_error", time.Since(started))
		return nil, &ValidationError{Msg: "invalid train request", Err: verr}
	}

	activity, err := e.catalog.Get(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			RecordTraining("not_found", time.Since(started))
			return nil, &NotFoundError{Resource: "activity", ID: req.ActivityID}
		}
		RecordTraining("catalog_error", time.Since(started))
		return nil, fmt.Errorf("failed to look up activity: %w", err)
	}

	e.trainMu.Lock()
	defer e.trainMu.Unlock()

	model, err := e.loadClassifier(ctx)
	if err != nil {
		RecordTraining("storage_error", time.Since(started))
		return nil, err
	}

	ctxVec, unknown := e.vocab.Encode(req.Tags)
	RecordUnknownTags(unknown)

	if err := model.Update(ctxVec, trainReward); err != nil {
		RecordTraining("validation_error", time.Since(started))
		return nil, err
	}

	if err := e.saveModel(ctx, model.Snapshot()); err != nil {
		RecordTraining("storage_error", time.Since(started))
		return nil, err
	}

	UpdateModelGauges(model)
	RecordTraining("success", time.Since(started))

	e.logger.Info().
		Str("activity_id", activity.ID).
		Str("activity", activity.Name).
		Int64("updates", model.Updates()).
		Msg("Model trained")

	return &TrainResponse{
		Trained: Recommendation{ID: activity.ID, Name: activity.Name},
		Reward:  trainReward,
		Fitted:  model.Fitted(),
	}, nil
}

// Status reports the engine's model state as seen through the store.
func (e *Engine) Status(ctx context.Context) (*Status, error) {
	model, err := e.loadClassifier(ctx)
	if err != nil {
		return nil, err
	}

	return &Status{
		Fitted:      model.Fitted(),
		Dim:         e.vocab.Dim(),
		Vocabulary:  e.vocab.Name(),
		Backend:     e.store.Backend(),
		Updates:     model.Updates(),
		LastTrained: model.LastTrained(),
	}, nil
}

// loadClassifier loads the stored record and rebuilds a classifier from it.
// A transient load failure is retried once before it surfaces. An integrity
// failure, including a record that does not fit the configured vocabulary,
// discards the stored model and yields a fresh unfitted classifier.
func (e *Engine) loadClassifier(ctx context.Context) (*Classifier, error) {
	rec, err := e.store.Load(ctx)
	if isTransient(err) {
		e.logger.Warn().Err(err).Msg("Model load failed, retrying once")
		rec, err = e.store.Load(ctx)
	}

	backend := e.store.Backend()

	switch {
	case err == nil:
	case isIntegrity(err):
		RecordModelLoad(backend, "integrity_error")
		e.logger.Error().Err(err).Msg("Stored model is corrupt, continuing unfitted")
		return NewClassifier(e.vocab.Dim(), e.cfg.Learner), nil
	default:
		RecordModelLoad(backend, "transient_error")
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	if rec == nil {
		RecordModelLoad(backend, "absent")
		return NewClassifier(e.vocab.Dim(), e.cfg.Learner), nil
	}

	model, err := RestoreClassifier(rec, e.vocab.Dim(), e.cfg.Learner)
	if err != nil {
		RecordModelLoad(backend, "integrity_error")
		e.logger.Error().Err(err).
			Str("vocabulary", e.vocab.Name()).
			Int("dimension", e.vocab.Dim()).
			Msg("Stored model does not fit the configured vocabulary, continuing unfitted")
		return NewClassifier(e.vocab.Dim(), e.cfg.Learner), nil
	}

	RecordModelLoad(backend, "success")
	return model, nil
}

// saveModel persists a snapshot, retrying once on a transient failure.
func (e *Engine) saveModel(ctx context.Context, rec *storage.Record) error {
	backend := e.store.Backend()

	err := e.store.Save(ctx, rec)
	if isTransient(err) {
		e.logger.Warn().Err(err).Msg("Model save failed, retrying once")
		err = e.store.Save(ctx, rec)
	}
	if err != nil {
		RecordModelSave(backend, false)
		return fmt.Errorf("failed to save model: %w", err)
	}

	RecordModelSave(backend, true)
	return nil
}

func isTransient(err error) bool {
	var transientErr *storage.TransientError
	return errors.As(err, &transientErr)
}

func isIntegrity(err error) bool {
	var integrityErr *storage.IntegrityError
	return errors.As(err, &integrityErr)
}
