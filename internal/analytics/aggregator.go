// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

// Package analytics aggregates user interactions into per-recipe
// popularity metrics: merge, outlier flagging, and percentile
// segmentation into Low/Medium/High/Viral bands.
package analytics

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/mangetamain/recipegraph/internal/cache"
	"github.com/mangetamain/recipegraph/internal/config"
	"github.com/mangetamain/recipegraph/internal/ingest"
	"github.com/mangetamain/recipegraph/internal/logging"
	"github.com/mangetamain/recipegraph/internal/models"
)

// AnalyzerName is the cache analyzer namespace for this aggregator.
const AnalyzerName = "interactions"

// Result is the aggregation output: one row per recipe with outlier
// flags and a popularity segment, plus run-level counters.
type Result struct {
	Rows                []models.RecipeMetrics `json:"rows"`
	Thresholds          SegmentThresholds      `json:"thresholds"`
	DroppedInteractions int64                  `json:"dropped_interactions"`
	OutlierRows         int                    `json:"outlier_rows"`
}

// Aggregator merges the interactions table with the recipe corpus and
// derives popularity metrics. Aggregation results are cached on disk
// keyed by the outlier settings and the source file fingerprints.
type Aggregator struct {
	cfg       *config.Config
	cacheable *cache.Cacheable
	log       zerolog.Logger
}

// NewAggregator creates an aggregator. A nil cache manager disables
// caching entirely.
func NewAggregator(cfg *config.Config, manager *cache.Manager) *Aggregator {
	defaults := map[string]any{
		"outlier_method": cfg.Aggregate.OutlierMethod,
		"iqr_k":          cfg.Aggregate.IQRK,
		"z_threshold":    cfg.Aggregate.ZThreshold,
	}
	a := &Aggregator{
		cfg:       cfg,
		cacheable: cache.NewCacheable(manager, AnalyzerName, defaults),
		log:       logging.With().Str("component", "aggregator").Logger(),
	}
	if !cfg.Cache.Enabled {
		a.cacheable.Enable(false)
	}
	return a
}

// EnableCache toggles cached execution for this aggregator instance.
func (a *Aggregator) EnableCache(on bool) {
	a.cacheable.Enable(on)
}

// ClearCache drops this aggregator's cached results, optionally limited
// to one operation, and returns the number of entries removed.
func (a *Aggregator) ClearCache(operation string) (int, error) {
	return a.cacheable.Clear(operation)
}

// Aggregate runs the merge, outlier, and segmentation stages, serving
// the result from cache when the sources and settings are unchanged.
func (a *Aggregator) Aggregate(ctx context.Context) (*Result, error) {
	recipesFP, err := fileFingerprint(a.cfg.Data.RecipesPath)
	if err != nil {
		return nil, err
	}
	interactionsFP, err := fileFingerprint(a.cfg.Data.InteractionsPath)
	if err != nil {
		return nil, err
	}
	params := map[string]any{
		"recipes_source":      recipesFP,
		"interactions_source": interactionsFP,
	}

	result, hit, err := cache.Do(a.cacheable, "aggregate", params, func() (*Result, error) {
		return a.compute(ctx)
	})
	if err != nil {
		return nil, err
	}
	if hit {
		a.log.Info().Int("recipes", len(result.Rows)).Msg("Aggregation served from cache")
	}
	return result, nil
}

// compute runs the full aggregation against the source files.
func (a *Aggregator) compute(ctx context.Context) (*Result, error) {
	store, err := ingest.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	recipes, _, err := store.LoadRecipes(ctx, a.cfg.Data.RecipesPath)
	if err != nil {
		return nil, err
	}
	interactions, err := store.LoadInteractions(ctx, a.cfg.Data.InteractionsPath)
	if err != nil {
		return nil, err
	}
	a.log.Info().
		Int("recipes", len(recipes)).
		Int64("interactions", interactions).
		Msg("Source tables loaded")

	merged, err := store.MergeInteractions(ctx)
	if err != nil {
		return nil, err
	}
	rows := merged.Rows

	if err := FlagOutliers(rows, a.cfg.Aggregate); err != nil {
		return nil, err
	}
	outliers := 0
	for i := range rows {
		if rows[i].IsOutlier() {
			outliers++
		}
	}
	a.log.Info().
		Str("method", a.cfg.Aggregate.OutlierMethod).
		Int("flagged", outliers).
		Int("population", len(rows)-outliers).
		Msg("Outliers flagged")

	thresholds, ok := ComputeThresholds(rows)
	if ok {
		ApplySegments(rows, thresholds)
		a.log.Info().
			Float64("p25", thresholds.P25).
			Float64("p75", thresholds.P75).
			Float64("p95", thresholds.P95).
			Msg("Popularity segments assigned")
	} else if len(rows) > 0 {
		a.log.Warn().Msg("Every row flagged as outlier, skipping segmentation")
	}

	return &Result{
		Rows:                rows,
		Thresholds:          thresholds,
		DroppedInteractions: merged.DroppedInteractions,
		OutlierRows:         outliers,
	}, nil
}

// fileFingerprint identifies a source file's revision by size and
// modification time. Content hashing is avoided because the interaction
// table can run to hundreds of megabytes; a rewrite-in-place with
// identical size and mtime defeats this, which is acceptable for
// batch-refreshed source dumps.
func fileFingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat source %s: %w", path, err)
	}
	return fmt.Sprintf("%s:%d:%d", path, info.Size(), info.ModTime().UnixNano()), nil
}
