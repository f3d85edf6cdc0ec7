// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package ingredients

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mangetamain/recipegraph/internal/config"
	"github.com/mangetamain/recipegraph/internal/ingest"
	"github.com/mangetamain/recipegraph/internal/logging"
	"github.com/mangetamain/recipegraph/internal/models"
)

// Pipeline runs the offline co-occurrence stages in order: load,
// normalize, rank, build, export. It runs to completion or fails without
// publishing partial artifacts; there is no resumable checkpointing.
type Pipeline struct {
	cfg   *config.Config
	runID string
	log   zerolog.Logger
}

// NewPipeline creates a pipeline run with a fresh run identifier.
func NewPipeline(cfg *config.Config) *Pipeline {
	runID := uuid.NewString()
	return &Pipeline{
		cfg:   cfg,
		runID: runID,
		log:   logging.With().Str("component", "pipeline").Str("run_id", runID).Logger(),
	}
}

// RunID returns this run's identifier.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run executes the full pipeline and publishes both artifacts.
func (p *Pipeline) Run(ctx context.Context) error {
	store, err := ingest.Open(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	p.log.Info().Str("path", p.cfg.Data.RecipesPath).Msg("Loading recipe corpus")
	recipes, _, err := store.LoadRecipes(ctx, p.cfg.Data.RecipesPath)
	if err != nil {
		return err
	}
	p.log.Info().Int("recipes", len(recipes)).Msg("Corpus loaded")

	corpus, before, after, err := normalizeCorpus(ctx, recipes, p.cfg.Pipeline.Workers)
	if err != nil {
		return err
	}
	reduction := 0.0
	if before > 0 {
		reduction = (1 - float64(after)/float64(before)) * 100
	}
	p.log.Info().
		Int("raw_ingredients", before).
		Int("canonical_ingredients", after).
		Float64("reduction_pct", reduction).
		Msg("Normalization finished")

	ranked, err := Rank(corpus, p.cfg.Pipeline.TopN)
	if err != nil {
		return err
	}
	p.log.Info().Int("selected", len(ranked)).Msg("Top ingredients ranked")

	matrix := BuildMatrix(corpus, ranked)
	p.log.Info().Int("n", matrix.N()).Msg("Co-occurrence matrix built")

	exporter := NewExporter(p.cfg.Data.ArtifactsDir)
	if err := exporter.ExportMatrix(matrix); err != nil {
		return fmt.Errorf("export matrix: %w", err)
	}
	if err := exporter.ExportRankedList(ranked); err != nil {
		return fmt.Errorf("export ranked list: %w", err)
	}
	p.log.Info().
		Str("matrix", exporter.MatrixPath()).
		Str("ranked_list", exporter.RankedListPath()).
		Msg("Artifacts published")

	return nil
}

// normalizeCorpus normalizes every recipe's ingredient list. The stage is
// embarrassingly parallel; each recipe writes its own slot so the result
// is identical to a sequential pass regardless of worker count.
func normalizeCorpus(ctx context.Context, recipes []models.Recipe, workers int) ([][]string, int, int, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	corpus := make([][]string, len(recipes))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range recipes {
		g.Go(func() error {
			corpus[i] = NormalizeSet(recipes[i].Ingredients)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, 0, err
	}

	before, after := 0, 0
	for i := range recipes {
		before += len(recipes[i].Ingredients)
		after += len(corpus[i])
	}

	return corpus, before, after, nil
}
