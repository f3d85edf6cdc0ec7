// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package main

import (
	"github.com/spf13/cobra"

	"github.com/mangetamain/recipegraph/internal/analytics"
	"github.com/mangetamain/recipegraph/internal/cache"
	"github.com/mangetamain/recipegraph/internal/logging"
)

var noCache bool

var popularityCmd = &cobra.Command{
	Use:   "popularity",
	Short: "Aggregate interactions into the recipe popularity table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var manager *cache.Manager
		if cfg.Cache.Enabled && !noCache {
			m, err := cache.Open(cfg.Cache.Dir)
			if err != nil {
				return err
			}
			defer m.Close()
			manager = m
		}

		agg := analytics.NewAggregator(cfg, manager)
		if noCache {
			agg.EnableCache(false)
		}

		result, err := agg.Aggregate(cmd.Context())
		if err != nil {
			return err
		}

		exporter := analytics.NewExporter(cfg.Data.ArtifactsDir)
		if err := exporter.Export(result.Rows); err != nil {
			return err
		}

		logging.Info().
			Int("recipes", len(result.Rows)).
			Int("outliers", result.OutlierRows).
			Int64("dropped_interactions", result.DroppedInteractions).
			Str("artifact", exporter.Path()).
			Msg("Popularity table published")
		return nil
	},
}

func init() {
	popularityCmd.Flags().BoolVar(&noCache, "no-cache", false, "recompute without reading or writing the result cache")
	rootCmd.AddCommand(popularityCmd)
}
