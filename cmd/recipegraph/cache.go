// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mangetamain/recipegraph/internal/cache"
	"github.com/mangetamain/recipegraph/internal/logging"
)

var purgeAnalyzer string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the result cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show per-analyzer entry counts and sizes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := cache.Open(cfg.Cache.Dir)
		if err != nil {
			return err
		}
		defer m.Close()

		info, err := m.Info()
		if err != nil {
			return err
		}
		if len(info) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "cache is empty")
			return nil
		}

		analyzers := make([]string, 0, len(info))
		for name := range info {
			analyzers = append(analyzers, name)
		}
		sort.Strings(analyzers)

		for _, name := range analyzers {
			stat := info[name]
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d entries\t%d bytes\n", name, stat.Entries, stat.Bytes)
		}
		return nil
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete cached results, optionally for one analyzer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := cache.Open(cfg.Cache.Dir)
		if err != nil {
			return err
		}
		defer m.Close()

		deleted, err := m.Invalidate(purgeAnalyzer, "")
		if err != nil {
			return err
		}

		logging.Info().
			Str("analyzer", purgeAnalyzer).
			Int("deleted", deleted).
			Msg("Cache purge finished")
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d entries\n", deleted)
		return nil
	},
}

func init() {
	cachePurgeCmd.Flags().StringVar(&purgeAnalyzer, "analyzer", "", "restrict the purge to one analyzer")
	cacheCmd.AddCommand(cacheInfoCmd, cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
