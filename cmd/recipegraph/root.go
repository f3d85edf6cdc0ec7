// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mangetamain/recipegraph/internal/config"
	"github.com/mangetamain/recipegraph/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "recipegraph",
	Short:         "Offline recipe corpus and popularity analytics",
	Long:          "Recipegraph builds deterministic CSV artifacts from a recipe corpus:\na ranked ingredient list, an ingredient co-occurrence matrix, and a\nper-recipe popularity table aggregated from user interactions.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			os.Setenv(config.ConfigPathEnvVar, cfgFile)
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		logging.Init(logging.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			Caller:    cfg.Logging.Caller,
			Timestamp: true,
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (overrides discovery)")
}

// Execute runs the CLI. Errors are logged once here; commands return
// them unprinted.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logging.Error().Err(err).Msg("Command failed")
		return err
	}
	return nil
}
