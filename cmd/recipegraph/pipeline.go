// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package main

import (
	"github.com/spf13/cobra"

	"github.com/mangetamain/recipegraph/internal/ingredients"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Build the ranked ingredient list and co-occurrence matrix",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := ingredients.NewPipeline(cfg)
		return p.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
}
