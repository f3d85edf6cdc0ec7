// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

// Recipegraph is the command line entry point for the offline recipe
// analytics pipelines: ingredient co-occurrence, interaction popularity
// aggregation, and result cache maintenance.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
