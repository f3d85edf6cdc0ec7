// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package ingredients

import (
	"github.com/mangetamain/recipegraph/internal/models"
)

// BuildMatrix builds the symmetric co-occurrence matrix over the ranked
// selection set. For each recipe the ingredient set is restricted to the
// selection; every unordered pair within the restricted set increments
// both M[i][j] and M[j][i], and every present ingredient increments its
// own diagonal cell, so M[i][i] is the number of recipes containing
// ingredient i.
//
// Recipes with fewer than two selected ingredients contribute only
// diagonal increments (or none). Cost is O(R·k²) with k the per-recipe
// restricted set size, which is why this stage runs offline.
func BuildMatrix(corpus [][]string, ranked []models.RankedIngredient) *Matrix {
	labels := make([]string, len(ranked))
	for i, r := range ranked {
		labels[i] = r.Name
	}
	m := NewMatrix(labels)

	restricted := make([]int, 0, 32)
	for _, recipe := range corpus {
		restricted = restricted[:0]
		for _, ing := range recipe {
			if idx, ok := m.index[ing]; ok {
				restricted = append(restricted, idx)
			}
		}

		for i, a := range restricted {
			m.add(a, a, 1)
			for _, b := range restricted[i+1:] {
				m.add(a, b, 1)
				m.add(b, a, 1)
			}
		}
	}

	return m
}
