// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package ingredients

import (
	"fmt"
	"sort"

	"github.com/mangetamain/recipegraph/internal/logging"
	"github.com/mangetamain/recipegraph/internal/models"
)

// Rank counts recipe presence of each canonical ingredient across the
// normalized corpus and returns the n highest-frequency ingredients,
// frequency-descending with lexicographic tie-break for determinism.
//
// The user-facing 40..300 bound on n lives in config validation and is
// enforced eagerly on load; Rank itself only rejects a non-positive n so
// small synthetic corpora remain testable. When n exceeds the
// distinct-ingredient count the full set is returned and the reduced size
// is logged: a smaller matrix is a usable result, an invalid n is not.
func Rank(corpus [][]string, n int) ([]models.RankedIngredient, error) {
	if n < 1 {
		return nil, fmt.Errorf("top-n must be positive, got %d", n)
	}

	counts := make(map[string]int)
	for _, recipe := range corpus {
		for _, ing := range recipe {
			counts[ing]++
		}
	}

	ranked := make([]models.RankedIngredient, 0, len(counts))
	for name, freq := range counts {
		ranked = append(ranked, models.RankedIngredient{Name: name, Frequency: freq})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Frequency != ranked[j].Frequency {
			return ranked[i].Frequency > ranked[j].Frequency
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) < n {
		logging.Warn().
			Int("requested", n).
			Int("distinct", len(ranked)).
			Msg("Fewer distinct ingredients than requested, returning full set")
		return ranked, nil
	}

	return ranked[:n], nil
}
