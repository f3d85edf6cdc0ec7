// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package ingredients

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mangetamain/recipegraph/internal/logging"
	"github.com/mangetamain/recipegraph/internal/models"
)

// Matrix is a dense symmetric co-occurrence matrix indexed by canonical
// ingredient name. It is built once per pipeline run and read-only
// afterward.
type Matrix struct {
	labels []string
	index  map[string]int
	cells  []int
}

// NewMatrix creates a zeroed n×n matrix over the given labels.
func NewMatrix(labels []string) *Matrix {
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}
	return &Matrix{
		labels: labels,
		index:  index,
		cells:  make([]int, len(labels)*len(labels)),
	}
}

// N returns the matrix dimension.
func (m *Matrix) N() int {
	return len(m.labels)
}

// Labels returns the row/column labels in order.
func (m *Matrix) Labels() []string {
	return m.labels
}

// Index returns the position of a label, if present.
func (m *Matrix) Index(label string) (int, bool) {
	i, ok := m.index[label]
	return i, ok
}

// At returns the cell value at row i, column j.
func (m *Matrix) At(i, j int) int {
	return m.cells[i*len(m.labels)+j]
}

func (m *Matrix) add(i, j, delta int) {
	m.cells[i*len(m.labels)+j] += delta
}

// IsSymmetric reports whether M[i][j] == M[j][i] for all i, j.
func (m *Matrix) IsSymmetric() bool {
	n := len(m.labels)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m.At(i, j) != m.At(j, i) {
				return false
			}
		}
	}
	return true
}

// LoadMatrixCSV loads a published co-occurrence artifact and sanitizes
// it: labels are stripped of surrounding whitespace, the matrix must be
// square, and when row and column labels disagree the matrix is reduced
// to their common subset and the columns reordered to match the rows.
func LoadMatrixCSV(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open matrix artifact: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read matrix artifact %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("matrix artifact %s is empty", path)
	}

	colLabels := make([]string, 0, len(records[0])-1)
	for _, label := range records[0][1:] {
		colLabels = append(colLabels, strings.TrimSpace(label))
	}

	rowLabels := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(colLabels)+1 {
			return nil, fmt.Errorf("matrix artifact %s: row %q has %d cells, want %d",
				path, record[0], len(record)-1, len(colLabels))
		}
		rowLabels = append(rowLabels, strings.TrimSpace(record[0]))
	}

	if len(rowLabels) != len(colLabels) {
		return nil, fmt.Errorf("matrix artifact %s is not square: %d rows, %d columns",
			path, len(rowLabels), len(colLabels))
	}
	if err := checkDuplicates(rowLabels); err != nil {
		return nil, fmt.Errorf("matrix artifact %s: %w", path, err)
	}

	colIndex := make(map[string]int, len(colLabels))
	for i, label := range colLabels {
		colIndex[label] = i
	}

	// Reduce to the common label subset when rows and columns disagree,
	// preserving row order.
	keep := make([]string, 0, len(rowLabels))
	for _, label := range rowLabels {
		if _, ok := colIndex[label]; ok {
			keep = append(keep, label)
		}
	}
	if len(keep) < len(rowLabels) {
		logging.Warn().
			Int("rows", len(rowLabels)).
			Int("common", len(keep)).
			Msg("Matrix row/column labels disagree, reducing to common subset")
	}

	m := NewMatrix(keep)
	for rowPos, record := range records[1:] {
		rowLabel := strings.TrimSpace(record[0])
		i, ok := m.index[rowLabel]
		if !ok {
			continue
		}
		for _, label := range keep {
			j := m.index[label]
			cell := record[1+colIndex[label]]
			v, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return nil, fmt.Errorf("matrix artifact %s: row %d has non-integer cell %q",
					path, rowPos+1, cell)
			}
			m.cells[i*len(keep)+j] = v
		}
	}

	return m, nil
}

// checkDuplicates rejects duplicate labels; a published artifact with
// duplicated canonical names cannot be indexed unambiguously.
func checkDuplicates(labels []string) error {
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if _, dup := seen[label]; dup {
			return fmt.Errorf("duplicate label %q", label)
		}
		seen[label] = struct{}{}
	}
	return nil
}

// SelectTop restricts a loaded matrix to the n highest-frequency
// ingredients of the ranked list. When the ranked list does not
// intersect the matrix labels at all, the matrix's own leading n labels
// are used instead of failing, so a stale or mismatched ranked-list
// artifact degrades rather than breaks the analysis.
func SelectTop(m *Matrix, ranked []models.RankedIngredient, n int) (*Matrix, []string, error) {
	if n < 1 {
		return nil, nil, fmt.Errorf("selection size must be positive, got %d", n)
	}
	if n > m.N() {
		n = m.N()
	}

	present := make([]models.RankedIngredient, 0, len(ranked))
	for _, r := range ranked {
		if _, ok := m.index[r.Name]; ok {
			present = append(present, r)
		}
	}

	var selected []string
	if len(present) == 0 {
		logging.Warn().Msg("Ranked list does not intersect matrix labels, falling back to matrix order")
		selected = append(selected, m.labels[:n]...)
	} else {
		sort.SliceStable(present, func(i, j int) bool {
			if present[i].Frequency != present[j].Frequency {
				return present[i].Frequency > present[j].Frequency
			}
			return present[i].Name < present[j].Name
		})
		if len(present) > n {
			present = present[:n]
		}
		if len(present) < n {
			logging.Warn().
				Int("requested", n).
				Int("available", len(present)).
				Msg("Fewer ranked ingredients available than requested")
		}
		for _, r := range present {
			selected = append(selected, r.Name)
		}
	}

	sub := NewMatrix(selected)
	for i, rowLabel := range selected {
		src := m.index[rowLabel]
		for j, colLabel := range selected {
			sub.cells[i*len(selected)+j] = m.At(src, m.index[colLabel])
		}
	}

	return sub, selected, nil
}
