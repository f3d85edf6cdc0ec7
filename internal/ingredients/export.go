// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package ingredients

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"

	"github.com/mangetamain/recipegraph/internal/artifact"
	"github.com/mangetamain/recipegraph/internal/models"
)

// Artifact file names published by the pipeline.
const (
	MatrixArtifact     = "ingredients_cooccurrence_matrix.csv"
	RankedListArtifact = "ingredients_list.csv"
)

// Exporter persists the pipeline's durable artifacts. Output is
// deterministic: identical input produces byte-identical files, with
// rows and columns in descending-frequency order.
type Exporter struct {
	dir string
}

// NewExporter creates an exporter writing into the given directory.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// MatrixPath returns the matrix artifact destination.
func (e *Exporter) MatrixPath() string {
	return filepath.Join(e.dir, MatrixArtifact)
}

// RankedListPath returns the ranked-list artifact destination.
func (e *Exporter) RankedListPath() string {
	return filepath.Join(e.dir, RankedListArtifact)
}

// ExportMatrix writes the co-occurrence matrix keyed by canonical
// ingredient name. An unwritable destination is fatal; the publish is
// atomic so no partial artifact is ever observable.
func (e *Exporter) ExportMatrix(m *Matrix) error {
	return artifact.WriteAtomic(e.MatrixPath(), func(w io.Writer) error {
		cw := csv.NewWriter(w)

		header := make([]string, 0, m.N()+1)
		header = append(header, "")
		header = append(header, m.Labels()...)
		if err := cw.Write(header); err != nil {
			return err
		}

		row := make([]string, m.N()+1)
		for i, label := range m.Labels() {
			row[0] = label
			for j := 0; j < m.N(); j++ {
				row[j+1] = strconv.Itoa(m.At(i, j))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}

		cw.Flush()
		return cw.Error()
	})
}

// ExportRankedList writes the ranked ingredient list with columns
// (ingredient, frequency), sorted by frequency descending.
func (e *Exporter) ExportRankedList(ranked []models.RankedIngredient) error {
	return artifact.WriteAtomic(e.RankedListPath(), func(w io.Writer) error {
		cw := csv.NewWriter(w)

		if err := cw.Write([]string{"ingredient", "frequency"}); err != nil {
			return err
		}
		for _, r := range ranked {
			if err := cw.Write([]string{r.Name, strconv.Itoa(r.Frequency)}); err != nil {
				return err
			}
		}

		cw.Flush()
		return cw.Error()
	})
}
