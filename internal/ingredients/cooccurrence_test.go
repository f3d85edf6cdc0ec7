// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package ingredients

import (
	"testing"

	"github.com/mangetamain/recipegraph/internal/models"
)

func rankedFixture(names ...string) []models.RankedIngredient {
	ranked := make([]models.RankedIngredient, len(names))
	for i, name := range names {
		ranked[i] = models.RankedIngredient{Name: name, Frequency: len(names) - i}
	}
	return ranked
}

func TestBuildMatrix(t *testing.T) {
	// Two recipes sharing every pair of {salt, pepper, sugar} exactly
	// once; every ingredient appears in exactly two recipes.
	corpus := [][]string{
		{"salt", "pepper"},
		{"pepper", "sugar"},
		{"sugar", "salt"},
		{"salt"},
		{"pepper"},
		{"sugar"},
	}
	ranked := rankedFixture("salt", "pepper", "sugar")

	m := BuildMatrix(corpus, ranked)

	if m.N() != 3 {
		t.Fatalf("N() = %d, want 3", m.N())
	}
	for i := 0; i < 3; i++ {
		if got := m.At(i, i); got != 2 {
			t.Errorf("diagonal [%d][%d] = %d, want 2", i, i, got)
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				continue
			}
			if got := m.At(i, j); got != 1 {
				t.Errorf("cell [%d][%d] = %d, want 1", i, j, got)
			}
		}
	}
}

func TestBuildMatrixSymmetric(t *testing.T) {
	corpus := [][]string{
		{"flour", "butter", "sugar", "eggs"},
		{"flour", "sugar"},
		{"butter", "eggs", "flour"},
		{"sugar"},
	}
	ranked := rankedFixture("flour", "sugar", "butter", "eggs")

	m := BuildMatrix(corpus, ranked)
	if !m.IsSymmetric() {
		t.Error("BuildMatrix() produced an asymmetric matrix")
	}
}

func TestBuildMatrixDiagonalIsRecipeCount(t *testing.T) {
	corpus := [][]string{
		{"salt", "pepper"},
		{"salt"},
		{"salt", "flour"},
	}
	ranked := rankedFixture("salt", "pepper", "flour")

	m := BuildMatrix(corpus, ranked)
	i, _ := m.Index("salt")
	if got := m.At(i, i); got != 3 {
		t.Errorf("diagonal for salt = %d, want 3", got)
	}
}

func TestBuildMatrixIgnoresUnselected(t *testing.T) {
	corpus := [][]string{
		{"salt", "saffron"},
		{"salt", "saffron"},
	}
	ranked := rankedFixture("salt")

	m := BuildMatrix(corpus, ranked)
	if m.N() != 1 {
		t.Fatalf("N() = %d, want 1", m.N())
	}
	if got := m.At(0, 0); got != 2 {
		t.Errorf("diagonal for salt = %d, want 2", got)
	}
	if _, ok := m.Index("saffron"); ok {
		t.Error("unselected ingredient present in matrix index")
	}
}

func TestRankAndBuildThreeRecipeScenario(t *testing.T) {
	corpus := [][]string{
		{"salt", "pepper"},
		{"salt", "sugar"},
		{"pepper", "sugar"},
	}

	ranked, err := Rank(corpus, 3)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	// All three tie at frequency 2; order is lexicographic.
	wantOrder := []string{"pepper", "salt", "sugar"}
	for i, name := range wantOrder {
		if ranked[i].Name != name || ranked[i].Frequency != 2 {
			t.Errorf("ranked[%d] = %+v, want {%s 2}", i, ranked[i], name)
		}
	}

	m := BuildMatrix(corpus, ranked)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 1
			if i == j {
				want = 2
			}
			if got := m.At(i, j); got != want {
				t.Errorf("cell [%d][%d] = %d, want %d", i, j, got, want)
			}
		}
	}
	if !m.IsSymmetric() {
		t.Error("scenario matrix not symmetric")
	}
}

func TestBuildMatrixEmptyCorpus(t *testing.T) {
	m := BuildMatrix(nil, rankedFixture("salt", "pepper"))
	if m.N() != 2 {
		t.Fatalf("N() = %d, want 2", m.N())
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if got := m.At(i, j); got != 0 {
				t.Errorf("cell [%d][%d] = %d, want 0", i, j, got)
			}
		}
	}
}
