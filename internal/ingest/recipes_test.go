// Recipegraph - Recipe Corpus and Popularity Analytics
// Copyright 2026 Mangetamain Project
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mangetamain/recipegraph

package ingest

import (
	"reflect"
	"testing"
)

func TestParseIngredientList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{
			name: "single quoted items",
			raw:  "['salt', 'black pepper', 'onion']",
			want: []string{"salt", "black pepper", "onion"},
		},
		{
			name: "double quoted items",
			raw:  `["salt", "pepper"]`,
			want: []string{"salt", "pepper"},
		},
		{
			name: "mixed quotes",
			raw:  `['salt', "pepper"]`,
			want: []string{"salt", "pepper"},
		},
		{
			name: "escaped quote inside item",
			raw:  `['baker\'s chocolate']`,
			want: []string{"baker's chocolate"},
		},
		{
			name: "embedded comma",
			raw:  `['salt, coarse', 'pepper']`,
			want: []string{"salt, coarse", "pepper"},
		},
		{
			name: "surrounding whitespace",
			raw:  "  ['salt' ,\n 'pepper']  ",
			want: []string{"salt", "pepper"},
		},
		{
			name: "empty list",
			raw:  "[]",
			want: []string{},
		},
		{
			name:    "not a list",
			raw:     "salt, pepper",
			wantErr: true,
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "unquoted item",
			raw:     "[salt]",
			wantErr: true,
		},
		{
			name:    "unterminated string",
			raw:     "['salt]",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIngredientList(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseIngredientList(%q) expected error, got %v", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIngredientList(%q) error = %v", tt.raw, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseIngredientList(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestQuoteLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"data/recipes.csv", "'data/recipes.csv'"},
		{"o'brien.csv", "'o''brien.csv'"},
		{"", "''"},
	}
	for _, tt := range tests {
		if got := quoteLiteral(tt.in); got != tt.want {
			t.Errorf("quoteLiteral(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
