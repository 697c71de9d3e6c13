// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"author key", "Kuwajima Nitta et al 1985", []string{"kuwajima", "nitta", "et", "al", "1985"}},
		{"punctuation", "(Smith et al., 1990)", []string{"smith", "et", "al", "1990"}},
		{"stop words", "Smith and the Jones", []string{"smith", "jones"}},
		{"diacritics", "Müller, Ångström", []string{"muller", "angstrom"}},
		{"duplicates", "12 12", []string{"12"}},
		{"label", "[12]", []string{"12"}},
		{"empty", "", []string{}},
		{"only stop words", "and the", []string{}},
	}

	var a Standard
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Analyze(tt.text))
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "privalov", Fold("PRIVALOV"))
	assert.Equal(t, "bjork", Fold("Björk"))
	assert.Equal(t, "ptitsyn", Fold("Ptitsyn"))
}
