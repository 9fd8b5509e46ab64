// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestCitationKey(t *testing.T) {
	tests := []struct {
		name string
		c    Citation
		want string
	}{
		{"apa wins", Citation{APA: "Ames (2020)", Title: "Alpha"}, "Ames (2020)"},
		{"title when apa blank", Citation{APA: "  ", Title: " Alpha "}, "Alpha"},
		{"source", Citation{Source: "https://example.org"}, "https://example.org"},
		{"author", Citation{Author: "Ames"}, "Ames"},
		{"description is not a key", Citation{Description: "About things"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Key())
		})
	}
}

func TestCitationLabel(t *testing.T) {
	assert.Equal(t, "Alpha", Citation{APA: "Ames (2020)", Title: "Alpha"}.Label())
	assert.Equal(t, "Ames (2020)", Citation{APA: "Ames (2020)"}.Label())
	assert.Equal(t, "Unknown Citation", Citation{}.Label())
}

func TestLevelText(t *testing.T) {
	for l := LevelNumeric; l <= MaxLevel; l++ {
		text, err := l.MarshalText()
		require.NoError(t, err)

		got, err := ParseLevel(string(text))
		require.NoError(t, err)
		assert.Equal(t, l, got)
		assert.True(t, l.Valid())
	}
	assert.False(t, LevelNone.Valid())
	assert.Equal(t, "level(9)", Level(9).String())

	_, err := ParseLevel("sideways")
	assert.Error(t, err)
}

func TestOutlineNodeEncoding(t *testing.T) {
	n := OutlineNode{Level: LevelRoman, Marker: "ii.", Content: "Detail", CitationRefs: []int{2}}

	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"roman"`)

	var back OutlineNode
	require.NoError(t, yaml.Unmarshal([]byte("level: letter_paren\nmarker: a)\ncontent: x\n"), &back))
	assert.Equal(t, LevelLetterParen, back.Level)
}

func TestOutlineTreeWalk(t *testing.T) {
	tree := OutlineTree{
		{Marker: "1.", Children: []*OutlineNode{{Marker: "a."}, {Marker: "b.", Children: []*OutlineNode{{Marker: "i."}}}}},
		{Marker: "2."},
	}
	assert.Equal(t, 5, tree.Count())

	var visited []string
	tree.Walk(func(n *OutlineNode, depth int) bool {
		visited = append(visited, n.Marker)
		return n.Marker != "b."
	})
	assert.Equal(t, []string{"1.", "a.", "b.", "2."}, visited, "returning false skips children")
}

func TestQuestionFused(t *testing.T) {
	assert.Equal(t, "", Question{}.Fused())
	assert.Equal(t, "fused", Question{Responses: []string{"one", "fused"}}.Fused())
	assert.Equal(t, 3, Subsection{Questions: []Question{
		{Citations: make([]Citation, 2)},
		{Citations: make([]Citation, 1)},
	}}.CitationCount())
}

func TestSynthesisConfigWithDefaults(t *testing.T) {
	got := SynthesisConfig{MaxContent: 50, MinClause: -1}.WithDefaults()
	want := DefaultSynthesisConfig()
	want.MaxContent = 50
	assert.Equal(t, want, got)
}
