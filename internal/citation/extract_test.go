// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Match
	}{
		{
			name: "no markers",
			text: "Plain sentence without references.",
			want: nil,
		},
		{
			name: "single marker",
			text: "Adoption rose [3].",
			want: []Match{{FullMatch: "[3]", Numbers: []int{3}, StartIndex: 14, EndIndex: 17}},
		},
		{
			name: "multi marker keeps textual order",
			text: "[12, 7,3] then",
			want: []Match{{FullMatch: "[12, 7,3]", Numbers: []int{12, 7, 3}, StartIndex: 0, EndIndex: 9}},
		},
		{
			name: "two markers",
			text: "a [1] b [2, 4]",
			want: []Match{
				{FullMatch: "[1]", Numbers: []int{1}, StartIndex: 2, EndIndex: 5},
				{FullMatch: "[2, 4]", Numbers: []int{2, 4}, StartIndex: 8, EndIndex: 14},
			},
		},
		{
			name: "non numeric brackets ignored",
			text: "see [Smith2020] and [a, 1] and [1,]",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestExtractIndicesSliceOriginal(t *testing.T) {
	text := "Growth was 40% [2, 5] over 2019 [5]."
	for _, m := range Extract(text) {
		require.Equal(t, m.FullMatch, text[m.StartIndex:m.EndIndex])
	}
}

func TestNumbersDedupesPreservingFirstOccurrence(t *testing.T) {
	got := Numbers("x [3, 1] y [1] z [2, 3]")
	assert.Equal(t, []int{3, 1, 2}, got)
}

func TestNumbersEmpty(t *testing.T) {
	assert.Empty(t, Numbers(""))
}

func TestStripMarkers(t *testing.T) {
	assert.Equal(t, "Costs fell sharply .", StripMarkers("Costs fell [1, 2] sharply [3]."))
}
