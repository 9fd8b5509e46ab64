// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package specificity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Signals
	}{
		{
			name: "concrete sentence",
			text: "In 2019 adoption grew 40% to $5 million across 12 states in New South Wales.",
			want: Signals{Years: 1, Percentages: 1, Dollars: 1, Integers: 1, ProperNouns: 1},
		},
		{
			name: "meta opener with hedges",
			text: "This study provides a comprehensive and systematic review.",
			want: Signals{Hedges: 2, MetaOpener: true},
		},
		{
			name: "citation markers are not numbers",
			text: "Results [12, 13] were clear [4].",
			want: Signals{},
		},
		{
			name: "decimal counts once",
			text: "The ratio reached 3.5 overall.",
			want: Signals{Integers: 1},
		},
		{
			name: "opener only at start",
			text: "We note that this paper is short.",
			want: Signals{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text))
		})
	}
}

func TestScore(t *testing.T) {
	assert.InDelta(t, 9.5, Score("In 2019 adoption grew 40% to $5 million across 12 states in New South Wales."), 1e-9)
	assert.InDelta(t, -4.0, Score("This study provides a comprehensive and systematic review."), 1e-9)
	assert.Zero(t, Score(""))
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		threshold  float64
		want       string
	}{
		{
			name:       "most specific wins",
			candidates: []string{"This paper presents a detailed overview", "Prices fell 20% in 2021", "short"},
			want:       "Prices fell 20% in 2021",
		},
		{
			name:       "nothing above threshold returns longest",
			candidates: []string{"alpha beta", "a much longer sentence without numbers"},
			want:       "a much longer sentence without numbers",
		},
		{
			name:       "high threshold falls back to longest",
			candidates: []string{"Grew 10%", "a considerably longer plain sentence"},
			threshold:  5,
			want:       "a considerably longer plain sentence",
		},
		{
			name:       "tie keeps earlier candidate",
			candidates: []string{"Grew 10%", "Fell 15%"},
			want:       "Grew 10%",
		},
		{
			name:       "blank candidates ignored",
			candidates: []string{"   ", "  kept text  "},
			want:       "kept text",
		},
		{
			name: "empty",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(tt.candidates, tt.threshold))
		})
	}
}
