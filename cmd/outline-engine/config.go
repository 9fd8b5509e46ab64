// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/outline-engine/pkg/types"
)

func setDefaults() {
	d := types.DefaultSynthesisConfig()
	viper.SetDefault("synthesis.max_content", d.MaxContent)
	viper.SetDefault("synthesis.min_paragraph", d.MinParagraph)
	viper.SetDefault("synthesis.min_sentence", d.MinSentence)
	viper.SetDefault("synthesis.min_clause", d.MinClause)
	viper.SetDefault("synthesis.max_paragraphs", d.MaxParagraphs)
	viper.SetDefault("synthesis.max_sentences", d.MaxSentences)
	viper.SetDefault("synthesis.max_clauses", d.MaxClauses)
	viper.SetDefault("synthesis.specificity_threshold", d.SpecificityThreshold)

	viper.SetDefault("citations.markers", string(types.MarkersLocal))
	viper.SetDefault("assemble.workers", 4)
	viper.SetDefault("index.dir", "index")
	viper.SetDefault("index.max_results", 20)
}

func synthesisConfig() types.SynthesisConfig {
	return types.SynthesisConfig{
		CommentaryPatterns:   viper.GetStringSlice("synthesis.commentary_patterns"),
		MaxContent:           viper.GetInt("synthesis.max_content"),
		MinParagraph:         viper.GetInt("synthesis.min_paragraph"),
		MinSentence:          viper.GetInt("synthesis.min_sentence"),
		MinClause:            viper.GetInt("synthesis.min_clause"),
		MaxParagraphs:        viper.GetInt("synthesis.max_paragraphs"),
		MaxSentences:         viper.GetInt("synthesis.max_sentences"),
		MaxClauses:           viper.GetInt("synthesis.max_clauses"),
		SpecificityThreshold: viper.GetFloat64("synthesis.specificity_threshold"),
	}
}

func markerMode() types.MarkerMode {
	return types.MarkerMode(viper.GetString("citations.markers"))
}

func assembleConfig() types.AssembleConfig {
	return types.AssembleConfig{
		Synthesis: synthesisConfig(),
		Markers:   markerMode(),
		Workers:   viper.GetInt("assemble.workers"),
	}
}

func indexConfig() types.IndexConfig {
	return types.IndexConfig{
		Dir:        viper.GetString("index.dir"),
		MaxResults: viper.GetInt("index.max_results"),
	}
}
