// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"github.com/pdiddy/outline-engine/pkg/types"
)

// Result is the outcome of synthesizing one response.
type Result struct {
	// Tree is never empty: it holds the structured outline, the fallback
	// outline, or the placeholder leaf.
	Tree types.OutlineTree `json:"tree" yaml:"tree"`

	// Stats describes the structured parse.
	Stats Stats `json:"stats" yaml:"stats"`

	// Fallback reports whether the tree came from paragraph segmentation.
	Fallback bool `json:"fallback" yaml:"fallback"`
}

// Synthesizer converts response text into an outline tree. It holds only
// immutable configuration and may be shared across goroutines.
type Synthesizer struct {
	cfg        types.SynthesisConfig
	filter     *Filter
	classifier *Classifier
}

// NewSynthesizer builds a synthesizer from cfg. Zero numeric settings take
// their defaults; an invalid commentary pattern is an error.
func NewSynthesizer(cfg types.SynthesisConfig) (*Synthesizer, error) {
	f, err := NewFilter(cfg.CommentaryPatterns)
	if err != nil {
		return nil, err
	}
	return &Synthesizer{
		cfg:        cfg.WithDefaults(),
		filter:     f,
		classifier: NewClassifier(f),
	}, nil
}

// Classifier returns the synthesizer's line classifier.
func (s *Synthesizer) Classifier() *Classifier {
	return s.classifier
}

// Synthesize parses text into an outline. Marked lines are built into a tree;
// only when that tree is empty does the paragraph fallback run. heading is
// used as the fallback's main point when the text has no usable sentence and
// may be empty. Synthesize never fails.
func (s *Synthesizer) Synthesize(text, heading string) Result {
	tree, stats := Build(s.classifier.ClassifyText(text))
	if len(tree) > 0 {
		return Result{Tree: tree, Stats: stats}
	}
	return Result{Tree: s.fallback(text, heading), Stats: stats, Fallback: true}
}
