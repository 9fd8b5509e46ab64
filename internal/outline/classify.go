// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline turns generator prose into a numbered, multi-level outline.
// Lines are classified against the six-level marker grammar, folded into a
// tree by a single-pass builder, and, when no line carries a marker, the
// prose is segmented into paragraphs, sentences, and clauses instead.
//
// Everything in this package is pure and safe for concurrent use.
package outline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/outline-engine/internal/citation"
	"github.com/pdiddy/outline-engine/pkg/types"
)

// DefaultCommentaryPatterns matches generator lines that talk about the
// outline instead of belonging to it. Matching is case-insensitive.
var DefaultCommentaryPatterns = []string{
	`^Here is.*outline`,
	`^Below is.*outline`,
	`^This.*outline`,
	`^The.*outline`,
	`captures.*key points`,
	`master outline`,
	`combining.*arguments`,
	`grouped by`,
	`with contradictions`,
	`using.*format`,
	`^Contradictions?:`,
	`^None detected`,
	`across.*citations`,
	`without.*contradictions`,
	`highlighting.*rise`,
	`between sources`,
	`^Note:`,
	`^Summary:`,
	`^Conclusion:`,
}

// Filter recognizes commentary lines.
type Filter struct {
	patterns []*regexp.Regexp
}

// NewFilter compiles patterns case-insensitively. A nil or empty list uses
// DefaultCommentaryPatterns.
func NewFilter(patterns []string) (*Filter, error) {
	if len(patterns) == 0 {
		patterns = DefaultCommentaryPatterns
	}
	f := &Filter{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compiling commentary pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// IsCommentary reports whether line matches any commentary pattern.
func (f *Filter) IsCommentary(line string) bool {
	for _, re := range f.patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Patterns returns the source of the compiled patterns.
func (f *Filter) Patterns() []string {
	out := make([]string, len(f.patterns))
	for i, re := range f.patterns {
		out[i] = strings.TrimPrefix(re.String(), "(?i)")
	}
	return out
}

// Kind is the classifier's verdict on a line.
type Kind int

const (
	// KindOutline is a line carrying a grammar marker.
	KindOutline Kind = iota
	// KindCommentary is generator commentary; always discarded.
	KindCommentary
	// KindUnmatched is a line with no marker; dropped by the builder.
	KindUnmatched
)

func (k Kind) String() string {
	switch k {
	case KindOutline:
		return "outline"
	case KindCommentary:
		return "commentary"
	default:
		return "unmatched"
	}
}

// Line is one classified input line.
type Line struct {
	Kind  Kind
	Level types.Level

	// Marker is the marker token as written, punctuation included ("iv.", "2)").
	Marker string

	// Ordinal is the marker without punctuation ("iv", "2").
	Ordinal string

	// Content is the text after the marker.
	Content string

	// Citations lists the numbers of every marker in the whole line.
	Citations []int

	// Raw is the trimmed input line.
	Raw string
}

// RomanCandidate reports whether a lowercase-letter line could also be a
// single-character roman numeral (i., v., x.).
func (l Line) RomanCandidate() bool {
	return l.Level == types.LevelLowercase && (l.Ordinal == "i" || l.Ordinal == "v" || l.Ordinal == "x")
}

type levelRule struct {
	level  types.Level
	re     *regexp.Regexp
	marker func(ord string) string
}

// levelRules are tried in order; the first match wins.
var levelRules = []levelRule{
	{types.LevelNumeric, regexp.MustCompile(`^(\d+)\.\s+(.+)`), func(o string) string { return o + "." }},
	{types.LevelLowercase, regexp.MustCompile(`^([a-z])\.\s+(.+)`), func(o string) string { return o + "." }},
	{types.LevelRoman, regexp.MustCompile(`^(xv|xiv|xiii|xii|xi|x|ix|viii|vii|vi|v|iv|iii|ii|i)\.\s+(.+)`), func(o string) string { return o + "." }},
	{types.LevelNumberParen, regexp.MustCompile(`^(\d+)\)\s+(.+)`), func(o string) string { return o + ")" }},
	{types.LevelLetterParen, regexp.MustCompile(`^([a-z])\)\s+(.+)`), func(o string) string { return o + ")" }},
	{types.LevelRomanParenDeep, regexp.MustCompile(`^\((\d+)\)\s+(.+)`), func(o string) string { return "(" + o + ")" }},
}

// Classifier assigns lines to commentary, an outline level, or unmatched.
type Classifier struct {
	filter *Filter
}

// NewClassifier returns a classifier using f for commentary detection.
func NewClassifier(f *Filter) *Classifier {
	return &Classifier{filter: f}
}

// Classify classifies one line. Commentary is checked before the level
// grammar. Citation markers are read from the whole line, so markers placed
// before the content are still found.
func (c *Classifier) Classify(line string) Line {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return Line{Kind: KindUnmatched}
	}
	if c.filter.IsCommentary(raw) {
		return Line{Kind: KindCommentary, Raw: raw}
	}
	for _, rule := range levelRules {
		m := rule.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		return Line{
			Kind:      KindOutline,
			Level:     rule.level,
			Marker:    rule.marker(m[1]),
			Ordinal:   m[1],
			Content:   strings.TrimSpace(m[2]),
			Citations: citation.Numbers(raw),
			Raw:       raw,
		}
	}
	return Line{Kind: KindUnmatched, Raw: raw}
}

// ClassifyText splits text into lines and classifies each non-blank one.
func (c *Classifier) ClassifyText(text string) []Line {
	var out []Line
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, c.Classify(l))
	}
	return out
}
