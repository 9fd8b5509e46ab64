// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/outline-engine/internal/citation"
	"github.com/pdiddy/outline-engine/internal/specificity"
	"github.com/pdiddy/outline-engine/pkg/types"
)

const (
	provenanceParagraph   = "Supporting analysis from literature review"
	provenanceSentence    = "Supporting evidence from analysis"
	provenanceClause      = "Further detail"
	provenancePlaceholder = "No structured or paragraph content in response"

	// PlaceholderContent is the content of the placeholder leaf.
	PlaceholderContent = "No content available"

	defaultHeading = "Analysis of research findings"
	ellipsis       = "..."
)

var (
	paragraphBreakRe = regexp.MustCompile(`\n[ \t\r]*\n`)
	sentenceEndRe    = regexp.MustCompile(`\.(?:\s+|$)`)
	mainSentenceRe   = regexp.MustCompile(`[.!?](?:\s+|$)`)
)

// Placeholder returns the leaf emitted when a response yields no outline at
// all.
func Placeholder() *types.OutlineNode {
	return &types.OutlineNode{
		Level:       types.LevelNumeric,
		Marker:      "1.",
		Content:     PlaceholderContent,
		Provenance:  provenancePlaceholder,
		Placeholder: true,
	}
}

// fallback segments unmarked prose into a three-level outline under a single
// main point: paragraphs (a.), their sentences (i.), and the sentences'
// clauses (1)). Commentary lines are removed first. When no paragraph
// survives, the tree is the placeholder leaf alone.
func (s *Synthesizer) fallback(text, heading string) types.OutlineTree {
	body := s.stripCommentary(text)

	var points []*types.OutlineNode
	for _, para := range s.paragraphs(body) {
		marker := Letter(len(points)+1) + "."
		content := truncate(collapse(para), s.cfg.MaxContent)
		if s.rejects(marker, content) {
			continue
		}
		points = append(points, &types.OutlineNode{
			Level:        types.LevelLowercase,
			Marker:       marker,
			Content:      content,
			CitationRefs: citation.Numbers(para),
			Provenance:   provenanceParagraph,
			Children:     s.sentencePoints(para),
		})
	}
	if len(points) == 0 {
		return types.OutlineTree{Placeholder()}
	}

	root := &types.OutlineNode{
		Level:        types.LevelNumeric,
		Marker:       "1.",
		Content:      s.mainPoint(body, heading),
		CitationRefs: citation.Numbers(body),
		Provenance:   levelProvenance[types.LevelNumeric],
		Children:     points,
	}
	return types.OutlineTree{root}
}

func (s *Synthesizer) stripCommentary(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" && s.filter.IsCommentary(t) {
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, "\n")
}

// rejects reports whether a point would be read back as commentary. Lines
// are filtered one at a time before segmentation, so joining a paragraph's
// lines can still form a commentary phrase.
func (s *Synthesizer) rejects(marker, content string) bool {
	return s.filter.IsCommentary(content) || s.filter.IsCommentary(marker+" "+content)
}

// paragraphs returns the paragraphs used as points: long enough ones, minus
// the first (taken to be an introduction), capped at MaxParagraphs.
func (s *Synthesizer) paragraphs(body string) []string {
	var retained []string
	for _, p := range paragraphBreakRe.Split(body, -1) {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) < s.cfg.MinParagraph || s.filter.IsCommentary(collapse(p)) {
			continue
		}
		retained = append(retained, p)
	}
	if len(retained) <= 1 {
		return nil
	}
	retained = retained[1:]
	if len(retained) > s.cfg.MaxParagraphs {
		retained = retained[:s.cfg.MaxParagraphs]
	}
	return retained
}

func (s *Synthesizer) sentencePoints(para string) []*types.OutlineNode {
	var nodes []*types.OutlineNode
	for _, sentence := range sentenceEndRe.Split(para, -1) {
		sentence = collapse(sentence)
		if utf8.RuneCountInString(sentence) < s.cfg.MinSentence {
			continue
		}
		content := sentence
		if !strings.HasSuffix(content, ".") && !strings.HasSuffix(content, "!") && !strings.HasSuffix(content, "?") {
			content += "."
		}
		marker := Roman(len(nodes)+1) + "."
		content = truncate(content, s.cfg.MaxContent)
		if s.rejects(marker, content) {
			continue
		}
		nodes = append(nodes, &types.OutlineNode{
			Level:        types.LevelRoman,
			Marker:       marker,
			Content:      content,
			CitationRefs: citation.Numbers(sentence),
			Provenance:   provenanceSentence,
			Children:     s.clausePoints(sentence),
		})
		if len(nodes) == s.cfg.MaxSentences {
			break
		}
	}
	return nodes
}

func (s *Synthesizer) clausePoints(sentence string) []*types.OutlineNode {
	var nodes []*types.OutlineNode
	for _, clause := range splitClauses(sentence) {
		clause = collapse(clause)
		if utf8.RuneCountInString(clause) < s.cfg.MinClause {
			continue
		}
		marker := strconv.Itoa(len(nodes)+1) + ")"
		content := truncate(clause, s.cfg.MaxContent)
		if s.rejects(marker, content) {
			continue
		}
		nodes = append(nodes, &types.OutlineNode{
			Level:        types.LevelNumberParen,
			Marker:       marker,
			Content:      content,
			CitationRefs: citation.Numbers(clause),
			Provenance:   provenanceClause,
		})
		if len(nodes) == s.cfg.MaxClauses {
			break
		}
	}
	return nodes
}

// mainPoint picks the root content: the most specific sentence of the body,
// else the heading, else a generic label. Commentary candidates are skipped.
func (s *Synthesizer) mainPoint(body, heading string) string {
	var candidates []string
	for _, sentence := range mainSentenceRe.Split(body, -1) {
		sentence = collapse(sentence)
		if utf8.RuneCountInString(sentence) < s.cfg.MinSentence || s.rejects("1.", truncate(sentence, s.cfg.MaxContent)) {
			continue
		}
		candidates = append(candidates, sentence)
	}
	if best := specificity.Select(candidates, s.cfg.SpecificityThreshold); best != "" {
		return truncate(best, s.cfg.MaxContent)
	}
	if h := truncate(collapse(heading), s.cfg.MaxContent); h != "" && !s.rejects("1.", h) {
		return h
	}
	return defaultHeading
}

// splitClauses splits on commas and semicolons that sit outside square
// brackets, so [1, 2] markers stay whole.
func splitClauses(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ',', ';':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens s to limit runes, ending with an ellipsis when cut.
func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:limit])) + ellipsis
}
