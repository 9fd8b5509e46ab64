// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package specificity ranks text spans by how factually concrete they read.
// Scores only select among spans already present in the input; nothing here
// produces text.
package specificity

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Signal weights.
const (
	yearWeight       = 3.0
	percentWeight    = 3.0
	dollarWeight     = 2.0
	integerWeight    = 1.0
	properNounWeight = 0.5
	hedgeWeight      = -1.0
	metaOpenerWeight = -2.0
)

var (
	citeMarkerRe = regexp.MustCompile(`\[\d+(?:,\s*\d+)*\]`)
	yearRe       = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	percentRe    = regexp.MustCompile(`\d+(?:\.\d+)?\s?%`)
	dollarRe     = regexp.MustCompile(`\$\s?\d[\d,]*(?:\.\d+)?(?:\s?(?:million|billion|trillion|thousand|[KMB])\b)?`)
	integerRe    = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	properNounRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
	hedgeRe      = regexp.MustCompile(`(?i)\b(?:comprehensive|systematic|detailed|thorough)\b`)
	metaOpenerRe = regexp.MustCompile(`(?i)^\s*this\s+(?:study|paper|research|article)\b`)
)

// Signals counts each heuristic found in a span.
type Signals struct {
	Years       int  `json:"years"`
	Percentages int  `json:"percentages"`
	Dollars     int  `json:"dollars"`
	Integers    int  `json:"integers"`
	ProperNouns int  `json:"proper_nouns"`
	Hedges      int  `json:"hedges"`
	MetaOpener  bool `json:"meta_opener"`
}

// Score returns the weighted sum of the signals.
func (s Signals) Score() float64 {
	score := float64(s.Years)*yearWeight +
		float64(s.Percentages)*percentWeight +
		float64(s.Dollars)*dollarWeight +
		float64(s.Integers)*integerWeight +
		float64(s.ProperNouns)*properNounWeight +
		float64(s.Hedges)*hedgeWeight
	if s.MetaOpener {
		score += metaOpenerWeight
	}
	return score
}

// Detect counts the specificity signals in text. Citation markers are not
// counted as numbers, and a number counted as a year, percentage, or dollar
// amount is not counted again as a bare integer.
func Detect(text string) Signals {
	body := citeMarkerRe.ReplaceAllString(text, " ")

	var s Signals
	s.MetaOpener = metaOpenerRe.MatchString(body)
	s.Hedges = len(hedgeRe.FindAllStringIndex(body, -1))
	s.ProperNouns = len(properNounRe.FindAllStringIndex(body, -1))

	s.Dollars = len(dollarRe.FindAllStringIndex(body, -1))
	body = dollarRe.ReplaceAllString(body, " ")
	s.Percentages = len(percentRe.FindAllStringIndex(body, -1))
	body = percentRe.ReplaceAllString(body, " ")
	s.Years = len(yearRe.FindAllStringIndex(body, -1))
	body = yearRe.ReplaceAllString(body, " ")
	s.Integers = len(integerRe.FindAllStringIndex(body, -1))
	return s
}

// Score returns the specificity score of text.
func Score(text string) float64 {
	return Detect(text).Score()
}

// Select returns the candidate with the highest score when that score is
// above threshold; ties go to the earlier candidate. When no candidate clears
// the threshold it returns the longest candidate. It returns "" only when
// candidates is empty or every candidate is blank.
func Select(candidates []string, threshold float64) string {
	best, bestScore := -1, 0.0
	longest, longestLen := -1, 0
	for i, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if sc := Score(c); best < 0 || sc > bestScore {
			best, bestScore = i, sc
		}
		if n := utf8.RuneCountInString(c); n > longestLen {
			longest, longestLen = i, n
		}
	}
	switch {
	case best >= 0 && bestScore > threshold:
		return strings.TrimSpace(candidates[best])
	case longest >= 0:
		return strings.TrimSpace(candidates[longest])
	default:
		return ""
	}
}
