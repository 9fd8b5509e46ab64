// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation finds inline numeric citation markers and maintains the
// document-wide citation registry that assigns their reference numbers.
package citation

import (
	"regexp"
	"strconv"
	"strings"
)

// markerRe matches numeric citation markers like [3] or [3, 7, 12].
var markerRe = regexp.MustCompile(`\[(\d+(?:,\s*\d+)*)\]`)

// Match is one citation marker found in a text span.
type Match struct {
	// FullMatch is the marker as written, brackets included.
	FullMatch string `json:"full_match"`

	// Numbers lists the marker's numbers in textual order.
	Numbers []int `json:"numbers"`

	// StartIndex and EndIndex are the byte offsets of the marker in the span.
	StartIndex int `json:"start_index"`
	EndIndex   int `json:"end_index"`
}

// Extract returns every citation marker in text in order of appearance.
func Extract(text string) []Match {
	locs := markerRe.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		inner := text[loc[2]:loc[3]]
		var nums []int
		for _, part := range strings.Split(inner, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				// Digit runs too long for int; not a usable reference.
				continue
			}
			nums = append(nums, n)
		}
		matches = append(matches, Match{
			FullMatch:  text[loc[0]:loc[1]],
			Numbers:    nums,
			StartIndex: loc[0],
			EndIndex:   loc[1],
		})
	}
	return matches
}

// Numbers returns the distinct numbers cited in text, ordered by first
// occurrence.
func Numbers(text string) []int {
	var all []int
	for _, m := range Extract(text) {
		all = append(all, m.Numbers...)
	}
	return Dedupe(all)
}

// Dedupe removes repeated numbers, keeping the first occurrence of each.
func Dedupe(nums []int) []int {
	if len(nums) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(nums))
	out := make([]int, 0, len(nums))
	for _, n := range nums {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// StripMarkers removes all citation markers from text and collapses the
// whitespace they leave behind.
func StripMarkers(text string) string {
	return strings.Join(strings.Fields(markerRe.ReplaceAllString(text, " ")), " ")
}
