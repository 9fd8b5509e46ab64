// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"strings"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// Provenance labels for nodes built from marked lines.
var levelProvenance = map[types.Level]string{
	types.LevelNumeric:        "From fused literature analysis",
	types.LevelLowercase:      "Supporting evidence from literature",
	types.LevelRoman:          "Detailed evidence",
	types.LevelNumberParen:    "Specific detail",
	types.LevelLetterParen:    "Supporting detail",
	types.LevelRomanParenDeep: "Further detail",
}

// Stats counts what happened to the lines of one build.
type Stats struct {
	Lines      int `json:"lines"`
	Attached   int `json:"attached"`
	Commentary int `json:"commentary"`
	Unmatched  int `json:"unmatched"`
	Orphans    int `json:"orphans"`
}

// ParseCursor holds the most recent node at each of the five levels that can
// take children. It lives for a single Build call.
type ParseCursor struct {
	slots [5]*types.OutlineNode
}

// parent returns the node a line at level l attaches to, or nil when l has no
// open parent. Numeric lines have no parent and are never orphans.
func (c *ParseCursor) parent(l types.Level) *types.OutlineNode {
	if l <= types.LevelNumeric || l > types.MaxLevel {
		return nil
	}
	return c.slots[l-2]
}

// open records n as the current node at level l and closes every deeper level.
func (c *ParseCursor) open(l types.Level, n *types.OutlineNode) {
	idx := int(l) - 1
	if idx >= len(c.slots) {
		return
	}
	c.slots[idx] = n
	for i := idx + 1; i < len(c.slots); i++ {
		c.slots[i] = nil
	}
}

// Build folds classified lines into an outline tree in one pass. A line whose
// level has no open parent is dropped as an orphan; commentary and unmatched
// lines are dropped. The returned tree may be empty.
func Build(lines []Line) (types.OutlineTree, Stats) {
	var (
		tree   types.OutlineTree
		cursor ParseCursor
		stats  Stats
	)

	for _, line := range lines {
		stats.Lines++
		switch line.Kind {
		case KindCommentary:
			stats.Commentary++
			continue
		case KindUnmatched:
			stats.Unmatched++
			continue
		}

		level := resolveLevel(line, &cursor)
		node := &types.OutlineNode{
			Level:        level,
			Marker:       line.Marker,
			Content:      line.Content,
			CitationRefs: line.Citations,
			Provenance:   levelProvenance[level],
		}

		if level == types.LevelNumeric {
			tree = append(tree, node)
			cursor.open(level, node)
			stats.Attached++
			continue
		}

		parent := cursor.parent(level)
		if parent == nil {
			stats.Orphans++
			continue
		}
		parent.Children = append(parent.Children, node)
		cursor.open(level, node)
		stats.Attached++
	}

	return tree, stats
}

// resolveLevel settles the i./v./x. ambiguity: such a line is a lowercase
// letter when it continues the open lowercase sequence (h. → i.) or when no
// lowercase node is open, and a roman numeral otherwise.
func resolveLevel(line Line, cursor *ParseCursor) types.Level {
	if !line.RomanCandidate() {
		return line.Level
	}
	prev := cursor.slots[types.LevelLowercase-1]
	if prev == nil {
		return line.Level
	}
	letter := strings.TrimSuffix(prev.Marker, ".")
	if len(letter) == 1 && letter[0]+1 == line.Ordinal[0] {
		return types.LevelLowercase
	}
	return types.LevelRoman
}
