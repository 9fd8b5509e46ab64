// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"strconv"
	"strings"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// Lines renders tree back to marker-prefixed lines, two spaces of indent per
// depth. Classifying the result rebuilds an equivalent tree, except where a
// roman i., v. or x. child directly follows the lowercase letter before it
// (h. then i.): on re-parse that child is read as the next letter.
func Lines(tree types.OutlineTree) []string {
	var out []string
	tree.Walk(func(n *types.OutlineNode, depth int) bool {
		out = append(out, strings.Repeat("  ", depth)+n.Marker+" "+n.Content)
		return true
	})
	return out
}

// Text is Lines joined with newlines.
func Text(tree types.OutlineTree) string {
	return strings.Join(Lines(tree), "\n")
}

// Renumber rewrites the markers of the top-level nodes to start, start+1, ...
// and returns the next unused number.
func Renumber(tree types.OutlineTree, start int) int {
	for _, n := range tree {
		n.Marker = strconv.Itoa(start) + "."
		start++
	}
	return start
}

