// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"

	"github.com/pdiddy/outline-engine/internal/citation"
	"github.com/pdiddy/outline-engine/pkg/types"
)

// resolver maps a question's inline marker numbers to registry numbers.
type resolver struct {
	registry *citation.Registry
	mode     types.MarkerMode
}

// number returns the registry number for marker k in question q.
func (r resolver) number(q types.Question, k int) (int, bool) {
	if r.mode == types.MarkersGlobal {
		_, ok := r.registry.CitationOf(k)
		return k, ok
	}
	if k < 1 || k > len(q.Citations) {
		return 0, false
	}
	return r.registry.NumberOf(q.Citations[k-1])
}

// tree rewrites every node's citation refs to registry numbers and returns
// the marker numbers that did not resolve, each once, in first-seen order.
func (r resolver) tree(t types.OutlineTree, q types.Question, path string) []types.UnresolvedMarker {
	var (
		missed []types.UnresolvedMarker
		seen   = make(map[int]bool)
	)
	t.Walk(func(n *types.OutlineNode, _ int) bool {
		if len(n.CitationRefs) == 0 {
			return true
		}
		resolved := make([]int, 0, len(n.CitationRefs))
		for _, k := range n.CitationRefs {
			num, ok := r.number(q, k)
			if !ok {
				if !seen[k] {
					seen[k] = true
					missed = append(missed, types.UnresolvedMarker{Path: path, Number: k})
				}
				continue
			}
			resolved = append(resolved, num)
		}
		n.CitationRefs = citation.Dedupe(resolved)
		return true
	})
	return missed
}

func questionPath(sec types.Section, sub types.Subsection, qi int) string {
	return fmt.Sprintf("%s → %s → Question %d", sec.Title, sub.Title, qi+1)
}
