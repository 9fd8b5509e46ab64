// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"github.com/pdiddy/outline-engine/internal/citation"
	"github.com/pdiddy/outline-engine/pkg/types"
)

// Validate scans every fused response in doc for citation markers that do not
// resolve against reg under mode. reg should already be populated from doc.
// Each marker number is reported once per question, in document order.
func Validate(doc *types.Document, reg *citation.Registry, mode types.MarkerMode) []types.UnresolvedMarker {
	r := resolver{registry: reg, mode: mode}
	var missing []types.UnresolvedMarker
	for _, sec := range doc.Sections {
		for _, sub := range sec.Subsections {
			for qi, q := range sub.Questions {
				for _, k := range citation.Numbers(q.Fused()) {
					if _, ok := r.number(q, k); !ok {
						missing = append(missing, types.UnresolvedMarker{
							Path:   questionPath(sec, sub, qi),
							Number: k,
						})
					}
				}
			}
		}
	}
	return missing
}
