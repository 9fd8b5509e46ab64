// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render formats assembled document outlines for reading.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/pdiddy/outline-engine/internal/citation"
	"github.com/pdiddy/outline-engine/pkg/types"
)

// spaceBeforePunct matches the gap a removed marker leaves before punctuation.
var spaceBeforePunct = regexp.MustCompile(`\s+([.,;:!?])`)

// Markdown renders out as a Markdown document: one heading per section and
// subsection, each master outline as a nested list, then the reference list.
// Node text carries resolved reference numbers in place of the generator's
// own markers.
func Markdown(out *types.DocumentOutline) string {
	var b strings.Builder
	if out.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", out.Title)
	}

	for _, sec := range out.Sections {
		fmt.Fprintf(&b, "## %s. %s\n\n", sec.Label, sec.Title)
		if sec.Context != "" {
			fmt.Fprintf(&b, "%s\n\n", sec.Context)
		}
		for _, sub := range sec.Subsections {
			fmt.Fprintf(&b, "### %s. %s\n\n", sub.Label, sub.Title)
			if sub.Context != "" {
				fmt.Fprintf(&b, "%s\n\n", sub.Context)
			}
			fmt.Fprintf(&b, "*%s · %d questions · %d citations*\n\n", sub.ReferencePath, sub.QuestionCount, sub.CitationCount)
			if len(sub.Points) > 0 {
				writeTree(&b, sub.Points)
				b.WriteString("\n")
			}
		}
	}

	if len(out.References) > 0 {
		b.WriteString("## References\n\n")
		for _, r := range out.References {
			fmt.Fprintf(&b, "%d. %s\n", r.Number, Reference(r.Citation))
		}
		b.WriteString("\n")
	}

	if len(out.Unresolved) > 0 {
		b.WriteString("## Unresolved citations\n\n")
		for _, u := range out.Unresolved {
			fmt.Fprintf(&b, "- %s: [%d]\n", u.Path, u.Number)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// HTML renders the Markdown form of out to HTML.
func HTML(out *types.DocumentOutline) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(Markdown(out)), &buf); err != nil {
		return "", fmt.Errorf("rendering html: %w", err)
	}
	return buf.String(), nil
}

// Reference formats one reference list entry. The APA string is preferred;
// otherwise the citation's label, with its source when that adds anything.
func Reference(c types.Citation) string {
	if apa := strings.TrimSpace(c.APA); apa != "" {
		return apa
	}
	label := c.Label()
	if src := strings.TrimSpace(c.Source); src != "" && src != label {
		return label + " (" + src + ")"
	}
	return label
}

// NodeText returns n's content with its inline markers replaced by the
// node's resolved reference numbers.
func NodeText(n *types.OutlineNode) string {
	text := spaceBeforePunct.ReplaceAllString(citation.StripMarkers(n.Content), "$1")
	if len(n.CitationRefs) == 0 {
		return text
	}
	nums := make([]string, len(n.CitationRefs))
	for i, r := range n.CitationRefs {
		nums[i] = strconv.Itoa(r)
	}
	refs := "[" + strings.Join(nums, ", ") + "]"
	if text == "" {
		return refs
	}
	return text + " " + refs
}

func writeTree(b *strings.Builder, tree types.OutlineTree) {
	tree.Walk(func(n *types.OutlineNode, depth int) bool {
		fmt.Fprintf(b, "%s- **%s** %s\n", strings.Repeat("  ", depth), n.Marker, NodeText(n))
		return true
	})
}
