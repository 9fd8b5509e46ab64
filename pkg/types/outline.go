// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Level is a position in the six-level outline grammar. The zero value is
// LevelNone and never appears in a built tree.
type Level int

const (
	LevelNone           Level = iota
	LevelNumeric              // 1.
	LevelLowercase            // a.
	LevelRoman                // i.
	LevelNumberParen          // 1)
	LevelLetterParen          // a)
	LevelRomanParenDeep       // (1)
)

// MaxLevel is the deepest grammar level.
const MaxLevel = LevelRomanParenDeep

var levelNames = map[Level]string{
	LevelNone:           "none",
	LevelNumeric:        "numeric",
	LevelLowercase:      "lowercase",
	LevelRoman:          "roman",
	LevelNumberParen:    "number_paren",
	LevelLetterParen:    "letter_paren",
	LevelRomanParenDeep: "roman_paren_deep",
}

// String returns the level's name.
func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Valid reports whether l is one of the six grammar levels.
func (l Level) Valid() bool {
	return l >= LevelNumeric && l <= MaxLevel
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name.
func (l *Level) UnmarshalText(b []byte) error {
	for k, v := range levelNames {
		if v == string(b) {
			*l = k
			return nil
		}
	}
	return fmt.Errorf("unknown outline level %q", string(b))
}

// ParseLevel returns the level with the given name.
func ParseLevel(name string) (Level, error) {
	var l Level
	err := l.UnmarshalText([]byte(name))
	return l, err
}

// OutlineNode is one point of a synthesized outline. A child's level is
// exactly one deeper than its parent's.
type OutlineNode struct {
	// Level is the node's grammar level.
	Level Level `json:"level" yaml:"level"`

	// Marker is the numbering token as displayed (e.g. "1.", "b.", "iv.", "2)").
	Marker string `json:"marker" yaml:"marker"`

	// Content is the node text without its marker. Never empty.
	Content string `json:"content" yaml:"content"`

	// CitationRefs lists the reference numbers cited by the node, ordered by
	// first occurrence with duplicates removed.
	CitationRefs []int `json:"citation_refs,omitempty" yaml:"citation_refs,omitempty"`

	// Provenance describes where the node came from.
	Provenance string `json:"provenance" yaml:"provenance"`

	// Placeholder marks the "no content available" leaf emitted when neither
	// the structured parse nor the fallback produced anything.
	Placeholder bool `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`

	// Children holds the nodes one level deeper.
	Children []*OutlineNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// OutlineTree is the ordered list of top-level nodes for one synthesized
// response.
type OutlineTree []*OutlineNode

// Walk visits every node depth-first in document order. Returning false from
// fn stops descent into that node's children.
func (t OutlineTree) Walk(fn func(n *OutlineNode, depth int) bool) {
	var walk func(nodes []*OutlineNode, depth int)
	walk = func(nodes []*OutlineNode, depth int) {
		for _, n := range nodes {
			if fn(n, depth) {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(t, 0)
}

// Count returns the total number of nodes in the tree.
func (t OutlineTree) Count() int {
	n := 0
	t.Walk(func(*OutlineNode, int) bool {
		n++
		return true
	})
	return n
}

// UnresolvedMarker records an inline [n] marker that could not be mapped to a
// registry reference number.
type UnresolvedMarker struct {
	// Path locates the question: "Section → Subsection → Question N".
	Path string `json:"path" yaml:"path"`

	// Number is the marker value as written.
	Number int `json:"number" yaml:"number"`
}

// SubsectionOutline is the master outline of one subsection: the outlines of
// all its questions merged and renumbered.
type SubsectionOutline struct {
	Label         string      `json:"label" yaml:"label"`
	Title         string      `json:"subsection_title" yaml:"subsection_title"`
	Context       string      `json:"subsection_context,omitempty" yaml:"subsection_context,omitempty"`
	Points        OutlineTree `json:"master_outline" yaml:"master_outline"`
	QuestionCount int         `json:"question_count" yaml:"question_count"`
	CitationCount int         `json:"citation_count" yaml:"citation_count"`
	ReferencePath string      `json:"reference_path" yaml:"reference_path"`
}

// SectionOutline holds the subsection outlines of one section.
type SectionOutline struct {
	Label       string              `json:"label" yaml:"label"`
	Title       string              `json:"section_title" yaml:"section_title"`
	Context     string              `json:"section_context,omitempty" yaml:"section_context,omitempty"`
	Subsections []SubsectionOutline `json:"subsections" yaml:"subsections"`
}

// DocumentOutline is the assembled outline of a whole document, with the
// reference list needed to resolve [n] markers.
type DocumentOutline struct {
	Title      string             `json:"title,omitempty" yaml:"title,omitempty"`
	Sections   []SectionOutline   `json:"sections" yaml:"sections"`
	References []Reference        `json:"references" yaml:"references"`
	Unresolved []UnresolvedMarker `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}
