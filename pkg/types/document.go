// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Document is the research document a session works on: sections hold
// subsections, subsections hold research questions, and each question holds
// its citations and the generator's responses.
type Document struct {
	// Title is the document or thesis title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Sections lists the document's sections in order.
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section is a top-level division of the document.
type Section struct {
	Title       string       `json:"section_title" yaml:"section_title"`
	Context     string       `json:"section_context,omitempty" yaml:"section_context,omitempty"`
	Subsections []Subsection `json:"subsections,omitempty" yaml:"subsections,omitempty"`
}

// Subsection groups the research questions of one part of a section.
type Subsection struct {
	Title     string     `json:"subsection_title" yaml:"subsection_title"`
	Context   string     `json:"subsection_context,omitempty" yaml:"subsection_context,omitempty"`
	Questions []Question `json:"questions,omitempty" yaml:"questions,omitempty"`
}

// Question is one research question with its supporting citations.
type Question struct {
	// Text is the research question.
	Text string `json:"question" yaml:"question"`

	// Citations lists the sources retrieved for the question, in order.
	Citations []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`

	// Responses holds the generator output for the question. Earlier entries
	// are per-citation responses; the last entry is the fused response.
	Responses []string `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// Fused returns the question's fused response, or "" when there is none.
func (q Question) Fused() string {
	if len(q.Responses) == 0 {
		return ""
	}
	return q.Responses[len(q.Responses)-1]
}

// CitationCount returns the number of citations across all questions.
func (s Subsection) CitationCount() int {
	n := 0
	for _, q := range s.Questions {
		n += len(q.Citations)
	}
	return n
}
