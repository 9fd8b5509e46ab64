// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Citation is one source attached to a research question. Identity is the
// derived Key, not the struct value.
type Citation struct {
	// APA is the formatted APA reference string.
	APA string `json:"apa,omitempty" yaml:"apa,omitempty"`

	// Title is the source title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Source names the publication or origin of the citation.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Author is the author line as supplied by the knowledge base.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Description summarizes the source.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// MethodologyPoints lists methodology notes extracted for the source.
	MethodologyPoints []string `json:"methodologyPoints,omitempty" yaml:"methodologyPoints,omitempty"`

	// Categories lists the source categories the citation was retrieved for.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// Key returns the citation's identity: the first non-empty of APA, Title,
// Source, Author (whitespace-trimmed). It returns "" when all are empty.
func (c Citation) Key() string {
	for _, v := range []string{c.APA, c.Title, c.Source, c.Author} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// Label returns a short display name for the citation.
func (c Citation) Label() string {
	for _, v := range []string{c.Title, c.APA, c.Source, c.Author} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return "Unknown Citation"
}

// Reference pairs a registry reference number with its citation.
type Reference struct {
	Number   int      `json:"number" yaml:"number"`
	Citation Citation `json:"citation" yaml:"citation"`
}
