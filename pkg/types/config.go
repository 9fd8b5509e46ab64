package types

// MarkerMode selects how inline [n] markers in a fused response map to
// registry reference numbers.
type MarkerMode string

const (
	// MarkersLocal treats [k] as a 1-based index into the question's own
	// citation list.
	MarkersLocal MarkerMode = "local"

	// MarkersGlobal treats [k] as a registry reference number already.
	MarkersGlobal MarkerMode = "global"
)

// SynthesisConfig holds the tunables of outline synthesis.
type SynthesisConfig struct {
	// CommentaryPatterns lists case-insensitive regular expressions for lines
	// that describe the outline rather than belong to it. Empty uses the
	// built-in list.
	CommentaryPatterns []string `json:"commentary_patterns,omitempty" yaml:"commentary_patterns,omitempty"`

	// MaxContent is the display length after which fallback content is
	// truncated with an ellipsis (default 180).
	MaxContent int `json:"max_content" yaml:"max_content"`

	// MinParagraph is the shortest paragraph kept by the fallback (default 30).
	MinParagraph int `json:"min_paragraph" yaml:"min_paragraph"`

	// MinSentence is the shortest sentence kept by the fallback (default 20).
	MinSentence int `json:"min_sentence" yaml:"min_sentence"`

	// MinClause is the shortest clause kept by the fallback (default 10).
	MinClause int `json:"min_clause" yaml:"min_clause"`

	// MaxParagraphs caps the fallback's paragraph points (default 3).
	MaxParagraphs int `json:"max_paragraphs" yaml:"max_paragraphs"`

	// MaxSentences caps sentence points per paragraph (default 3).
	MaxSentences int `json:"max_sentences" yaml:"max_sentences"`

	// MaxClauses caps clause points per sentence (default 2).
	MaxClauses int `json:"max_clauses" yaml:"max_clauses"`

	// SpecificityThreshold is the score a candidate sentence must exceed to be
	// chosen over the longest sentence (default 0).
	SpecificityThreshold float64 `json:"specificity_threshold" yaml:"specificity_threshold"`
}

// DefaultSynthesisConfig returns the synthesis defaults.
func DefaultSynthesisConfig() SynthesisConfig {
	return SynthesisConfig{
		MaxContent:    180,
		MinParagraph:  30,
		MinSentence:   20,
		MinClause:     10,
		MaxParagraphs: 3,
		MaxSentences:  3,
		MaxClauses:    2,
	}
}

// WithDefaults fills zero-valued numeric fields from DefaultSynthesisConfig.
func (c SynthesisConfig) WithDefaults() SynthesisConfig {
	d := DefaultSynthesisConfig()
	if c.MaxContent <= 0 {
		c.MaxContent = d.MaxContent
	}
	if c.MinParagraph <= 0 {
		c.MinParagraph = d.MinParagraph
	}
	if c.MinSentence <= 0 {
		c.MinSentence = d.MinSentence
	}
	if c.MinClause <= 0 {
		c.MinClause = d.MinClause
	}
	if c.MaxParagraphs <= 0 {
		c.MaxParagraphs = d.MaxParagraphs
	}
	if c.MaxSentences <= 0 {
		c.MaxSentences = d.MaxSentences
	}
	if c.MaxClauses <= 0 {
		c.MaxClauses = d.MaxClauses
	}
	return c
}

// AssembleConfig holds settings for whole-document assembly.
type AssembleConfig struct {
	Synthesis SynthesisConfig `json:"synthesis" yaml:"synthesis"`

	// Markers selects local or global marker resolution (default local).
	Markers MarkerMode `json:"markers" yaml:"markers"`

	// Workers bounds the number of subsections synthesized in parallel
	// (default 4).
	Workers int `json:"workers" yaml:"workers"`
}

// IndexConfig holds settings for the outline index.
type IndexConfig struct {
	// Dir is the directory holding the index database.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
