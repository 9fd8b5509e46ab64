// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/pdiddy/outline-engine/pkg/types"
)

var (
	// ErrNoKey is returned for a citation with no apa, title, source, or author.
	ErrNoKey = errors.New("citation has no identifying field")

	// ErrKeyConflict is returned when a key is registered a second time with
	// materially different content. The first registration wins.
	ErrKeyConflict = errors.New("citation key registered with conflicting content")
)

// Registry assigns stable, first-seen-ordered reference numbers to citations
// by key. Numbers start at 1, are never reused, and are never renumbered for
// the life of the registry. A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	numbers map[string]int
	entries []types.Citation // entries[n-1] holds reference number n
}

// NewRegistry returns an empty registry for one document session.
func NewRegistry() *Registry {
	return &Registry{numbers: make(map[string]int)}
}

// Register returns the reference number for c, assigning the next unused
// number when c's key has not been seen. Repeated keys return the existing
// number; if the repeat carries materially different content the number is
// still returned together with an error wrapping ErrKeyConflict.
func (r *Registry) Register(c types.Citation) (int, error) {
	key := c.Key()
	if key == "" {
		return 0, ErrNoKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if n, ok := r.numbers[key]; ok {
		if field, differs := conflicts(r.entries[n-1], c); differs {
			return n, fmt.Errorf("%w: [%d] %q differs in %s", ErrKeyConflict, n, truncateKey(key), field)
		}
		return n, nil
	}

	r.entries = append(r.entries, c)
	n := len(r.entries)
	r.numbers[key] = n
	return n, nil
}

// NumberOf returns the reference number registered for c's key.
func (r *Registry) NumberOf(c types.Citation) (int, bool) {
	key := c.Key()
	if key == "" {
		return 0, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.numbers[key]
	return n, ok
}

// CitationOf returns the citation registered under reference number n.
// Callers render a miss as "no link available".
func (r *Registry) CitationOf(n int) (types.Citation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if n < 1 || n > len(r.entries) {
		return types.Citation{}, false
	}
	return r.entries[n-1], true
}

// Len returns the number of registered citations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// References returns every registered citation in reference-number order.
func (r *Registry) References() []types.Reference {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refs := make([]types.Reference, len(r.entries))
	for i, c := range r.entries {
		refs[i] = types.Reference{Number: i + 1, Citation: c}
	}
	return refs
}

// Populate registers every citation of doc in canonical order: sections,
// subsections, questions, then citations within a question. It is idempotent
// for an unchanged document. Citations that fail to register are skipped and
// their errors joined into the returned error; the walk always completes.
func (r *Registry) Populate(doc *types.Document) error {
	var errs []error
	for si, sec := range doc.Sections {
		for ssi, sub := range sec.Subsections {
			for qi, q := range sub.Questions {
				for ci, c := range q.Citations {
					if _, err := r.Register(c); err != nil {
						errs = append(errs, fmt.Errorf("section %d, subsection %d, question %d, citation %d: %w",
							si+1, ssi+1, qi+1, ci+1, err))
					}
				}
			}
		}
	}
	return errors.Join(errs...)
}

// conflicts reports the first field in which a and b both carry a value and
// the values differ after trimming.
func conflicts(a, b types.Citation) (string, bool) {
	fields := []struct {
		name string
		a, b string
	}{
		{"apa", a.APA, b.APA},
		{"title", a.Title, b.Title},
		{"source", a.Source, b.Source},
		{"author", a.Author, b.Author},
		{"description", a.Description, b.Description},
	}
	for _, f := range fields {
		x, y := strings.TrimSpace(f.a), strings.TrimSpace(f.b)
		if x != "" && y != "" && x != y {
			return f.name, true
		}
	}
	if len(a.MethodologyPoints) > 0 && len(b.MethodologyPoints) > 0 &&
		!slices.Equal(a.MethodologyPoints, b.MethodologyPoints) {
		return "methodologyPoints", true
	}
	return "", false
}

func truncateKey(key string) string {
	const limit = 60
	r := []rune(key)
	if len(r) <= limit {
		return key
	}
	return string(r[:limit-3]) + "..."
}
