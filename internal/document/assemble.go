// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/outline-engine/internal/citation"
	"github.com/pdiddy/outline-engine/internal/outline"
	"github.com/pdiddy/outline-engine/pkg/types"
)

const defaultWorkers = 4

// Assembler builds document outlines. The registry it is given is the
// document session's; reference numbers assigned by one Assemble call are
// kept by later calls on the same registry.
type Assembler struct {
	synth    *outline.Synthesizer
	registry *citation.Registry
	resolver resolver
	workers  int
	logger   *zap.Logger
}

// NewAssembler returns an assembler over reg. A nil logger discards output.
func NewAssembler(cfg types.AssembleConfig, reg *citation.Registry, logger *zap.Logger) (*Assembler, error) {
	synth, err := outline.NewSynthesizer(cfg.Synthesis)
	if err != nil {
		return nil, fmt.Errorf("synthesis config: %w", err)
	}
	mode := cfg.Markers
	if mode == "" {
		mode = types.MarkersLocal
	}
	if mode != types.MarkersLocal && mode != types.MarkersGlobal {
		return nil, fmt.Errorf("unknown marker mode %q", mode)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		synth:    synth,
		registry: reg,
		resolver: resolver{registry: reg, mode: mode},
		workers:  workers,
		logger:   logger,
	}, nil
}

// subsectionResult is one worker's output, written to its own slot.
type subsectionResult struct {
	outline    types.SubsectionOutline
	unresolved []types.UnresolvedMarker
}

// Assemble numbers every citation in doc, synthesizes the master outline of
// each subsection, and returns the document outline with its reference list.
// Citation registration problems are logged and do not stop assembly; a
// cancelled context does.
func (a *Assembler) Assemble(ctx context.Context, doc *types.Document) (*types.DocumentOutline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Numbering happens in one sequential pass before any parallel work so
	// reference numbers follow document order.
	if err := a.registry.Populate(doc); err != nil {
		a.logRegistryErrors(err)
	}

	type job struct{ si, ssi int }
	var jobs []job
	slots := make([][]subsectionResult, len(doc.Sections))
	for si, sec := range doc.Sections {
		slots[si] = make([]subsectionResult, len(sec.Subsections))
		for ssi := range sec.Subsections {
			jobs = append(jobs, job{si, ssi})
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.workers)
	for _, j := range jobs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			sec := doc.Sections[j.si]
			slots[j.si][j.ssi] = a.subsection(sec, sec.Subsections[j.ssi], j.ssi)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("assembling %q: %w", doc.Title, err)
	}

	out := &types.DocumentOutline{
		Title:    doc.Title,
		Sections: make([]types.SectionOutline, len(doc.Sections)),
	}
	for si, sec := range doc.Sections {
		so := types.SectionOutline{
			Label:       outline.UpperRoman(si + 1),
			Title:       sec.Title,
			Context:     sec.Context,
			Subsections: make([]types.SubsectionOutline, len(sec.Subsections)),
		}
		for ssi, res := range slots[si] {
			so.Subsections[ssi] = res.outline
			out.Unresolved = append(out.Unresolved, res.unresolved...)
		}
		out.Sections[si] = so
	}
	out.References = a.registry.References()

	a.logger.Info("assembled document",
		zap.String("title", doc.Title),
		zap.Int("sections", len(out.Sections)),
		zap.Int("subsections", len(jobs)),
		zap.Int("references", len(out.References)),
		zap.Int("unresolved", len(out.Unresolved)),
	)
	return out, nil
}

// subsection synthesizes the master outline of one subsection. Top-level
// points are renumbered across its questions and carry the question that
// produced them as provenance.
func (a *Assembler) subsection(sec types.Section, sub types.Subsection, ssi int) subsectionResult {
	label := outline.UpperLetter(ssi + 1)
	res := subsectionResult{
		outline: types.SubsectionOutline{
			Label:         label,
			Title:         sub.Title,
			Context:       sub.Context,
			Points:        types.OutlineTree{},
			QuestionCount: len(sub.Questions),
			CitationCount: sub.CitationCount(),
			ReferencePath: fmt.Sprintf("Section %s → Subsection %s", sec.Title, sub.Title),
		},
	}

	next := 1
	for qi, q := range sub.Questions {
		if len(q.Responses) == 0 {
			continue
		}
		path := questionPath(sec, sub, qi)
		syn := a.synth.Synthesize(q.Fused(), q.Text)
		res.unresolved = append(res.unresolved, a.resolver.tree(syn.Tree, q, path)...)

		a.logger.Debug("synthesized question",
			zap.String("path", path),
			zap.Int("nodes", syn.Tree.Count()),
			zap.Bool("fallback", syn.Fallback),
			zap.Int("lines", syn.Stats.Lines),
			zap.Int("commentary", syn.Stats.Commentary),
			zap.Int("unmatched", syn.Stats.Unmatched),
			zap.Int("orphans", syn.Stats.Orphans),
		)

		provenance := fmt.Sprintf("Research Question %d: %s", qi+1, q.Text)
		for _, n := range syn.Tree {
			n.Provenance = provenance
		}
		next = outline.Renumber(syn.Tree, next)
		res.outline.Points = append(res.outline.Points, syn.Tree...)
	}
	return res
}

func (a *Assembler) logRegistryErrors(err error) {
	var joined interface{ Unwrap() []error }
	errs := []error{err}
	if errors.As(err, &joined) {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		if errors.Is(e, citation.ErrKeyConflict) {
			a.logger.Error("citation conflict", zap.Error(e))
			continue
		}
		a.logger.Warn("citation skipped", zap.Error(e))
	}
}
