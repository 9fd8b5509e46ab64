// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/outline-engine/internal/citation"
	"github.com/pdiddy/outline-engine/internal/document"
	"github.com/pdiddy/outline-engine/internal/index"
	"github.com/pdiddy/outline-engine/internal/render"
	"github.com/pdiddy/outline-engine/pkg/types"
)

// --- assemble ---

var assembleCmd = &cobra.Command{
	Use:   "assemble <document>",
	Short: "Build the master outline and reference list of a document",
	Long: `Assemble loads a document (YAML or JSON), numbers every citation in
document order, synthesizes the master outline of each subsection from its
questions' fused responses, and writes the result as Markdown, HTML, JSON,
or YAML. With --index the outline is also stored in the outline index.`,
	Args: cobra.ExactArgs(1),
	RunE: runAssemble,
}

func runAssemble(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	store, _ := cmd.Flags().GetBool("index")

	out, err := assembleDocument(cmd, args[0])
	if err != nil {
		return err
	}

	if store {
		id, err := storeOutline(cmd, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Stored outline %s\n", id)
	}

	w := cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outputPath, err)
		}
		defer f.Close()
		w = f
	}
	return writeOutline(w, format, out)
}

func assembleDocument(cmd *cobra.Command, path string) (*types.DocumentOutline, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	cfg := assembleConfig()
	cfg.Markers = markerModeFor(cmd)
	a, err := document.NewAssembler(cfg, citation.NewRegistry(), logger)
	if err != nil {
		return nil, err
	}
	return a.Assemble(cmd.Context(), doc)
}

func storeOutline(cmd *cobra.Command, out *types.DocumentOutline) (string, error) {
	s, err := index.NewStore(indexConfig(), logger)
	if err != nil {
		return "", err
	}
	defer s.Close()
	return s.Put(cmd.Context(), out)
}

func writeOutline(w io.Writer, format string, out *types.DocumentOutline) error {
	switch format {
	case "markdown", "md", "":
		_, err := io.WriteString(w, render.Markdown(out))
		return err
	case "html":
		html, err := render.HTML(out)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err
	case "json", "yaml":
		return encode(w, format, out)
	default:
		return fmt.Errorf("unsupported format %q: use markdown, html, json, or yaml", format)
	}
}

// --- references ---

var referencesCmd = &cobra.Command{
	Use:   "references <document>",
	Short: "Print the numbered reference list of a document",
	Long: `References numbers every citation in the document in canonical order
(sections, subsections, questions, citations) and prints the list. A
citation repeated anywhere in the document keeps its first number.`,
	Args: cobra.ExactArgs(1),
	RunE: runReferences,
}

func runReferences(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}
	reg := citation.NewRegistry()
	if err := reg.Populate(doc); err != nil {
		logger.Warn("citation registry", zap.Error(err))
	}
	refs := reg.References()

	switch format {
	case "text", "":
		w := cmd.OutOrStdout()
		for _, r := range refs {
			fmt.Fprintf(w, "[%d] %s\n", r.Number, render.Reference(r.Citation))
		}
		return nil
	default:
		return encode(cmd.OutOrStdout(), format, refs)
	}
}

// --- validate ---

var validateCmd = &cobra.Command{
	Use:   "validate <document>",
	Short: "Check a document's citations and inline markers",
	Long: `Validate reports citations that cannot be numbered (no identifying
field, or a key reused with conflicting content) and inline markers in
fused responses that do not resolve to a reference. It exits non-zero
when any problem is found.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	problems := 0

	reg := citation.NewRegistry()
	if err := reg.Populate(doc); err != nil {
		var joined interface{ Unwrap() []error }
		errs := []error{err}
		if errors.As(err, &joined) {
			errs = joined.Unwrap()
		}
		for _, e := range errs {
			fmt.Fprintf(w, "citation: %v\n", e)
		}
		problems += len(errs)
	}

	missing := document.Validate(doc, reg, markerModeFor(cmd))
	for _, m := range missing {
		fmt.Fprintf(w, "marker: %s: [%d] does not resolve\n", m.Path, m.Number)
	}
	problems += len(missing)

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	fmt.Fprintf(w, "OK: %d references, all markers resolve\n", reg.Len())
	return nil
}

// markerModeFor prefers an explicit --markers flag over configuration.
func markerModeFor(cmd *cobra.Command) types.MarkerMode {
	if f := cmd.Flags().Lookup("markers"); f != nil && f.Changed {
		return types.MarkerMode(f.Value.String())
	}
	return markerMode()
}

func init() {
	assembleCmd.Flags().String("format", "markdown", "output format: markdown, html, json, or yaml")
	assembleCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	assembleCmd.Flags().Bool("index", false, "also store the outline in the outline index")
	assembleCmd.Flags().Int("workers", 4, "subsections synthesized in parallel")
	assembleCmd.Flags().String("markers", string(types.MarkersLocal), "inline marker numbering: local or global")
	_ = viper.BindPFlag("assemble.workers", assembleCmd.Flags().Lookup("workers"))

	referencesCmd.Flags().String("format", "text", "output format: text, json, or yaml")

	validateCmd.Flags().String("markers", string(types.MarkersLocal), "inline marker numbering: local or global")

	rootCmd.AddCommand(assembleCmd)
	rootCmd.AddCommand(referencesCmd)
	rootCmd.AddCommand(validateCmd)
}
