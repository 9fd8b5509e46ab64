// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/outline-engine/internal/outline"
	"github.com/pdiddy/outline-engine/internal/specificity"
)

// --- synthesize ---

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize [file]",
	Short: "Convert one generator response into a numbered outline",
	Long: `Synthesize reads a generator response from a file (or stdin when the
file is omitted or "-") and prints its outline. Marked lines build a
multi-level tree; unmarked prose is segmented into paragraphs, sentences,
and clauses. Commentary lines are always dropped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSynthesize,
}

func runSynthesize(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	heading, _ := cmd.Flags().GetString("heading")
	format, _ := cmd.Flags().GetString("format")

	synth, err := outline.NewSynthesizer(synthesisConfig())
	if err != nil {
		return err
	}
	res := synth.Synthesize(text, heading)
	logger.Debug("synthesized response",
		zap.Int("nodes", res.Tree.Count()),
		zap.Bool("fallback", res.Fallback),
		zap.Int("commentary", res.Stats.Commentary),
		zap.Int("orphans", res.Stats.Orphans),
	)

	switch format {
	case "text", "":
		fmt.Fprintln(cmd.OutOrStdout(), outline.Text(res.Tree))
		return nil
	default:
		return encode(cmd.OutOrStdout(), format, res)
	}
}

// --- classify ---

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Show how each line of a response is classified",
	Long: `Classify prints one row per non-blank line of a generator response:
whether it is an outline point, commentary, or unmatched prose, its grammar
level and marker, the citation numbers it carries, and its specificity
score.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	synth, err := outline.NewSynthesizer(synthesisConfig())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-10s  %-16s  %-6s  %-10s  %-6s  %s\n",
		"Kind", "Level", "Marker", "Citations", "Score", "Content")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, l := range synth.Classifier().ClassifyText(text) {
		level, marker, content := "-", "-", l.Raw
		if l.Kind == outline.KindOutline {
			level, marker, content = l.Level.String(), l.Marker, l.Content
		}
		if len(content) > 40 {
			content = content[:37] + "..."
		}
		fmt.Fprintf(w, "%-10s  %-16s  %-6s  %-10s  %6.1f  %s\n",
			l.Kind, level, marker, formatRefs(l.Citations), specificity.Score(l.Raw), content)
	}
	return nil
}

// --- shared helpers ---

// readInput returns the contents of args[0], or stdin when no file or "-"
// is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

// encode writes v to w as indented JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func formatRefs(nums []int) string {
	if len(nums) == 0 {
		return "-"
	}
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprint(n)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func init() {
	synthesizeCmd.Flags().String("heading", "", "question or heading used when the response has no usable sentence")
	synthesizeCmd.Flags().String("format", "text", "output format: text, json, or yaml")

	rootCmd.AddCommand(synthesizeCmd)
	rootCmd.AddCommand(classifyCmd)
}
