// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/outline-engine/internal/index"
	"github.com/pdiddy/outline-engine/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the outline index (store, retrieve, export, list)",
	Long: `Index manages a local SQLite database of assembled outlines. Every
outline point is stored with its section, subsection, level, and resolved
citation numbers so it can be searched across documents.`,
}

// --- store subcommand ---

var indexStoreCmd = &cobra.Command{
	Use:   "store <document>",
	Short: "Assemble a document and store its outline",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexStore,
}

func runIndexStore(cmd *cobra.Command, args []string) error {
	out, err := assembleDocument(cmd, args[0])
	if err != nil {
		return err
	}
	id, err := storeOutline(cmd, out)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

// --- retrieve subcommand ---

var indexRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Search stored outline points",
	Long: `Retrieve searches stored outline points by content substring and
structured filters (document, level, cited reference number), or a
combination of both.`,
	RunE: runIndexRetrieve,
}

func runIndexRetrieve(cmd *cobra.Command, args []string) error {
	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --document, --level, or --citation")
	}

	store, err := index.NewStore(indexConfig(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Retrieve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(cmd, results, jsonOutput)
}

func formatRetrieveOutput(cmd *cobra.Command, results []index.QueryResult, jsonOutput bool) error {
	w := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-24s  %-6s  %-50s  %s\n",
		"Rank", "Location", "Marker", "Content", "Refs")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range results {
		content := r.Content
		if len(content) > 50 {
			content = content[:47] + "..."
		}
		loc := r.ReferencePath
		if len(loc) > 24 {
			loc = loc[:21] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-24s  %-6s  %-50s  %s\n",
			i+1, loc, r.Marker, content, formatRefs(r.CitationRefs))
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored outline points to YAML or JSON",
	Long: `Export writes stored outline points (or a filtered subset) to
export.yaml or export.json in the index directory. Supports the same filter
flags as retrieve.`,
	RunE: runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	store, err := index.NewStore(indexConfig(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

// --- list subcommand ---

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := index.NewStore(indexConfig(), logger)
		if err != nil {
			return err
		}
		defer store.Close()

		docs, err := store.Documents(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, d := range docs {
			fmt.Fprintf(w, "%s  %s  %d sections  %d points  %s\n",
				d.ID, d.StoredAt.Format("2006-01-02 15:04"), d.Sections, d.Points, d.Title)
		}
		return nil
	},
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command, args []string) (index.QueryOptions, error) {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	documentID, _ := cmd.Flags().GetString("document")
	levelName, _ := cmd.Flags().GetString("level")
	cited, _ := cmd.Flags().GetInt("citation")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := index.QueryOptions{
		Query:      queryText,
		DocumentID: documentID,
		Citation:   cited,
		MaxResults: limit,
	}
	if levelName != "" {
		level, err := types.ParseLevel(levelName)
		if err != nil {
			return opts, err
		}
		opts.Level = level
	}
	return opts, nil
}

func addFilterFlags(cmd *cobra.Command, what string) {
	cmd.Flags().String("query", "", "content substring "+what)
	cmd.Flags().String("document", "", "filter by stored document ID")
	cmd.Flags().String("level", "", "filter by level: numeric, lowercase, roman, number_paren, letter_paren, roman_paren_deep")
	cmd.Flags().Int("citation", 0, "filter by cited reference number")
	cmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("index-dir", "index", "directory holding the outline index")
	indexCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")
	_ = viper.BindPFlag("index.dir", indexCmd.PersistentFlags().Lookup("index-dir"))
	_ = viper.BindPFlag("index.max_results", indexCmd.PersistentFlags().Lookup("max-results"))

	addFilterFlags(indexRetrieveCmd, "search")
	indexRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	addFilterFlags(indexExportCmd, "filter for partial export")
	indexExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	indexStoreCmd.Flags().String("markers", string(types.MarkersLocal), "inline marker numbering: local or global")

	// Wire subcommands.
	indexCmd.AddCommand(indexStoreCmd)
	indexCmd.AddCommand(indexRetrieveCmd)
	indexCmd.AddCommand(indexExportCmd)
	indexCmd.AddCommand(indexListCmd)

	rootCmd.AddCommand(indexCmd)
}
