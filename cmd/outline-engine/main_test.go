// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `title: Renewables
sections:
  - section_title: Energy
    subsections:
      - subsection_title: Solar
        questions:
          - question: How fast is adoption growing?
            citations:
              - title: Alpha
              - title: Beta
            responses:
              - "1. Adoption grew [1]\na. Capacity doubled [2]"
          - question: What limits growth?
            citations:
              - title: Gamma
              - title: Alpha
            responses:
              - "1. Storage limits growth [1, 2]"
`

// execute runs the CLI with args and returns everything written to stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "document.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "outline-engine dev\n", out)
}

func TestSynthesizeFromStdin(t *testing.T) {
	out, err := execute(t, "Here is the outline:\n1. A [1]\na. B", "synthesize", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "1. A [1]\n  a. B\n", out)
}

func TestSynthesizeJSON(t *testing.T) {
	out, err := execute(t, "1. A [1]", "synthesize", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"fallback": false`)
	assert.Contains(t, out, `"level": "numeric"`)
}

func TestClassify(t *testing.T) {
	out, err := execute(t, "Note: aside\n1. Grew 40% in 2021 [3]\nplain prose", "classify")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[2], "commentary"))
	assert.True(t, strings.HasPrefix(lines[3], "outline"))
	assert.Contains(t, lines[3], "numeric")
	assert.Contains(t, lines[3], "[3]")
	assert.True(t, strings.HasPrefix(lines[4], "unmatched"))
}

func TestAssembleMarkdown(t *testing.T) {
	path := writeDocument(t, testDocument)

	out, err := execute(t, "", "assemble", path, "--format", "markdown", "--markers", "local")
	require.NoError(t, err)
	assert.Contains(t, out, "# Renewables")
	assert.Contains(t, out, "- **1.** Adoption grew [1]")
	assert.Contains(t, out, "- **2.** Storage limits growth [3, 1]")
	assert.Contains(t, out, "## References\n\n1. Alpha\n2. Beta\n3. Gamma\n")
}

func TestAssembleToFile(t *testing.T) {
	path := writeDocument(t, testDocument)
	target := filepath.Join(t.TempDir(), "outline.json")

	_, err := execute(t, "", "assemble", path, "--format", "json", "--output", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"reference_path": "Section Energy → Subsection Solar"`)

	// Reset for later tests sharing the command.
	_, err = execute(t, "", "assemble", path, "--format", "markdown", "--output", "")
	require.NoError(t, err)
}

func TestReferences(t *testing.T) {
	path := writeDocument(t, testDocument)
	out, err := execute(t, "", "references", path, "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "[1] Alpha\n[2] Beta\n[3] Gamma\n", out)
}

func TestValidate(t *testing.T) {
	path := writeDocument(t, testDocument)
	out, err := execute(t, "", "validate", path, "--markers", "local")
	require.NoError(t, err)
	assert.Contains(t, out, "OK: 3 references")

	bad := writeDocument(t, strings.Replace(testDocument, "[1, 2]", "[1, 9]", 1))
	out, err = execute(t, "", "validate", bad, "--markers", "local")
	require.Error(t, err)
	assert.Contains(t, out, "marker: Energy → Solar → Question 2: [9] does not resolve")
}

func TestIndexStoreAndRetrieve(t *testing.T) {
	path := writeDocument(t, testDocument)
	dir := filepath.Join(t.TempDir(), "index")

	id, err := execute(t, "", "index", "store", path, "--index-dir", dir)
	require.NoError(t, err)
	id = strings.TrimSpace(id)
	require.NotEmpty(t, id)

	out, err := execute(t, "", "index", "retrieve", "storage", "--index-dir", dir, "--document", id, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, "Storage limits growth")
	assert.Contains(t, out, `"document_id": "`+id+`"`)

	_, err = execute(t, "", "index", "retrieve", "--index-dir", dir, "--level", "sideways", "--json=false")
	require.Error(t, err)
}
