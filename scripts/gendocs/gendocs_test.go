package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownWriter(t *testing.T) {
	w := NewMarkdownWriter()
	w.Header(2, "Title")
	w.Table([]string{"A", "B"}, [][]string{{"x|y", InlineCode("z")}})
	w.CodeBlock("bash", "echo hi\n")

	assert.Equal(t, "## Title\n\n| A | B |\n| --- | --- |\n| x\\|y | `z` |\n\n```bash\necho hi\n```\n\n", string(w.Bytes()))
}

func TestGenerateDocs(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, generateCLIDocs(filepath.Join(dir, "cli")))
	require.NoError(t, generateConfigDocs(filepath.Join(dir, "reference")))
	require.NoError(t, generateDialectDocs(filepath.Join(dir, "dialects")))

	for _, name := range []string{"cli/index.md", "cli/format.md", "cli/stats.md", "reference/configuration.md", "dialects/index.md", "dialects/oracle.md"} {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "reference", "configuration.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "`SQLFRONT_FORMAT__KEYWORD_CASE`")

	data, err = os.ReadFile(filepath.Join(dir, "cli", "format.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "sqlfront format [files...]")
	assert.Contains(t, string(data), "`--write`")
}

func TestCleanExample(t *testing.T) {
	assert.Equal(t, "a\n  b", cleanExample("    a\n      b\n"))
}
