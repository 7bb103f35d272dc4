package output

import (
	"bytes"
	"errors"
	"regexp"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newTestRenderer(mode Mode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, false, mode), out, errOut
}

func TestRenderer_Modes(t *testing.T) {
	r, _, _ := newTestRenderer("")
	assert.Equal(t, ModeText, r.EffectiveMode())
	assert.False(t, r.IsTTY())
	assert.False(t, IsTerminal(&bytes.Buffer{}))

	v := map[string]any{"name": "ansi", "count": 2}

	r, out, _ := newTestRenderer(ModeJSON)
	ok, err := r.Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"name":"ansi","count":2}`, out.String())

	r, out, _ = newTestRenderer(ModeYAML)
	ok, err = r.Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "count: 2\nname: ansi\n", out.String())

	r, out, _ = newTestRenderer(ModeText)
	ok, err = r.Structured(v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out.String())
}

func TestRenderer_NoStylingOffTerminal(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText)
	r.Header("Dialects")
	r.Success("done")
	r.Error("boom")
	assert.False(t, ansiPattern.MatchString(out.String()+errOut.String()))
	assert.Equal(t, "Dialects\ndone\n", out.String())
	assert.Equal(t, "Error: boom\n", errOut.String())
}

func TestRenderer_Table(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText)
	r.Table(table.Row{"Name", "Quote"}, []table.Row{{"ansi", `""`}, {"mysql", "``"}})
	assert.Contains(t, out.String(), "NAME")
	assert.Contains(t, out.String(), "mysql")
}

func TestDiagnostic(t *testing.T) {
	src := "SELECT a\nFROM t\nWHERE"
	_, err := parser.Parse(src, ansi.ANSI)
	require.Error(t, err)

	d, ok := NewDiagnostic("q.sql", src, err)
	require.True(t, ok)
	assert.Equal(t, 3, d.Pos.Line)
	assert.Equal(t, "WHERE", d.Line)

	_, ok = NewDiagnostic("q.sql", src, errors.New("plain"))
	assert.False(t, ok)
}

func TestRenderer_Diagnostic(t *testing.T) {
	src := "SELECT 1;\nSELECT\t'abc"
	_, err := parser.Parse(src, ansi.ANSI)
	require.Error(t, err)

	r, _, errOut := newTestRenderer(ModeText)
	r.Diagnostic("q.sql", src, err)
	assert.Equal(t, "q.sql:2:8: unterminated string literal\n  SELECT\t'abc\n        \t^\n", errOut.String())

	errOut.Reset()
	r.Diagnostic("q.sql", src, errors.New("read failed"))
	assert.Equal(t, "Error: read failed\n", errOut.String())
}

func TestCaretPad(t *testing.T) {
	assert.Equal(t, "", caretPad("abc", 1))
	assert.Equal(t, "  ", caretPad("abc", 3))
	assert.Equal(t, "\t ", caretPad("\tab", 3))
	assert.Equal(t, "     ", caretPad("abc", 6))
}
