package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Diagnostic locates an error inside a source text.
type Diagnostic struct {
	Name    string // file name, "-" for stdin
	Pos     token.Position
	Message string
	Line    string // the source line holding Pos
}

// NewDiagnostic extracts the position of a lexer or parser error. It reports
// false for errors without a position.
func NewDiagnostic(name, src string, err error) (Diagnostic, bool) {
	var (
		parseErr *parser.ParseError
		lexErr   *parser.LexError
		d        = Diagnostic{Name: name}
	)
	switch {
	case errors.As(err, &parseErr):
		d.Pos, d.Message = parseErr.Pos, parseErr.Message
	case errors.As(err, &lexErr):
		d.Pos, d.Message = lexErr.Pos, lexErr.Message
	default:
		return d, false
	}

	lines := strings.Split(src, "\n")
	if d.Pos.Line >= 1 && d.Pos.Line <= len(lines) {
		d.Line = strings.TrimRight(lines[d.Pos.Line-1], "\r")
	}
	return d, true
}

// caretPad returns the padding that puts a caret under column col of line.
// Tabs are kept so the caret lines up in any tab width.
func caretPad(line string, col int) string {
	var b strings.Builder
	for i := 0; i < col-1 && i < len(line); i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	for i := len(line); i < col-1; i++ {
		b.WriteByte(' ')
	}
	return b.String()
}

// Diagnostic writes err to the error output with the offending source line
// and a caret under the error column. Errors without a position are written
// as plain errors.
func (r *Renderer) Diagnostic(name, src string, err error) {
	d, ok := NewDiagnostic(name, src, err)
	if !ok {
		r.Error(err.Error())
		return
	}
	s := r.styles
	_, _ = fmt.Fprintf(r.errOut, "%s %s\n",
		s.Muted.Render(fmt.Sprintf("%s:%d:%d:", d.Name, d.Pos.Line, d.Pos.Column)),
		s.Error.Render(d.Message))
	if d.Line == "" {
		return
	}
	_, _ = fmt.Fprintf(r.errOut, "  %s\n  %s%s\n", d.Line, caretPad(d.Line, d.Pos.Column), s.Caret.Render("^"))
}
