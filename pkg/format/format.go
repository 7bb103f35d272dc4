// Package format renders AST nodes back to SQL text for a dialect.
//
// Output is either pretty (one clause per line, indented bodies) or compact
// (a single line). Both forms parse back, in the dialect they were rendered
// for, to a tree equal to the input apart from source positions.
package format

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

// Render renders n on a single line without a trailing newline.
func Render(n core.Node, d *dialect.Dialect, opts ...Option) string {
	p := NewPrinter(d, append(opts[:len(opts):len(opts)], Compact())...)
	p.Print(n)
	return p.String()
}

// Format renders a statement in pretty form, ending with a newline.
func Format(stmt core.Stmt, d *dialect.Dialect, opts ...Option) string {
	p := NewPrinter(d, opts...)
	p.Print(stmt)
	return p.String()
}

// Statements renders a script. Every statement ends with a semicolon and a
// newline; pretty output separates statements with a blank line. Comments
// given with WithComments are written around the statements they belong to.
func Statements(stmts []core.Stmt, d *dialect.Dialect, opts ...Option) string {
	if len(stmts) == 0 {
		return ""
	}

	p := NewPrinter(d, opts...)
	notes := decorate(stmts, p.opts.comments)

	for i, stmt := range stmts {
		if i > 0 && !p.opts.compact {
			p.output.WriteByte('\n')
		}
		for _, c := range notes[i].leading {
			p.comment(c)
			p.newline()
		}

		p.Print(stmt)
		p.trimLineEnd()
		p.write(";")

		for _, c := range notes[i].trailing {
			p.space()
			p.comment(c)
		}
		p.hardBreak()
	}
	return strings.TrimRight(p.output.String(), " \n") + "\n"
}
