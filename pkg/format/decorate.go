package format

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// decoration holds the comments printed around one statement.
type decoration struct {
	leading  []*token.Comment
	trailing []*token.Comment
}

// decorate assigns comments to statements by position. A comment belongs in
// front of the first statement that ends after it starts, unless it sits
// between statements on the line where the previous one ends; then it trails
// that statement.
// Comments after the last statement trail it.
func decorate(stmts []core.Stmt, comments []*token.Comment) []decoration {
	out := make([]decoration, len(stmts))
	if len(stmts) == 0 {
		return out
	}

	next := 0
	for _, c := range comments {
		for next < len(stmts) && stmts[next].End().Offset <= c.Span.Start.Offset {
			next++
		}

		between := next == len(stmts) || c.Span.Start.Offset < stmts[next].Pos().Offset
		if next > 0 && between && stmts[next-1].End().Line == c.Span.Start.Line {
			out[next-1].trailing = append(out[next-1].trailing, c)
			continue
		}
		if next == len(stmts) {
			out[next-1].trailing = append(out[next-1].trailing, c)
			continue
		}
		out[next].leading = append(out[next].leading, c)
	}
	return out
}
