package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sexpr renders an expression tree as a compact prefix form for structural
// assertions.
func sexpr(e core.Expr) string {
	switch n := e.(type) {
	case *core.ColumnRef:
		parts := []string{}
		for _, s := range []string{n.Schema, n.Table, n.Column} {
			if s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ".")
	case *core.Literal:
		if n.Type == core.LiteralString {
			return "'" + n.Value + "'"
		}
		return n.Value
	case *core.Param:
		return n.Name
	case *core.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", n.Op, sexpr(n.Left), sexpr(n.Right))
	case *core.UnaryExpr:
		return fmt.Sprintf("(%s %s)", n.Op, sexpr(n.Expr))
	case *core.InExpr:
		var items []string
		for _, v := range n.Values {
			items = append(items, sexpr(v))
		}
		if n.Query != nil {
			items = append(items, "query")
		}
		return fmt.Sprintf("(%sIN %s %s)", not(n.Not), sexpr(n.Expr), strings.Join(items, " "))
	case *core.BetweenExpr:
		return fmt.Sprintf("(%sBETWEEN %s %s %s)", not(n.Not), sexpr(n.Expr), sexpr(n.Low), sexpr(n.High))
	case *core.LikeExpr:
		s := fmt.Sprintf("(%s%s %s %s", not(n.Not), n.Op, sexpr(n.Expr), sexpr(n.Pattern))
		if n.Escape != nil {
			s += " " + sexpr(n.Escape)
		}
		return s + ")"
	case *core.IsNullExpr:
		return fmt.Sprintf("(IS %sNULL %s)", not(n.Not), sexpr(n.Expr))
	case *core.IsBoolExpr:
		return fmt.Sprintf("(IS %s%t %s)", not(n.Not), n.Value, sexpr(n.Expr))
	case *core.CastExpr:
		return fmt.Sprintf("(CAST %s %s)", sexpr(n.Expr), n.Type)
	case *core.FuncCall:
		var args []string
		if n.Star {
			args = append(args, "*")
		}
		for _, a := range n.Args {
			args = append(args, sexpr(a))
		}
		return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, " "))
	case *core.TupleExpr:
		var items []string
		for _, v := range n.Items {
			items = append(items, sexpr(v))
		}
		return "[" + strings.Join(items, " ") + "]"
	case *core.SubqueryExpr:
		return "(query)"
	case *core.ExistsExpr:
		return "(EXISTS query)"
	case *core.PriorExpr:
		return "(PRIOR " + sexpr(n.Expr) + ")"
	case *core.CaseExpr:
		return "CASE"
	}
	return fmt.Sprintf("<%T>", e)
}

func not(b bool) string {
	if b {
		return "NOT "
	}
	return ""
}

func parseExpr(t *testing.T, sql string, d *dialect.Dialect) core.Expr {
	t.Helper()
	expr, err := parser.ParseExpr(sql, d)
	require.NoError(t, err)
	return expr
}

func TestParseExpr_Precedence(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"a + b * c", "(+ a (* b c))"},
		{"(a + b) * c", "(* (+ a b) c)"},
		{"a - b - c", "(- (- a b) c)"},
		{"a - (b - c)", "(- a (- b c))"},
		{"a / b % c", "(% (/ a b) c)"},
		{"a || b || c", "(|| (|| a b) c)"},
		{"a OR b AND c", "(OR a (AND b c))"},
		{"a AND b OR c", "(OR (AND a b) c)"},
		{"NOT a = b", "(NOT (= a b))"},
		{"NOT a AND b", "(AND (NOT a) b)"},
		{"-a * b", "(* (- a) b)"},
		{"- -5", "(- (- 5))"},
		{"a = b AND c <> d", "(AND (= a b) (!= c d))"},
		{"a + 1 > b * 2", "(> (+ a 1) (* b 2))"},
		{"x BETWEEN 1 AND 2 AND y", "(AND (BETWEEN x 1 2) y)"},
		{"x NOT BETWEEN a + 1 AND b", "(NOT BETWEEN x (+ a 1) b)"},
		{"a IN (1, 2, 3)", "(IN a 1 2 3)"},
		{"a NOT IN (SELECT b FROM t)", "(NOT IN a query)"},
		{"name LIKE 'a%' ESCAPE '!'", "(LIKE name 'a%' '!')"},
		{"name NOT LIKE 'a%' OR b", "(OR (NOT LIKE name 'a%') b)"},
		{"a IS NULL", "(IS NULL a)"},
		{"a IS NOT NULL AND b IS TRUE", "(AND (IS NOT NULL a) (IS true b))"},
		{"a IS NOT FALSE", "(IS NOT false a)"},
		{"NOT EXISTS (SELECT 1)", "(NOT (EXISTS query))"},
		{"(a, b) = (1, 2)", "(= [a b] [1 2])"},
		{"a = (SELECT max(b) FROM t)", "(= a (query))"},
		{"s.t.c = ?", "(= s.t.c ?)"},
		{"CAST(a AS VARCHAR(10))", "(CAST a VARCHAR(10))"},
		{"CAST(a AS DOUBLE PRECISION) + 1", "(+ (CAST a DOUBLE PRECISION) 1)"},
		{"count(*) + COUNT(DISTINCT a)", "(+ count(*) COUNT(a))"},
		{"'it''s'", "'it's'"},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			assert.Equal(t, tt.want, sexpr(parseExpr(t, tt.sql, ansi.ANSI)))
		})
	}
}

func TestParseExpr_Postgres(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"a::int", "(CAST a int)"},
		{"-a::int", "(- (CAST a int))"},
		{"a::numeric(10, 2) * 2", "(* (CAST a numeric(10, 2)) 2)"},
		{"name ILIKE 'a%'", "(ILIKE name 'a%')"},
		{"name NOT ILIKE 'a%' AND b", "(AND (NOT ILIKE name 'a%') b)"},
		{"$1 + $2", "(+ $1 $2)"},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			assert.Equal(t, tt.want, sexpr(parseExpr(t, tt.sql, postgres.Postgres)))
		})
	}
}

func TestParseExpr_FunctionCalls(t *testing.T) {
	expr := parseExpr(t, "sum(x) FILTER (WHERE x > 0) OVER (PARTITION BY a, b ORDER BY c DESC ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)", ansi.ANSI)
	fn, ok := expr.(*core.FuncCall)
	require.True(t, ok)
	assert.Equal(t, "sum", fn.Name)
	require.NotNil(t, fn.Filter)
	require.NotNil(t, fn.Window)
	assert.Len(t, fn.Window.PartitionBy, 2)
	require.Len(t, fn.Window.OrderBy, 1)
	assert.True(t, fn.Window.OrderBy[0].Desc)
	require.NotNil(t, fn.Window.Frame)
	assert.Equal(t, core.FrameRows, fn.Window.Frame.Type)
	assert.Equal(t, core.FrameUnboundedPreceding, fn.Window.Frame.Start.Type)
	assert.Equal(t, core.FrameCurrentRow, fn.Window.Frame.EndBound.Type)

	expr = parseExpr(t, "lag(x, 1) OVER w", ansi.ANSI)
	assert.Equal(t, "w", expr.(*core.FuncCall).Window.Name)

	expr = parseExpr(t, "avg(x) OVER (ORDER BY d RANGE 3 PRECEDING)", ansi.ANSI)
	frame := expr.(*core.FuncCall).Window.Frame
	assert.Equal(t, core.FrameRange, frame.Type)
	assert.Equal(t, core.FrameExprPreceding, frame.Start.Type)
	assert.Nil(t, frame.EndBound)

	expr = parseExpr(t, "avg(x) OVER (GROUPS BETWEEN 1 PRECEDING AND 2 FOLLOWING)", ansi.ANSI)
	frame = expr.(*core.FuncCall).Window.Frame
	assert.Equal(t, core.FrameGroups, frame.Type)
	assert.Equal(t, core.FrameExprFollowing, frame.EndBound.Type)

	expr = parseExpr(t, "pg_catalog.now()", ansi.ANSI)
	fn = expr.(*core.FuncCall)
	assert.Equal(t, "pg_catalog", fn.Schema)
	assert.Equal(t, "now", fn.Name)
	assert.Empty(t, fn.Args)
}

func TestParseExpr_Case(t *testing.T) {
	expr := parseExpr(t, "CASE WHEN a > 1 THEN 'big' WHEN a > 0 THEN 'small' ELSE 'none' END", ansi.ANSI)
	c := expr.(*core.CaseExpr)
	assert.Nil(t, c.Operand)
	assert.Len(t, c.Whens, 2)
	assert.NotNil(t, c.Else)

	expr = parseExpr(t, "CASE status WHEN 1 THEN 'on' END", ansi.ANSI)
	c = expr.(*core.CaseExpr)
	assert.NotNil(t, c.Operand)
	assert.Len(t, c.Whens, 1)
	assert.Nil(t, c.Else)
}

func TestParseExpr_NonReservedKeywordsAsNames(t *testing.T) {
	expr := parseExpr(t, "first + rows", ansi.ANSI)
	assert.Equal(t, "(+ first rows)", sexpr(expr))
}

func TestParseExpr_Errors(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"a +", "expected expression"},
		{"CASE a END", `expected "WHEN"`},
		{"a IS 1", `expected "NULL", "TRUE" or "FALSE"`},
		{"(a", `expected ")"`},
		{"a b", "expected end of input"},
		{"a.", "expected identifier"},
		{"f(x) OVER (ROWS UNBOUNDED)", `expected "PRECEDING" or "FOLLOWING"`},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			_, err := parser.ParseExpr(tt.sql, ansi.ANSI)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseExpr_BinarySpans(t *testing.T) {
	expr := parseExpr(t, "a + bb", ansi.ANSI)
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, expr.Pos())
	assert.Equal(t, token.Position{Line: 1, Column: 7, Offset: 6}, expr.End())
}
