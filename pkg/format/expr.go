package format

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

const (
	complexityThreshold = 5

	// precedenceAtom is above every operator: atoms never need parentheses.
	precedenceAtom = core.PrecedencePostfix + 1
)

// expr writes e, wrapped in parentheses when it binds looser than minPrec.
func (p *Printer) expr(e core.Expr, minPrec int) {
	if e == nil {
		return
	}
	if p.precedence(e) < minPrec {
		p.write("(")
		core.Accept(p, e)
		p.write(")")
		return
	}
	core.Accept(p, e)
}

// precedence returns how tightly e binds when printed without parentheses.
func (p *Printer) precedence(e core.Expr) int {
	switch e := e.(type) {
	case *core.BinaryExpr:
		if prec := p.dialect.Precedence(e.Op); prec > core.PrecedenceNone {
			return prec
		}
		return core.PrecedenceComparison
	case *core.UnaryExpr:
		if e.Op == token.NOT {
			return core.PrecedenceNot
		}
		return core.PrecedenceUnary
	case *core.InExpr, *core.BetweenExpr, *core.LikeExpr, *core.IsNullExpr, *core.IsBoolExpr:
		return core.PrecedenceComparison
	case *core.CastExpr:
		if p.shorthandCast(e) {
			return core.PrecedencePostfix
		}
	case *core.PriorExpr:
		return core.PrecedenceUnary
	}
	return precedenceAtom
}

func (p *Printer) shorthandCast(c *core.CastExpr) bool {
	return c.Shorthand && p.dialect.HasExtension(core.ExtCastOperator)
}

func exprComplexity(e core.Expr) int {
	switch expr := e.(type) {
	case nil:
		return 0
	case *core.BinaryExpr:
		return 1 + exprComplexity(expr.Left) + exprComplexity(expr.Right)
	case *core.UnaryExpr:
		return 1 + exprComplexity(expr.Expr)
	case *core.FuncCall:
		score := 2
		for _, arg := range expr.Args {
			score += exprComplexity(arg)
		}
		return score
	case *core.CaseExpr:
		score := 2
		for _, w := range expr.Whens {
			score += exprComplexity(w.Condition) + exprComplexity(w.Result)
		}
		return score
	case *core.InExpr:
		return 1 + exprComplexity(expr.Expr) + len(expr.Values)
	case *core.BetweenExpr:
		return 1 + exprComplexity(expr.Expr) + exprComplexity(expr.Low) + exprComplexity(expr.High)
	case *core.LikeExpr:
		return 1 + exprComplexity(expr.Expr) + exprComplexity(expr.Pattern)
	case *core.IsNullExpr:
		return 1 + exprComplexity(expr.Expr)
	default:
		return 1
	}
}

func isLogicalOp(op token.TokenType) bool {
	return op == token.AND || op == token.OR
}

// VisitColumnRef implements core.ColumnRefVisitor.
func (p *Printer) VisitColumnRef(n *core.ColumnRef) core.Visitor {
	p.qualified(n.Schema, n.Table)
	if n.Schema != "" || n.Table != "" {
		p.write(".")
		// t."NEXTVAL" must not read back as a sequence pseudocolumn
		if p.dialect.HasExtension(core.ExtSequencePseudocolumns) && isSequenceOp(n.Column) {
			p.write(p.dialect.QuoteIdentifier(n.Column))
			return nil
		}
	}
	p.ident(n.Column)
	return nil
}

func isSequenceOp(word string) bool {
	return strings.EqualFold(word, string(core.SequenceNextval)) ||
		strings.EqualFold(word, string(core.SequenceCurrval))
}

// VisitLiteral implements core.LiteralVisitor.
func (p *Printer) VisitLiteral(n *core.Literal) core.Visitor {
	switch n.Type {
	case core.LiteralString:
		if p.opts.parameterize {
			p.write("?")
		} else {
			p.write(p.stringLiteral(n.Value))
		}
	case core.LiteralNumber:
		if p.opts.parameterize {
			p.write("?")
		} else {
			p.write(n.Value)
		}
	case core.LiteralBool:
		if n.Value == "TRUE" || n.Value == "true" {
			p.kw(token.TRUE)
		} else {
			p.kw(token.FALSE)
		}
	case core.LiteralNull:
		p.kw(token.NULL)
	default:
		p.write(n.Value)
	}
	return nil
}

// VisitParam implements core.ParamVisitor.
func (p *Printer) VisitParam(n *core.Param) core.Visitor {
	p.write(n.Name)
	return nil
}

// VisitBinaryExpr implements core.BinaryExprVisitor.
func (p *Printer) VisitBinaryExpr(n *core.BinaryExpr) core.Visitor {
	prec := p.precedence(n)
	p.expr(n.Left, prec)

	if !p.opts.compact && isLogicalOp(n.Op) && exprComplexity(n) > complexityThreshold {
		p.newline()
	} else {
		p.space()
	}
	p.op(n.Op)
	p.space()

	p.expr(n.Right, prec+1)
	return nil
}

// VisitUnaryExpr implements core.UnaryExprVisitor.
func (p *Printer) VisitUnaryExpr(n *core.UnaryExpr) core.Visitor {
	p.op(n.Op)
	if n.Op == token.NOT {
		p.space()
		p.expr(n.Expr, core.PrecedenceNot)
		return nil
	}
	// "- -5", never the comment marker "--"
	if inner, ok := n.Expr.(*core.UnaryExpr); ok && inner.Op == n.Op {
		p.space()
	}
	p.expr(n.Expr, core.PrecedenceUnary)
	return nil
}

// VisitPriorExpr implements core.PriorExprVisitor.
func (p *Printer) VisitPriorExpr(n *core.PriorExpr) core.Visitor {
	p.keyword("PRIOR")
	p.space()
	p.expr(n.Expr, core.PrecedenceUnary)
	return nil
}

// VisitSequenceExpr implements core.SequenceExprVisitor.
func (p *Printer) VisitSequenceExpr(n *core.SequenceExpr) core.Visitor {
	p.qualified(n.Schema, n.Sequence)
	p.write(".")
	p.keyword(string(n.Op))
	return nil
}

// VisitFuncCall implements core.FuncCallVisitor.
func (p *Printer) VisitFuncCall(n *core.FuncCall) core.Visitor {
	p.qualified(n.Schema, n.Name)
	p.write("(")

	if n.Distinct {
		p.kw(token.DISTINCT)
		p.space()
	}

	if n.Star {
		p.write("*")
	} else {
		p.formatList(len(n.Args), func(i int) { p.expr(n.Args[i], core.PrecedenceNone) }, ",", false)
	}

	p.write(")")

	if n.Filter != nil {
		p.space()
		p.kw(token.FILTER)
		p.write(" (")
		p.kw(token.WHERE)
		p.space()
		p.expr(n.Filter, core.PrecedenceNone)
		p.write(")")
	}

	if n.Window != nil {
		p.space()
		p.windowSpec(n.Window)
	}
	return nil
}

func (p *Printer) windowSpec(w *core.WindowSpec) {
	p.kw(token.OVER)
	p.space()

	if w.Name != "" && len(w.PartitionBy) == 0 && len(w.OrderBy) == 0 && w.Frame == nil {
		p.ident(w.Name)
		return
	}

	p.write("(")
	sep := false
	next := func() {
		if sep {
			p.space()
		}
		sep = true
	}

	if len(w.PartitionBy) > 0 {
		next()
		p.kw(token.PARTITION, token.BY)
		p.space()
		p.formatList(len(w.PartitionBy), func(i int) { p.expr(w.PartitionBy[i], core.PrecedenceNone) }, ",", false)
	}

	if len(w.OrderBy) > 0 {
		next()
		p.kw(token.ORDER, token.BY)
		p.space()
		p.formatList(len(w.OrderBy), func(i int) { p.orderByItem(w.OrderBy[i]) }, ",", false)
	}

	if w.Frame != nil {
		next()
		p.frameSpec(w.Frame)
	}

	p.write(")")
}

func (p *Printer) frameSpec(f *core.FrameSpec) {
	p.keyword(string(f.Type))
	p.space()
	if f.EndBound == nil {
		p.frameBound(f.Start)
		return
	}
	p.kw(token.BETWEEN)
	p.space()
	p.frameBound(f.Start)
	p.space()
	p.kw(token.AND)
	p.space()
	p.frameBound(f.EndBound)
}

func (p *Printer) frameBound(b *core.FrameBound) {
	if b == nil {
		return
	}
	switch b.Type {
	case core.FrameUnboundedPreceding:
		p.kw(token.UNBOUNDED, token.PRECEDING)
	case core.FrameUnboundedFollowing:
		p.kw(token.UNBOUNDED, token.FOLLOWING)
	case core.FrameCurrentRow:
		p.kw(token.CURRENT, token.ROW)
	case core.FrameExprPreceding:
		p.expr(b.Offset, core.PrecedenceAddition)
		p.space()
		p.kw(token.PRECEDING)
	case core.FrameExprFollowing:
		p.expr(b.Offset, core.PrecedenceAddition)
		p.space()
		p.kw(token.FOLLOWING)
	}
}

// VisitCaseExpr implements core.CaseExprVisitor.
func (p *Printer) VisitCaseExpr(n *core.CaseExpr) core.Visitor {
	p.kw(token.CASE)
	if n.Operand != nil {
		p.space()
		p.expr(n.Operand, core.PrecedenceNone)
	}

	p.indent()
	for _, w := range n.Whens {
		p.newline()
		p.kw(token.WHEN)
		p.space()
		p.expr(w.Condition, core.PrecedenceNone)
		p.space()
		p.kw(token.THEN)
		p.space()
		p.expr(w.Result, core.PrecedenceNone)
	}
	if n.Else != nil {
		p.newline()
		p.kw(token.ELSE)
		p.space()
		p.expr(n.Else, core.PrecedenceNone)
	}
	p.dedent()
	p.newline()
	p.kw(token.END)
	return nil
}

// VisitCastExpr implements core.CastExprVisitor. The expr::type shorthand is
// kept only where the dialect supports it.
func (p *Printer) VisitCastExpr(n *core.CastExpr) core.Visitor {
	if p.shorthandCast(n) {
		p.expr(n.Expr, core.PrecedencePostfix)
		p.write("::")
		p.write(n.Type.String())
		return nil
	}
	p.kw(token.CAST)
	p.write("(")
	p.expr(n.Expr, core.PrecedenceNone)
	p.space()
	p.kw(token.AS)
	p.space()
	p.write(n.Type.String())
	p.write(")")
	return nil
}

// VisitInExpr implements core.InExprVisitor.
func (p *Printer) VisitInExpr(n *core.InExpr) core.Visitor {
	p.expr(n.Expr, core.PrecedenceComparison)
	if n.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(token.IN)
	p.space()

	if n.Query != nil {
		p.subquery(n.Query)
		return nil
	}
	if p.opts.parameterize && allConstants(n.Values) {
		p.write("(?)")
		return nil
	}
	p.write("(")
	p.formatList(len(n.Values), func(i int) { p.expr(n.Values[i], core.PrecedenceNone) }, ",", false)
	p.write(")")
	return nil
}

// allConstants reports whether every value is a number or string literal.
func allConstants(values []core.Expr) bool {
	for _, v := range values {
		lit, ok := v.(*core.Literal)
		if !ok || (lit.Type != core.LiteralNumber && lit.Type != core.LiteralString) {
			return false
		}
	}
	return len(values) > 0
}

// VisitBetweenExpr implements core.BetweenExprVisitor.
func (p *Printer) VisitBetweenExpr(n *core.BetweenExpr) core.Visitor {
	p.expr(n.Expr, core.PrecedenceComparison)
	if n.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(token.BETWEEN)
	p.space()
	p.expr(n.Low, core.PrecedenceAddition)
	p.space()
	p.kw(token.AND)
	p.space()
	p.expr(n.High, core.PrecedenceAddition)
	return nil
}

// VisitIsNullExpr implements core.IsNullExprVisitor.
func (p *Printer) VisitIsNullExpr(n *core.IsNullExpr) core.Visitor {
	p.expr(n.Expr, core.PrecedenceComparison)
	p.space()
	p.kw(token.IS)
	if n.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(token.NULL)
	return nil
}

// VisitIsBoolExpr implements core.IsBoolExprVisitor.
func (p *Printer) VisitIsBoolExpr(n *core.IsBoolExpr) core.Visitor {
	p.expr(n.Expr, core.PrecedenceComparison)
	p.space()
	p.kw(token.IS)
	if n.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	if n.Value {
		p.kw(token.TRUE)
	} else {
		p.kw(token.FALSE)
	}
	return nil
}

// VisitLikeExpr implements core.LikeExprVisitor.
func (p *Printer) VisitLikeExpr(n *core.LikeExpr) core.Visitor {
	p.expr(n.Expr, core.PrecedenceComparison)
	if n.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	if n.Op == 0 {
		p.kw(token.LIKE)
	} else {
		p.op(n.Op)
	}
	p.space()
	p.expr(n.Pattern, core.PrecedenceAddition)
	if n.Escape != nil {
		p.space()
		p.kw(token.ESCAPE)
		p.space()
		p.expr(n.Escape, core.PrecedenceAddition)
	}
	return nil
}

// VisitTupleExpr implements core.TupleExprVisitor.
func (p *Printer) VisitTupleExpr(n *core.TupleExpr) core.Visitor {
	p.write("(")
	p.formatList(len(n.Items), func(i int) { p.expr(n.Items[i], core.PrecedenceNone) }, ",", false)
	p.write(")")
	return nil
}

// VisitStarExpr implements core.StarExprVisitor.
func (p *Printer) VisitStarExpr(n *core.StarExpr) core.Visitor {
	if n.Table != "" {
		p.qualified(n.Schema, n.Table)
		p.write(".")
	}
	p.write("*")
	return nil
}

// VisitSubqueryExpr implements core.SubqueryExprVisitor.
func (p *Printer) VisitSubqueryExpr(n *core.SubqueryExpr) core.Visitor {
	p.subquery(n.Select)
	return nil
}

// VisitExistsExpr implements core.ExistsExprVisitor.
func (p *Printer) VisitExistsExpr(n *core.ExistsExpr) core.Visitor {
	p.kw(token.EXISTS)
	p.space()
	p.subquery(n.Select)
	return nil
}

// subquery writes a parenthesized query, indented on its own lines in
// pretty output.
func (p *Printer) subquery(s *core.SelectStmt) {
	p.write("(")
	p.newline()
	p.indent()
	p.VisitSelectStmt(s)
	p.dedent()
	p.newline()
	p.write(")")
}
