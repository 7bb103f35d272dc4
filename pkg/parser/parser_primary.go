package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Primary expression parsing: literals, names, calls and bracketed forms.
//
// Grammar:
//
//	primary   → NUMBER | STRING | TRUE | FALSE | NULL | PARAM
//	          | "(" query ")" | "(" expr {"," expr} ")"
//	          | CASE [expr] WHEN expr THEN expr {WHEN expr THEN expr} [ELSE expr] END
//	          | CAST "(" expr AS data_type ")"
//	          | EXISTS "(" query ")"
//	          | name_chain [ "(" args ")" [FILTER "(" WHERE expr ")"] [OVER window_spec] ]
//	name_chain→ identifier {"." identifier}
//
// A name chain ending in NEXTVAL or CURRVAL is a sequence pseudocolumn when
// the dialect enables them.

// namePart is one dotted component of a name chain.
type namePart struct {
	name   string
	quoted bool
}

// parsePrimary parses a primary expression.
func (p *Parser) parsePrimary() core.Expr {
	start := p.tok.Pos
	tok := p.tok

	var lit *core.Literal
	switch tok.Type {
	case token.NUMBER:
		lit = &core.Literal{Type: core.LiteralNumber, Value: tok.Literal}
	case token.STRING:
		lit = &core.Literal{Type: core.LiteralString, Value: tok.Literal}
	case token.TRUE, token.FALSE:
		lit = &core.Literal{Type: core.LiteralBool, Value: strings.ToUpper(tok.Literal)}
	case token.NULL:
		lit = &core.Literal{Type: core.LiteralNull, Value: "NULL"}
	case token.PARAM:
		p.advance()
		param := &core.Param{Name: tok.Literal}
		param.SetSpan(start, p.prevEnd)
		return param
	case token.LPAREN:
		return p.parseParenExpr()
	case token.CASE:
		return p.parseCase()
	case token.CAST:
		return p.parseCast()
	case token.EXISTS:
		p.advance()
		p.expect(token.LPAREN)
		exists := &core.ExistsExpr{Select: p.parseQuery()}
		p.expect(token.RPAREN)
		exists.SetSpan(start, p.prevEnd)
		return exists
	}
	if lit != nil {
		p.advance()
		lit.SetSpan(start, p.prevEnd)
		return lit
	}

	if p.isIdent(tok) {
		return p.parseNameExpr()
	}
	p.failExpected("expression")
	return nil
}

// parseParenExpr parses a subquery, a parenthesized expression or a tuple.
func (p *Parser) parseParenExpr() core.Expr {
	start := p.tok.Pos
	p.expect(token.LPAREN)

	if p.check(token.SELECT) || p.check(token.WITH) {
		sub := &core.SubqueryExpr{Select: p.parseQuery()}
		p.expect(token.RPAREN)
		sub.SetSpan(start, p.prevEnd)
		return sub
	}

	expr := p.parseExpression()
	if !p.check(token.COMMA) {
		p.expect(token.RPAREN)
		return expr
	}
	tuple := &core.TupleExpr{Items: []core.Expr{expr}}
	for p.match(token.COMMA) {
		tuple.Items = append(tuple.Items, p.parseExpression())
	}
	p.expect(token.RPAREN)
	tuple.SetSpan(start, p.prevEnd)
	return tuple
}

// parseNameExpr parses a column reference, function call or sequence
// pseudocolumn.
func (p *Parser) parseNameExpr() core.Expr {
	start := p.tok.Pos
	parts := []namePart{{name: p.tok.Literal, quoted: p.tok.Type == token.QIDENT}}
	p.advance()

	for p.check(token.DOT) {
		next := p.peek(1)
		if !isWord(next) {
			p.advance()
			p.failExpected(token.IDENT)
		}
		p.advance()
		parts = append(parts, namePart{name: next.Literal, quoted: next.Type == token.QIDENT})
		p.advance()
	}

	if p.check(token.LPAREN) && len(parts) <= 2 {
		return p.parseFuncCall(start, parts)
	}

	if seq := p.sequenceExpr(parts); seq != nil {
		seq.SetSpan(start, p.prevEnd)
		return seq
	}

	col := &core.ColumnRef{}
	switch len(parts) {
	case 1:
		col.Column = parts[0].name
	case 2:
		col.Table, col.Column = parts[0].name, parts[1].name
	case 3:
		col.Schema, col.Table, col.Column = parts[0].name, parts[1].name, parts[2].name
	default:
		p.failf("column reference has too many name parts: %d", len(parts))
	}
	col.SetSpan(start, p.prevEnd)
	return col
}

// sequenceExpr returns a sequence pseudocolumn for seq.NEXTVAL or
// schema.seq.CURRVAL, or nil.
func (p *Parser) sequenceExpr(parts []namePart) *core.SequenceExpr {
	n := len(parts)
	if n < 2 || !p.dialect.HasExtension(core.ExtSequencePseudocolumns) {
		return nil
	}
	last := parts[n-1]
	if last.quoted {
		return nil
	}
	var op core.SequenceOp
	switch strings.ToUpper(last.name) {
	case string(core.SequenceNextval):
		op = core.SequenceNextval
	case string(core.SequenceCurrval):
		op = core.SequenceCurrval
	default:
		return nil
	}
	seq := &core.SequenceExpr{Sequence: parts[n-2].name, Op: op}
	if n >= 3 {
		seq.Schema = parts[n-3].name
	}
	return seq
}

// parseFuncCall parses the argument list and trailing FILTER/OVER of a call.
//
//	call → name "(" ["*" | [DISTINCT|ALL] expr_list] ")" [FILTER "(" WHERE expr ")"] [OVER window]
func (p *Parser) parseFuncCall(start token.Position, parts []namePart) core.Expr {
	defer p.enter("function call")()

	fn := &core.FuncCall{Name: parts[len(parts)-1].name}
	if len(parts) == 2 {
		fn.Schema = parts[0].name
	}

	p.expect(token.LPAREN)
	switch {
	case p.match(token.STAR):
		fn.Star = true
	case p.check(token.RPAREN):
	default:
		if p.match(token.DISTINCT) {
			fn.Distinct = true
		} else {
			p.match(token.ALL)
		}
		fn.Args = p.parseExpressionList()
	}
	p.expect(token.RPAREN)

	if p.check(token.FILTER) && p.peek(1).Type == token.LPAREN {
		p.advance()
		p.advance()
		p.expect(token.WHERE)
		fn.Filter = p.parseExpression()
		p.expect(token.RPAREN)
	}

	if p.match(token.OVER) {
		fn.Window = p.parseWindowSpec()
	}

	fn.SetSpan(start, p.prevEnd)
	return fn
}

// parseCase parses a searched or simple CASE expression.
func (p *Parser) parseCase() core.Expr {
	defer p.enter("case")()
	start := p.tok.Pos
	p.expect(token.CASE)

	c := &core.CaseExpr{}
	if !p.check(token.WHEN) {
		c.Operand = p.parseExpression()
	}
	for p.check(token.WHEN) {
		whenStart := p.tok.Pos
		p.advance()
		w := &core.WhenClause{Condition: p.parseExpression()}
		p.expect(token.THEN)
		w.Result = p.parseExpression()
		w.SetSpan(whenStart, p.prevEnd)
		c.Whens = append(c.Whens, w)
	}
	if len(c.Whens) == 0 {
		p.failExpected(token.WHEN)
	}
	if p.match(token.ELSE) {
		c.Else = p.parseExpression()
	}
	p.expect(token.END)
	c.SetSpan(start, p.prevEnd)
	return c
}

// parseCast parses CAST(expr AS type).
func (p *Parser) parseCast() core.Expr {
	defer p.enter("cast")()
	start := p.tok.Pos
	p.expect(token.CAST)
	p.expect(token.LPAREN)
	cast := &core.CastExpr{Expr: p.parseExpression()}
	p.expect(token.AS)
	cast.Type = p.parseDataType()
	p.expect(token.RPAREN)
	cast.SetSpan(start, p.prevEnd)
	return cast
}
