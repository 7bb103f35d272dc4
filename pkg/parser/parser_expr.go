package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Expression parsing: precedence climbing over the dialect's operator table.
//
// Grammar:
//
//	expr      → prefix {infix}
//	prefix    → NOT expr | ("-"|"+") expr | dialect_prefix expr | primary
//	infix     → binary_op expr
//	          | [NOT] IN "(" (query | expr_list) ")"
//	          | [NOT] BETWEEN expr AND expr
//	          | [NOT] LIKE expr [ESCAPE expr]
//	          | IS [NOT] (NULL | TRUE | FALSE)
//	          | dialect_infix
//
// Precedence levels come from core.Precedence*; binary operators are left
// associative.

// parseExpression parses a full expression.
func (p *Parser) parseExpression() core.Expr {
	return p.parseExpressionAt(core.PrecedenceOr)
}

// parseExpressionAt parses an expression whose infix operators all have
// precedence >= minPrec.
func (p *Parser) parseExpressionAt(minPrec int) core.Expr {
	defer p.enter("expression")()

	left := p.parsePrefix()
	for {
		prec := p.infixPrecedence()
		if prec == core.PrecedenceNone || prec < minPrec {
			return left
		}
		left = p.parseInfix(left, prec)
	}
}

// infixPrecedence returns the precedence of the current token in infix
// position, or PrecedenceNone if it does not continue an expression.
func (p *Parser) infixPrecedence() int {
	if p.tok.Type != token.NOT {
		return p.dialect.Precedence(p.tok.Type)
	}
	// NOT only continues an expression as NOT IN / NOT LIKE / NOT BETWEEN or
	// a negated dialect comparison such as NOT ILIKE.
	next := p.peek(1).Type
	switch next {
	case token.IN, token.LIKE, token.BETWEEN:
		return p.dialect.Precedence(token.NOT)
	}
	if p.dialect.InfixHandler(next) != nil && p.dialect.Precedence(next) == core.PrecedenceComparison {
		return p.dialect.Precedence(token.NOT)
	}
	return core.PrecedenceNone
}

// parseInfix parses the operator at the current token and its right side.
func (p *Parser) parseInfix(left core.Expr, prec int) core.Expr {
	start := left.Pos()
	not := p.match(token.NOT)
	op := p.tok

	switch op.Type {
	case token.IN:
		p.advance()
		return p.parseIn(left, not)
	case token.BETWEEN:
		p.advance()
		return p.parseBetween(left, not)
	case token.LIKE:
		p.advance()
		return p.parseLike(left, not)
	case token.IS:
		p.advance()
		return p.parseIs(left)
	}

	if h := p.dialect.InfixHandler(op.Type); h != nil {
		p.advance()
		expr, err := h(p, left)
		p.must(err)
		if not {
			like, ok := expr.(*core.LikeExpr)
			if !ok {
				p.failf("NOT cannot precede %s", op.Type)
			}
			like.Not = true
		}
		if s, ok := expr.(core.Spanned); ok {
			s.SetSpan(start, p.prevEnd)
		}
		return expr
	}

	p.advance()
	right := p.parseExpressionAt(prec + 1)
	bin := &core.BinaryExpr{Left: left, Op: op.Type, Right: right}
	bin.SetSpan(start, p.prevEnd)
	return bin
}

// parseIn parses the list after [NOT] IN.
func (p *Parser) parseIn(left core.Expr, not bool) core.Expr {
	in := &core.InExpr{Expr: left, Not: not}
	p.expect(token.LPAREN)
	if p.check(token.SELECT) || p.check(token.WITH) {
		in.Query = p.parseQuery()
	} else {
		in.Values = p.parseExpressionList()
	}
	p.expect(token.RPAREN)
	in.SetSpan(left.Pos(), p.prevEnd)
	return in
}

// parseBetween parses the bounds after [NOT] BETWEEN. Bounds bind tighter
// than AND so the separating AND is not taken as a conjunction.
func (p *Parser) parseBetween(left core.Expr, not bool) core.Expr {
	between := &core.BetweenExpr{Expr: left, Not: not}
	between.Low = p.parseExpressionAt(core.PrecedenceAddition)
	p.expect(token.AND)
	between.High = p.parseExpressionAt(core.PrecedenceAddition)
	between.SetSpan(left.Pos(), p.prevEnd)
	return between
}

// parseLike parses the pattern after [NOT] LIKE.
func (p *Parser) parseLike(left core.Expr, not bool) core.Expr {
	like := &core.LikeExpr{Expr: left, Not: not, Op: token.LIKE}
	like.Pattern = p.parseExpressionAt(core.PrecedenceAddition)
	if p.match(token.ESCAPE) {
		like.Escape = p.parseExpressionAt(core.PrecedenceAddition)
	}
	like.SetSpan(left.Pos(), p.prevEnd)
	return like
}

// parseIs parses IS [NOT] NULL|TRUE|FALSE.
func (p *Parser) parseIs(left core.Expr) core.Expr {
	not := p.match(token.NOT)
	var expr core.Expr
	switch {
	case p.match(token.NULL):
		expr = &core.IsNullExpr{Expr: left, Not: not}
	case p.match(token.TRUE):
		expr = &core.IsBoolExpr{Expr: left, Not: not, Value: true}
	case p.match(token.FALSE):
		expr = &core.IsBoolExpr{Expr: left, Not: not, Value: false}
	default:
		p.failExpected(token.NULL, token.TRUE, token.FALSE)
	}
	expr.(core.Spanned).SetSpan(left.Pos(), p.prevEnd)
	return expr
}

// parsePrefix parses prefix operators and primaries.
func (p *Parser) parsePrefix() core.Expr {
	start := p.tok.Pos
	switch p.tok.Type {
	case token.NOT:
		p.advance()
		operand := p.parseExpressionAt(core.PrecedenceNot)
		u := &core.UnaryExpr{Op: token.NOT, Expr: operand}
		u.SetSpan(start, p.prevEnd)
		return u
	case token.MINUS, token.PLUS:
		op := p.tok.Type
		p.advance()
		operand := p.parseExpressionAt(core.PrecedenceUnary)
		u := &core.UnaryExpr{Op: op, Expr: operand}
		u.SetSpan(start, p.prevEnd)
		return u
	}

	if h := p.dialect.PrefixHandler(p.tok.Type); h != nil {
		p.advance()
		expr, err := h(p)
		p.must(err)
		if s, ok := expr.(core.Spanned); ok {
			s.SetSpan(start, p.prevEnd)
		}
		return expr
	}
	return p.parsePrimary()
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() []core.Expr {
	exprs := []core.Expr{p.parseExpression()}
	for p.match(token.COMMA) {
		exprs = append(exprs, p.parseExpression())
	}
	return exprs
}

// parseOrderByList parses a comma-separated list of ORDER BY items.
//
//	order_item → expr [ASC|DESC] [NULLS (FIRST|LAST)]
func (p *Parser) parseOrderByList() []*core.OrderByItem {
	var items []*core.OrderByItem
	for {
		start := p.tok.Pos
		item := &core.OrderByItem{Expr: p.parseExpression()}
		if p.match(token.DESC) {
			item.Desc = true
		} else {
			p.match(token.ASC)
		}
		if p.match(token.NULLS) {
			first := true
			switch {
			case p.match(token.FIRST):
			case p.match(token.LAST):
				first = false
			default:
				p.failExpected(token.FIRST, token.LAST)
			}
			item.NullsFirst = &first
		}
		item.SetSpan(start, p.prevEnd)
		items = append(items, item)
		if !p.match(token.COMMA) {
			return items
		}
	}
}
