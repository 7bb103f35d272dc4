package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Data modification statements.
//
// Grammar:
//
//	insert     → INSERT INTO qualified_name ["(" ident_list ")"] (VALUES row {"," row} | query)
//	row        → "(" expr_list ")"
//	update     → UPDATE table_ref SET assignment {"," assignment} [WHERE expr]
//	assignment → identifier "=" expr | "(" ident_list ")" "=" expr
//	delete     → DELETE FROM table_ref [WHERE expr]

func (p *Parser) parseInsert() *core.InsertStmt {
	defer p.enter("insert")()
	start := p.tok.Pos
	p.expect(token.INSERT)
	p.expect(token.INTO)

	stmt := &core.InsertStmt{Table: p.parseQualifiedName()}
	if p.check(token.LPAREN) && p.peek(1).Type != token.SELECT && p.peek(1).Type != token.WITH {
		stmt.Columns = p.parseIdentList()
	}

	switch {
	case p.match(token.VALUES):
		for {
			rowStart := p.tok.Pos
			p.expect(token.LPAREN)
			row := &core.TupleExpr{Items: p.parseExpressionList()}
			p.expect(token.RPAREN)
			row.SetSpan(rowStart, p.prevEnd)
			stmt.Values = append(stmt.Values, row)
			if !p.match(token.COMMA) {
				break
			}
		}
	case p.check(token.SELECT), p.check(token.WITH):
		stmt.Query = p.parseQuery()
	case p.check(token.LPAREN):
		p.advance()
		stmt.Query = p.parseQuery()
		p.expect(token.RPAREN)
	default:
		p.failExpected(token.VALUES, token.SELECT)
	}

	stmt.SetSpan(start, p.prevEnd)
	return stmt
}

func (p *Parser) parseUpdate() *core.UpdateStmt {
	defer p.enter("update")()
	start := p.tok.Pos
	p.expect(token.UPDATE)

	stmt := &core.UpdateStmt{Table: p.parseTargetTable()}
	p.expect(token.SET)
	for {
		stmt.Set = append(stmt.Set, p.parseAssignment())
		if !p.match(token.COMMA) {
			break
		}
	}
	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
	}

	stmt.SetSpan(start, p.prevEnd)
	return stmt
}

// parseAssignment parses col = expr or (a, b) = expr.
func (p *Parser) parseAssignment() *core.Assignment {
	start := p.tok.Pos
	a := &core.Assignment{}
	if p.check(token.LPAREN) {
		a.Tuple = true
		a.Columns = p.parseIdentList()
	} else {
		a.Columns = []string{p.parseIdent()}
	}
	p.expect(token.EQ)
	a.Value = p.parseExpression()
	a.SetSpan(start, p.prevEnd)
	return a
}

func (p *Parser) parseDelete() *core.DeleteStmt {
	defer p.enter("delete")()
	start := p.tok.Pos
	p.expect(token.DELETE)
	p.expect(token.FROM)

	stmt := &core.DeleteStmt{Table: p.parseTargetTable()}
	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
	}

	stmt.SetSpan(start, p.prevEnd)
	return stmt
}

// parseTargetTable parses the table of UPDATE or DELETE with an optional alias.
func (p *Parser) parseTargetTable() *core.TableName {
	start := p.tok.Pos
	table := p.parseQualifiedName()
	table.Alias = p.parseAlias()
	table.SetSpan(start, p.prevEnd)
	return table
}
