package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// FROM clause parsing: table references and joins.
//
// Grammar:
//
//	from_clause   → FROM table_ref {("," table_ref) | join}
//	table_ref     → qualified_name [[AS] alias] | "(" query ")" [[AS] alias]
//	join          → [NATURAL] [join_type [OUTER]] JOIN table_ref [ON expr | USING "(" ident_list ")"]
//
// Join types come from the dialect; a bare JOIN is an inner join.

// parseFrom parses the FROM clause.
func (p *Parser) parseFrom() *core.FromClause {
	defer p.enter("from")()
	start := p.tok.Pos
	p.expect(token.FROM)

	from := &core.FromClause{Source: p.parseTableRef()}
	for {
		if p.check(token.COMMA) {
			joinStart := p.tok.Pos
			p.advance()
			join := &core.Join{Type: core.JoinComma, Right: p.parseTableRef()}
			join.SetSpan(joinStart, p.prevEnd)
			from.Joins = append(from.Joins, join)
			continue
		}
		join := p.parseJoin()
		if join == nil {
			break
		}
		from.Joins = append(from.Joins, join)
	}
	from.SetSpan(start, p.prevEnd)
	return from
}

// parseJoin parses one join, or returns nil if the current token does not
// start a join.
func (p *Parser) parseJoin() *core.Join {
	start := p.tok.Pos
	natural := p.match(token.NATURAL)

	join := &core.Join{Natural: natural, Type: core.JoinInner}
	requiresOn := true
	switch {
	case p.match(token.JOIN):
	default:
		def, ok := p.dialect.JoinTypeDef(p.tok.Type)
		if !ok {
			if natural {
				p.failExpected(token.JOIN)
			}
			return nil
		}
		p.advance()
		if def.OptionalToken != token.EOF {
			p.match(def.OptionalToken)
		}
		p.expect(token.JOIN)
		join.Type = def.Type
		requiresOn = def.RequiresOn
	}

	join.Right = p.parseTableRef()

	if natural && (p.check(token.ON) || p.check(token.USING)) {
		p.failf("NATURAL JOIN cannot have ON or USING")
	}

	switch {
	case natural || !requiresOn:
	case p.match(token.ON):
		join.Condition = p.parseExpression()
	case p.match(token.USING):
		join.Using = p.parseIdentList()
	default:
		p.failExpected(token.ON, token.USING)
	}

	join.SetSpan(start, p.prevEnd)
	return join
}

// parseTableRef parses a table name or derived table with an optional alias.
func (p *Parser) parseTableRef() core.TableRef {
	defer p.enter("table reference")()
	start := p.tok.Pos

	if p.check(token.LPAREN) {
		next := p.peek(1).Type
		if next != token.SELECT && next != token.WITH {
			p.advance()
			p.failExpected(token.SELECT, token.WITH)
		}
		p.advance()
		derived := &core.DerivedTable{Select: p.parseQuery()}
		p.expect(token.RPAREN)
		derived.Alias = p.parseAlias()
		derived.SetSpan(start, p.prevEnd)
		return derived
	}

	table := p.parseQualifiedName()
	table.Alias = p.parseAlias()
	table.SetSpan(start, p.prevEnd)
	return table
}
