package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Statement and query parsing.
//
// Grammar:
//
//	statement     → query | "(" query ")" | insert | update | delete | create | drop
//	query         → [WITH [RECURSIVE] cte {"," cte}] select_body
//	cte           → identifier ["(" ident_list ")"] AS "(" query ")"
//	select_body   → select_core [set_op [ALL|DISTINCT] select_body]
//	select_core   → SELECT [TOP expr] [DISTINCT|ALL] select_item {"," select_item}
//	                [FROM from_clause] {dialect_clause}
//	select_item   → "*" | name "." "*" | expr [[AS] alias]

// parseStatement dispatches on the leading keyword.
func (p *Parser) parseStatement() core.Stmt {
	defer p.enter("statement")()

	switch p.tok.Type {
	case token.SELECT, token.WITH:
		return p.parseQuery()
	case token.LPAREN:
		p.advance()
		stmt := p.parseQuery()
		p.expect(token.RPAREN)
		return stmt
	case token.INSERT:
		return p.parseInsert()
	case token.UPDATE:
		return p.parseUpdate()
	case token.DELETE:
		return p.parseDelete()
	case token.CREATE:
		return p.parseCreate()
	case token.DROP:
		return p.parseDrop()
	}
	p.failExpected(token.SELECT, token.WITH, token.INSERT, token.UPDATE, token.DELETE, token.CREATE, token.DROP)
	return nil
}

// parseQuery parses a complete query with an optional WITH clause.
func (p *Parser) parseQuery() *core.SelectStmt {
	defer p.enter("query")()
	start := p.tok.Pos

	stmt := &core.SelectStmt{}
	if p.check(token.WITH) {
		stmt.With = p.parseWith()
	}
	stmt.Body = p.parseSelectBody()
	stmt.SetSpan(start, p.prevEnd)
	return stmt
}

// parseWith parses a WITH clause.
func (p *Parser) parseWith() *core.WithClause {
	start := p.tok.Pos
	p.expect(token.WITH)

	with := &core.WithClause{Recursive: p.match(token.RECURSIVE)}
	for {
		cteStart := p.tok.Pos
		cte := &core.CTE{Name: p.parseIdent()}
		if p.check(token.LPAREN) {
			cte.Columns = p.parseIdentList()
		}
		p.expect(token.AS)
		p.expect(token.LPAREN)
		cte.Select = p.parseQuery()
		p.expect(token.RPAREN)
		cte.SetSpan(cteStart, p.prevEnd)
		with.CTEs = append(with.CTEs, cte)
		if !p.match(token.COMMA) {
			break
		}
	}
	with.SetSpan(start, p.prevEnd)
	return with
}

// parseSelectBody parses a query block and any set operations after it.
func (p *Parser) parseSelectBody() *core.SelectBody {
	start := p.tok.Pos
	body := &core.SelectBody{Left: p.parseSelectCore()}

	if op, ok := p.dialect.SetOp(p.tok.Type); ok {
		p.advance()
		body.Op = op
		if p.match(token.ALL) {
			body.All = true
		} else {
			p.match(token.DISTINCT)
		}
		body.Right = p.parseSelectBody()
	}
	body.SetSpan(start, p.prevEnd)
	return body
}

// parseSelectCore parses a single SELECT block.
func (p *Parser) parseSelectCore() *core.SelectCore {
	defer p.enter("select")()
	start := p.tok.Pos
	p.expect(token.SELECT)

	sc := &core.SelectCore{}
	if p.dialect.HasExtension(core.ExtSelectTop) && p.checkWord("TOP") {
		p.advance()
		sc.Top = p.parseExpressionAt(core.PrecedenceUnary)
	}
	if p.match(token.DISTINCT) {
		sc.Distinct = true
	} else {
		p.match(token.ALL)
	}

	sc.Columns = p.parseSelectList()

	if p.check(token.FROM) {
		sc.From = p.parseFrom()
	}

	p.parseClauses(sc)
	sc.SetSpan(start, p.prevEnd)
	return sc
}

// parseClauses parses the dialect's clauses after FROM in declared order.
func (p *Parser) parseClauses(sc *core.SelectCore) {
	last := -1
	for {
		idx := p.dialect.ClauseIndex(p.tok.Type)
		if idx < 0 {
			p.checkUnsupportedClause()
			return
		}

		clauseTok := p.tok
		def, _ := p.dialect.ClauseDef(clauseTok.Type)
		if idx <= last {
			p.failf(ErrClauseOrder, def.Name())
		}
		last = idx

		handler := p.dialect.ClauseHandler(clauseTok.Type)
		if handler == nil {
			p.failf(ErrNoClauseHandler, def.Name())
		}

		restore := p.enter(strings.ToLower(def.Name()))
		p.advance()
		result, err := handler(p)
		p.must(err)
		restore()

		p.storeClause(sc, def, clauseTok, result)
	}
}

// checkUnsupportedClause fails if the current word starts a clause of some
// other dialect.
func (p *Parser) checkUnsupportedClause() {
	if !isWord(p.tok) || p.tok.Type == token.QIDENT {
		return
	}
	if _, ok := p.dialect.SetOp(p.tok.Type); ok {
		return
	}
	if name, known := dialect.IsKnownClause(p.tok.Literal); known {
		p.failf(ErrUnsupportedClause, name, p.dialect.Name)
	}
}

// storeClause stores a clause result in the slot its definition names.
func (p *Parser) storeClause(sc *core.SelectCore, def core.ClauseDef, tok token.Token, result any) {
	bad := func() {
		err := p.newError("")
		err.Pos, err.Token = tok.Pos, tok
		if result == nil {
			err.Message = "clause " + def.Name() + " produced no result"
		} else {
			err.Message = fmt.Sprintf(ErrUnexpectedClauseType, def.Name(), result)
		}
		p.fail(err)
	}
	dup := func() {
		err := p.newError(fmt.Sprintf(ErrClauseOrder, def.Name()))
		err.Pos, err.Token = tok.Pos, tok
		p.fail(err)
	}

	switch def.Slot {
	case core.SlotWhere, core.SlotHaving, core.SlotOffset:
		expr, ok := result.(core.Expr)
		if !ok {
			bad()
		}
		target := &sc.Where
		switch def.Slot {
		case core.SlotHaving:
			target = &sc.Having
		case core.SlotOffset:
			target = &sc.Offset
		}
		if *target != nil {
			dup()
		}
		*target = expr

	case core.SlotHierarchical:
		h, ok := result.(*core.HierarchicalClause)
		if !ok {
			bad()
		}
		if sc.Hierarchical != nil {
			dup()
		}
		sc.Hierarchical = h

	case core.SlotGroupBy:
		exprs, ok := result.([]core.Expr)
		if !ok {
			bad()
		}
		sc.GroupBy = exprs

	case core.SlotOrderBy:
		items, ok := result.([]*core.OrderByItem)
		if !ok {
			bad()
		}
		sc.OrderBy = items

	case core.SlotLimit:
		switch v := result.(type) {
		case *core.LimitClause:
			sc.Limit = v.Count
			if v.Offset != nil {
				if sc.Offset != nil {
					dup()
				}
				sc.Offset = v.Offset
			}
		case core.Expr:
			sc.Limit = v
		default:
			bad()
		}

	case core.SlotFetch:
		fetch, ok := result.(*core.FetchClause)
		if !ok {
			bad()
		}
		sc.Fetch = fetch

	default:
		node, ok := result.(core.Node)
		if !ok {
			bad()
		}
		sc.Extensions = append(sc.Extensions, node)
	}
}

// parseSelectList parses the comma-separated projection list.
func (p *Parser) parseSelectList() []*core.SelectItem {
	items := []*core.SelectItem{p.parseSelectItem()}
	for p.match(token.COMMA) {
		items = append(items, p.parseSelectItem())
	}
	return items
}

// parseSelectItem parses one projection.
func (p *Parser) parseSelectItem() *core.SelectItem {
	start := p.tok.Pos
	item := &core.SelectItem{}

	if star := p.parseStar(); star != nil {
		item.Expr = star
		item.SetSpan(start, p.prevEnd)
		return item
	}

	item.Expr = p.parseExpression()
	item.Alias = p.parseAlias()
	item.SetSpan(start, p.prevEnd)
	return item
}

// parseStar parses *, t.* or s.t.* and returns nil, consuming nothing, if
// the input is something else.
func (p *Parser) parseStar() *core.StarExpr {
	start := p.tok.Pos
	if p.match(token.STAR) {
		star := &core.StarExpr{}
		star.SetSpan(start, p.prevEnd)
		return star
	}
	if !p.isIdent(p.tok) || p.peek(1).Type != token.DOT {
		return nil
	}

	m := p.mark()
	parts := []string{p.tok.Literal}
	p.advance()
	for len(parts) <= 2 && p.match(token.DOT) {
		if p.match(token.STAR) {
			star := &core.StarExpr{Table: parts[len(parts)-1]}
			if len(parts) == 2 {
				star.Schema = parts[0]
			}
			star.SetSpan(start, p.prevEnd)
			return star
		}
		if !isWord(p.tok) {
			break
		}
		parts = append(parts, p.tok.Literal)
		p.advance()
	}
	p.reset(m)
	return nil
}

// parseAlias parses an optional [AS] alias.
func (p *Parser) parseAlias() string {
	if p.match(token.AS) {
		return p.parseIdent()
	}
	if p.isImplicitAlias() {
		alias := p.tok.Literal
		p.advance()
		return alias
	}
	return ""
}
