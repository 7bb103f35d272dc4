package dialect

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Standard Clause Handlers ----------
// These are stateless functions that can be composed into any dialect.
// The leading keyword has already been consumed when these are called.

// ParseWhere handles WHERE and HAVING.
func ParseWhere(p spi.ParserOps) (any, error) {
	return p.ParseExpression()
}

// ParseGroupBy handles the standard GROUP BY clause.
func ParseGroupBy(p spi.ParserOps) (any, error) {
	if err := p.Expect(token.BY); err != nil {
		return nil, err
	}
	return p.ParseExpressionList()
}

// ParseOrderBy handles the standard ORDER BY clause.
func ParseOrderBy(p spi.ParserOps) (any, error) {
	if err := p.Expect(token.BY); err != nil {
		return nil, err
	}
	return p.ParseOrderByList()
}

// ParseLimit handles LIMIT n, and LIMIT offset, n where the dialect allows it.
func ParseLimit(p spi.ParserOps) (any, error) {
	start := p.Position()
	count, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	limit := &core.LimitClause{Count: count}
	if p.HasExtension(core.ExtLimitComma) && p.Match(token.COMMA) {
		limit.Offset = count
		if limit.Count, err = p.ParseExpression(); err != nil {
			return nil, err
		}
	}
	limit.SetSpan(start, p.LastEnd())
	return limit, nil
}

// ParseOffset handles OFFSET n [ROW|ROWS].
func ParseOffset(p spi.ParserOps) (any, error) {
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.Match(token.ROWS) {
		p.Match(token.ROW)
	}
	return expr, nil
}

// ParseFetch handles FETCH FIRST|NEXT [n [PERCENT]] ROW|ROWS ONLY|WITH TIES.
func ParseFetch(p spi.ParserOps) (any, error) {
	fetch := &core.FetchClause{}
	start := p.Position()

	switch {
	case p.Match(token.FIRST):
		fetch.First = true
	case p.Match(token.NEXT):
	default:
		return nil, p.Errorf("expected FIRST or NEXT after FETCH")
	}

	if !p.Check(token.ROW) && !p.Check(token.ROWS) {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		fetch.Count = expr
		if p.Match(token.PERCENT_KW) {
			fetch.Percent = true
		}
	}

	if !p.Match(token.ROW) && !p.Match(token.ROWS) {
		return nil, p.Errorf("expected ROW or ROWS in FETCH clause")
	}

	switch {
	case p.Match(token.ONLY):
	case p.Match(token.WITH):
		if err := p.Expect(token.TIES); err != nil {
			return nil, err
		}
		fetch.WithTies = true
	default:
		return nil, p.Errorf("expected ONLY or WITH TIES")
	}

	fetch.SetSpan(start, p.LastEnd())
	return fetch, nil
}

// --- Standard Clause Definitions ---
// Handlers are explicitly typed to spi.ClauseHandler to enable type assertions at call site.

var (
	// StandardWhere is the standard WHERE clause definition.
	StandardWhere = core.ClauseDef{
		Token:   token.WHERE,
		Handler: spi.ClauseHandler(ParseWhere),
		Slot:    core.SlotWhere,
	}

	// StandardGroupBy is the standard GROUP BY clause definition.
	StandardGroupBy = core.ClauseDef{
		Token:    token.GROUP,
		Handler:  spi.ClauseHandler(ParseGroupBy),
		Slot:     core.SlotGroupBy,
		Keywords: []string{"GROUP", "BY"},
	}

	// StandardHaving is the standard HAVING clause definition.
	StandardHaving = core.ClauseDef{
		Token:   token.HAVING,
		Handler: spi.ClauseHandler(ParseWhere),
		Slot:    core.SlotHaving,
	}

	// StandardOrderBy is the standard ORDER BY clause definition.
	StandardOrderBy = core.ClauseDef{
		Token:    token.ORDER,
		Handler:  spi.ClauseHandler(ParseOrderBy),
		Slot:     core.SlotOrderBy,
		Keywords: []string{"ORDER", "BY"},
	}

	// StandardLimit is the LIMIT clause definition (not ANSI, but near universal).
	StandardLimit = core.ClauseDef{
		Token:   token.LIMIT,
		Handler: spi.ClauseHandler(ParseLimit),
		Slot:    core.SlotLimit,
	}

	// StandardOffset is the standard OFFSET clause definition.
	StandardOffset = core.ClauseDef{
		Token:   token.OFFSET,
		Handler: spi.ClauseHandler(ParseOffset),
		Slot:    core.SlotOffset,
	}

	// StandardFetch is the SQL:2008 FETCH clause definition.
	StandardFetch = core.ClauseDef{
		Token:   token.FETCH,
		Handler: spi.ClauseHandler(ParseFetch),
		Slot:    core.SlotFetch,
	}
)

// StandardSelectClauses is the ANSI clause sequence after FROM.
func StandardSelectClauses() []core.ClauseDef {
	return []core.ClauseDef{
		StandardWhere,
		StandardGroupBy,
		StandardHaving,
		StandardOrderBy,
		StandardOffset,
		StandardFetch,
	}
}
