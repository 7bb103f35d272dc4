package oracle

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// parseStartWith handles START WITH cond [CONNECT BY ...].
// The START keyword has already been consumed.
func parseStartWith(p spi.ParserOps) (any, error) {
	h := &core.HierarchicalClause{}
	start := p.Position()
	if err := p.Expect(token.WITH); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	h.StartWith = cond

	if !p.Match(TokenConnect) {
		return nil, p.Errorf("expected CONNECT BY after START WITH")
	}
	if err := parseConnectBody(p, h); err != nil {
		return nil, err
	}
	h.SetSpan(start, p.LastEnd())
	return h, nil
}

// parseConnectBy handles CONNECT BY [NOCYCLE] cond [START WITH cond].
// The CONNECT keyword has already been consumed.
func parseConnectBy(p spi.ParserOps) (any, error) {
	h := &core.HierarchicalClause{}
	start := p.Position()
	if err := parseConnectBody(p, h); err != nil {
		return nil, err
	}
	if p.Match(TokenStart) {
		if err := p.Expect(token.WITH); err != nil {
			return nil, err
		}
		cond, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		h.StartWith = cond
	}
	h.SetSpan(start, p.LastEnd())
	return h, nil
}

func parseConnectBody(p spi.ParserOps, h *core.HierarchicalClause) error {
	if err := p.Expect(token.BY); err != nil {
		return err
	}
	h.NoCycle = p.Match(TokenNoCycle)
	cond, err := p.ParseExpression()
	if err != nil {
		return err
	}
	h.ConnectBy = cond
	return nil
}

// parsePrior handles PRIOR expr. PRIOR binds like a unary operator, so
// PRIOR a = b is (PRIOR a) = b.
func parsePrior(p spi.ParserOps) (core.Expr, error) {
	start := p.Position()
	operand, err := p.ParseExpressionAt(core.PrecedenceUnary)
	if err != nil {
		return nil, err
	}
	prior := &core.PriorExpr{Expr: operand}
	prior.SetSpan(start, p.LastEnd())
	return prior, nil
}
