package oracle

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// parseCreateSequence handles CREATE SEQUENCE name [options].
// CREATE SEQUENCE has already been consumed.
func parseCreateSequence(p spi.ParserOps) (core.Stmt, error) {
	name, err := p.ParseQualifiedName()
	if err != nil {
		return nil, err
	}
	stmt := &core.CreateSequenceStmt{Name: name}

	for {
		switch {
		case p.Match(TokenStart):
			if err := p.Expect(token.WITH); err != nil {
				return nil, err
			}
			if stmt.StartWith, err = p.ParseExpression(); err != nil {
				return nil, err
			}
		case p.Match(TokenIncrement):
			if err := p.Expect(token.BY); err != nil {
				return nil, err
			}
			if stmt.IncrementBy, err = p.ParseExpression(); err != nil {
				return nil, err
			}
		case p.MatchWord("MINVALUE"):
			if stmt.MinValue, err = p.ParseExpression(); err != nil {
				return nil, err
			}
		case p.MatchWord("MAXVALUE"):
			if stmt.MaxValue, err = p.ParseExpression(); err != nil {
				return nil, err
			}
		case p.MatchWord("CYCLE"):
			cycle := true
			stmt.Cycle = &cycle
		case p.Match(TokenNoCycle):
			cycle := false
			stmt.Cycle = &cycle
		default:
			return stmt, nil
		}
	}
}
