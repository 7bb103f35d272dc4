// Package postgres provides the PostgreSQL dialect definition.
package postgres

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

func init() {
	dialect.Register(Postgres)
}

// PostgreSQL-specific tokens
var (
	TokenDColon = token.RegisterSymbol("::")
	TokenIlike  = token.Register("ILIKE")
)

var postgresOperators = []core.OperatorDef{
	{Token: TokenIlike, Precedence: core.PrecedenceComparison, Handler: spi.InfixHandler(parseIlike)},
	{Token: TokenDColon, Symbol: "::", Precedence: core.PrecedencePostfix, Handler: spi.InfixHandler(parseCast)},
}

// Postgres is the PostgreSQL dialect configuration.
var Postgres = dialect.NewDialect("postgres").
	Identifiers(`"`, `"`, `""`, core.NormLowercase).
	PlaceholderStyle(core.PlaceholderDollar).
	AddKeyword("ILIKE", TokenIlike).
	WithReservedWords("ilike", "limit", "offset").
	Enable(core.ExtCastOperator, core.ExtIlike).
	Clauses(
		dialect.StandardWhere,
		dialect.StandardGroupBy,
		dialect.StandardHaving,
		dialect.StandardOrderBy,
		dialect.StandardLimit,
		dialect.StandardOffset,
		dialect.StandardFetch,
	).
	Operators(dialect.ANSIOperators, postgresOperators).
	JoinTypes(dialect.ANSIJoinTypes).
	SetOps(dialect.ANSISetOps).
	Build()

// parseIlike handles x ILIKE pattern. ILIKE has already been consumed;
// the parser sets Not for x NOT ILIKE pattern.
func parseIlike(p spi.ParserOps, left core.Expr) (core.Expr, error) {
	pattern, err := p.ParseExpressionAt(core.PrecedenceAddition)
	if err != nil {
		return nil, err
	}
	like := &core.LikeExpr{Expr: left, Pattern: pattern, Op: TokenIlike}
	if p.Match(token.ESCAPE) {
		if like.Escape, err = p.ParseExpressionAt(core.PrecedenceAddition); err != nil {
			return nil, err
		}
	}
	like.SetSpan(left.Pos(), p.LastEnd())
	return like, nil
}

// parseCast handles the expr::type shorthand. :: has already been consumed.
func parseCast(p spi.ParserOps, left core.Expr) (core.Expr, error) {
	typ, err := p.ParseDataType()
	if err != nil {
		return nil, err
	}
	cast := &core.CastExpr{Expr: left, Type: typ, Shorthand: true}
	cast.SetSpan(left.Pos(), p.LastEnd())
	return cast, nil
}
