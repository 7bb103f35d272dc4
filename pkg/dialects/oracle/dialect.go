// Package oracle provides the Oracle dialect definition: hierarchical queries
// (START WITH / CONNECT BY [NOCYCLE] PRIOR), sequence pseudocolumns
// (seq.NEXTVAL / seq.CURRVAL), MINUS and CREATE SEQUENCE.
package oracle

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

func init() {
	dialect.Register(Oracle)
}

// Oracle-specific tokens
var (
	TokenStart     = token.Register("START")
	TokenConnect   = token.Register("CONNECT")
	TokenPrior     = token.Register("PRIOR")
	TokenNoCycle   = token.Register("NOCYCLE")
	TokenMinus     = token.Register("MINUS")
	TokenSequence  = token.Register("SEQUENCE")
	TokenIncrement = token.Register("INCREMENT")
)

// --- Oracle-specific Clause Definitions ---

// StartWith is START WITH; it also accepts a following CONNECT BY.
var StartWith = core.ClauseDef{
	Token:    TokenStart,
	Handler:  spi.ClauseHandler(parseStartWith),
	Slot:     core.SlotHierarchical,
	Keywords: []string{"START", "WITH"},
}

// ConnectBy is CONNECT BY; it also accepts a following START WITH.
var ConnectBy = core.ClauseDef{
	Token:    TokenConnect,
	Handler:  spi.ClauseHandler(parseConnectBy),
	Slot:     core.SlotHierarchical,
	Keywords: []string{"CONNECT", "BY"},
}

// Oracle is the Oracle dialect configuration.
var Oracle = dialect.NewDialect("oracle").
	Identifiers(`"`, `"`, `""`, core.NormUppercase).
	PlaceholderStyle(core.PlaceholderColon).
	AddKeyword("START", TokenStart).
	AddKeyword("CONNECT", TokenConnect).
	AddKeyword("PRIOR", TokenPrior).
	AddKeyword("NOCYCLE", TokenNoCycle).
	AddKeyword("MINUS", TokenMinus).
	AddKeyword("SEQUENCE", TokenSequence).
	AddKeyword("INCREMENT", TokenIncrement).
	WithReservedWords("start", "connect", "prior", "minus").
	Enable(core.ExtHierarchicalQueries, core.ExtSequencePseudocolumns).
	Clauses(
		dialect.StandardWhere,
		StartWith,
		ConnectBy,
		dialect.StandardGroupBy,
		dialect.StandardHaving,
		dialect.StandardOrderBy,
		dialect.StandardOffset,
		dialect.StandardFetch,
	).
	Operators(dialect.ANSIOperators).
	JoinTypes(dialect.ANSIJoinTypes).
	SetOps(dialect.ANSISetOps).
	AddSetOp(TokenMinus, core.SetOpMinus).
	AddPrefix(TokenPrior, parsePrior).
	AddCreate(TokenSequence, parseCreateSequence).
	Build()
