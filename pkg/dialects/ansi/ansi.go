// Package ansi provides the base ANSI SQL dialect with standard clause
// sequence, operators and join types.
package ansi

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// ANSI is the base ANSI SQL dialect.
var ANSI = dialect.NewDialect("ansi").
	Identifiers(`"`, `"`, `""`, core.NormUppercase).
	PlaceholderStyle(core.PlaceholderQuestion).
	Clauses(dialect.StandardSelectClauses()...).
	Operators(dialect.ANSIOperators).
	JoinTypes(dialect.ANSIJoinTypes).
	SetOps(dialect.ANSISetOps).
	Build()
