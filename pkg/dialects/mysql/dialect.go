// Package mysql provides the MySQL dialect definition.
package mysql

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

// MySQL is the MySQL dialect configuration: backtick identifiers and
// LIMIT offset, count.
var MySQL = dialect.NewDialect("mysql").
	Identifiers("`", "`", "``", core.NormCaseSensitive).
	PlaceholderStyle(core.PlaceholderQuestion).
	WithReservedWords("limit", "offset").
	Enable(core.ExtLimitComma, core.ExtDoubleQuotedStrings).
	Clauses(
		dialect.StandardWhere,
		dialect.StandardGroupBy,
		dialect.StandardHaving,
		dialect.StandardOrderBy,
		dialect.StandardLimit,
		dialect.StandardOffset,
	).
	Operators(dialect.ANSIOperators).
	JoinTypes(dialect.ANSIJoinTypes).
	SetOps(dialect.ANSISetOps).
	Build()
