// Package sqlserver provides the SQL Server (T-SQL) dialect definition.
package sqlserver

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

func init() {
	dialect.Register(SQLServer)
}

// TokenTop is the TOP keyword of SELECT TOP n.
var TokenTop = token.Register("TOP")

// SQLServer is the SQL Server dialect configuration.
var SQLServer = dialect.NewDialect("sqlserver").
	Identifiers("[", "]", "]]", core.NormCaseInsensitive).
	PlaceholderStyle(core.PlaceholderQuestion).
	AddKeyword("TOP", TokenTop).
	WithReservedWords("top").
	Enable(core.ExtSelectTop, core.ExtDoubleQuotedIdentifiers).
	Clauses(dialect.StandardSelectClauses()...).
	Operators(dialect.ANSIOperators).
	JoinTypes(dialect.ANSIJoinTypes).
	SetOps(dialect.ANSISetOps).
	Build()
