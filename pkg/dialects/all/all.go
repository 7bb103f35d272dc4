// Package all registers every built-in dialect. Import it for side effects:
//
//	import _ "github.com/leapstack-labs/sqlfront/pkg/dialects/all"
package all

import (
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/ansi"      // ansi
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/mysql"     // mysql
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/oracle"    // oracle
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"  // postgres
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/sqlserver" // sqlserver
)
