// Package stat collects per-statement statistics keyed by a fingerprint of the
// statement's shape. It observes parsed trees from the outside and never
// modifies them.
package stat

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/format"
)

// Key identifies a statement shape. Statements that differ only in number and
// string constants share a Key.
type Key struct {
	ID   string `json:"id" yaml:"id"`     // 16 hex digits
	SQL  string `json:"sql" yaml:"sql"`   // parameterized compact rendering
	Kind string `json:"kind" yaml:"kind"` // statement node kind, e.g. SelectStmt
}

// Fingerprint returns the Key of stmt rendered in d.
func Fingerprint(stmt core.Stmt, d *dialect.Dialect) Key {
	sql := format.Render(stmt, d, format.WithParameterize())
	return Key{
		ID:   fmt.Sprintf("%016x", xxhash.Sum64String(sql)),
		SQL:  sql,
		Kind: core.Kind(stmt),
	}
}
