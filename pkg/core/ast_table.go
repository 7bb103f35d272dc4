package core

import "strings"

// ---------- Table Reference Types ----------

// TableName represents a possibly qualified table (or sequence) name.
type TableName struct {
	NodeInfo
	Catalog string
	Schema  string
	Name    string
	Alias   string
}

func (*TableName) tableRefNode() {}

// Qualified returns the dotted name without alias.
func (t *TableName) Qualified() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{t.Catalog, t.Schema, t.Name} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ".")
}

// DerivedTable represents a subquery in FROM clause.
type DerivedTable struct {
	NodeInfo
	Select *SelectStmt
	Alias  string
}

func (*DerivedTable) tableRefNode() {}
