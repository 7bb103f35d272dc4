package core

// ---------- Query Types ----------

// SelectStmt represents a complete query with optional WITH clause.
type SelectStmt struct {
	NodeInfo
	With *WithClause
	Body *SelectBody
}

func (*SelectStmt) stmtNode() {}

// WithClause represents a WITH clause with CTEs.
type WithClause struct {
	NodeInfo
	Recursive bool
	CTEs      []*CTE
}

// CTE represents a Common Table Expression.
type CTE struct {
	NodeInfo
	Name    string
	Columns []string
	Select  *SelectStmt
}

// SelectBody represents a query block with possible chained set operations.
// Set operations are left-associative: a UNION b EXCEPT c is Left=a, Right={b EXCEPT c}.
type SelectBody struct {
	NodeInfo
	Left  *SelectCore
	Op    SetOpType   // empty when there is no set operation
	All   bool        // UNION ALL
	Right *SelectBody // For chained set operations
}

// SetOpType represents the type of set operation.
type SetOpType string

// SetOpType constants for set operations in queries.
const (
	SetOpNone      SetOpType = ""
	SetOpUnion     SetOpType = "UNION"
	SetOpIntersect SetOpType = "INTERSECT"
	SetOpExcept    SetOpType = "EXCEPT"
	SetOpMinus     SetOpType = "MINUS" // Oracle spelling of EXCEPT
)

// SelectCore represents a single query block.
type SelectCore struct {
	NodeInfo
	Top          Expr // SELECT TOP n (SQL Server)
	Distinct     bool
	Columns      []*SelectItem
	From         *FromClause
	Where        Expr
	Hierarchical *HierarchicalClause // START WITH / CONNECT BY (Oracle)
	GroupBy      []Expr
	Having       Expr
	OrderBy      []*OrderByItem
	Limit        Expr
	Offset       Expr
	Fetch        *FetchClause

	// Extensions holds clause nodes of dialects that have no typed field here.
	Extensions []Node
}

// SelectItem represents an item in the SELECT list. Stars are StarExpr values.
type SelectItem struct {
	NodeInfo
	Expr  Expr
	Alias string
}

// FromClause represents the FROM clause.
type FromClause struct {
	NodeInfo
	Source TableRef
	Joins  []*Join
}

// Join represents a JOIN clause.
type Join struct {
	NodeInfo
	Type      JoinType
	Natural   bool // NATURAL JOIN modifier
	Right     TableRef
	Condition Expr     // ON clause (mutually exclusive with Using)
	Using     []string // USING (col1, col2) columns
}

// JoinType represents the type of join.
// The value is the SQL keyword (e.g., "LEFT", "INNER").
type JoinType string

// JoinComma represents an implicit cross join using comma syntax.
const JoinComma JoinType = ","

// OrderByItem represents an item in ORDER BY clause.
type OrderByItem struct {
	NodeInfo
	Expr       Expr
	Desc       bool
	NullsFirst *bool // nil means default, true = NULLS FIRST, false = NULLS LAST
}

// FetchClause represents FETCH FIRST/NEXT n ROWS ONLY/WITH TIES (SQL:2008).
type FetchClause struct {
	NodeInfo
	First    bool // true = FIRST, false = NEXT (semantically identical)
	Count    Expr // Number of rows (nil = 1 row implied)
	Percent  bool
	WithTies bool // true = WITH TIES, false = ONLY
}

// LimitClause is produced by LIMIT handlers. The parser spreads it into
// SelectCore.Limit and SelectCore.Offset; it never appears in a finished tree.
type LimitClause struct {
	NodeInfo
	Count  Expr
	Offset Expr // MySQL LIMIT offset, count
}

// HierarchicalClause represents Oracle START WITH / CONNECT BY.
// Either part may be written first in the source; StartWith may be nil.
type HierarchicalClause struct {
	NodeInfo
	StartWith Expr
	ConnectBy Expr
	NoCycle   bool
}
