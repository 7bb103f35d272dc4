package core

// ---------- Data Manipulation ----------

// InsertStmt represents INSERT INTO t [(cols)] VALUES ... | query.
type InsertStmt struct {
	NodeInfo
	Table   *TableName
	Columns []string
	Values  []*TupleExpr // one per row; single-value rows are one-item tuples
	Query   *SelectStmt
}

func (*InsertStmt) stmtNode() {}

// UpdateStmt represents UPDATE t SET ... [WHERE ...].
type UpdateStmt struct {
	NodeInfo
	Table *TableName
	Set   []*Assignment
	Where Expr
}

func (*UpdateStmt) stmtNode() {}

// Assignment is one SET item: col = expr or (a, b) = expr.
type Assignment struct {
	NodeInfo
	Columns []string
	Tuple   bool // columns were written in parentheses
	Value   Expr
}

// DeleteStmt represents DELETE FROM t [WHERE ...].
type DeleteStmt struct {
	NodeInfo
	Table *TableName
	Where Expr
}

func (*DeleteStmt) stmtNode() {}

// ---------- Data Definition ----------

// CreateTableStmt represents CREATE TABLE.
type CreateTableStmt struct {
	NodeInfo
	Table       *TableName
	IfNotExists bool
	Columns     []*ColumnDef
	Constraints []*TableConstraint
	AsSelect    *SelectStmt // CREATE TABLE t AS query
}

func (*CreateTableStmt) stmtNode() {}

// ColumnDef is a column definition inside CREATE TABLE.
type ColumnDef struct {
	NodeInfo
	Name       string
	Type       DataType
	NotNull    bool
	Null       bool // explicit NULL
	Default    Expr
	PrimaryKey bool
	Unique     bool
	Check      Expr
	References *Reference
}

// Reference is a REFERENCES target.
type Reference struct {
	Table   *TableName
	Columns []string
}

// ConstraintKind identifies a table-level constraint.
type ConstraintKind string

// Table constraint kinds.
const (
	ConstraintPrimaryKey ConstraintKind = "PRIMARY KEY"
	ConstraintUnique     ConstraintKind = "UNIQUE"
	ConstraintCheck      ConstraintKind = "CHECK"
)

// TableConstraint is a table-level constraint inside CREATE TABLE.
type TableConstraint struct {
	NodeInfo
	Name    string // CONSTRAINT name, optional
	Kind    ConstraintKind
	Columns []string
	Check   Expr
}

// CreateSequenceStmt represents Oracle CREATE SEQUENCE.
type CreateSequenceStmt struct {
	NodeInfo
	Name        *TableName
	StartWith   Expr
	IncrementBy Expr
	MinValue    Expr
	MaxValue    Expr
	Cycle       *bool // nil when neither CYCLE nor NOCYCLE was written
}

func (*CreateSequenceStmt) stmtNode() {}

// ObjectKind names the kind of object a DROP statement removes.
type ObjectKind string

// Droppable object kinds.
const (
	ObjectTable    ObjectKind = "TABLE"
	ObjectSequence ObjectKind = "SEQUENCE"
)

// DropStmt represents DROP TABLE|SEQUENCE [IF EXISTS] names [CASCADE|RESTRICT].
type DropStmt struct {
	NodeInfo
	Kind     ObjectKind
	IfExists bool
	Names    []*TableName
	Cascade  bool
	Restrict bool
}

func (*DropStmt) stmtNode() {}
