package core

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Expression Types ----------

// ColumnRef represents a column reference (possibly qualified).
type ColumnRef struct {
	NodeInfo
	Schema string
	Table  string // optional table/alias qualifier
	Column string
}

func (*ColumnRef) exprNode() {}

// Literal represents a literal value. Value holds the unescaped text.
type Literal struct {
	NodeInfo
	Type  LiteralType
	Value string
}

func (*Literal) exprNode() {}

// LiteralType represents the type of a literal.
type LiteralType int

// LiteralType constants for SQL literal value types.
const (
	LiteralNumber LiteralType = iota
	LiteralString
	LiteralBool
	LiteralNull
)

func (t LiteralType) String() string {
	switch t {
	case LiteralNumber:
		return "number"
	case LiteralString:
		return "string"
	case LiteralBool:
		return "bool"
	case LiteralNull:
		return "null"
	default:
		return "unknown"
	}
}

// Param represents a bind parameter: ?, $1 or :name.
type Param struct {
	NodeInfo
	Name string // source text including the marker
}

func (*Param) exprNode() {}

// BinaryExpr represents a binary expression.
type BinaryExpr struct {
	NodeInfo
	Left  Expr
	Op    token.TokenType
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr represents a prefix expression: NOT x, -x, +x.
type UnaryExpr struct {
	NodeInfo
	Op   token.TokenType
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// FuncCall represents a function call.
type FuncCall struct {
	NodeInfo
	Schema   string
	Name     string
	Distinct bool
	Args     []Expr
	Star     bool        // COUNT(*)
	Filter   Expr        // FILTER (WHERE ...) clause
	Window   *WindowSpec // OVER clause
}

func (*FuncCall) exprNode() {}

// WindowSpec represents a window specification (OVER clause).
type WindowSpec struct {
	NodeInfo
	Name        string // OVER w
	PartitionBy []Expr
	OrderBy     []*OrderByItem
	Frame       *FrameSpec
}

// FrameSpec represents a window frame specification.
type FrameSpec struct {
	NodeInfo
	Type     FrameType
	Start    *FrameBound
	EndBound *FrameBound // nil unless BETWEEN was used
}

// FrameType represents the type of window frame.
type FrameType string

// FrameType constants for window frame specification types.
const (
	FrameRows   FrameType = "ROWS"
	FrameRange  FrameType = "RANGE"
	FrameGroups FrameType = "GROUPS"
)

// FrameBound represents a window frame bound.
type FrameBound struct {
	NodeInfo
	Type   FrameBoundType
	Offset Expr // for N PRECEDING/FOLLOWING
}

// FrameBoundType represents the type of frame bound.
type FrameBoundType string

// FrameBoundType constants for window frame bound types.
const (
	FrameUnboundedPreceding FrameBoundType = "UNBOUNDED PRECEDING"
	FrameUnboundedFollowing FrameBoundType = "UNBOUNDED FOLLOWING"
	FrameCurrentRow         FrameBoundType = "CURRENT ROW"
	FrameExprPreceding      FrameBoundType = "PRECEDING"
	FrameExprFollowing      FrameBoundType = "FOLLOWING"
)

// CaseExpr represents a CASE expression.
type CaseExpr struct {
	NodeInfo
	Operand Expr // CASE operand WHEN... (optional)
	Whens   []*WhenClause
	Else    Expr
}

func (*CaseExpr) exprNode() {}

// WhenClause represents a WHEN clause in CASE expression.
type WhenClause struct {
	NodeInfo
	Condition Expr
	Result    Expr
}

// DataType is a type name with optional arguments, e.g. VARCHAR(20) or NUMBER(10, 2).
type DataType struct {
	Name string   // may contain spaces: DOUBLE PRECISION
	Args []string // raw argument text
}

func (d DataType) String() string {
	if len(d.Args) == 0 {
		return d.Name
	}
	return d.Name + "(" + strings.Join(d.Args, ", ") + ")"
}

// CastExpr represents CAST(expr AS type) or the expr::type shorthand.
type CastExpr struct {
	NodeInfo
	Expr      Expr
	Type      DataType
	Shorthand bool // written as expr::type
}

func (*CastExpr) exprNode() {}

// InExpr represents an IN expression.
type InExpr struct {
	NodeInfo
	Expr   Expr
	Not    bool
	Values []Expr      // IN (1, 2, 3)
	Query  *SelectStmt // IN (SELECT ...)
}

func (*InExpr) exprNode() {}

// BetweenExpr represents a BETWEEN expression.
type BetweenExpr struct {
	NodeInfo
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

func (*BetweenExpr) exprNode() {}

// IsNullExpr represents an IS [NOT] NULL expression.
type IsNullExpr struct {
	NodeInfo
	Expr Expr
	Not  bool
}

func (*IsNullExpr) exprNode() {}

// IsBoolExpr represents an IS [NOT] TRUE/FALSE expression.
type IsBoolExpr struct {
	NodeInfo
	Expr  Expr
	Not   bool
	Value bool // true for IS TRUE, false for IS FALSE
}

func (*IsBoolExpr) exprNode() {}

// LikeExpr represents a LIKE expression.
type LikeExpr struct {
	NodeInfo
	Expr    Expr
	Not     bool
	Pattern Expr
	Escape  Expr            // optional ESCAPE character
	Op      token.TokenType // token.LIKE or dialect-registered ILIKE
}

func (*LikeExpr) exprNode() {}

// TupleExpr represents a parenthesized list of two or more expressions.
type TupleExpr struct {
	NodeInfo
	Items []Expr
}

func (*TupleExpr) exprNode() {}

// StarExpr represents * or t.* in a select list or function argument.
type StarExpr struct {
	NodeInfo
	Schema string
	Table  string // optional table qualifier for t.*
}

func (*StarExpr) exprNode() {}

// SubqueryExpr represents a scalar subquery.
type SubqueryExpr struct {
	NodeInfo
	Select *SelectStmt
}

func (*SubqueryExpr) exprNode() {}

// ExistsExpr represents EXISTS (subquery). NOT EXISTS is a UnaryExpr around it.
type ExistsExpr struct {
	NodeInfo
	Select *SelectStmt
}

func (*ExistsExpr) exprNode() {}

// SequenceOp names a sequence pseudocolumn.
type SequenceOp string

// Sequence pseudocolumns.
const (
	SequenceNextval SequenceOp = "NEXTVAL"
	SequenceCurrval SequenceOp = "CURRVAL"
)

// SequenceExpr represents [schema.]seq.NEXTVAL or [schema.]seq.CURRVAL.
type SequenceExpr struct {
	NodeInfo
	Schema   string
	Sequence string
	Op       SequenceOp
}

func (*SequenceExpr) exprNode() {}

// PriorExpr represents PRIOR expr inside CONNECT BY.
type PriorExpr struct {
	NodeInfo
	Expr Expr
}

func (*PriorExpr) exprNode() {}
