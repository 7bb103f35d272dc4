package core

// Visitor is the generic visitor contract. Visit is called for each node
// encountered by Walk. If the result visitor w is not nil, Walk visits each
// of the children of node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// The interfaces below are optional per-kind capabilities. A visitor that
// implements one of them receives that node kind through the specific method
// instead of Visit; every other kind falls back to Visit.

// SelectStmtVisitor handles *SelectStmt nodes.
type SelectStmtVisitor interface {
	VisitSelectStmt(n *SelectStmt) Visitor
}

// InsertStmtVisitor handles *InsertStmt nodes.
type InsertStmtVisitor interface {
	VisitInsertStmt(n *InsertStmt) Visitor
}

// UpdateStmtVisitor handles *UpdateStmt nodes.
type UpdateStmtVisitor interface {
	VisitUpdateStmt(n *UpdateStmt) Visitor
}

// DeleteStmtVisitor handles *DeleteStmt nodes.
type DeleteStmtVisitor interface {
	VisitDeleteStmt(n *DeleteStmt) Visitor
}

// CreateTableStmtVisitor handles *CreateTableStmt nodes.
type CreateTableStmtVisitor interface {
	VisitCreateTableStmt(n *CreateTableStmt) Visitor
}

// CreateSequenceStmtVisitor handles *CreateSequenceStmt nodes.
type CreateSequenceStmtVisitor interface {
	VisitCreateSequenceStmt(n *CreateSequenceStmt) Visitor
}

// DropStmtVisitor handles *DropStmt nodes.
type DropStmtVisitor interface {
	VisitDropStmt(n *DropStmt) Visitor
}

// SelectCoreVisitor handles *SelectCore nodes.
type SelectCoreVisitor interface {
	VisitSelectCore(n *SelectCore) Visitor
}

// HierarchicalClauseVisitor handles *HierarchicalClause nodes.
type HierarchicalClauseVisitor interface {
	VisitHierarchicalClause(n *HierarchicalClause) Visitor
}

// TableNameVisitor handles *TableName nodes.
type TableNameVisitor interface {
	VisitTableName(n *TableName) Visitor
}

// DerivedTableVisitor handles *DerivedTable nodes.
type DerivedTableVisitor interface {
	VisitDerivedTable(n *DerivedTable) Visitor
}

// ColumnRefVisitor handles *ColumnRef nodes.
type ColumnRefVisitor interface {
	VisitColumnRef(n *ColumnRef) Visitor
}

// LiteralVisitor handles *Literal nodes.
type LiteralVisitor interface {
	VisitLiteral(n *Literal) Visitor
}

// ParamVisitor handles *Param nodes.
type ParamVisitor interface {
	VisitParam(n *Param) Visitor
}

// BinaryExprVisitor handles *BinaryExpr nodes.
type BinaryExprVisitor interface {
	VisitBinaryExpr(n *BinaryExpr) Visitor
}

// UnaryExprVisitor handles *UnaryExpr nodes.
type UnaryExprVisitor interface {
	VisitUnaryExpr(n *UnaryExpr) Visitor
}

// FuncCallVisitor handles *FuncCall nodes.
type FuncCallVisitor interface {
	VisitFuncCall(n *FuncCall) Visitor
}

// CaseExprVisitor handles *CaseExpr nodes.
type CaseExprVisitor interface {
	VisitCaseExpr(n *CaseExpr) Visitor
}

// CastExprVisitor handles *CastExpr nodes.
type CastExprVisitor interface {
	VisitCastExpr(n *CastExpr) Visitor
}

// InExprVisitor handles *InExpr nodes.
type InExprVisitor interface {
	VisitInExpr(n *InExpr) Visitor
}

// BetweenExprVisitor handles *BetweenExpr nodes.
type BetweenExprVisitor interface {
	VisitBetweenExpr(n *BetweenExpr) Visitor
}

// IsNullExprVisitor handles *IsNullExpr nodes.
type IsNullExprVisitor interface {
	VisitIsNullExpr(n *IsNullExpr) Visitor
}

// IsBoolExprVisitor handles *IsBoolExpr nodes.
type IsBoolExprVisitor interface {
	VisitIsBoolExpr(n *IsBoolExpr) Visitor
}

// LikeExprVisitor handles *LikeExpr nodes.
type LikeExprVisitor interface {
	VisitLikeExpr(n *LikeExpr) Visitor
}

// TupleExprVisitor handles *TupleExpr nodes.
type TupleExprVisitor interface {
	VisitTupleExpr(n *TupleExpr) Visitor
}

// StarExprVisitor handles *StarExpr nodes.
type StarExprVisitor interface {
	VisitStarExpr(n *StarExpr) Visitor
}

// SubqueryExprVisitor handles *SubqueryExpr nodes.
type SubqueryExprVisitor interface {
	VisitSubqueryExpr(n *SubqueryExpr) Visitor
}

// ExistsExprVisitor handles *ExistsExpr nodes.
type ExistsExprVisitor interface {
	VisitExistsExpr(n *ExistsExpr) Visitor
}

// SequenceExprVisitor handles *SequenceExpr nodes.
type SequenceExprVisitor interface {
	VisitSequenceExpr(n *SequenceExpr) Visitor
}

// PriorExprVisitor handles *PriorExpr nodes.
type PriorExprVisitor interface {
	VisitPriorExpr(n *PriorExpr) Visitor
}

// Accept dispatches n to the most specific method v implements.
func Accept(v Visitor, n Node) Visitor {
	switch n := n.(type) {
	case *SelectStmt:
		if sv, ok := v.(SelectStmtVisitor); ok {
			return sv.VisitSelectStmt(n)
		}
	case *InsertStmt:
		if sv, ok := v.(InsertStmtVisitor); ok {
			return sv.VisitInsertStmt(n)
		}
	case *UpdateStmt:
		if sv, ok := v.(UpdateStmtVisitor); ok {
			return sv.VisitUpdateStmt(n)
		}
	case *DeleteStmt:
		if sv, ok := v.(DeleteStmtVisitor); ok {
			return sv.VisitDeleteStmt(n)
		}
	case *CreateTableStmt:
		if sv, ok := v.(CreateTableStmtVisitor); ok {
			return sv.VisitCreateTableStmt(n)
		}
	case *CreateSequenceStmt:
		if sv, ok := v.(CreateSequenceStmtVisitor); ok {
			return sv.VisitCreateSequenceStmt(n)
		}
	case *DropStmt:
		if sv, ok := v.(DropStmtVisitor); ok {
			return sv.VisitDropStmt(n)
		}
	case *SelectCore:
		if sv, ok := v.(SelectCoreVisitor); ok {
			return sv.VisitSelectCore(n)
		}
	case *HierarchicalClause:
		if sv, ok := v.(HierarchicalClauseVisitor); ok {
			return sv.VisitHierarchicalClause(n)
		}
	case *TableName:
		if sv, ok := v.(TableNameVisitor); ok {
			return sv.VisitTableName(n)
		}
	case *DerivedTable:
		if sv, ok := v.(DerivedTableVisitor); ok {
			return sv.VisitDerivedTable(n)
		}
	case *ColumnRef:
		if sv, ok := v.(ColumnRefVisitor); ok {
			return sv.VisitColumnRef(n)
		}
	case *Literal:
		if sv, ok := v.(LiteralVisitor); ok {
			return sv.VisitLiteral(n)
		}
	case *Param:
		if sv, ok := v.(ParamVisitor); ok {
			return sv.VisitParam(n)
		}
	case *BinaryExpr:
		if sv, ok := v.(BinaryExprVisitor); ok {
			return sv.VisitBinaryExpr(n)
		}
	case *UnaryExpr:
		if sv, ok := v.(UnaryExprVisitor); ok {
			return sv.VisitUnaryExpr(n)
		}
	case *FuncCall:
		if sv, ok := v.(FuncCallVisitor); ok {
			return sv.VisitFuncCall(n)
		}
	case *CaseExpr:
		if sv, ok := v.(CaseExprVisitor); ok {
			return sv.VisitCaseExpr(n)
		}
	case *CastExpr:
		if sv, ok := v.(CastExprVisitor); ok {
			return sv.VisitCastExpr(n)
		}
	case *InExpr:
		if sv, ok := v.(InExprVisitor); ok {
			return sv.VisitInExpr(n)
		}
	case *BetweenExpr:
		if sv, ok := v.(BetweenExprVisitor); ok {
			return sv.VisitBetweenExpr(n)
		}
	case *IsNullExpr:
		if sv, ok := v.(IsNullExprVisitor); ok {
			return sv.VisitIsNullExpr(n)
		}
	case *IsBoolExpr:
		if sv, ok := v.(IsBoolExprVisitor); ok {
			return sv.VisitIsBoolExpr(n)
		}
	case *LikeExpr:
		if sv, ok := v.(LikeExprVisitor); ok {
			return sv.VisitLikeExpr(n)
		}
	case *TupleExpr:
		if sv, ok := v.(TupleExprVisitor); ok {
			return sv.VisitTupleExpr(n)
		}
	case *StarExpr:
		if sv, ok := v.(StarExprVisitor); ok {
			return sv.VisitStarExpr(n)
		}
	case *SubqueryExpr:
		if sv, ok := v.(SubqueryExprVisitor); ok {
			return sv.VisitSubqueryExpr(n)
		}
	case *ExistsExpr:
		if sv, ok := v.(ExistsExprVisitor); ok {
			return sv.VisitExistsExpr(n)
		}
	case *SequenceExpr:
		if sv, ok := v.(SequenceExprVisitor); ok {
			return sv.VisitSequenceExpr(n)
		}
	case *PriorExpr:
		if sv, ok := v.(PriorExprVisitor); ok {
			return sv.VisitPriorExpr(n)
		}
	}
	return v.Visit(n)
}

// inspector adapts a function to the Visitor interface.
type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order: It starts by calling f(node);
// node must not be nil. If f returns true, Inspect invokes f recursively for
// each of the non-nil children of node, followed by a call of f(nil).
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Walk traverses an AST in depth-first order, dispatching each node through Accept.
func Walk(v Visitor, node Node) {
	if v = Accept(v, node); v == nil {
		return
	}
	for _, c := range Children(node) {
		Walk(v, c)
	}
	v.Visit(nil)
}
