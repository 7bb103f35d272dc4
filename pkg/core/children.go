package core

// ChildLister is implemented by dialect extension nodes so generic traversal
// can descend into them.
type ChildLister interface {
	Children() []Node
}

// nodes collects non-nil children, dropping nil interfaces and typed nil pointers.
type nodes []Node

func (ns *nodes) expr(e Expr) {
	if e != nil {
		*ns = append(*ns, e)
	}
}

func (ns *nodes) exprs(es []Expr) {
	for _, e := range es {
		ns.expr(e)
	}
}

func (ns *nodes) table(t TableRef) {
	if t != nil {
		*ns = append(*ns, t)
	}
}

func (ns *nodes) selectStmt(s *SelectStmt) {
	if s != nil {
		*ns = append(*ns, s)
	}
}

func (ns *nodes) tableName(t *TableName) {
	if t != nil {
		*ns = append(*ns, t)
	}
}

func (ns *nodes) orderBy(items []*OrderByItem) {
	for _, o := range items {
		if o != nil {
			*ns = append(*ns, o)
		}
	}
}

// Children returns the direct children of n in source order.
// Leaf nodes and unknown kinds that do not implement ChildLister have none.
func Children(n Node) []Node {
	var ns nodes
	switch n := n.(type) {
	case *SelectStmt:
		if n.With != nil {
			ns = append(ns, n.With)
		}
		if n.Body != nil {
			ns = append(ns, n.Body)
		}
	case *WithClause:
		for _, c := range n.CTEs {
			ns = append(ns, c)
		}
	case *CTE:
		ns.selectStmt(n.Select)
	case *SelectBody:
		if n.Left != nil {
			ns = append(ns, n.Left)
		}
		if n.Right != nil {
			ns = append(ns, n.Right)
		}
	case *SelectCore:
		ns.expr(n.Top)
		for _, it := range n.Columns {
			ns = append(ns, it)
		}
		if n.From != nil {
			ns = append(ns, n.From)
		}
		ns.expr(n.Where)
		if n.Hierarchical != nil {
			ns = append(ns, n.Hierarchical)
		}
		ns.exprs(n.GroupBy)
		ns.expr(n.Having)
		ns.orderBy(n.OrderBy)
		ns.expr(n.Limit)
		ns.expr(n.Offset)
		if n.Fetch != nil {
			ns = append(ns, n.Fetch)
		}
		ns = append(ns, n.Extensions...)
	case *SelectItem:
		ns.expr(n.Expr)
	case *FromClause:
		ns.table(n.Source)
		for _, j := range n.Joins {
			ns = append(ns, j)
		}
	case *Join:
		ns.table(n.Right)
		ns.expr(n.Condition)
	case *OrderByItem:
		ns.expr(n.Expr)
	case *FetchClause:
		ns.expr(n.Count)
	case *LimitClause:
		ns.expr(n.Count)
		ns.expr(n.Offset)
	case *HierarchicalClause:
		ns.expr(n.StartWith)
		ns.expr(n.ConnectBy)
	case *DerivedTable:
		ns.selectStmt(n.Select)
	case *BinaryExpr:
		ns.expr(n.Left)
		ns.expr(n.Right)
	case *UnaryExpr:
		ns.expr(n.Expr)
	case *FuncCall:
		ns.exprs(n.Args)
		ns.expr(n.Filter)
		if n.Window != nil {
			ns = append(ns, n.Window)
		}
	case *WindowSpec:
		ns.exprs(n.PartitionBy)
		ns.orderBy(n.OrderBy)
		if n.Frame != nil {
			ns = append(ns, n.Frame)
		}
	case *FrameSpec:
		if n.Start != nil {
			ns = append(ns, n.Start)
		}
		if n.EndBound != nil {
			ns = append(ns, n.EndBound)
		}
	case *FrameBound:
		ns.expr(n.Offset)
	case *CaseExpr:
		ns.expr(n.Operand)
		for _, w := range n.Whens {
			ns = append(ns, w)
		}
		ns.expr(n.Else)
	case *WhenClause:
		ns.expr(n.Condition)
		ns.expr(n.Result)
	case *CastExpr:
		ns.expr(n.Expr)
	case *InExpr:
		ns.expr(n.Expr)
		ns.exprs(n.Values)
		ns.selectStmt(n.Query)
	case *BetweenExpr:
		ns.expr(n.Expr)
		ns.expr(n.Low)
		ns.expr(n.High)
	case *IsNullExpr:
		ns.expr(n.Expr)
	case *IsBoolExpr:
		ns.expr(n.Expr)
	case *LikeExpr:
		ns.expr(n.Expr)
		ns.expr(n.Pattern)
		ns.expr(n.Escape)
	case *TupleExpr:
		ns.exprs(n.Items)
	case *SubqueryExpr:
		ns.selectStmt(n.Select)
	case *ExistsExpr:
		ns.selectStmt(n.Select)
	case *PriorExpr:
		ns.expr(n.Expr)
	case *InsertStmt:
		ns.tableName(n.Table)
		for _, row := range n.Values {
			ns = append(ns, row)
		}
		ns.selectStmt(n.Query)
	case *UpdateStmt:
		ns.tableName(n.Table)
		for _, a := range n.Set {
			ns = append(ns, a)
		}
		ns.expr(n.Where)
	case *Assignment:
		ns.expr(n.Value)
	case *DeleteStmt:
		ns.tableName(n.Table)
		ns.expr(n.Where)
	case *CreateTableStmt:
		ns.tableName(n.Table)
		for _, c := range n.Columns {
			ns = append(ns, c)
		}
		for _, c := range n.Constraints {
			ns = append(ns, c)
		}
		ns.selectStmt(n.AsSelect)
	case *ColumnDef:
		ns.expr(n.Default)
		ns.expr(n.Check)
		if n.References != nil {
			ns.tableName(n.References.Table)
		}
	case *TableConstraint:
		ns.expr(n.Check)
	case *CreateSequenceStmt:
		ns.tableName(n.Name)
		ns.expr(n.StartWith)
		ns.expr(n.IncrementBy)
		ns.expr(n.MinValue)
		ns.expr(n.MaxValue)
	case *DropStmt:
		for _, t := range n.Names {
			ns.tableName(t)
		}
	case ChildLister:
		for _, c := range n.Children() {
			if c != nil {
				ns = append(ns, c)
			}
		}
	}
	return ns
}
