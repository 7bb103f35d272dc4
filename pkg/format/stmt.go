package format

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// node dispatches any node through core.Accept.
func (p *Printer) node(n core.Node) {
	if e, ok := n.(core.Expr); ok {
		p.expr(e, core.PrecedenceNone)
		return
	}
	if n != nil {
		core.Accept(p, n)
	}
}

// Visit renders the structural nodes that have no per-kind visitor interface
// and dumps node kinds it does not know as /*Kind*/(children).
func (p *Printer) Visit(n core.Node) core.Visitor {
	switch n := n.(type) {
	case nil:
	case *core.WithClause:
		p.withClause(n)
	case *core.SelectBody:
		p.selectBody(n)
	case *core.SelectItem:
		p.selectItem(n)
	case *core.FromClause:
		p.fromClause(n)
	case *core.Join:
		p.join(n)
	case *core.OrderByItem:
		p.orderByItem(n)
	case *core.FetchClause:
		p.fetchClause(n)
	case *core.ColumnDef:
		p.columnDef(n)
	case *core.TableConstraint:
		p.tableConstraint(n)
	case *core.Assignment:
		p.assignment(n)
	default:
		p.dump(n)
	}
	return nil
}

func (p *Printer) dump(n core.Node) {
	p.write("/*" + core.Kind(n) + "*/(")
	children := core.Children(n)
	p.formatList(len(children), func(i int) { p.node(children[i]) }, ",", false)
	p.write(")")
}

// ---------- Queries ----------

// VisitSelectStmt implements core.SelectStmtVisitor.
func (p *Printer) VisitSelectStmt(n *core.SelectStmt) core.Visitor {
	if n == nil {
		return nil
	}
	if n.With != nil {
		p.withClause(n.With)
	}
	if n.Body != nil {
		p.selectBody(n.Body)
	}
	return nil
}

func (p *Printer) withClause(with *core.WithClause) {
	p.kw(token.WITH)
	if with.Recursive {
		p.space()
		p.kw(token.RECURSIVE)
	}
	p.newline()

	p.indent()
	p.formatList(len(with.CTEs), func(i int) {
		cte := with.CTEs[i]
		p.ident(cte.Name)
		if len(cte.Columns) > 0 {
			p.space()
			p.identList(cte.Columns)
		}
		p.space()
		p.kw(token.AS)
		p.space()
		p.subquery(cte.Select)
	}, ",", true)
	p.dedent()
	p.newline()
}

func (p *Printer) selectBody(body *core.SelectBody) {
	p.VisitSelectCore(body.Left)

	if body.Op == core.SetOpNone || body.Right == nil {
		return
	}
	p.newline()
	p.keyword(string(body.Op))
	if body.All {
		p.space()
		p.kw(token.ALL)
	}
	p.newline()
	p.selectBody(body.Right)
}

// VisitSelectCore implements core.SelectCoreVisitor. Clauses are written in
// one fixed order that every dialect's clause sequence accepts.
func (p *Printer) VisitSelectCore(sc *core.SelectCore) core.Visitor {
	if sc == nil {
		return nil
	}

	p.kw(token.SELECT)
	if sc.Top != nil {
		p.space()
		p.keyword("TOP")
		p.space()
		p.expr(sc.Top, core.PrecedenceUnary)
	}
	if sc.Distinct {
		p.space()
		p.kw(token.DISTINCT)
	}
	p.newline()

	p.indent()
	p.formatList(len(sc.Columns), func(i int) { p.selectItem(sc.Columns[i]) }, ",", true)
	p.dedent()
	p.newline()

	if sc.From != nil {
		p.fromClause(sc.From)
		p.newline()
	}

	if sc.Where != nil {
		p.clauseBlock(func() { p.expr(sc.Where, core.PrecedenceNone) }, token.WHERE)
	}
	if sc.Hierarchical != nil {
		p.VisitHierarchicalClause(sc.Hierarchical)
		p.newline()
	}
	if len(sc.GroupBy) > 0 {
		p.clauseBlock(func() {
			p.formatList(len(sc.GroupBy), func(i int) { p.expr(sc.GroupBy[i], core.PrecedenceNone) }, ",", true)
		}, token.GROUP, token.BY)
	}
	if sc.Having != nil {
		p.clauseBlock(func() { p.expr(sc.Having, core.PrecedenceNone) }, token.HAVING)
	}
	if len(sc.OrderBy) > 0 {
		p.clauseBlock(func() {
			p.formatList(len(sc.OrderBy), func(i int) { p.orderByItem(sc.OrderBy[i]) }, ",", true)
		}, token.ORDER, token.BY)
	}
	if sc.Limit != nil {
		p.kw(token.LIMIT)
		p.space()
		p.expr(sc.Limit, core.PrecedenceNone)
		p.newline()
	}
	if sc.Offset != nil {
		p.kw(token.OFFSET)
		p.space()
		p.expr(sc.Offset, core.PrecedenceNone)
		// without LIMIT the dialect follows the SQL:2008 OFFSET n ROWS form
		if p.dialect.ClauseIndex(token.LIMIT) < 0 {
			p.space()
			p.kw(token.ROWS)
		}
		p.newline()
	}
	if sc.Fetch != nil {
		p.fetchClause(sc.Fetch)
		p.newline()
	}
	for _, ext := range sc.Extensions {
		p.node(ext)
		p.newline()
	}
	return nil
}

// clauseBlock writes a clause keyword line followed by its indented body.
func (p *Printer) clauseBlock(body func(), keywords ...token.TokenType) {
	p.kw(keywords...)
	p.newline()
	p.indent()
	body()
	p.dedent()
	p.newline()
}

// VisitHierarchicalClause implements core.HierarchicalClauseVisitor.
func (p *Printer) VisitHierarchicalClause(n *core.HierarchicalClause) core.Visitor {
	if n.StartWith != nil {
		p.keyword("START")
		p.space()
		p.kw(token.WITH)
		p.space()
		p.expr(n.StartWith, core.PrecedenceNone)
		p.newline()
	}
	p.keyword("CONNECT")
	p.space()
	p.kw(token.BY)
	if n.NoCycle {
		p.space()
		p.keyword("NOCYCLE")
	}
	p.space()
	p.expr(n.ConnectBy, core.PrecedenceNone)
	return nil
}

func (p *Printer) selectItem(item *core.SelectItem) {
	p.expr(item.Expr, core.PrecedenceNone)
	if item.Alias != "" {
		p.space()
		p.kw(token.AS)
		p.space()
		p.ident(item.Alias)
	}
}

func (p *Printer) fromClause(from *core.FromClause) {
	p.kw(token.FROM)
	p.space()
	p.tableRef(from.Source)

	for _, join := range from.Joins {
		if join.Type == core.JoinComma {
			p.write(",")
			p.space()
			p.tableRef(join.Right)
			continue
		}
		p.newline()
		p.join(join)
	}
}

func (p *Printer) tableRef(ref core.TableRef) {
	if ref != nil {
		core.Accept(p, ref)
	}
}

// VisitTableName implements core.TableNameVisitor.
func (p *Printer) VisitTableName(t *core.TableName) core.Visitor {
	p.qualified(t.Catalog, t.Schema, t.Name)
	if t.Alias != "" {
		p.space()
		p.aliasIdent(t.Alias)
	}
	return nil
}

// VisitDerivedTable implements core.DerivedTableVisitor.
func (p *Printer) VisitDerivedTable(t *core.DerivedTable) core.Visitor {
	p.subquery(t.Select)
	if t.Alias != "" {
		p.space()
		p.aliasIdent(t.Alias)
	}
	return nil
}

func (p *Printer) join(join *core.Join) {
	if join.Natural {
		p.kw(token.NATURAL)
		p.space()
	}

	switch join.Type {
	case core.JoinInner, "":
		p.kw(token.JOIN)
	default:
		p.keyword(string(join.Type))
		p.space()
		p.kw(token.JOIN)
	}
	p.space()
	p.tableRef(join.Right)

	switch {
	case len(join.Using) > 0:
		p.newline()
		p.indent()
		p.kw(token.USING)
		p.space()
		p.identList(join.Using)
		p.dedent()
	case join.Condition != nil:
		p.newline()
		p.indent()
		p.kw(token.ON)
		p.space()
		p.expr(join.Condition, core.PrecedenceNone)
		p.dedent()
	}
}

func (p *Printer) orderByItem(item *core.OrderByItem) {
	p.expr(item.Expr, core.PrecedenceNone)
	if item.Desc {
		p.space()
		p.kw(token.DESC)
	}
	if item.NullsFirst != nil {
		p.space()
		p.kw(token.NULLS)
		p.space()
		if *item.NullsFirst {
			p.kw(token.FIRST)
		} else {
			p.kw(token.LAST)
		}
	}
}

func (p *Printer) fetchClause(fetch *core.FetchClause) {
	p.kw(token.FETCH)
	p.space()

	if fetch.First {
		p.kw(token.FIRST)
	} else {
		p.kw(token.NEXT)
	}

	if fetch.Count != nil {
		p.space()
		p.expr(fetch.Count, core.PrecedenceNone)
		if fetch.Percent {
			p.space()
			p.kw(token.PERCENT_KW)
		}
		p.space()
		p.kw(token.ROWS)
	} else {
		p.space()
		p.kw(token.ROW)
	}
	p.space()

	if fetch.WithTies {
		p.kw(token.WITH, token.TIES)
	} else {
		p.kw(token.ONLY)
	}
}

// ---------- Data Manipulation ----------

// VisitInsertStmt implements core.InsertStmtVisitor.
func (p *Printer) VisitInsertStmt(n *core.InsertStmt) core.Visitor {
	p.kw(token.INSERT, token.INTO)
	p.space()
	p.VisitTableName(n.Table)
	if len(n.Columns) > 0 {
		p.space()
		p.identList(n.Columns)
	}
	p.newline()

	if n.Query != nil {
		p.VisitSelectStmt(n.Query)
		return nil
	}

	p.kw(token.VALUES)
	p.newline()
	p.indent()
	p.formatList(len(n.Values), func(i int) { p.VisitTupleExpr(n.Values[i]) }, ",", true)
	p.dedent()
	p.newline()
	return nil
}

// VisitUpdateStmt implements core.UpdateStmtVisitor.
func (p *Printer) VisitUpdateStmt(n *core.UpdateStmt) core.Visitor {
	p.kw(token.UPDATE)
	p.space()
	p.VisitTableName(n.Table)
	p.newline()

	p.clauseBlock(func() {
		p.formatList(len(n.Set), func(i int) { p.assignment(n.Set[i]) }, ",", true)
	}, token.SET)

	if n.Where != nil {
		p.clauseBlock(func() { p.expr(n.Where, core.PrecedenceNone) }, token.WHERE)
	}
	return nil
}

func (p *Printer) assignment(a *core.Assignment) {
	if a.Tuple {
		p.identList(a.Columns)
	} else if len(a.Columns) > 0 {
		p.ident(a.Columns[0])
	}
	p.write(" = ")
	p.expr(a.Value, core.PrecedenceNone)
}

// VisitDeleteStmt implements core.DeleteStmtVisitor.
func (p *Printer) VisitDeleteStmt(n *core.DeleteStmt) core.Visitor {
	p.kw(token.DELETE, token.FROM)
	p.space()
	p.VisitTableName(n.Table)
	p.newline()

	if n.Where != nil {
		p.clauseBlock(func() { p.expr(n.Where, core.PrecedenceNone) }, token.WHERE)
	}
	return nil
}

// ---------- Data Definition ----------

// VisitCreateTableStmt implements core.CreateTableStmtVisitor.
func (p *Printer) VisitCreateTableStmt(n *core.CreateTableStmt) core.Visitor {
	p.kw(token.CREATE, token.TABLE)
	if n.IfNotExists {
		p.space()
		p.kw(token.IF, token.NOT, token.EXISTS)
	}
	p.space()
	p.VisitTableName(n.Table)

	if n.AsSelect != nil {
		p.space()
		p.kw(token.AS)
		p.newline()
		p.VisitSelectStmt(n.AsSelect)
		return nil
	}

	p.write(" (")
	p.newline()
	p.indent()
	count := len(n.Columns) + len(n.Constraints)
	p.formatList(count, func(i int) {
		if i < len(n.Columns) {
			p.columnDef(n.Columns[i])
			return
		}
		p.tableConstraint(n.Constraints[i-len(n.Columns)])
	}, ",", true)
	p.dedent()
	p.newline()
	p.write(")")
	return nil
}

func (p *Printer) columnDef(c *core.ColumnDef) {
	p.ident(c.Name)
	p.space()
	p.write(c.Type.String())

	if c.NotNull {
		p.space()
		p.kw(token.NOT, token.NULL)
	} else if c.Null {
		p.space()
		p.kw(token.NULL)
	}
	if c.Default != nil {
		p.space()
		p.kw(token.DEFAULT)
		p.space()
		p.expr(c.Default, core.PrecedenceNone)
	}
	if c.PrimaryKey {
		p.space()
		p.kw(token.PRIMARY, token.KEY)
	}
	if c.Unique {
		p.space()
		p.kw(token.UNIQUE)
	}
	if c.Check != nil {
		p.space()
		p.kw(token.CHECK)
		p.write(" (")
		p.expr(c.Check, core.PrecedenceNone)
		p.write(")")
	}
	if c.References != nil {
		p.space()
		p.kw(token.REFERENCES)
		p.space()
		p.VisitTableName(c.References.Table)
		if len(c.References.Columns) > 0 {
			p.space()
			p.identList(c.References.Columns)
		}
	}
}

func (p *Printer) tableConstraint(c *core.TableConstraint) {
	if c.Name != "" {
		p.kw(token.CONSTRAINT)
		p.space()
		p.ident(c.Name)
		p.space()
	}
	switch c.Kind {
	case core.ConstraintCheck:
		p.kw(token.CHECK)
		p.write(" (")
		p.expr(c.Check, core.PrecedenceNone)
		p.write(")")
	default:
		p.keyword(string(c.Kind))
		p.space()
		p.identList(c.Columns)
	}
}

// VisitCreateSequenceStmt implements core.CreateSequenceStmtVisitor.
func (p *Printer) VisitCreateSequenceStmt(n *core.CreateSequenceStmt) core.Visitor {
	p.kw(token.CREATE)
	p.space()
	p.keyword("SEQUENCE")
	p.space()
	p.VisitTableName(n.Name)

	option := func(value core.Expr, words ...string) {
		if value == nil {
			return
		}
		p.space()
		p.keyword(words...)
		p.space()
		p.expr(value, core.PrecedenceNone)
	}
	option(n.StartWith, "START", "WITH")
	option(n.IncrementBy, "INCREMENT", "BY")
	option(n.MinValue, "MINVALUE")
	option(n.MaxValue, "MAXVALUE")

	if n.Cycle != nil {
		p.space()
		if *n.Cycle {
			p.keyword("CYCLE")
		} else {
			p.keyword("NOCYCLE")
		}
	}
	return nil
}

// VisitDropStmt implements core.DropStmtVisitor.
func (p *Printer) VisitDropStmt(n *core.DropStmt) core.Visitor {
	p.kw(token.DROP)
	p.space()
	p.keyword(string(n.Kind))
	if n.IfExists {
		p.space()
		p.kw(token.IF, token.EXISTS)
	}
	p.space()
	p.formatList(len(n.Names), func(i int) { p.VisitTableName(n.Names[i]) }, ",", false)
	switch {
	case n.Cascade:
		p.space()
		p.kw(token.CASCADE)
	case n.Restrict:
		p.space()
		p.kw(token.RESTRICT)
	}
	return nil
}

var (
	_ core.SelectStmtVisitor         = (*Printer)(nil)
	_ core.InsertStmtVisitor         = (*Printer)(nil)
	_ core.UpdateStmtVisitor         = (*Printer)(nil)
	_ core.DeleteStmtVisitor         = (*Printer)(nil)
	_ core.CreateTableStmtVisitor    = (*Printer)(nil)
	_ core.CreateSequenceStmtVisitor = (*Printer)(nil)
	_ core.DropStmtVisitor           = (*Printer)(nil)
	_ core.SelectCoreVisitor         = (*Printer)(nil)
	_ core.HierarchicalClauseVisitor = (*Printer)(nil)
	_ core.TableNameVisitor          = (*Printer)(nil)
	_ core.DerivedTableVisitor       = (*Printer)(nil)
	_ core.ColumnRefVisitor          = (*Printer)(nil)
	_ core.LiteralVisitor            = (*Printer)(nil)
	_ core.ParamVisitor              = (*Printer)(nil)
	_ core.BinaryExprVisitor         = (*Printer)(nil)
	_ core.UnaryExprVisitor          = (*Printer)(nil)
	_ core.FuncCallVisitor           = (*Printer)(nil)
	_ core.CaseExprVisitor           = (*Printer)(nil)
	_ core.CastExprVisitor           = (*Printer)(nil)
	_ core.InExprVisitor             = (*Printer)(nil)
	_ core.BetweenExprVisitor        = (*Printer)(nil)
	_ core.IsNullExprVisitor         = (*Printer)(nil)
	_ core.IsBoolExprVisitor         = (*Printer)(nil)
	_ core.LikeExprVisitor           = (*Printer)(nil)
	_ core.TupleExprVisitor          = (*Printer)(nil)
	_ core.StarExprVisitor           = (*Printer)(nil)
	_ core.SubqueryExprVisitor       = (*Printer)(nil)
	_ core.ExistsExprVisitor         = (*Printer)(nil)
	_ core.SequenceExprVisitor       = (*Printer)(nil)
	_ core.PriorExprVisitor          = (*Printer)(nil)
)
