package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// a + b * c, hand built
func sampleExpr() *core.BinaryExpr {
	return &core.BinaryExpr{
		Left: &core.ColumnRef{Column: "a"},
		Op:   token.PLUS,
		Right: &core.BinaryExpr{
			Left:  &core.ColumnRef{Column: "b"},
			Op:    token.STAR,
			Right: &core.ColumnRef{Column: "c"},
		},
	}
}

func sampleQuery() *core.SelectStmt {
	return &core.SelectStmt{
		Body: &core.SelectBody{
			Left: &core.SelectCore{
				Columns: []*core.SelectItem{{Expr: sampleExpr(), Alias: "x"}},
				From:    &core.FromClause{Source: &core.TableName{Name: "t"}},
				Where: &core.BinaryExpr{
					Left:  &core.ColumnRef{Column: "d"},
					Op:    token.EQ,
					Right: &core.Literal{Type: core.LiteralNumber, Value: "1"},
				},
				Hierarchical: &core.HierarchicalClause{
					ConnectBy: &core.BinaryExpr{
						Left:  &core.PriorExpr{Expr: &core.ColumnRef{Column: "id"}},
						Op:    token.EQ,
						Right: &core.ColumnRef{Column: "parent_id"},
					},
				},
			},
		},
	}
}

type columnCollector struct {
	columns []string
	generic int
}

func (c *columnCollector) Visit(n core.Node) core.Visitor {
	if n != nil {
		c.generic++
	}
	return c
}

func (c *columnCollector) VisitColumnRef(n *core.ColumnRef) core.Visitor {
	c.columns = append(c.columns, n.Column)
	return c
}

func TestWalk_SpecificMethodTakesPrecedence(t *testing.T) {
	c := &columnCollector{}
	core.Walk(c, sampleQuery())

	assert.Equal(t, []string{"a", "b", "c", "d", "id", "parent_id"}, c.columns)
	assert.Positive(t, c.generic, "kinds without a specific method fall back to Visit")
}

func TestAccept_FallsBackToVisit(t *testing.T) {
	c := &columnCollector{}
	core.Accept(c, &core.Literal{Value: "1"})

	assert.Empty(t, c.columns)
	assert.Equal(t, 1, c.generic)
}

func TestInspect_Prune(t *testing.T) {
	var kinds []string
	core.Inspect(sampleExpr(), func(n core.Node) bool {
		if n == nil {
			return false
		}
		kinds = append(kinds, core.Kind(n))
		_, isBinary := n.(*core.BinaryExpr)
		return isBinary && len(kinds) == 1
	})

	assert.Equal(t, []string{"BinaryExpr", "ColumnRef", "BinaryExpr"}, kinds)
}

type extensionNode struct {
	core.NodeInfo
	inner core.Expr
}

func (e *extensionNode) Children() []core.Node { return []core.Node{e.inner} }

func TestChildren_ChildLister(t *testing.T) {
	ext := &extensionNode{inner: &core.ColumnRef{Column: "z"}}
	qc := &core.SelectCore{Extensions: []core.Node{ext}}

	children := core.Children(qc)
	require.Len(t, children, 1)
	assert.Same(t, ext, children[0])

	c := &columnCollector{}
	core.Walk(c, qc)
	assert.Equal(t, []string{"z"}, c.columns)
}

func TestChildren_SkipsAbsentOptionalChildren(t *testing.T) {
	assert.Empty(t, core.Children(&core.SelectStmt{}))
	assert.Empty(t, core.Children(&core.FuncCall{Name: "now"}))
	assert.Len(t, core.Children(&core.CaseExpr{
		Whens: []*core.WhenClause{{Condition: &core.Literal{}, Result: &core.Literal{}}},
	}), 1)
}

func TestChildren_WindowFrame(t *testing.T) {
	start := &core.FrameBound{Type: core.FrameUnboundedPreceding}
	end := &core.FrameBound{Type: core.FrameCurrentRow}
	frame := &core.FrameSpec{Type: core.FrameRows, Start: start, EndBound: end}
	frame.SetSpan(token.Position{Line: 1, Column: 5}, token.Position{Line: 1, Column: 40})

	var n core.Node = frame
	assert.Equal(t, 40, n.End().Column)
	assert.Equal(t, []core.Node{start, end}, core.Children(frame))
	assert.Equal(t, []core.Node{frame}, core.Children(&core.WindowSpec{Frame: frame}))
}
