package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/pkg/core"
)

func TestParentMap(t *testing.T) {
	q := sampleQuery()
	pm := core.NewParentMap(q)

	qc := q.Body.Left
	conn := qc.Hierarchical.ConnectBy.(*core.BinaryExpr)
	prior := conn.Left.(*core.PriorExpr)
	id := prior.Expr

	assert.Same(t, q, pm.Root())
	assert.Nil(t, pm.Parent(q))
	assert.Same(t, prior, pm.Parent(id))
	assert.Same(t, qc.Hierarchical, pm.Parent(conn))

	anc := pm.Ancestors(id)
	require.NotEmpty(t, anc)
	assert.Same(t, q, anc[len(anc)-1])

	enclosing := pm.Enclosing(id, func(n core.Node) bool {
		_, ok := n.(*core.SelectCore)
		return ok
	})
	assert.Same(t, qc, enclosing)
}

func TestParentMap_UnknownNode(t *testing.T) {
	pm := core.NewParentMap(sampleExpr())
	assert.Nil(t, pm.Parent(&core.ColumnRef{Column: "a"}), "identity is by pointer")
	assert.Equal(t, 4, pm.Len())
}
