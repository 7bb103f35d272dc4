package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

func TestKind(t *testing.T) {
	assert.Equal(t, "BinaryExpr", core.Kind(sampleExpr()))
	assert.Equal(t, "SequenceExpr", core.Kind(&core.SequenceExpr{}))
	assert.Equal(t, "nil", core.Kind(nil))
}

func TestDump(t *testing.T) {
	e := &core.SequenceExpr{Sequence: "employees_seq", Op: core.SequenceNextval}
	e.SetSpan(token.Position{Line: 1, Column: 8, Offset: 7}, token.Position{Line: 1, Column: 29, Offset: 28})

	got, ok := core.Dump(e).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"node":     "SequenceExpr",
		"pos":      "1:8",
		"sequence": "employees_seq",
		"op":       "NEXTVAL",
	}, got)
}

func TestDump_Nested(t *testing.T) {
	got := core.Dump(sampleExpr()).(map[string]any)

	assert.Equal(t, "BinaryExpr", got["node"])
	assert.Equal(t, "+", got["op"])
	right := got["right"].(map[string]any)
	assert.Equal(t, "*", right["op"])
	assert.Equal(t, map[string]any{"node": "ColumnRef", "column": "c"}, right["right"])
}

func TestDump_DataType(t *testing.T) {
	got := core.Dump(&core.CastExpr{
		Expr: &core.Literal{Type: core.LiteralString, Value: "1"},
		Type: core.DataType{Name: "NUMBER", Args: []string{"10", "2"}},
	}).(map[string]any)

	assert.Equal(t, "CastExpr", got["node"])
	assert.Equal(t, "NUMBER(10, 2)", got["type"])
	assert.Equal(t, "string", got["expr"].(map[string]any)["type"])
}
