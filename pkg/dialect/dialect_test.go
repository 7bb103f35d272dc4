package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

var testConnect = token.Register("CONNECT_DIALECT_TEST")

func testDialect() *Dialect {
	return NewDialect("test").
		Identifiers("[", "]", "]]", core.NormCaseInsensitive).
		AddKeyword("connect_dialect_test", testConnect).
		WithReservedWords("connect_dialect_test").
		Enable(core.ExtSelectTop).
		Clauses(StandardSelectClauses()...).
		Operators(ANSIOperators).
		JoinTypes(ANSIJoinTypes).
		SetOps(ANSISetOps).
		Build()
}

func TestLookupKeyword(t *testing.T) {
	d := testDialect()

	tests := []struct {
		word string
		want token.TokenType
		ok   bool
	}{
		{"select", token.SELECT, true},
		{"SELECT", token.SELECT, true},
		{"rows", token.ROWS, true},
		{"Connect_Dialect_Test", testConnect, true},
		{"employees", token.IDENT, false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := d.LookupKeyword(tt.word)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}

	other := NewDialect("other").Build()
	got, ok := other.LookupKeyword("connect_dialect_test")
	assert.False(t, ok, "dialect keywords do not leak into other dialects")
	assert.Equal(t, token.IDENT, got)
}

func TestIsReservedWord(t *testing.T) {
	d := testDialect()

	assert.True(t, d.IsReservedWord("select"))
	assert.True(t, d.IsReservedWord("ORDER"))
	assert.True(t, d.IsReservedWord("connect_dialect_test"))
	assert.False(t, d.IsReservedWord("rows"), "non-reserved keywords stay usable as names")
	assert.False(t, d.IsReservedWord("employees"))
	assert.Contains(t, d.ReservedWords(), "from")
}

func TestQuoteIdentifier(t *testing.T) {
	d := testDialect()
	assert.Equal(t, "[order]", d.QuoteIdentifier("order"))
	assert.Equal(t, "[a]]b]", d.QuoteIdentifier("a]b"))

	ansi := NewDialect("plain").Build()
	assert.Equal(t, `"say ""hi"""`, ansi.QuoteIdentifier(`say "hi"`))
}

func TestClauseSequence(t *testing.T) {
	start := token.Register("START_DIALECT_TEST")
	def := core.ClauseDef{Token: start, Slot: core.SlotHierarchical, Keywords: []string{"START", "WITH"}}

	d := NewDialect("seq").
		Clauses(StandardSelectClauses()...).
		AddClauseAfter(token.WHERE, def).
		RemoveClause(token.FETCH).
		Build()

	assert.Equal(t, []string{"WHERE", "START WITH", "GROUP BY", "HAVING", "ORDER BY", "OFFSET"}, d.ClauseNames())
	assert.Equal(t, 1, d.ClauseIndex(start))
	assert.Equal(t, -1, d.ClauseIndex(token.FETCH))
	assert.NotNil(t, d.ClauseHandler(token.WHERE))
	assert.Nil(t, d.ClauseHandler(start), "definitions without a handler yield nil")

	name, ok := IsKnownClause("start_dialect_test")
	require.True(t, ok)
	assert.Equal(t, "START WITH", name)
}

func TestOperatorsAndJoins(t *testing.T) {
	d := testDialect()

	assert.Equal(t, core.PrecedenceMultiply, d.Precedence(token.STAR))
	assert.Equal(t, core.PrecedenceComparison, d.Precedence(token.NOT))
	assert.Equal(t, core.PrecedenceNone, d.Precedence(token.COMMA))

	left, ok := d.JoinTypeDef(token.LEFT)
	require.True(t, ok)
	assert.Equal(t, token.OUTER, left.OptionalToken)

	op, ok := d.SetOp(token.EXCEPT)
	require.True(t, ok)
	assert.Equal(t, core.SetOpExcept, op)

	assert.True(t, d.HasExtension(core.ExtSelectTop))
	assert.False(t, d.HasExtension(core.ExtIlike))
	assert.Equal(t, []core.Extension{core.ExtSelectTop}, d.Extensions())
}

func TestFormatPlaceholder(t *testing.T) {
	assert.Equal(t, "?", NewDialect("q").Build().FormatPlaceholder(3))
	assert.Equal(t, "$3", NewDialect("d").PlaceholderStyle(core.PlaceholderDollar).Build().FormatPlaceholder(3))
	assert.Equal(t, ":3", NewDialect("c").PlaceholderStyle(core.PlaceholderColon).Build().FormatPlaceholder(3))
}
