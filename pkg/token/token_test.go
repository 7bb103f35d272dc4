package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenType_Kind(t *testing.T) {
	tests := []struct {
		tok  TokenType
		want Kind
	}{
		{EOF, KindEOF},
		{ILLEGAL, KindIllegal},
		{IDENT, KindIdentifier},
		{QIDENT, KindQuotedIdentifier},
		{NUMBER, KindNumber},
		{STRING, KindString},
		{PARAM, KindParameter},
		{PLUS, KindOperator},
		{GE, KindOperator},
		{DPIPE, KindOperator},
		{DOT, KindPunctuation},
		{SEMICOLON, KindPunctuation},
		{SELECT, KindKeyword},
		{WITH, KindKeyword},
		{ROWS, KindKeyword},
		{TokenType(500), KindIllegal},
	}
	for _, tt := range tests {
		t.Run(tt.tok.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tok.Kind())
		})
	}
}

func TestLookupIdent(t *testing.T) {
	assert.Equal(t, SELECT, LookupIdent("select"))
	assert.Equal(t, PERCENT_KW, LookupIdent("percent"))
	assert.Equal(t, IDENT, LookupIdent("employees"))
	assert.Equal(t, IDENT, LookupIdent("SELECT"), "lookup expects lowercase input")
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved(SELECT))
	assert.True(t, IsReserved(ORDER))
	assert.False(t, IsReserved(ROWS))
	assert.False(t, IsReserved(FIRST))
	assert.False(t, IsReserved(IDENT))
	assert.False(t, IsReserved(PLUS))
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "SELECT", SELECT.String())
	assert.Equal(t, "PERCENT", PERCENT_KW.String())
	assert.Equal(t, "%", PERCENT.String())
	assert.Equal(t, "<=", LE.String())
	assert.Equal(t, "TOKEN(900)", TokenType(900).String())
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "end of input", Token{Type: EOF}.String())
	assert.Equal(t, `identifier "emp"`, Token{Type: IDENT, Literal: "emp", Raw: "emp"}.String())
	assert.Equal(t, `"FROM"`, Token{Type: FROM, Raw: "from"}.String())
}

func TestSpan(t *testing.T) {
	s := Span{
		Start: Position{Line: 1, Column: 1, Offset: 0},
		End:   Position{Line: 1, Column: 7, Offset: 6},
	}
	assert.True(t, s.IsValid())
	assert.True(t, s.Contains(0))
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(6))
	assert.False(t, Span{}.IsValid())
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "3:14", Position{Line: 3, Column: 14}.String())
}
