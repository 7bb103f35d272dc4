package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- spi.ParserOps Implementation ----------
// These methods implement the spi.ParserOps interface for dialect handlers.
// Methods that can fail recover the parser's bailout and return it as an error.

var _ spi.ParserOps = (*Parser)(nil)

// Token returns the current token.
func (p *Parser) Token() token.Token {
	return p.tok
}

// Peek returns the lookahead token.
func (p *Parser) Peek() token.Token {
	return p.peek(1)
}

// PeekN returns the token n positions ahead; PeekN(0) is the current token.
func (p *Parser) PeekN(n int) token.Token {
	return p.peek(n)
}

// Match consumes the current token if it matches.
func (p *Parser) Match(t token.TokenType) bool {
	return p.match(t)
}

// MatchWord consumes the current token if it is an unquoted word spelled word.
func (p *Parser) MatchWord(word string) bool {
	if p.checkWord(word) {
		p.advance()
		return true
	}
	return false
}

// Expect consumes the current token if it matches, otherwise returns an error.
func (p *Parser) Expect(t token.TokenType) error {
	return p.try(func() { p.expect(t) })
}

// NextToken advances to the next token.
func (p *Parser) NextToken() {
	p.advance()
}

// Check returns true if the current token is of the given type.
func (p *Parser) Check(t token.TokenType) bool {
	return p.check(t)
}

// ParseExpression parses an expression.
func (p *Parser) ParseExpression() (expr core.Expr, err error) {
	err = p.try(func() { expr = p.parseExpression() })
	return expr, err
}

// ParseExpressionAt parses an expression whose operators bind at least as
// tightly as precedence.
func (p *Parser) ParseExpressionAt(precedence int) (expr core.Expr, err error) {
	err = p.try(func() { expr = p.parseExpressionAt(precedence) })
	return expr, err
}

// ParseExpressionList parses a comma-separated list of expressions.
func (p *Parser) ParseExpressionList() (exprs []core.Expr, err error) {
	err = p.try(func() { exprs = p.parseExpressionList() })
	return exprs, err
}

// ParseOrderByList parses an ORDER BY list.
func (p *Parser) ParseOrderByList() (items []*core.OrderByItem, err error) {
	err = p.try(func() { items = p.parseOrderByList() })
	return items, err
}

// ParseIdentifier parses an identifier.
func (p *Parser) ParseIdentifier() (name string, err error) {
	err = p.try(func() { name = p.parseIdent() })
	return name, err
}

// ParseQualifiedName parses a possibly qualified object name.
func (p *Parser) ParseQualifiedName() (name *core.TableName, err error) {
	err = p.try(func() { name = p.parseQualifiedName() })
	return name, err
}

// ParseDataType parses a type name with optional arguments.
func (p *Parser) ParseDataType() (dt core.DataType, err error) {
	err = p.try(func() { dt = p.parseDataType() })
	return dt, err
}

// HasExtension reports whether the dialect enables ext.
func (p *Parser) HasExtension(ext core.Extension) bool {
	return p.dialect.HasExtension(ext)
}

// Errorf returns a parse error positioned at the current token.
func (p *Parser) Errorf(format string, args ...any) error {
	if p.tok.Type == token.ILLEGAL && p.stream.Err() != nil {
		return p.stream.Err()
	}
	return p.newError(fmt.Sprintf(format, args...))
}

// Position returns the current token's position.
func (p *Parser) Position() token.Position {
	return p.tok.Pos
}

// LastEnd returns the end position of the last consumed token.
func (p *Parser) LastEnd() token.Position {
	return p.prevEnd
}

// ---------- Data Types ----------

// parseDataType parses a type name.
//
//	data_type → name [PRECISION|VARYING] ["(" arg {"," arg} ")"]
//
// Arguments are kept as source text.
func (p *Parser) parseDataType() core.DataType {
	defer p.enter("data type")()
	if !p.isIdent(p.tok) {
		p.failExpected("data type")
	}
	dt := core.DataType{Name: p.tok.Literal}
	p.advance()
	if p.checkWord("PRECISION") || p.checkWord("VARYING") {
		dt.Name += " " + p.tok.Literal
		p.advance()
	}
	if !p.match(token.LPAREN) {
		return dt
	}
	for {
		var parts []string
		for !p.check(token.COMMA) && !p.check(token.RPAREN) {
			if p.check(token.EOF) || p.check(token.LPAREN) {
				p.failExpected(token.RPAREN)
			}
			parts = append(parts, p.tok.Raw)
			p.advance()
		}
		if len(parts) == 0 {
			p.failExpected("type argument")
		}
		dt.Args = append(dt.Args, strings.Join(parts, " "))
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return dt
}
