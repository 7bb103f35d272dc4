// Package spi provides the contract between the parser and dialect handlers.
// Dialect packages implement handlers against ParserOps; the parser supplies
// the implementation, so neither side imports the other.
package spi

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ParserOps exposes parser operations to dialect handlers.
// Methods that can fail return the parser's *ParseError; handlers should
// return such errors unchanged.
type ParserOps interface {
	// Token access
	Token() token.Token
	Peek() token.Token
	PeekN(n int) token.Token

	// Consumption
	Match(t token.TokenType) bool
	MatchWord(word string) bool // case-insensitive identifier or keyword text
	Expect(t token.TokenType) error
	NextToken()
	Check(t token.TokenType) bool

	// Sub-parsers
	ParseExpression() (core.Expr, error)
	ParseExpressionAt(precedence int) (core.Expr, error)
	ParseExpressionList() ([]core.Expr, error)
	ParseOrderByList() ([]*core.OrderByItem, error)
	ParseIdentifier() (string, error)
	ParseQualifiedName() (*core.TableName, error)
	ParseDataType() (core.DataType, error)

	// Dialect state
	HasExtension(ext core.Extension) bool

	// Error handling
	Errorf(format string, args ...any) error
	Position() token.Position // start of the current token
	LastEnd() token.Position  // end of the last consumed token
}

// ClauseHandler parses a dialect clause of a query block.
// Called AFTER the clause keyword has been consumed. The result is stored
// according to the clause slot: an Expr, a []Expr, a []*OrderByItem or a node.
type ClauseHandler func(p ParserOps) (any, error)

// InfixHandler parses a dialect infix operator.
// Called AFTER the operator has been consumed; left is the parsed left operand.
type InfixHandler func(p ParserOps, left core.Expr) (core.Expr, error)

// PrefixHandler parses a dialect prefix operator such as PRIOR.
// Called AFTER the operator has been consumed.
type PrefixHandler func(p ParserOps) (core.Expr, error)

// CreateHandler parses a dialect CREATE <object> statement.
// Called AFTER CREATE and the object keyword have been consumed.
type CreateHandler func(p ParserOps) (core.Stmt, error)
