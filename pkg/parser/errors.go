package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos      token.Position
	Token    token.Token // offending token
	Expected []string    // what would have been accepted, when known
	Rule     string      // grammar rule active when the error occurred
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     token.Position
	Text    string // offending source text
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken      = "unexpected %s, expected %s"
	ErrUnexpectedChar       = "unexpected character %q"
	ErrUnterminatedString   = "unterminated string literal"
	ErrUnterminatedQuoted   = "unterminated quoted identifier"
	ErrUnterminatedComment  = "unterminated block comment"
	ErrEmptyQuotedIdent     = "zero-length quoted identifier"
	ErrUnsupportedClause    = "%s is not supported in %s dialect"
	ErrClauseOrder          = "%s clause is out of order or repeated"
	ErrNoClauseHandler      = "no handler registered for clause %s"
	ErrNestingTooDeep       = "expression nesting exceeds %d levels"
	ErrUnexpectedClauseType = "clause %s produced unexpected %T"
)

func expectedList(expected []string) string {
	switch len(expected) {
	case 0:
		return "something else"
	case 1:
		return expected[0]
	}
	return strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
}
