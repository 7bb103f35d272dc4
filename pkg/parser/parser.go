// Package parser provides SQL parsing with dialect-aware syntax validation.
//
// # Usage
//
//	stmts, err := parser.Parse("SELECT a, b FROM t; SELECT 1", d)
//	if err != nil {
//	    // handle error
//	}
//
// The parser requires a dialect. Use the dialect registry to get one by name:
//
//	d, err := dialect.Lookup("oracle")
//	stmts, err := parser.Parse(sql, d)
//
// Parsing is fail-fast: the first lexical or syntax error aborts the whole
// call and no statements are returned.
//
// # Grammar Overview
//
// The parser implements a recursive descent parser with a precedence-climbing
// expression parser:
//
//	script        → [statement] {";" [statement]}
//	statement     → query | insert | update | delete | create | drop
//	query         → [WITH [RECURSIVE] cte_list] select_body
//	select_body   → select_core [set_op [ALL|DISTINCT] select_body]
//	select_core   → SELECT [TOP expr] [DISTINCT|ALL] select_list [FROM from_clause]
//	                {dialect_clause}
//
// Clauses after FROM come from the dialect's clause sequence (WHERE, START
// WITH, CONNECT BY, GROUP BY, ...) and must appear in that order.
// See each file for detailed grammar rules for that section.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// maxDepth bounds grammar recursion so hostile input cannot exhaust the stack.
const maxDepth = 500

// Parser parses SQL into an AST. A Parser is single-use and not safe for
// concurrent use.
type Parser struct {
	stream  *TokenStream
	dialect *dialect.Dialect // required

	tok     token.Token    // current token
	prevEnd token.Position // end of the last consumed token
	rule    string         // innermost grammar rule, for error reports
	depth   int
}

// bailout carries a parse failure up to the nearest recover.
type bailout struct {
	err error
}

// NewParser creates a new parser for the given SQL input. d must not be nil.
func NewParser(sql string, d *dialect.Dialect) *Parser {
	p := &Parser{
		stream:  NewTokenStream(sql, d),
		dialect: d,
		prevEnd: token.Position{Line: 1, Column: 1},
	}
	p.tok = p.stream.Peek(0)
	return p
}

// Parse parses zero or more semicolon-separated statements.
func Parse(sql string, d *dialect.Dialect) ([]core.Stmt, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	return NewParser(sql, d).ParseStatements()
}

// ParseOne parses input that must contain exactly one statement.
func ParseOne(sql string, d *dialect.Dialect) (core.Stmt, error) {
	stmts, err := Parse(sql, d)
	if err != nil {
		return nil, err
	}
	if len(stmts) != 1 {
		return nil, fmt.Errorf("expected exactly one statement, got %d", len(stmts))
	}
	return stmts[0], nil
}

// ParseExpr parses a standalone expression.
func ParseExpr(sql string, d *dialect.Dialect) (expr core.Expr, err error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	p := NewParser(sql, d)
	err = p.try(func() {
		p.checkLex()
		expr = p.parseExpression()
		if p.tok.Type != token.EOF {
			p.failExpected(token.EOF)
		}
	})
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseStatements parses the whole input.
func (p *Parser) ParseStatements() (stmts []core.Stmt, err error) {
	err = p.try(func() {
		p.checkLex()
		for {
			for p.match(token.SEMICOLON) {
			}
			if p.tok.Type == token.EOF {
				return
			}
			stmts = append(stmts, p.parseStatement())
			if p.tok.Type != token.EOF && p.tok.Type != token.SEMICOLON {
				p.failExpected(token.SEMICOLON, token.EOF)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return stmts, nil
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

// Comments returns the comments seen so far.
func (p *Parser) Comments() []*token.Comment {
	return p.stream.Comments()
}

// ---------- Failure Handling ----------

// try runs fn and converts a bailout into an error.
func (p *Parser) try(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			err = b.err
		}
	}()
	fn()
	return nil
}

// fail aborts the parse with err. A failure on an ILLEGAL token reports the
// lexical error that produced it.
func (p *Parser) fail(err error) {
	if p.tok.Type == token.ILLEGAL && p.stream.Err() != nil {
		err = p.stream.Err()
	}
	panic(bailout{err: err})
}

// must aborts the parse if a handler returned an error.
func (p *Parser) must(err error) {
	if err == nil {
		return
	}
	var pe *ParseError
	var le *LexError
	if errors.As(err, &pe) || errors.As(err, &le) {
		panic(bailout{err: err})
	}
	p.fail(p.newError(err.Error()))
}

func (p *Parser) newError(msg string) *ParseError {
	return &ParseError{
		Pos:     p.tok.Pos,
		Token:   p.tok,
		Rule:    p.rule,
		Message: msg,
	}
}

func (p *Parser) failf(format string, args ...any) {
	p.fail(p.newError(fmt.Sprintf(format, args...)))
}

// failExpected reports the current token as unexpected.
func (p *Parser) failExpected(expected ...any) {
	names := make([]string, len(expected))
	for i, e := range expected {
		switch v := e.(type) {
		case token.TokenType:
			names[i] = describe(v)
		default:
			names[i] = fmt.Sprint(v)
		}
	}
	err := p.newError(fmt.Sprintf(ErrUnexpectedToken, p.tok, expectedList(names)))
	err.Expected = names
	p.fail(err)
}

// describe renders a token type the way error messages expect it.
func describe(t token.TokenType) string {
	switch t {
	case token.EOF:
		return "end of input"
	case token.IDENT:
		return "identifier"
	case token.NUMBER:
		return "number"
	case token.STRING:
		return "string"
	case token.PARAM:
		return "parameter"
	}
	return fmt.Sprintf("%q", t.String())
}

// checkLex fails if the current token is a lexical error.
func (p *Parser) checkLex() {
	if p.tok.Type == token.ILLEGAL {
		p.fail(p.stream.Err())
	}
}

// enter records the active grammar rule and guards recursion depth.
// Use as: defer p.enter("rule")()
func (p *Parser) enter(rule string) func() {
	prev := p.rule
	p.rule = rule
	p.depth++
	if p.depth > maxDepth {
		p.failf(ErrNestingTooDeep, maxDepth)
	}
	return func() {
		p.rule = prev
		p.depth--
	}
}

// ---------- Token Helpers ----------

// advance consumes the current token.
func (p *Parser) advance() {
	p.prevEnd = tokenEnd(p.tok)
	p.stream.Next()
	p.tok = p.stream.Peek(0)
	p.checkLex()
}

// peek returns the token n positions after the current one.
func (p *Parser) peek(n int) token.Token {
	return p.stream.Peek(n)
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.tok.Type == t
}

// checkWord returns true if the current token is an unquoted word spelled w.
func (p *Parser) checkWord(w string) bool {
	return isWord(p.tok) && p.tok.Type != token.QIDENT && strings.EqualFold(p.tok.Literal, w)
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise fails.
func (p *Parser) expect(t token.TokenType) {
	if !p.match(t) {
		p.failExpected(t)
	}
}

type parserMark struct {
	mark    Mark
	prevEnd token.Position
}

func (p *Parser) mark() parserMark {
	return parserMark{mark: p.stream.Mark(), prevEnd: p.prevEnd}
}

func (p *Parser) reset(m parserMark) {
	p.stream.Reset(m.mark)
	p.prevEnd = m.prevEnd
	p.tok = p.stream.Peek(0)
}

// tokenEnd returns the position just past the token.
func tokenEnd(tok token.Token) token.Position {
	end := tok.Pos
	for i := 0; i < len(tok.Raw); i++ {
		if tok.Raw[i] == '\n' {
			end.Line++
			end.Column = 1
		} else {
			end.Column++
		}
	}
	end.Offset += len(tok.Raw)
	return end
}

// ---------- Keyword Helpers ----------

// isWord returns true for tokens spelled as words: identifiers and keywords.
func isWord(tok token.Token) bool {
	switch tok.Kind() {
	case token.KindIdentifier, token.KindQuotedIdentifier, token.KindKeyword:
		return true
	}
	return false
}

// isIdent returns true if the token can be used as an identifier here:
// plain or quoted identifiers and keywords the dialect does not reserve.
func (p *Parser) isIdent(tok token.Token) bool {
	switch tok.Kind() {
	case token.KindIdentifier, token.KindQuotedIdentifier:
		return true
	case token.KindKeyword:
		return !p.dialect.IsReservedWord(tok.Literal)
	}
	return false
}

// isImplicitAlias returns true if the current token can start an alias
// without AS. A word that begins a clause in some dialect is not an alias when
// the following token continues that clause (START WITH, CONNECT BY), so a
// clause the current dialect lacks is reported as unsupported.
func (p *Parser) isImplicitAlias() bool {
	switch p.tok.Type {
	case token.QIDENT:
		return true
	case token.IDENT:
		name, known := dialect.IsKnownClause(p.tok.Literal)
		if !known {
			return true
		}
		words := strings.Fields(name)
		if len(words) < 2 {
			return false
		}
		next := p.peek(1)
		return next.Type == token.QIDENT || !strings.EqualFold(next.Literal, words[1])
	}
	return false
}

// parseIdent parses a single identifier.
func (p *Parser) parseIdent() string {
	if !p.isIdent(p.tok) {
		p.failExpected(token.IDENT)
	}
	name := p.tok.Literal
	p.advance()
	return name
}

// parseIdentList parses "(" ident {"," ident} ")".
func (p *Parser) parseIdentList() []string {
	p.expect(token.LPAREN)
	names := []string{p.parseIdent()}
	for p.match(token.COMMA) {
		names = append(names, p.parseIdent())
	}
	p.expect(token.RPAREN)
	return names
}

// parseQualifiedName parses [[catalog.]schema.]name.
func (p *Parser) parseQualifiedName() *core.TableName {
	start := p.tok.Pos
	parts := []string{p.parseIdent()}
	for len(parts) < 3 && p.check(token.DOT) {
		p.advance()
		if !isWord(p.tok) {
			p.failExpected(token.IDENT)
		}
		parts = append(parts, p.tok.Literal)
		p.advance()
	}
	tn := &core.TableName{Name: parts[len(parts)-1]}
	if len(parts) > 1 {
		tn.Schema = parts[len(parts)-2]
	}
	if len(parts) > 2 {
		tn.Catalog = parts[0]
	}
	tn.SetSpan(start, p.prevEnd)
	return tn
}
