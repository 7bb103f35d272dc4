package parser

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Lexer tokenizes SQL input for one dialect. Tokens are produced lazily by Next.
type Lexer struct {
	input     string
	pos       int  // current position in input
	readPos   int  // reading position (after current char)
	ch        byte // current char under examination
	line      int  // current line number (1-based)
	lineStart int  // offset of the first byte of the current line

	dialect *dialect.Dialect
	symbols []string // dialect symbols, longest first

	// Comments collected during lexing
	Comments []*token.Comment
}

// NewLexer creates a new dialect-aware Lexer for the given input.
func NewLexer(input string, d *dialect.Dialect) *Lexer {
	l := &Lexer{
		input:   input,
		line:    1,
		dialect: d,
	}
	for sym := range d.Symbols() {
		l.symbols = append(l.symbols, sym)
	}
	sort.Slice(l.symbols, func(i, j int) bool {
		if len(l.symbols[i]) != len(l.symbols[j]) {
			return len(l.symbols[i]) > len(l.symbols[j])
		}
		return l.symbols[i] < l.symbols[j]
	})
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.lineStart = l.readPos
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(n int) byte {
	if l.readPos+n >= len(l.input) {
		return 0
	}
	return l.input[l.readPos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.pos - l.lineStart + 1,
		Offset: l.pos,
	}
}

func (l *Lexer) errorf(pos token.Position, text, msg string) *LexError {
	return &LexError{Pos: pos, Text: text, Message: msg}
}

// Next returns the next token. At end of input it keeps returning EOF.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return token.Token{Type: token.ILLEGAL, Pos: err.Pos, Raw: err.Text}, err
	}

	pos := l.currentPos()
	start := l.pos
	if l.atEOF() {
		return token.Token{Type: token.EOF, Pos: pos}, nil
	}

	// Dialect symbols win over builtin operators (longest match)
	for _, sym := range l.symbols {
		if strings.HasPrefix(l.input[l.pos:], sym) {
			for range len(sym) {
				l.readChar()
			}
			return l.make(l.dialect.Symbols()[sym], pos, start, sym), nil
		}
	}

	quote := l.dialect.Identifiers.Quote
	switch {
	case quote != "" && l.ch == quote[0]:
		return l.readQuotedIdentifier(pos, l.dialect.Identifiers.QuoteEnd[0])
	case l.ch == '"' && l.dialect.HasExtension(core.ExtDoubleQuotedIdentifiers):
		return l.readQuotedIdentifier(pos, '"')
	case l.ch == l.dialect.StringQuote,
		l.ch == '"' && l.dialect.HasExtension(core.ExtDoubleQuotedStrings):
		return l.readString(pos)
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		return l.readNumber(pos), nil
	case isIdentStart(l.ch):
		word := l.readIdentifier()
		typ, _ := l.dialect.LookupKeyword(word)
		return token.Token{Type: typ, Literal: word, Raw: word, Pos: pos}, nil
	case l.ch == '?':
		l.readChar()
		return l.make(token.PARAM, pos, start, "?"), nil
	case l.ch == '$' && isDigit(l.peekChar()):
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
		return l.make(token.PARAM, pos, start, l.input[start:l.pos]), nil
	case l.ch == ':' && isIdentStart(l.peekChar()):
		l.readChar()
		l.readIdentifier()
		return l.make(token.PARAM, pos, start, l.input[start:l.pos]), nil
	}

	typ, width := operator(l.ch, l.peekChar())
	if typ == token.ILLEGAL {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		text := l.input[l.pos : l.pos+size]
		return token.Token{Type: token.ILLEGAL, Raw: text, Pos: pos}, l.errorf(pos, text, fmt.Sprintf(ErrUnexpectedChar, r))
	}
	for range width {
		l.readChar()
	}
	return l.make(typ, pos, start, l.input[start:l.pos]), nil
}

func (l *Lexer) make(t token.TokenType, pos token.Position, start int, lit string) token.Token {
	return token.Token{Type: t, Literal: lit, Raw: l.input[start:l.pos], Pos: pos}
}

// operator matches builtin operators and punctuation by maximal munch.
func operator(ch, next byte) (token.TokenType, int) {
	switch ch {
	case '+':
		return token.PLUS, 1
	case '-':
		return token.MINUS, 1
	case '*':
		return token.STAR, 1
	case '/':
		return token.SLASH, 1
	case '%':
		return token.PERCENT, 1
	case '=':
		return token.EQ, 1
	case '<':
		switch next {
		case '=':
			return token.LE, 2
		case '>':
			return token.NE, 2
		}
		return token.LT, 1
	case '>':
		if next == '=' {
			return token.GE, 2
		}
		return token.GT, 1
	case '!':
		if next == '=' {
			return token.NE, 2
		}
	case '|':
		if next == '|' {
			return token.DPIPE, 2
		}
	case '.':
		return token.DOT, 1
	case ',':
		return token.COMMA, 1
	case '(':
		return token.LPAREN, 1
	case ')':
		return token.RPAREN, 1
	case ';':
		return token.SEMICOLON, 1
	}
	return token.ILLEGAL, 0
}

// skipWhitespaceAndComments skips whitespace and collects comments.
func (l *Lexer) skipWhitespaceAndComments() *LexError {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f':
			if l.atEOF() {
				return nil
			}
			l.readChar()
		case l.ch == '-' && l.peekChar() == '-':
			l.readLineComment()
		case l.ch == '/' && l.peekChar() == '*':
			if err := l.readBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// readLineComment reads a -- comment up to (not including) the newline.
func (l *Lexer) readLineComment() {
	startPos := l.currentPos()
	start := l.pos
	for !l.atEOF() && l.ch != '\n' {
		l.readChar()
	}
	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.LineComment,
		Text: l.input[start:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// readBlockComment reads a /* */ comment. Block comments do not nest.
func (l *Lexer) readBlockComment() *LexError {
	startPos := l.currentPos()
	start := l.pos
	l.readChar() // /
	l.readChar() // *
	for {
		if l.atEOF() {
			return l.errorf(startPos, l.input[start:], ErrUnterminatedComment)
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			break
		}
		l.readChar()
	}
	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.BlockComment,
		Text: l.input[start:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
	return nil
}

// readString reads a string literal. A doubled quote is an escaped quote.
func (l *Lexer) readString(pos token.Position) (token.Token, error) {
	q := l.ch
	start := l.pos
	var b strings.Builder
	l.readChar() // opening quote
	for {
		if l.atEOF() {
			return token.Token{Type: token.ILLEGAL, Raw: l.input[start:], Pos: pos},
				l.errorf(pos, l.input[start:], ErrUnterminatedString)
		}
		if l.ch == q {
			if l.peekChar() == q {
				b.WriteByte(q)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // closing quote
			break
		}
		b.WriteByte(l.ch)
		l.readChar()
	}
	return token.Token{Type: token.STRING, Literal: b.String(), Raw: l.input[start:l.pos], Pos: pos}, nil
}

// readQuotedIdentifier reads a delimited identifier. A doubled closing quote
// is an escaped quote; contents are otherwise verbatim.
func (l *Lexer) readQuotedIdentifier(pos token.Position, closing byte) (token.Token, error) {
	start := l.pos
	var b strings.Builder
	l.readChar() // opening quote
	for {
		if l.atEOF() {
			return token.Token{Type: token.ILLEGAL, Raw: l.input[start:], Pos: pos},
				l.errorf(pos, l.input[start:], ErrUnterminatedQuoted)
		}
		if l.ch == closing {
			if l.peekChar() == closing {
				b.WriteByte(closing)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // closing quote
			break
		}
		b.WriteByte(l.ch)
		l.readChar()
	}
	if b.Len() == 0 {
		return token.Token{Type: token.ILLEGAL, Raw: l.input[start:l.pos], Pos: pos},
			l.errorf(pos, l.input[start:l.pos], ErrEmptyQuotedIdent)
	}
	return token.Token{Type: token.QIDENT, Literal: b.String(), Raw: l.input[start:l.pos], Pos: pos}, nil
}

// readNumber reads digits, an optional fraction and an optional exponent.
// An exponent marker not followed by digits is left for the next token.
func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && !isIdentStart(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		switch {
		case isDigit(l.peekChar()):
			l.readChar()
		case (l.peekChar() == '+' || l.peekChar() == '-') && isDigit(l.peekAt(1)):
			l.readChar()
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lit := l.input[start:l.pos]
	return token.Token{Type: token.NUMBER, Literal: lit, Raw: lit, Pos: pos}
}

// readIdentifier reads [A-Za-z_][A-Za-z0-9_$#]*.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentPart(l.ch) && !l.atEOF() {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// Tokenize returns all tokens of input up to and including EOF, or the first
// lexical error.
func Tokenize(input string, d *dialect.Dialect) ([]token.Token, error) {
	l := NewLexer(input, d)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '$' || ch == '#'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
