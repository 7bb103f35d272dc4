package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// TokenStream is a forward-only view over a Lexer with unbounded lookahead
// and mark/reset backtracking. Tokens are lexed on demand.
type TokenStream struct {
	lexer *Lexer
	buf   []token.Token
	pos   int
	err   error
	done  bool // EOF or a lexical error has been produced
}

// Mark is a saved stream position. It is only valid for the stream that
// produced it.
type Mark struct {
	stream *TokenStream
	pos    int
}

// NewTokenStream creates a token stream over input.
func NewTokenStream(input string, d *dialect.Dialect) *TokenStream {
	return &TokenStream{lexer: NewLexer(input, d)}
}

func (s *TokenStream) fill(n int) {
	for len(s.buf) <= s.pos+n {
		if s.done {
			s.buf = append(s.buf, s.buf[len(s.buf)-1])
			continue
		}
		tok, err := s.lexer.Next()
		if err != nil {
			s.err = err
			s.done = true
		}
		if tok.Type == token.EOF {
			s.done = true
		}
		s.buf = append(s.buf, tok)
	}
}

// Peek returns the token n positions ahead without consuming anything.
// Peek(0) is the current token. Past the end, the final EOF (or ILLEGAL)
// token is repeated.
func (s *TokenStream) Peek(n int) token.Token {
	s.fill(n)
	return s.buf[s.pos+n]
}

// Next consumes and returns the current token. EOF and ILLEGAL are never
// consumed.
func (s *TokenStream) Next() token.Token {
	tok := s.Peek(0)
	if tok.Type != token.EOF && tok.Type != token.ILLEGAL {
		s.pos++
	}
	return tok
}

// Mark saves the current position.
func (s *TokenStream) Mark() Mark {
	return Mark{stream: s, pos: s.pos}
}

// Reset restores a position saved by Mark.
func (s *TokenStream) Reset(m Mark) {
	if m.stream != s {
		panic("parser: Reset with a mark from another token stream")
	}
	s.pos = m.pos
}

// Err returns the lexical error that ended the stream, if any.
func (s *TokenStream) Err() error {
	return s.err
}

// Comments returns the comments seen so far.
func (s *TokenStream) Comments() []*token.Comment {
	return s.lexer.Comments
}
