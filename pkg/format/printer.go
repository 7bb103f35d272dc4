package format

import (
	"bytes"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

const defaultIndent = 2

// KeywordCase selects how keywords are spelled in the output.
type KeywordCase int

// Keyword spellings.
const (
	Upper KeywordCase = iota
	Lower
)

// Option configures a Printer.
type Option func(*options)

type options struct {
	keywordCase  KeywordCase
	indent       int
	compact      bool
	parameterize bool
	comments     []*token.Comment
}

// WithKeywordCase sets the keyword spelling. The default is Upper.
func WithKeywordCase(c KeywordCase) Option {
	return func(o *options) { o.keywordCase = c }
}

// WithIndent sets the number of spaces per nesting level in pretty output.
func WithIndent(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.indent = n
		}
	}
}

// Compact renders everything on a single line.
func Compact() Option {
	return func(o *options) { o.compact = true }
}

// WithParameterize replaces number and string literals with ? so that
// statements differing only in constants render identically.
func WithParameterize() Option {
	return func(o *options) { o.parameterize = true }
}

// WithComments re-attaches lexer comments to the statements passed to
// Statements. Comments inside a statement are moved in front of it.
func WithComments(comments []*token.Comment) Option {
	return func(o *options) { o.comments = comments }
}

// Printer renders AST nodes as SQL text for one dialect. It implements the
// per-kind visitor interfaces of package core and is driven by core.Accept.
// A Printer is not safe for concurrent use.
type Printer struct {
	dialect *dialect.Dialect
	opts    options
	caser   cases.Caser
	output  *bytes.Buffer

	depth        int
	atLineStart  bool
	pendingSpace bool // compact mode: a line break collapsed into one space
}

// NewPrinter returns a Printer for d. A nil dialect renders as ANSI.
func NewPrinter(d *dialect.Dialect, opts ...Option) *Printer {
	if d == nil {
		d = ansi.ANSI
	}
	o := options{indent: defaultIndent}
	for _, opt := range opts {
		opt(&o)
	}
	caser := cases.Upper(language.Und)
	if o.keywordCase == Lower {
		caser = cases.Lower(language.Und)
	}
	return &Printer{
		dialect:     d,
		opts:        o,
		caser:       caser,
		output:      &bytes.Buffer{},
		atLineStart: true,
	}
}

// Print renders n and appends it to the output.
func (p *Printer) Print(n core.Node) {
	p.node(n)
}

// String returns the output. Pretty output ends with a newline; compact
// output has none.
func (p *Printer) String() string {
	s := strings.TrimRight(p.output.String(), " \n")
	if p.opts.compact {
		return s
	}
	return s + "\n"
}

func (p *Printer) write(s string) {
	if s == "" {
		return
	}
	if p.opts.compact {
		if p.pendingSpace {
			p.pendingSpace = false
			if p.output.Len() > 0 && !p.endsWith('(') && !p.endsWith(' ') && !p.endsWith('\n') && s[0] != ')' {
				p.output.WriteByte(' ')
			}
		}
	} else if p.atLineStart {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

// newline ends the current line. Consecutive calls never produce blank lines.
// In compact mode the break becomes a single space before the next word.
func (p *Printer) newline() {
	if p.opts.compact {
		p.pendingSpace = true
		return
	}
	if !p.atLineStart {
		p.output.WriteByte('\n')
		p.atLineStart = true
	}
}

// hardBreak ends the line in every mode.
func (p *Printer) hardBreak() {
	if p.output.Len() > 0 && !p.endsWith('\n') {
		p.output.WriteByte('\n')
	}
	p.atLineStart = true
	p.pendingSpace = false
}

// trimLineEnd removes trailing blanks so the next write continues the last
// written line.
func (p *Printer) trimLineEnd() {
	b := p.output.Bytes()
	n := len(b)
	for n > 0 && (b[n-1] == ' ' || b[n-1] == '\n') {
		n--
	}
	p.output.Truncate(n)
	p.atLineStart = n == 0
	p.pendingSpace = false
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*p.opts.indent; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) endsWith(c byte) bool {
	b := p.output.Bytes()
	return len(b) > 0 && b[len(b)-1] == c
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
	p.atLineStart = false
	p.pendingSpace = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// keyword writes words separated by spaces in the configured keyword case.
func (p *Printer) keyword(words ...string) {
	for i, w := range words {
		if i > 0 {
			p.space()
		}
		p.write(p.caser.String(w))
	}
}

// kw writes the keywords of token types.
func (p *Printer) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			p.space()
		}
		p.write(p.caser.String(t.String()))
	}
}

// op writes an operator token: keywords follow the keyword case, symbols are
// written as is and inequality uses the standard spelling.
func (p *Printer) op(t token.TokenType) {
	switch {
	case t == token.NE:
		p.write("<>")
	case t.Kind() == token.KindKeyword:
		p.kw(t)
	default:
		p.write(t.String())
	}
}

// formatList prints count items with sep between them; multiline breaks the
// line after each separator.
func (p *Printer) formatList(count int, format func(i int), sep string, multiline bool) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
			if multiline {
				p.newline()
			} else {
				p.space()
			}
		}
	}
}

// identList writes (a, b, c).
func (p *Printer) identList(names []string) {
	p.write("(")
	p.formatList(len(names), func(i int) { p.ident(names[i]) }, ",", false)
	p.write(")")
}

func (p *Printer) comment(c *token.Comment) {
	p.write(c.Text)
	if c.Kind == token.LineComment {
		p.hardBreak()
	}
}
