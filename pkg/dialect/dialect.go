// Package dialect provides the grammar table a SQL dialect hands to the lexer,
// parser and renderer, plus the registry concrete dialects register into.
//
// A Dialect is assembled once with a Builder, registered from an init()
// function in pkg/dialects/*, and shared read-only afterwards.
package dialect

import (
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers core.IdentifierConfig
	StringQuote byte
	Placeholder core.PlaceholderStyle

	reservedWords map[string]struct{} // lowercase words that need quoting as identifiers

	clauseSequence []token.TokenType
	clauseDefs     map[token.TokenType]core.ClauseDef
	symbols        map[string]token.TokenType // Custom operators: "::" -> DCOLON
	dynamicKw      map[string]token.TokenType // lowercase keyword -> token
	precedence     map[token.TokenType]int
	infixHandlers  map[token.TokenType]spi.InfixHandler
	prefixHandlers map[token.TokenType]spi.PrefixHandler
	createHandlers map[token.TokenType]spi.CreateHandler
	joinTypes      map[token.TokenType]core.JoinTypeDef
	setOps         map[token.TokenType]core.SetOpType
	extensions     map[core.Extension]bool
}

// String returns the dialect name.
func (d *Dialect) String() string {
	return d.Name
}

// NormalizeName normalizes an unquoted identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	return d.Identifiers.Normalization.Apply(name)
}

// LookupKeyword returns the keyword token for a word, or IDENT and false.
// Builtin keywords are recognised in every dialect; dialect keywords only in
// the dialect that registered them.
func (d *Dialect) LookupKeyword(word string) (token.TokenType, bool) {
	lower := strings.ToLower(word)
	if t := token.LookupIdent(lower); t != token.IDENT {
		return t, true
	}
	if t, ok := d.dynamicKw[lower]; ok {
		return t, true
	}
	return token.IDENT, false
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToLower(word)]
	return ok
}

// ReservedWords returns the sorted reserved words of the dialect.
func (d *Dialect) ReservedWords() []string {
	words := make([]string, 0, len(d.reservedWords))
	for w := range d.reservedWords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Keywords returns the sorted dialect-specific keywords.
func (d *Dialect) Keywords() []string {
	kws := make([]string, 0, len(d.dynamicKw))
	for kw := range d.dynamicKw {
		kws = append(kws, kw)
	}
	sort.Strings(kws)
	return kws
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	case core.PlaceholderColon:
		return ":" + strconv.Itoa(index)
	default:
		return "?"
	}
}

// HasExtension reports whether the dialect enables a grammar extension.
func (d *Dialect) HasExtension(ext core.Extension) bool {
	return d.extensions[ext]
}

// Extensions returns the enabled grammar extensions in declaration order.
func (d *Dialect) Extensions() []core.Extension {
	out := make([]core.Extension, 0, len(d.extensions))
	for ext := range d.extensions {
		out = append(out, ext)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ---------- Parsing Behavior Methods ----------

// ClauseSequence returns the ordered list of clause token types for this dialect.
func (d *Dialect) ClauseSequence() []token.TokenType {
	return d.clauseSequence
}

// ClauseDef returns the definition (handler + slot) for a clause token type.
func (d *Dialect) ClauseDef(t token.TokenType) (core.ClauseDef, bool) {
	def, ok := d.clauseDefs[t]
	return def, ok
}

// ClauseHandler returns the handler for a clause token type.
func (d *Dialect) ClauseHandler(t token.TokenType) spi.ClauseHandler {
	if def, ok := d.clauseDefs[t]; ok {
		if h, ok := def.Handler.(spi.ClauseHandler); ok {
			return h
		}
	}
	return nil
}

// ClauseIndex returns the position of a clause token in the sequence, or -1.
func (d *Dialect) ClauseIndex(t token.TokenType) int {
	for i, tok := range d.clauseSequence {
		if tok == t {
			return i
		}
	}
	return -1
}

// ClauseNames returns the display names of the clause sequence.
func (d *Dialect) ClauseNames() []string {
	names := make([]string, len(d.clauseSequence))
	for i, t := range d.clauseSequence {
		names[i] = d.clauseDefs[t].Name()
	}
	return names
}

// Symbols returns the custom operators map for lexer symbol matching.
func (d *Dialect) Symbols() map[string]token.TokenType {
	return d.symbols
}

// Precedence returns the precedence level for an operator token.
// Returns 0 (PrecedenceNone) if the operator is not recognized.
func (d *Dialect) Precedence(t token.TokenType) int {
	if p, ok := d.precedence[t]; ok {
		return p
	}
	return core.PrecedenceNone
}

// InfixHandler returns the custom infix handler for an operator token.
func (d *Dialect) InfixHandler(t token.TokenType) spi.InfixHandler {
	return d.infixHandlers[t]
}

// PrefixHandler returns the custom prefix handler for an operator token.
func (d *Dialect) PrefixHandler(t token.TokenType) spi.PrefixHandler {
	return d.prefixHandlers[t]
}

// CreateHandler returns the handler for CREATE <t>.
func (d *Dialect) CreateHandler(t token.TokenType) spi.CreateHandler {
	return d.createHandlers[t]
}

// JoinTypeDef returns the definition for a join type token.
func (d *Dialect) JoinTypeDef(t token.TokenType) (core.JoinTypeDef, bool) {
	def, ok := d.joinTypes[t]
	return def, ok
}

// SetOp returns the set operation introduced by a token.
func (d *Dialect) SetOp(t token.TokenType) (core.SetOpType, bool) {
	op, ok := d.setOps[t]
	return op, ok
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
// The builder starts with ANSI identifier rules and every builtin reserved
// keyword marked reserved.
func NewDialect(name string) *Builder {
	d := &Dialect{
		Name: name,
		Identifiers: core.IdentifierConfig{
			Quote:         `"`,
			QuoteEnd:      `"`,
			Escape:        `""`,
			Normalization: core.NormLowercase,
		},
		StringQuote:    '\'',
		reservedWords:  make(map[string]struct{}),
		clauseDefs:     make(map[token.TokenType]core.ClauseDef),
		symbols:        make(map[string]token.TokenType),
		dynamicKw:      make(map[string]token.TokenType),
		precedence:     make(map[token.TokenType]int),
		infixHandlers:  make(map[token.TokenType]spi.InfixHandler),
		prefixHandlers: make(map[token.TokenType]spi.PrefixHandler),
		createHandlers: make(map[token.TokenType]spi.CreateHandler),
		joinTypes:      make(map[token.TokenType]core.JoinTypeDef),
		setOps:         make(map[token.TokenType]core.SetOpType),
		extensions:     make(map[core.Extension]bool),
	}
	for t := token.ALL; t <= token.WITH; t++ {
		if token.IsReserved(t) {
			d.reservedWords[strings.ToLower(t.String())] = struct{}{}
		}
	}
	return &Builder{dialect: d}
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// PlaceholderStyle sets how query parameters are formatted.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[strings.ToLower(w)] = struct{}{}
	}
	return b
}

// Enable turns on grammar extensions.
func (b *Builder) Enable(exts ...core.Extension) *Builder {
	for _, ext := range exts {
		b.dialect.extensions[ext] = true
	}
	return b
}

// AddOperator registers a custom operator symbol for the lexer.
func (b *Builder) AddOperator(symbol string, t token.TokenType) *Builder {
	b.dialect.symbols[symbol] = t
	return b
}

// AddKeyword registers a dynamic keyword for the lexer.
func (b *Builder) AddKeyword(name string, t token.TokenType) *Builder {
	b.dialect.dynamicKw[strings.ToLower(name)] = t
	return b
}

// Clauses sets the clause sequence from a list of ClauseDefs.
// This replaces inheritance - explicitly list all supported clauses.
func (b *Builder) Clauses(defs ...core.ClauseDef) *Builder {
	b.dialect.clauseSequence = make([]token.TokenType, len(defs))
	for i, def := range defs {
		b.dialect.clauseSequence[i] = def.Token
		b.dialect.clauseDefs[def.Token] = def
		recordClause(def)
	}
	return b
}

// AddClauseAfter inserts a clause into the sequence after another clause.
func (b *Builder) AddClauseAfter(after token.TokenType, def core.ClauseDef) *Builder {
	seq := b.dialect.clauseSequence
	for i, tok := range seq {
		if tok == after {
			newSeq := make([]token.TokenType, 0, len(seq)+1)
			newSeq = append(newSeq, seq[:i+1]...)
			newSeq = append(newSeq, def.Token)
			newSeq = append(newSeq, seq[i+1:]...)
			b.dialect.clauseSequence = newSeq
			break
		}
	}
	b.dialect.clauseDefs[def.Token] = def
	recordClause(def)
	return b
}

// RemoveClause removes a clause from the sequence.
func (b *Builder) RemoveClause(t token.TokenType) *Builder {
	for i, tok := range b.dialect.clauseSequence {
		if tok == t {
			b.dialect.clauseSequence = append(b.dialect.clauseSequence[:i:i], b.dialect.clauseSequence[i+1:]...)
			break
		}
	}
	delete(b.dialect.clauseDefs, t)
	return b
}

// AddInfix registers an infix operator with precedence.
func (b *Builder) AddInfix(t token.TokenType, precedence int) *Builder {
	b.dialect.precedence[t] = precedence
	return b
}

// AddInfixWithHandler registers an infix operator with custom handler.
func (b *Builder) AddInfixWithHandler(t token.TokenType, precedence int, handler spi.InfixHandler) *Builder {
	b.dialect.precedence[t] = precedence
	b.dialect.infixHandlers[t] = handler
	return b
}

// AddPrefix registers a prefix expression handler (e.g. PRIOR).
func (b *Builder) AddPrefix(t token.TokenType, handler spi.PrefixHandler) *Builder {
	b.dialect.prefixHandlers[t] = handler
	return b
}

// AddCreate registers a handler for CREATE <t>.
func (b *Builder) AddCreate(t token.TokenType, handler spi.CreateHandler) *Builder {
	b.dialect.createHandlers[t] = handler
	return b
}

// AddSetOp registers a set operation keyword.
func (b *Builder) AddSetOp(t token.TokenType, op core.SetOpType) *Builder {
	b.dialect.setOps[t] = op
	return b
}

// Operators adds operator definitions in bulk.
// If Symbol is provided, it's registered with the lexer.
func (b *Builder) Operators(sets ...[]core.OperatorDef) *Builder {
	for _, set := range sets {
		for _, op := range set {
			b.dialect.precedence[op.Token] = op.Precedence
			if h, ok := op.Handler.(spi.InfixHandler); ok && h != nil {
				b.dialect.infixHandlers[op.Token] = h
			}
			if op.Symbol != "" {
				b.dialect.symbols[op.Symbol] = op.Token
			}
		}
	}
	return b
}

// JoinTypes adds join type definitions in bulk.
func (b *Builder) JoinTypes(sets ...[]core.JoinTypeDef) *Builder {
	for _, set := range sets {
		for _, jt := range set {
			b.dialect.joinTypes[jt.Token] = jt
		}
	}
	return b
}

// SetOps adds set operation definitions in bulk.
func (b *Builder) SetOps(ops map[token.TokenType]core.SetOpType) *Builder {
	for t, op := range ops {
		b.dialect.setOps[t] = op
	}
	return b
}

// Build returns the constructed dialect. The builder must not be used afterwards.
func (b *Builder) Build() *Dialect {
	d := b.dialect
	b.dialect = nil
	return d
}
