// Package token defines the lexical vocabulary shared by the lexer, parser and renderer.
//
// Builtin tokens are constants (IDs 0-999) so the parser can switch on them.
// Dialect-specific keywords and symbols are registered at init time via Register
// and RegisterSymbol.
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // token.TokenType reads clearly at call sites
type TokenType int32

//nolint:revive // ALL_CAPS names follow SQL token conventions
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // identifier
	QIDENT // "quoted identifier"
	NUMBER // 123, 45.67, 1e10
	STRING // 'hello'
	PARAM  // ?, $1, :name

	// Operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	DPIPE   // ||
	EQ      // =
	NE      // != or <>
	LT      // <
	GT      // >
	LE      // <=
	GE      // >=

	// Punctuation
	DOT       // .
	COMMA     // ,
	LPAREN    // (
	RPAREN    // )
	SEMICOLON // ;

	// Keywords (alphabetical)
	ALL
	AND
	AS
	ASC
	BETWEEN
	BY
	CASCADE
	CASE
	CAST
	CHECK
	CONSTRAINT
	CREATE
	CROSS
	CURRENT
	DEFAULT
	DELETE
	DESC
	DISTINCT
	DROP
	ELSE
	END
	ESCAPE
	EXCEPT
	EXISTS
	FALSE
	FETCH
	FILTER
	FIRST
	FOLLOWING
	FROM
	FULL
	GROUP
	HAVING
	IF
	IN
	INNER
	INSERT
	INTERSECT
	INTO
	IS
	JOIN
	KEY
	LAST
	LEFT
	LIKE
	LIMIT
	NATURAL
	NEXT
	NOT
	NULL
	NULLS
	OFFSET
	ON
	ONLY
	OR
	ORDER
	OUTER
	OVER
	PARTITION
	PERCENT_KW
	PRECEDING
	PRIMARY
	RANGE
	RECURSIVE
	REFERENCES
	RESTRICT
	RIGHT
	ROW
	ROWS
	SELECT
	SET
	TABLE
	THEN
	TIES
	TRUE
	UNBOUNDED
	UNION
	UNIQUE
	UPDATE
	USING
	VALUES
	WHEN
	WHERE
	WITH

	// Sentinel - dynamic tokens start after this
	maxBuiltin TokenType = 999
)

// Kind classifies a token for callers that do not care about the exact type.
type Kind int

// Token kinds.
const (
	KindEOF Kind = iota
	KindIllegal
	KindKeyword
	KindIdentifier
	KindQuotedIdentifier
	KindNumber
	KindString
	KindParameter
	KindOperator
	KindPunctuation
)

var kindNames = [...]string{
	KindEOF:              "eof",
	KindIllegal:          "illegal",
	KindKeyword:          "keyword",
	KindIdentifier:       "identifier",
	KindQuotedIdentifier: "quoted-identifier",
	KindNumber:           "number",
	KindString:           "string",
	KindParameter:        "parameter",
	KindOperator:         "operator",
	KindPunctuation:      "punctuation",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// keywordDef describes a builtin keyword. Reserved keywords can never be used as
// bare identifiers; the rest are accepted wherever an identifier is expected.
type keywordDef struct {
	tok      TokenType
	reserved bool
}

var keywordTable = map[string]keywordDef{
	"all":        {ALL, true},
	"and":        {AND, true},
	"as":         {AS, true},
	"asc":        {ASC, true},
	"between":    {BETWEEN, true},
	"by":         {BY, true},
	"cascade":    {CASCADE, false},
	"case":       {CASE, true},
	"cast":       {CAST, true},
	"check":      {CHECK, true},
	"constraint": {CONSTRAINT, true},
	"create":     {CREATE, true},
	"cross":      {CROSS, true},
	"current":    {CURRENT, false},
	"default":    {DEFAULT, true},
	"delete":     {DELETE, true},
	"desc":       {DESC, true},
	"distinct":   {DISTINCT, true},
	"drop":       {DROP, true},
	"else":       {ELSE, true},
	"end":        {END, true},
	"escape":     {ESCAPE, false},
	"except":     {EXCEPT, true},
	"exists":     {EXISTS, true},
	"false":      {FALSE, true},
	"fetch":      {FETCH, true},
	"filter":     {FILTER, false},
	"first":      {FIRST, false},
	"following":  {FOLLOWING, false},
	"from":       {FROM, true},
	"full":       {FULL, true},
	"group":      {GROUP, true},
	"having":     {HAVING, true},
	"if":         {IF, false},
	"in":         {IN, true},
	"inner":      {INNER, true},
	"insert":     {INSERT, true},
	"intersect":  {INTERSECT, true},
	"into":       {INTO, true},
	"is":         {IS, true},
	"join":       {JOIN, true},
	"key":        {KEY, false},
	"last":       {LAST, false},
	"left":       {LEFT, true},
	"like":       {LIKE, true},
	"limit":      {LIMIT, true},
	"natural":    {NATURAL, true},
	"next":       {NEXT, false},
	"not":        {NOT, true},
	"null":       {NULL, true},
	"nulls":      {NULLS, false},
	"offset":     {OFFSET, true},
	"on":         {ON, true},
	"only":       {ONLY, false},
	"or":         {OR, true},
	"order":      {ORDER, true},
	"outer":      {OUTER, true},
	"over":       {OVER, false},
	"partition":  {PARTITION, false},
	"percent":    {PERCENT_KW, false},
	"preceding":  {PRECEDING, false},
	"primary":    {PRIMARY, true},
	"range":      {RANGE, false},
	"recursive":  {RECURSIVE, false},
	"references": {REFERENCES, true},
	"restrict":   {RESTRICT, false},
	"right":      {RIGHT, true},
	"row":        {ROW, false},
	"rows":       {ROWS, false},
	"select":     {SELECT, true},
	"set":        {SET, true},
	"table":      {TABLE, true},
	"then":       {THEN, true},
	"ties":       {TIES, false},
	"true":       {TRUE, true},
	"unbounded":  {UNBOUNDED, false},
	"union":      {UNION, true},
	"unique":     {UNIQUE, true},
	"update":     {UPDATE, true},
	"using":      {USING, true},
	"values":     {VALUES, true},
	"when":       {WHEN, true},
	"where":      {WHERE, true},
	"with":       {WITH, true},
}

// tokenNames maps builtin non-keyword token types to their display form.
// Keyword names are filled in from keywordTable.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	QIDENT: "QIDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",
	PARAM:  "PARAM",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	DPIPE:   "||",
	EQ:      "=",
	NE:      "!=",
	LT:      "<",
	GT:      ">",
	LE:      "<=",
	GE:      ">=",

	DOT:       ".",
	COMMA:     ",",
	LPAREN:    "(",
	RPAREN:    ")",
	SEMICOLON: ";",
}

func init() {
	for name, def := range keywordTable {
		tokenNames[def.tok] = strings.ToUpper(name)
	}
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := getDynamicName(t); ok {
		return name
	}
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// Kind classifies the token type.
func (t TokenType) Kind() Kind {
	switch {
	case t == EOF:
		return KindEOF
	case t == ILLEGAL:
		return KindIllegal
	case t == IDENT:
		return KindIdentifier
	case t == QIDENT:
		return KindQuotedIdentifier
	case t == NUMBER:
		return KindNumber
	case t == STRING:
		return KindString
	case t == PARAM:
		return KindParameter
	case t >= PLUS && t <= GE:
		return KindOperator
	case t >= DOT && t <= SEMICOLON:
		return KindPunctuation
	case IsKeyword(t):
		return KindKeyword
	case IsDynamic(t):
		if isDynamicSymbol(t) {
			return KindOperator
		}
		return KindKeyword
	}
	return KindIllegal
}

// LookupIdent returns the builtin keyword token for a lowercase word, or IDENT.
// Dialect keywords are resolved by the dialect, not here.
func LookupIdent(ident string) TokenType {
	if def, ok := keywordTable[ident]; ok {
		return def.tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a builtin keyword.
func IsKeyword(t TokenType) bool {
	return t >= ALL && t <= WITH
}

// IsReserved returns true if the builtin keyword cannot be used as a bare identifier.
func IsReserved(t TokenType) bool {
	if !IsKeyword(t) {
		return false
	}
	def, ok := keywordTable[strings.ToLower(t.String())]
	return ok && def.reserved
}

// IsOperator returns true if the token type is a builtin operator.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= GE
}

// Token is a single lexical unit. Tokens are immutable once produced.
type Token struct {
	Type    TokenType
	Literal string // unescaped value (identifier text without quotes, string contents)
	Raw     string // exact source text
	Pos     Position
}

// Kind classifies the token.
func (t Token) Kind() Kind {
	return t.Type.Kind()
}

// String renders the token for diagnostics.
func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENT, QIDENT, NUMBER, STRING, PARAM:
		return fmt.Sprintf("%s %q", t.Kind(), t.Raw)
	}
	return fmt.Sprintf("%q", t.Type.String())
}
