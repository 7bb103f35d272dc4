package core

import "strings"

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison (SQL Server).
	NormCaseInsensitive
)

// Apply normalizes an unquoted identifier.
func (n NormalizationStrategy) Apply(name string) string {
	switch n {
	case NormUppercase:
		return strings.ToUpper(name)
	case NormLowercase, NormCaseInsensitive:
		return strings.ToLower(name)
	default:
		return name
	}
}

// PlaceholderStyle defines how query parameters are written.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (MySQL, SQL Server drivers).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. (PostgreSQL).
	PlaceholderDollar
	// PlaceholderColon uses :name (Oracle).
	PlaceholderColon
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}

// Extension is a grammar feature a dialect opts into.
type Extension int

// Grammar extensions.
const (
	ExtHierarchicalQueries     Extension = iota + 1 // START WITH / CONNECT BY
	ExtSequencePseudocolumns                        // seq.NEXTVAL / seq.CURRVAL
	ExtSelectTop                                    // SELECT TOP n
	ExtLimitComma                                   // LIMIT offset, count
	ExtCastOperator                                 // expr::type
	ExtIlike                                        // ILIKE
	ExtDoubleQuotedIdentifiers                      // "x" besides the dialect's own quote pair
	ExtDoubleQuotedStrings                          // "x" is a string literal
)

var extensionNames = map[Extension]string{
	ExtHierarchicalQueries:     "hierarchical-queries",
	ExtSequencePseudocolumns:   "sequence-pseudocolumns",
	ExtSelectTop:               "select-top",
	ExtLimitComma:              "limit-comma",
	ExtCastOperator:            "cast-operator",
	ExtIlike:                   "ilike",
	ExtDoubleQuotedIdentifiers: "double-quoted-identifiers",
	ExtDoubleQuotedStrings:     "double-quoted-strings",
}

func (e Extension) String() string {
	if s, ok := extensionNames[e]; ok {
		return s
	}
	return "unknown"
}
