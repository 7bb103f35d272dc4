package format

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

// NeedsQuote reports whether name must be quoted to read back as the same
// identifier in d: it is reserved, or it is not a plain [A-Za-z_][A-Za-z0-9_$#]* word.
func NeedsQuote(d *dialect.Dialect, name string) bool {
	if name == "" || d.IsReservedWord(name) {
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z'):
		case i > 0 && (('0' <= c && c <= '9') || c == '$' || c == '#'):
		default:
			return true
		}
	}
	return false
}

// ident writes an identifier, quoting it when needed.
func (p *Printer) ident(name string) {
	if name != "" && NeedsQuote(p.dialect, name) {
		p.write(p.dialect.QuoteIdentifier(name))
		return
	}
	p.write(name)
}

// aliasIdent writes an alias that follows its table without AS. Such an
// alias must not read as a keyword or a clause of any dialect.
func (p *Printer) aliasIdent(name string) {
	if _, kw := p.dialect.LookupKeyword(name); kw {
		p.write(p.dialect.QuoteIdentifier(name))
		return
	}
	if _, clause := dialect.IsKnownClause(name); clause {
		p.write(p.dialect.QuoteIdentifier(name))
		return
	}
	p.ident(name)
}

// qualified writes dotted name parts, skipping empty ones.
func (p *Printer) qualified(parts ...string) {
	first := true
	for _, part := range parts {
		if part == "" {
			continue
		}
		if !first {
			p.write(".")
		}
		p.ident(part)
		first = false
	}
}

// stringLiteral quotes s with the dialect's string quote.
func (p *Printer) stringLiteral(s string) string {
	q := string(p.dialect.StringQuote)
	return q + strings.ReplaceAll(s, q, q+q) + q
}
