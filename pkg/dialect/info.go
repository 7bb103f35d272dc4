package dialect

// Info summarizes a dialect for listings.
type Info struct {
	Name          string   `json:"name" yaml:"name"`
	Quote         string   `json:"quote" yaml:"quote"`
	Clauses       []string `json:"clauses" yaml:"clauses"`
	Extensions    []string `json:"extensions" yaml:"extensions"`
	ReservedWords int      `json:"reserved_words" yaml:"reserved_words"`
}

// Describe returns the summary of d.
func Describe(d *Dialect) Info {
	info := Info{
		Name:          d.Name,
		Quote:         d.Identifiers.Quote + d.Identifiers.QuoteEnd,
		Clauses:       d.ClauseNames(),
		Extensions:    []string{},
		ReservedWords: len(d.ReservedWords()),
	}
	for _, ext := range d.Extensions() {
		info.Extensions = append(info.Extensions, ext.String())
	}
	return info
}
