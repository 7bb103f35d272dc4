package token

// CommentKind distinguishes line and block comments.
type CommentKind int

// Comment kinds.
const (
	LineComment  CommentKind = iota // -- comment
	BlockComment                    // /* comment */
)

// Comment is a SQL comment the lexer skipped. Comments never reach the parser;
// they are collected on the lexer for tools that want them.
type Comment struct {
	Kind CommentKind
	Text string // includes the delimiters
	Span Span
}

// Body returns the comment text without delimiters.
func (c *Comment) Body() string {
	switch c.Kind {
	case LineComment:
		if len(c.Text) >= 2 {
			return c.Text[2:]
		}
	case BlockComment:
		if len(c.Text) >= 4 {
			return c.Text[2 : len(c.Text)-2]
		}
	}
	return c.Text
}
