package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

type tokenInfo struct {
	Type    string `json:"type" yaml:"type"`
	Kind    string `json:"kind" yaml:"kind"`
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
	Raw     string `json:"raw" yaml:"raw"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of SQL text",
		Long: `Run only the lexer of the selected dialect and print every token with its
position. Useful to see how a dialect classifies keywords and quoted names.`,
		Example: `  sqlfront tokens query.sql
  echo 'SELECT [order] FROM t' | sqlfront tokens -d sqlserver`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			r := cmdCtx.Renderer

			srcs, err := readSources(args, cmd.InOrStdin(), &cmdCtx.Cfg.Format)
			if err != nil {
				return err
			}
			if len(srcs) != 1 {
				return fmt.Errorf("expected one input, got %d", len(srcs))
			}
			src := srcs[0]

			toks, err := parser.Tokenize(src.Text, cmdCtx.Dialect)
			if err != nil {
				r.Diagnostic(src.Name, src.Text, err)
				return ErrSyntax
			}

			infos := make([]tokenInfo, 0, len(toks))
			for _, tok := range toks {
				if tok.Type == token.EOF {
					continue
				}
				infos = append(infos, tokenInfo{
					Type:    tok.Type.String(),
					Kind:    tok.Kind().String(),
					Literal: tok.Literal,
					Raw:     tok.Raw,
					Line:    tok.Pos.Line,
					Column:  tok.Pos.Column,
				})
			}

			if ok, err := r.Structured(infos); ok {
				return err
			}
			rows := make([]table.Row, 0, len(infos))
			for _, ti := range infos {
				rows = append(rows, table.Row{fmt.Sprintf("%d:%d", ti.Line, ti.Column), ti.Kind, ti.Type, ti.Raw})
			}
			r.Table(table.Row{"Pos", "Kind", "Type", "Text"}, rows)
			return nil
		},
	}
}
