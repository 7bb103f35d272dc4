package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects [name]",
		Short: "List the supported SQL dialects",
		Long: `List every registered dialect with its identifier quotes, clause order and
grammar extensions. With a name, show that dialect in detail including its
reserved words.`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return dialect.List(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			r := cmdCtx.Renderer

			if len(args) == 1 {
				d, err := dialect.Lookup(args[0])
				if err != nil {
					return err
				}
				return showDialect(cmdCtx, d)
			}

			names := dialect.List()
			infos := make([]dialect.Info, 0, len(names))
			for _, name := range names {
				infos = append(infos, dialect.Describe(dialect.MustGet(name)))
			}
			if ok, err := r.Structured(infos); ok {
				return err
			}

			rows := make([]table.Row, 0, len(infos))
			for _, info := range infos {
				ext := strings.Join(info.Extensions, ", ")
				if ext == "" {
					ext = "-"
				}
				rows = append(rows, table.Row{info.Name, info.Quote, len(info.Clauses), info.ReservedWords, ext})
			}
			r.Table(table.Row{"Name", "Quote", "Clauses", "Reserved", "Extensions"}, rows)
			return nil
		},
	}
}

type dialectDetail struct {
	dialect.Info `yaml:",inline"`
	Reserved     []string `json:"reserved" yaml:"reserved"`
	Keywords     []string `json:"keywords" yaml:"keywords"`
}

func showDialect(cmdCtx *CommandContext, d *dialect.Dialect) error {
	r := cmdCtx.Renderer
	detail := dialectDetail{
		Info:     dialect.Describe(d),
		Reserved: d.ReservedWords(),
		Keywords: d.Keywords(),
	}
	if ok, err := r.Structured(detail); ok {
		return err
	}

	r.Header(d.Name)
	r.Printf("quote:      %s\n", detail.Quote)
	r.Printf("clauses:    %s\n", strings.Join(detail.Clauses, " > "))
	if len(detail.Extensions) > 0 {
		r.Printf("extensions: %s\n", strings.Join(detail.Extensions, ", "))
	}
	if len(detail.Keywords) > 0 {
		r.Printf("keywords:   %s\n", strings.Join(detail.Keywords, " "))
	}
	r.Printf("reserved:   %s\n", strings.Join(detail.Reserved, " "))
	return nil
}
