package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/format"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/stat"
)

// ErrSyntax is returned when at least one input does not parse. The
// individual errors have already been reported.
var ErrSyntax = errors.New("syntax errors found")

type parsedStatement struct {
	Kind        string   `json:"kind" yaml:"kind"`
	Fingerprint stat.Key `json:"fingerprint" yaml:"fingerprint"`
	AST         any      `json:"ast" yaml:"ast"`
}

type parsedSource struct {
	File       string            `json:"file" yaml:"file"`
	Statements []parsedStatement `json:"statements" yaml:"statements"`
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse SQL and print the syntax tree",
		Long: `Parse SQL files (or stdin) with the selected dialect.

Text output lists each statement with its kind and canonical one-line form.
JSON and YAML output include the full syntax tree and fingerprint of every
statement. Directories are searched recursively for .sql files.`,
		Example: `  # Parse a file with the Oracle dialect
  sqlfront parse -d oracle queries/report.sql

  # Dump the syntax tree as YAML
  echo "SELECT a FROM t" | sqlfront parse -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args)
		},
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r, d := cmdCtx.Renderer, cmdCtx.Dialect

	sources, err := readSources(args, cmd.InOrStdin(), &cmdCtx.Cfg.Format)
	if err != nil {
		return err
	}

	var (
		results []parsedSource
		failed  int
	)
	for _, src := range sources {
		stmts, err := parser.Parse(src.Text, d)
		if err != nil {
			r.Diagnostic(src.Name, src.Text, err)
			failed++
			continue
		}
		cmdCtx.Logger.Debug("parsed", "file", src.Name, "statements", len(stmts))

		res := parsedSource{File: src.Name, Statements: make([]parsedStatement, 0, len(stmts))}
		for _, stmt := range stmts {
			res.Statements = append(res.Statements, parsedStatement{
				Kind:        core.Kind(stmt),
				Fingerprint: stat.Fingerprint(stmt, d),
				AST:         core.Dump(stmt),
			})
		}
		results = append(results, res)

		if r.EffectiveMode() != output.ModeText {
			continue
		}
		if len(sources) > 1 {
			r.Header(src.Name)
		}
		for i, stmt := range stmts {
			r.Printf("%d. %s  %s\n", i+1, r.Styles().Muted.Render(core.Kind(stmt)), format.Render(stmt, d))
		}
	}

	if ok, err := r.Structured(results); ok && err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d inputs", ErrSyntax, failed, len(sources))
	}
	return nil
}
