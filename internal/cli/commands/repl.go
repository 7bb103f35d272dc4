package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/format"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/stat"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

const (
	replPrompt     = "sqlfront> "
	replContPrompt = "     ...> "
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive parse-and-format shell",
		Long: `Start an interactive shell. Each statement ending in ';' is parsed with the
current dialect and echoed back in canonical layout, or with a caret under
the first syntax error. Type .help for commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return runREPL(cmdCtx)
		},
	}
}

func runREPL(cmdCtx *CommandContext) error {
	sess, err := newREPLSession(cmdCtx.Dialect, cmdCtx.Renderer, cmdCtx.FormatOptions())
	if err != nil {
		return err
	}

	var history string
	if dir := filepath.Dir(cmdCtx.Cfg.Stats.StatePath); os.MkdirAll(dir, 0o750) == nil {
		history = filepath.Join(dir, "repl_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     history,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r := cmdCtx.Renderer
	r.Printf("sqlfront REPL (dialect: %s)\n", sess.dialect.Name)
	r.Println("Type .help for commands, .quit to exit")
	r.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			sess.buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if sess.handleLine(line) {
			return nil
		}
		if sess.buf.Len() > 0 {
			rl.SetPrompt(replContPrompt)
		} else {
			rl.SetPrompt(replPrompt)
		}
	}
}

type replSession struct {
	dialect  *dialect.Dialect
	renderer *output.Renderer
	opts     []format.Option
	compact  bool
	registry *stat.Registry
	buf      strings.Builder
}

func newREPLSession(d *dialect.Dialect, r *output.Renderer, opts []format.Option) (*replSession, error) {
	reg, err := stat.NewRegistry(d, 0)
	if err != nil {
		return nil, err
	}
	return &replSession{dialect: d, renderer: r, opts: opts, registry: reg}, nil
}

// handleLine processes one input line and reports whether the session ends.
func (s *replSession) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if s.buf.Len() == 0 && strings.HasPrefix(line, ".") {
		return s.dotCommand(line)
	}

	s.buf.WriteString(line)
	if !strings.HasSuffix(line, ";") {
		s.buf.WriteString("\n")
		return false
	}
	text := s.buf.String()
	s.buf.Reset()
	s.evaluate(text)
	return false
}

func (s *replSession) evaluate(text string) {
	start := time.Now()
	p := parser.NewParser(text, s.dialect)
	stmts, err := p.ParseStatements()
	elapsed := time.Since(start)
	if err != nil {
		s.registry.RecordParseFailure()
		s.renderer.Diagnostic("input", text, err)
		return
	}
	for _, stmt := range stmts {
		s.registry.RecordStmt(stmt, elapsed, nil)
	}

	opts := append(s.opts[:len(s.opts):len(s.opts)], format.WithComments(p.Comments()))
	if s.compact {
		opts = append(opts, format.Compact())
	}
	s.renderer.Printf("%s", format.Statements(stmts, s.dialect, opts...))
	for _, stmt := range stmts {
		s.renderer.Muted("-- " + core.Kind(stmt))
	}
}

func (s *replSession) dotCommand(line string) bool {
	parts := strings.Fields(line)
	r := s.renderer

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Writer())

	case ".dialect":
		if len(parts) < 2 {
			r.Printf("dialect: %s\n", s.dialect.Name)
			return false
		}
		d, err := dialect.Lookup(parts[1])
		if err != nil {
			r.Error(err.Error())
			return false
		}
		reg, err := stat.NewRegistry(d, 0)
		if err != nil {
			r.Error(err.Error())
			return false
		}
		s.dialect, s.registry = d, reg
		r.Printf("dialect: %s\n", d.Name)

	case ".dialects":
		r.Println(strings.Join(dialect.List(), " "))

	case ".compact":
		s.compact = !s.compact
		r.Printf("compact: %t\n", s.compact)

	case ".tokens":
		text := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))
		toks, err := parser.Tokenize(text, s.dialect)
		if err != nil {
			r.Diagnostic("input", text, err)
			return false
		}
		for _, tok := range toks {
			if tok.Type == token.EOF {
				break
			}
			r.Printf("%d:%d\t%s\t%s\n", tok.Pos.Line, tok.Pos.Column, tok.Kind(), tok.Raw)
		}

	case ".stats":
		sum := s.registry.Summary()
		r.Printf("%d fingerprints, %d parse failures\n", sum.Fingerprints, sum.ParseFailures)
		for _, snap := range s.registry.Snapshot() {
			r.Printf("%6d  %s  %s\n", snap.Count, snap.ID, snap.SQL)
		}

	default:
		r.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", parts[0]))
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .dialect [name]   Show or switch the dialect
  .dialects         List dialects
  .compact          Toggle one-line output
  .tokens <sql>     Show the tokens of <sql>
  .stats            Show statements seen in this session
  .quit / .exit     Exit the REPL

Statements must end with a semicolon (;) and may span lines.
`
	_, _ = fmt.Fprintln(w, help)
}

func newREPLCompleter() *readline.PrefixCompleter {
	dialects := make([]readline.PrefixCompleterInterface, 0)
	for _, name := range dialect.List() {
		dialects = append(dialects, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".dialect", dialects...),
		readline.PcItem(".dialects"),
		readline.PcItem(".compact"),
		readline.PcItem(".tokens"),
		readline.PcItem(".stats"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
