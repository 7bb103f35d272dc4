package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/format"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
)

// ErrUnformatted is returned by format --check when a file would change.
var ErrUnformatted = errors.New("files would be reformatted")

// watchDebounce groups bursts of file events into one pass.
const watchDebounce = 100 * time.Millisecond

// FormatOptions holds options for the format command.
type FormatOptions struct {
	Write bool // rewrite files in place
	Check bool // only report files that would change
	Watch bool // keep running and reformat files as they change
}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	opts := &FormatOptions{}
	cmd := &cobra.Command{
		Use:   "format [files...]",
		Short: "Rewrite SQL in canonical layout",
		Long: `Format SQL files (or stdin) with the selected dialect.

Without --write the formatted text is printed. Comments are kept; comments
inside a statement move in front of it. Files are formatted concurrently.`,
		Example: `  # Print a formatted file
  sqlfront format query.sql

  # Rewrite every .sql file under queries/
  sqlfront format --write queries/

  # Fail in CI when files are not formatted
  sqlfront format --check queries/

  # Reformat files as they are saved
  sqlfront format --write --watch queries/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write result to the source files")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Exit with an error if any file is not formatted")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Watch files and reformat on change (implies --write)")
	cmd.Flags().Bool("compact", false, "Render each statement on one line")
	cmd.Flags().String("keyword-case", config.DefaultKeywordCase, "Keyword case: upper or lower")
	cmd.Flags().Int("indent", config.DefaultIndent, "Spaces per indentation level")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency, "Files formatted in parallel")
	cmd.Flags().StringSlice("exclude", nil, "Base name patterns to skip")

	_ = cmd.RegisterFlagCompletionFunc("keyword-case", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"upper", "lower"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, opts *FormatOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if opts.Watch {
		opts.Write = true
	}
	if opts.Write && opts.Check {
		return errors.New("--write and --check are mutually exclusive")
	}

	f := &formatter{
		dialect:     cmdCtx.Dialect,
		opts:        cmdCtx.FormatOptions(),
		write:       opts.Write,
		check:       opts.Check,
		concurrency: cmdCtx.Cfg.Format.Concurrency,
		renderer:    cmdCtx.Renderer,
		logger:      cmdCtx.Logger,
	}

	if len(args) == 0 || (len(args) == 1 && args[0] == stdinName) {
		if opts.Write {
			return errors.New("--write needs file arguments")
		}
		return f.formatStdin(cmd)
	}

	files, err := sqlFiles(args, &cmdCtx.Cfg.Format)
	if err != nil {
		return err
	}
	if err := f.run(cmd.Context(), files); err != nil && !opts.Watch {
		return err
	}
	if !opts.Watch {
		return nil
	}

	cmdCtx.Renderer.Muted("watching for changes, press Ctrl+C to stop")
	return f.watch(cmd.Context(), args, &cmdCtx.Cfg.Format)
}

type formatter struct {
	dialect     *dialect.Dialect
	opts        []format.Option
	write       bool
	check       bool
	concurrency int
	renderer    *output.Renderer
	logger      *slog.Logger
}

type formatResult struct {
	src       source
	formatted string
	err       error
}

func (r formatResult) changed() bool {
	return r.err == nil && r.formatted != r.src.Text
}

// formatSQL parses text and renders it back, keeping comments.
func formatSQL(text string, d *dialect.Dialect, opts []format.Option) (string, error) {
	p := parser.NewParser(text, d)
	stmts, err := p.ParseStatements()
	if err != nil {
		return "", err
	}
	opts = append(opts[:len(opts):len(opts)], format.WithComments(p.Comments()))
	return format.Statements(stmts, d, opts...), nil
}

func (f *formatter) formatStdin(cmd *cobra.Command) error {
	srcs, err := readSources(nil, cmd.InOrStdin(), &config.FormatConfig{})
	if err != nil {
		return err
	}
	src := srcs[0]
	out, err := formatSQL(src.Text, f.dialect, f.opts)
	if err != nil {
		f.renderer.Diagnostic(src.Name, src.Text, err)
		return ErrSyntax
	}
	if f.check {
		if out != src.Text {
			return fmt.Errorf("%w: %s", ErrUnformatted, stdinName)
		}
		return nil
	}
	f.renderer.Printf("%s", out)
	return nil
}

// run formats files concurrently and reports the results in file order.
func (f *formatter) run(ctx context.Context, files []string) error {
	results := make([]formatResult, len(files))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(f.concurrency, 1))
	for i, path := range files {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path) //nolint:gosec // paths come from the command line
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			res := formatResult{src: source{Name: path, Text: string(data)}}
			res.formatted, res.err = formatSQL(res.src.Text, f.dialect, f.opts)
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var failed, changed int
	for _, res := range results {
		switch {
		case res.err != nil:
			f.renderer.Diagnostic(res.src.Name, res.src.Text, res.err)
			failed++
		case f.check:
			if res.changed() {
				f.renderer.Println("would reformat " + res.src.Name)
				changed++
			}
		case f.write:
			if !res.changed() {
				continue
			}
			if err := writeFilePreservingMode(res.src.Name, res.formatted); err != nil {
				return err
			}
			f.logger.Debug("formatted file", "file", res.src.Name)
			f.renderer.Success("formatted " + res.src.Name)
			changed++
		default:
			if len(results) > 1 {
				f.renderer.Printf("-- %s\n", res.src.Name)
			}
			f.renderer.Printf("%s", res.formatted)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrSyntax, failed, len(files))
	}
	if f.check && changed > 0 {
		return fmt.Errorf("%d %w", changed, ErrUnformatted)
	}
	return nil
}

func writeFilePreservingMode(path, content string) error {
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// watch reformats .sql files under args whenever they are written.
func (f *formatter) watch(ctx context.Context, args []string, fc *config.FormatConfig) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	explicit := make(map[string]bool)
	var roots []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := watchDirRecursive(watcher, arg); err != nil {
				return fmt.Errorf("watch %s: %w", arg, err)
			}
			roots = append(roots, filepath.Clean(arg))
			continue
		}
		explicit[filepath.Clean(arg)] = true
		if err := watcher.Add(filepath.Dir(arg)); err != nil {
			return fmt.Errorf("watch %s: %w", arg, err)
		}
	}

	accept := func(name string) bool {
		name = filepath.Clean(name)
		if fc.Excluded(name) {
			return false
		}
		if explicit[name] {
			return true
		}
		if !strings.EqualFold(filepath.Ext(name), ".sql") {
			return false
		}
		for _, root := range roots {
			if strings.HasPrefix(name, root+string(filepath.Separator)) {
				return true
			}
		}
		return false
	}

	pending := make(map[string]bool)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !accept(event.Name) {
				continue
			}
			pending[filepath.Clean(event.Name)] = true
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			files := make([]string, 0, len(pending))
			for name := range pending {
				files = append(files, name)
			}
			clear(pending)
			sort.Strings(files)

			f.logger.Debug("files changed", "files", files)
			if err := f.run(ctx, files); err != nil {
				f.logger.Warn("format failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
