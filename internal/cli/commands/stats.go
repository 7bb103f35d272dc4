package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	"github.com/leapstack-labs/sqlfront/internal/statestore"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/stat"
)

// StatsOptions holds options for the stats command.
type StatsOptions struct {
	Save    bool
	History bool
	Runs    int
}

type statsResult struct {
	Dialect      string          `json:"dialect" yaml:"dialect"`
	Summary      stat.Summary    `json:"summary" yaml:"summary"`
	Fingerprints []stat.Snapshot `json:"fingerprints" yaml:"fingerprints"`
	RunID        string          `json:"run_id,omitempty" yaml:"run_id,omitempty"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	opts := &StatsOptions{}
	cmd := &cobra.Command{
		Use:   "stats [files...]",
		Short: "Group statements by fingerprint",
		Long: `Parse SQL files (or stdin) and group the statements by fingerprint: the
statement with every literal replaced by a placeholder. The most frequent
fingerprints are printed first.

With --save the counts are stored as a run in the state database. --history
shows totals over every saved run and --runs lists recent runs.`,
		Example: `  # Most common statement shapes in a query log
  sqlfront stats --top 10 queries/

  # Keep the counts for later
  sqlfront stats --save queries/

  # Totals across saved runs
  sqlfront stats --history`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Save, "save", false, "Save the counts as a run in the state database")
	cmd.Flags().BoolVar(&opts.History, "history", false, "Show totals over every saved run")
	cmd.Flags().IntVar(&opts.Runs, "runs", 0, "List the N most recent saved runs")
	cmd.Flags().String("state", config.DefaultStatePath, "Path to the state database")
	cmd.Flags().Int("capacity", config.DefaultCapacity, "Fingerprints kept before the least recent is evicted")
	cmd.Flags().Int("top", config.DefaultTop, "Fingerprints to show (0 for all)")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, opts *StatsOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if opts.History || opts.Runs > 0 {
		store, err := openStore(ctx, cmdCtx.Cfg.Stats.StatePath, cmdCtx.Logger)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		if opts.Runs > 0 {
			return showRuns(ctx, cmdCtx, store, opts.Runs)
		}
		return showHistory(ctx, cmdCtx, store)
	}

	reg, err := collectStats(cmdCtx, args, cmd)
	if err != nil {
		return err
	}

	res := statsResult{
		Dialect:      cmdCtx.Dialect.Name,
		Summary:      reg.Summary(),
		Fingerprints: topSnapshots(reg.Snapshot(), cmdCtx.Cfg.Stats.Top),
	}

	if opts.Save {
		store, err := openStore(ctx, cmdCtx.Cfg.Stats.StatePath, cmdCtx.Logger)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		source := stdinName
		if len(args) > 0 {
			source = strings.Join(args, " ")
		}
		run, err := store.CreateRun(ctx, source, cmdCtx.Dialect.Name)
		if err != nil {
			return err
		}
		if err := store.SaveSnapshots(ctx, run.ID, reg.Snapshot()); err != nil {
			return err
		}
		res.RunID = run.ID
		cmdCtx.Logger.Info("saved run", slog.String("run_id", run.ID), slog.Int("fingerprints", res.Summary.Fingerprints))
	}

	r := cmdCtx.Renderer
	if ok, err := r.Structured(res); ok {
		return err
	}

	r.Printf("%d fingerprints, %d parse failures, %d evicted\n",
		res.Summary.Fingerprints, res.Summary.ParseFailures, res.Summary.Evictions)
	if len(res.Fingerprints) > 0 {
		rows := make([]table.Row, 0, len(res.Fingerprints))
		for _, snap := range res.Fingerprints {
			rows = append(rows, table.Row{snap.Count, snap.Kind, snap.ID, truncate(snap.SQL, 60)})
		}
		r.Table(table.Row{"Count", "Kind", "Fingerprint", "SQL"}, rows)
	}
	if res.RunID != "" {
		r.Success("saved run " + res.RunID)
	}
	return nil
}

// collectStats records every statement of the inputs. Inputs that fail to
// parse are reported and counted, not fatal.
func collectStats(cmdCtx *CommandContext, args []string, cmd *cobra.Command) (*stat.Registry, error) {
	reg, err := stat.NewRegistry(cmdCtx.Dialect, cmdCtx.Cfg.Stats.Capacity)
	if err != nil {
		return nil, err
	}
	sources, err := readSources(args, cmd.InOrStdin(), &cmdCtx.Cfg.Format)
	if err != nil {
		return nil, err
	}

	for _, src := range sources {
		start := time.Now()
		stmts, err := parser.Parse(src.Text, cmdCtx.Dialect)
		elapsed := time.Since(start)
		if err != nil {
			reg.RecordParseFailure()
			cmdCtx.Renderer.Diagnostic(src.Name, src.Text, err)
			continue
		}
		for _, stmt := range stmts {
			reg.RecordStmt(stmt, elapsed/time.Duration(len(stmts)), nil)
		}
	}
	return reg, nil
}

func topSnapshots(snaps []stat.Snapshot, top int) []stat.Snapshot {
	if top > 0 && len(snaps) > top {
		return snaps[:top]
	}
	return snaps
}

func showHistory(ctx context.Context, cmdCtx *CommandContext, store *statestore.SQLiteStore) error {
	limit := cmdCtx.Cfg.Stats.Top
	if limit == 0 {
		limit = -1 // no limit in SQLite
	}
	totals, err := store.TopFingerprints(ctx, limit)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	if ok, err := r.Structured(totals); ok {
		return err
	}
	if len(totals) == 0 {
		r.Muted("no saved runs")
		return nil
	}
	rows := make([]table.Row, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, table.Row{t.Count, t.Runs, t.Kind, t.ID, truncate(t.SQL, 60)})
	}
	r.Table(table.Row{"Count", "Runs", "Kind", "Fingerprint", "SQL"}, rows)
	return nil
}

func showRuns(ctx context.Context, cmdCtx *CommandContext, store *statestore.SQLiteStore, limit int) error {
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	if ok, err := r.Structured(runs); ok {
		return err
	}
	if len(runs) == 0 {
		r.Muted("no saved runs")
		return nil
	}
	rows := make([]table.Row, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, table.Row{run.ID, run.CreatedAt.Local().Format(time.DateTime), run.Dialect, run.Fingerprints, run.Source})
	}
	r.Table(table.Row{"Run", "Created", "Dialect", "Fingerprints", "Source"}, rows)
	return nil
}

// openStore opens and migrates the state database, creating its directory.
func openStore(ctx context.Context, path string, logger *slog.Logger) (*statestore.SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	store := statestore.NewSQLiteStore(logger)
	if err := store.Open(ctx, path); err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
