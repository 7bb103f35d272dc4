package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	"github.com/leapstack-labs/sqlfront/internal/server"
	"github.com/leapstack-labs/sqlfront/internal/statestore"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser and formatter over HTTP",
		Long: `Start an HTTP server with JSON endpoints to parse, format and tokenize SQL,
describe dialects and inspect statement statistics.

With --persist the statistics are written to the state database every
--flush-interval and once more on shutdown.`,
		Example: `  sqlfront serve --addr :8750
  sqlfront serve --persist --flush-interval 30s`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", config.DefaultAddr, "Address to listen on")
	cmd.Flags().Duration("flush-interval", config.DefaultFlushInterval, "How often statistics are saved with --persist")
	cmd.Flags().Bool("persist", false, "Save statistics to the state database")
	cmd.Flags().String("state", config.DefaultStatePath, "Path to the state database")
	cmd.Flags().Int("capacity", config.DefaultCapacity, "Fingerprints kept per dialect")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *statestore.SQLiteStore
	if cfg.Server.Persist {
		store, err = openStore(ctx, cfg.Stats.StatePath, cmdCtx.Logger)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	srv, err := server.NewServer(server.Config{
		Addr:           cfg.Server.Addr,
		DefaultDialect: cmdCtx.Dialect.Name,
		Capacity:       cfg.Stats.Capacity,
		Store:          store,
		FlushInterval:  cfg.Server.FlushInterval,
		Logger:         cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	cmdCtx.Renderer.Printf("listening on %s (dialect %s)\n", cfg.Server.Addr, cmdCtx.Dialect.Name)
	return srv.Serve(ctx)
}
