// Package commands implements the sqlfront subcommands.
package commands

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/format"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Dialect  *dialect.Dialect
}

// NewCommandContext resolves the configured dialect and builds the renderer.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.GetCurrentConfig()
	d, err := dialect.Lookup(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
		Dialect:  d,
	}, nil
}

// FormatOptions converts the format settings into renderer options.
func (c *CommandContext) FormatOptions() []format.Option {
	fc := c.Cfg.Format
	opts := []format.Option{format.WithIndent(fc.Indent)}
	if strings.EqualFold(fc.KeywordCase, "lower") {
		opts = append(opts, format.WithKeywordCase(format.Lower))
	}
	if fc.Compact {
		opts = append(opts, format.Compact())
	}
	return opts
}
