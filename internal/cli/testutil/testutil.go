// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	"github.com/leapstack-labs/sqlfront/internal/cli/output"
)

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// Result is the captured outcome of RunCommand.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// RunCommand executes sub under a root command carrying the global flags and
// configuration loading of the real CLI. Configuration is read relative to
// the current directory, so callers usually t.Chdir into a temp dir first.
func RunCommand(t *testing.T, sub *cobra.Command, stdin string, args ...string) Result {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	root := &cobra.Command{
		Use: "sqlfront",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig("", cmd.Flags())
			if err != nil {
				return err
			}
			cmd.SetContext(config.WithLogger(cmd.Context(), config.NewLogger(cfg, cmd.ErrOrStderr())))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("dialect", "d", config.DefaultDialect, "")
	root.PersistentFlags().StringP("output", "o", config.DefaultOutput, "")
	root.PersistentFlags().String("log-level", config.DefaultLogLevel, "")
	root.PersistentFlags().String("log-format", config.DefaultLogFormat, "")
	root.PersistentFlags().BoolP("verbose", "v", false, "")
	root.AddCommand(sub)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{sub.Name()}, args...))

	err := root.ExecuteContext(context.Background())
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}
