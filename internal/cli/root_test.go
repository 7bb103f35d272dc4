package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	"github.com/leapstack-labs/sqlfront/internal/testutil"
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/all"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	cfgFile = ""

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCmd()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"parse", "format", "tokens", "dialects", "stats", "repl", "serve", "version", "completion"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "dialect", "output", "log-level", "log-format", "verbose"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCommand_FormatStdin(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := execute(t, "select a from t", "format", "--compact")
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t;\n", out)
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"conf/custom.yaml": "dialect: mysql\nformat:\n  compact: true\n",
	})
	t.Chdir(dir)

	out, errOut, err := execute(t, "SELECT a FROM t LIMIT 5, 10", "--config", "conf/custom.yaml", "-v", "format")
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t LIMIT 10 OFFSET 5;\n", out)
	assert.Contains(t, errOut, "Using config file: conf/custom.yaml")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "", "--output", "xml", "dialects")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
}

func TestRootCommand_Version(t *testing.T) {
	out, _, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlfront "+Version)
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := execute(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlfront")

	_, _, err = execute(t, "", "completion", "tcsh")
	assert.Error(t, err)
}
