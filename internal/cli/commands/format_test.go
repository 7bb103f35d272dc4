package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitest "github.com/leapstack-labs/sqlfront/internal/cli/testutil"
	"github.com/leapstack-labs/sqlfront/internal/testutil"
)

const formattedSelect = "SELECT\n  a\nFROM t;\n"

func TestFormat_Stdin(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{
			name:  "default layout",
			stdin: "select a from t",
			want:  formattedSelect,
		},
		{
			name:  "compact lower case",
			args:  []string{"--compact", "--keyword-case", "lower"},
			stdin: "SELECT a FROM t",
			want:  "select a from t;\n",
		},
		{
			name:  "dash reads stdin",
			args:  []string{"-"},
			stdin: "select a from t",
			want:  formattedSelect,
		},
		{
			name:  "oracle dialect",
			args:  []string{"-d", "oracle", "--compact"},
			stdin: "select seq.nextval from dual",
			want:  "SELECT seq.NEXTVAL FROM dual;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			res := clitest.RunCommand(t, NewFormatCommand(), tt.stdin, tt.args...)
			require.NoError(t, res.Err, res.Stderr)
			assert.Equal(t, tt.want, res.Stdout)
		})
	}
}

func TestFormat_Files(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.sql":         "select a from t",
		"sub/b.sql":     formattedSelect,
		"notes.txt":     "not sql",
		".hidden/c.sql": "select c from t",
	})
	t.Chdir(dir)

	res := clitest.RunCommand(t, NewFormatCommand(), "", "--compact", ".")
	require.NoError(t, res.Err, res.Stderr)

	assert.Contains(t, res.Stdout, "-- a.sql\nSELECT a FROM t;\n")
	assert.Contains(t, res.Stdout, "-- "+filepath.Join("sub", "b.sql")+"\nSELECT a FROM t;\n")
	assert.NotContains(t, res.Stdout, "c.sql")
	assert.NotContains(t, res.Stdout, "notes.txt")
}

func TestFormat_CheckAndWrite(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.sql": "select a from t",
		"b.sql": formattedSelect,
	})
	t.Chdir(dir)
	a := filepath.Join(dir, "a.sql")

	res := clitest.RunCommand(t, NewFormatCommand(), "", "--check", dir)
	require.ErrorIs(t, res.Err, ErrUnformatted)
	assert.Contains(t, res.Stdout, "would reformat "+a)
	assert.NotContains(t, res.Stdout, "b.sql")

	res = clitest.RunCommand(t, NewFormatCommand(), "", "--write", dir)
	require.NoError(t, res.Err, res.Stderr)
	assert.Contains(t, res.Stdout, "formatted "+a)

	data, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, formattedSelect, string(data))

	info, err := os.Stat(a)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	res = clitest.RunCommand(t, NewFormatCommand(), "", "--check", dir)
	require.NoError(t, res.Err)
	assert.Empty(t, res.Stdout)
}

func TestFormat_KeepsComments(t *testing.T) {
	t.Chdir(t.TempDir())
	res := clitest.RunCommand(t, NewFormatCommand(), "-- top\nselect a from t", "--compact")
	require.NoError(t, res.Err, res.Stderr)
	assert.Equal(t, "-- top\nSELECT a FROM t;\n", res.Stdout)
}

func TestFormat_SyntaxError(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"bad.sql":  "SELECT a FROM t WHERE",
		"good.sql": "select a from t",
	})
	t.Chdir(dir)

	res := clitest.RunCommand(t, NewFormatCommand(), "", dir)
	require.ErrorIs(t, res.Err, ErrSyntax)
	assert.Contains(t, res.Err.Error(), "1 of 2 files")
	assert.Contains(t, res.Stderr, filepath.Join(dir, "bad.sql")+":1:")
	assert.Contains(t, res.Stdout, "SELECT\n  a\nFROM t;\n")
}

func TestFormat_FlagErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "write and check",
			args:    []string{"--write", "--check", "x.sql"},
			wantErr: "mutually exclusive",
		},
		{
			name:    "write to stdin",
			args:    []string{"--write"},
			wantErr: "--write needs file arguments",
		},
		{
			name:    "bad keyword case",
			args:    []string{"--keyword-case", "title"},
			wantErr: "keyword_case",
		},
		{
			name:    "unknown dialect",
			args:    []string{"-d", "db2"},
			wantErr: "db2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			res := clitest.RunCommand(t, NewFormatCommand(), "SELECT 1", tt.args...)
			require.Error(t, res.Err)
			assert.Contains(t, res.Err.Error(), tt.wantErr)
		})
	}
}

func TestFormat_ConfigFile(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"sqlfront.yaml": "format:\n  keyword_case: lower\n  compact: true\n",
	})
	t.Chdir(dir)

	res := clitest.RunCommand(t, NewFormatCommand(), "SELECT a FROM t")
	require.NoError(t, res.Err, res.Stderr)
	assert.Equal(t, "select a from t;\n", res.Stdout)
}
