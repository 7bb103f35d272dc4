package commands

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	"github.com/leapstack-labs/sqlfront/internal/testutil"
)

func TestSQLFiles(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"b.sql":           "",
		"a.SQL":           "",
		"readme.md":       "",
		"nested/c.sql":    "",
		"nested/skip.sql": "",
		".git/d.sql":      "",
		"explicit.txt":    "",
	})
	t.Chdir(dir)

	tests := []struct {
		name    string
		args    []string
		exclude []string
		want    []string
	}{
		{
			name: "walks directories",
			args: []string{"."},
			want: []string{"a.SQL", "b.sql", "nested/c.sql", "nested/skip.sql"},
		},
		{
			name:    "exclude by base name",
			args:    []string{"."},
			exclude: []string{"skip*"},
			want:    []string{"a.SQL", "b.sql", "nested/c.sql"},
		},
		{
			name: "explicit files kept and deduplicated",
			args: []string{"explicit.txt", "b.sql", "."},
			want: []string{"a.SQL", "b.sql", "explicit.txt", "nested/c.sql", "nested/skip.sql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sqlFiles(tt.args, &config.FormatConfig{Exclude: tt.exclude})
			require.NoError(t, err)
			want := make([]string, 0, len(tt.want))
			for _, w := range tt.want {
				want = append(want, filepath.FromSlash(w))
			}
			assert.Equal(t, want, got)
		})
	}

	_, err := sqlFiles([]string{"missing.sql"}, &config.FormatConfig{})
	assert.Error(t, err)
}

func TestReadSources_Stdin(t *testing.T) {
	for _, args := range [][]string{nil, {"-"}} {
		srcs, err := readSources(args, strings.NewReader("SELECT 1"), &config.FormatConfig{})
		require.NoError(t, err)
		require.Len(t, srcs, 1)
		assert.Equal(t, source{Name: stdinName, Text: "SELECT 1"}, srcs[0])
	}
}
