package commands

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
)

// stdinName names standard input in messages and diagnostics.
const stdinName = "-"

// source is one SQL input.
type source struct {
	Name string
	Text string
}

// sqlFiles expands args into the .sql files they name. Directories are
// walked recursively. Files named explicitly are kept whatever their
// extension; excluded names are dropped either way.
func sqlFiles(args []string, fc *config.FormatConfig) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] && !fc.Excluded(path) {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".sql") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// readSources reads every file named by args, or stdin when args is empty
// or just "-".
func readSources(args []string, stdin io.Reader, fc *config.FormatConfig) ([]source, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == stdinName) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []source{{Name: stdinName, Text: string(data)}}, nil
	}

	files, err := sqlFiles(args, fc)
	if err != nil {
		return nil, err
	}
	sources := make([]source, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path) //nolint:gosec // paths come from the command line
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		sources = append(sources, source{Name: path, Text: string(data)})
	}
	return sources, nil
}
