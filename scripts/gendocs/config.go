package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Key         string
	Type        string
	Default     string
	Flag        string
	Description string
	Section     string // "general", "format", "stats", "server"
}

// getConfigSchema returns the configuration schema. Keys follow the koanf
// tags of internal/cli/config.Config.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Key: "dialect", Type: "string", Default: config.DefaultDialect, Flag: "--dialect", Description: "SQL dialect: " + strings.Join(dialect.List(), ", "), Section: "general"},
		{Key: "output", Type: "string", Default: config.DefaultOutput, Flag: "--output", Description: "Output format: auto, text, json, yaml", Section: "general"},
		{Key: "log_level", Type: "string", Default: config.DefaultLogLevel, Flag: "--log-level", Description: "Log level: debug, info, warn, error", Section: "general"},
		{Key: "log_format", Type: "string", Default: config.DefaultLogFormat, Flag: "--log-format", Description: "Log format: text or json", Section: "general"},
		{Key: "verbose", Type: "bool", Default: "false", Flag: "--verbose", Description: "Verbose output, forces debug logging", Section: "general"},

		{Key: "format.keyword_case", Type: "string", Default: config.DefaultKeywordCase, Flag: "--keyword-case", Description: "Keyword case: upper or lower", Section: "format"},
		{Key: "format.indent", Type: "int", Default: strconv.Itoa(config.DefaultIndent), Flag: "--indent", Description: "Spaces per indentation level", Section: "format"},
		{Key: "format.compact", Type: "bool", Default: "false", Flag: "--compact", Description: "Render each statement on one line", Section: "format"},
		{Key: "format.concurrency", Type: "int", Default: strconv.Itoa(config.DefaultConcurrency), Flag: "--concurrency", Description: "Files formatted in parallel", Section: "format"},
		{Key: "format.exclude", Type: "[]string", Flag: "--exclude", Description: "Base name patterns skipped when walking directories", Section: "format"},

		{Key: "stats.state_path", Type: "string", Default: config.DefaultStatePath, Flag: "--state", Description: "State database, relative to the project root", Section: "stats"},
		{Key: "stats.capacity", Type: "int", Default: strconv.Itoa(config.DefaultCapacity), Flag: "--capacity", Description: "Fingerprints kept before the least recent is evicted", Section: "stats"},
		{Key: "stats.top", Type: "int", Default: strconv.Itoa(config.DefaultTop), Flag: "--top", Description: "Fingerprints shown, 0 for all", Section: "stats"},

		{Key: "server.addr", Type: "string", Default: config.DefaultAddr, Flag: "--addr", Description: "HTTP listen address", Section: "server"},
		{Key: "server.flush_interval", Type: "duration", Default: config.DefaultFlushInterval.String(), Flag: "--flush-interval", Description: "How often statistics are saved", Section: "server"},
		{Key: "server.persist", Type: "bool", Default: "false", Flag: "--persist", Description: "Save statistics to the state database", Section: "server"},
	}
}

// envName returns the environment variable that sets key.
func envName(key string) string {
	return "SQLFRONT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "__"))
}

// generateConfigDocs writes the configuration reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "Configuration file, environment and flag reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("sqlfront reads `sqlfront.yaml` (or `sqlfront.yml`) from the working directory or the nearest parent directory. Values are overridden by `SQLFRONT_*` environment variables, which are overridden by flags.")

	fields := getConfigSchema()
	for _, section := range []string{"general", "format", "stats", "server"} {
		w.Header(2, capitalize(section))
		var rows [][]string
		for _, f := range fields {
			if f.Section != section {
				continue
			}
			def := f.Default
			if def != "" {
				def = InlineCode(def)
			}
			rows = append(rows, []string{InlineCode(f.Key), f.Type, def, InlineCode(f.Flag), InlineCode(envName(f.Key)), f.Description})
		}
		w.Table([]string{"Key", "Type", "Default", "Flag", "Environment", "Description"}, rows)
	}

	w.Header(2, "Example")
	w.CodeBlock("yaml", `dialect: oracle
format:
  keyword_case: upper
  indent: 4
  exclude: ["*_generated.sql"]
stats:
  state_path: .sqlfront/stats.db
server:
  addr: ":8750"
  flush_interval: 30s
  persist: true`)

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
