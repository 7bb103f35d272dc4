package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

// generateDialectDocs writes an index of every registered dialect and one
// page per dialect.
func generateDialectDocs(outDir string) error {
	log.Printf("Generating dialect docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	names := dialect.List()

	w := NewMarkdownWriter()
	w.Frontmatter("Dialects", "SQL dialects understood by sqlfront")
	w.GeneratedMarker()
	w.Header(1, "Dialects")
	w.Paragraph("Select a dialect with `--dialect` or the `dialect` configuration key.")

	var rows [][]string
	for _, name := range names {
		info := dialect.Describe(dialect.MustGet(name))
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/dialects/%s)", InlineCode(name), name),
			InlineCode(info.Quote),
			strconv.Itoa(info.ReservedWords),
			strings.Join(info.Extensions, ", "),
		})
	}
	w.Table([]string{"Dialect", "Quote", "Reserved words", "Extensions"}, rows)

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, name := range names {
		if err := generateDialectPage(dialect.MustGet(name), outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", name, err)
		}
		log.Printf("  Generated %s.md", name)
	}
	return nil
}

func generateDialectPage(d *dialect.Dialect, outDir string) error {
	info := dialect.Describe(d)

	w := NewMarkdownWriter()
	w.Frontmatter(d.Name, "The "+d.Name+" dialect")
	w.GeneratedMarker()
	w.Header(1, d.Name)

	w.Header(2, "Identifiers")
	w.Paragraph("Quoted with " + InlineCode(info.Quote) + ". Reserved words used as identifiers are quoted when rendered.")

	w.Header(2, "Clauses")
	w.Paragraph("SELECT clauses in parse order:")
	clauses := make([]string, 0, len(info.Clauses))
	for _, c := range info.Clauses {
		clauses = append(clauses, InlineCode(c))
	}
	w.BulletList(clauses)

	if len(info.Extensions) > 0 {
		w.Header(2, "Extensions")
		exts := make([]string, 0, len(info.Extensions))
		for _, e := range info.Extensions {
			exts = append(exts, InlineCode(e))
		}
		w.BulletList(exts)
	}

	if kw := d.Keywords(); len(kw) > 0 {
		w.Header(2, "Keywords")
		w.Paragraph(strings.Join(kw, " "))
	}

	w.Header(2, "Reserved Words")
	w.CodeBlock("text", strings.Join(d.ReservedWords(), " "))

	return os.WriteFile(filepath.Join(outDir, d.Name+".md"), w.Bytes(), 0600)
}
