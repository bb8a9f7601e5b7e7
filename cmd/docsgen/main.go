package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/appengine-ltd/electron-towers/internal/element"
	"github.com/appengine-ltd/electron-towers/internal/orbital"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

func main() {
	root := filepath.Join("docs", "reference")
	if err := os.MkdirAll(root, 0o755); err != nil {
		fatal(errors.Wrapf(err, "create %s", root))
	}

	tbl := orbital.Default()
	files := []docFile{
		generateFillOrderDoc(tbl),
		generateExceptionsDoc(tbl),
		generateConfigurationsDoc(tbl),
	}
	for _, f := range files {
		if err := writeDoc(root, f.Name, f.Content); err != nil {
			fatal(err)
		}
	}
	if err := writeDoc(root, "README.md", generateIndex(files)); err != nil {
		fatal(err)
	}
}

func writeDoc(root, name, content string) error {
	path := filepath.Join(root, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func generateIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Reference\n\n")
	b.WriteString("Generated from the current Go source using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

func generateFillOrderDoc(tbl *orbital.Table) docFile {
	var b strings.Builder
	b.WriteString("# Fill Order\n\n")
	b.WriteString("Source: `internal/orbital/defaults.go` (`DefaultFillOrder`).\n\n")
	b.WriteString(fmt.Sprintf("Total capacity: **%d** electrons.\n\n", tbl.Capacity()))
	b.WriteString("| # | Subshell | n | l | Orbitals | Capacity | Removal rank |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
	for i, s := range tbl.Order() {
		b.WriteString(fmt.Sprintf("| %d | %s | %d | %d | %d | %d | %d |\n", i+1, s, s.N, s.L(), s.Orbitals(), s.Capacity(), s.Rank()))
	}
	return docFile{Name: "fill-order.md", Title: "Fill Order", Content: b.String()}
}

func generateExceptionsDoc(tbl *orbital.Table) docFile {
	var b strings.Builder
	b.WriteString("# Exceptions\n\n")
	b.WriteString("Source: `internal/orbital/defaults.go` (`DefaultExceptions`).\n\n")
	b.WriteString("Applied to neutral atoms only, and only when exceptions are enabled.\n\n")
	b.WriteString("| Z | Element | From | To | From keeps | To reaches | Plain | Adjusted |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, z := range tbl.Exceptions() {
		rule, _ := tbl.Exception(z)
		plain := tbl.ComputeTarget(orbital.Target{Z: z})
		adjusted := tbl.ComputeTarget(orbital.Target{Z: z, Exceptions: true})
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %d | %d | %s | %s |\n",
			z, escape(elementName(z)), rule.S, rule.D, rule.SFinal, rule.DTarget,
			escape(tail(tbl, plain.Counts, rule)), escape(tail(tbl, adjusted.Counts, rule))))
	}
	return docFile{Name: "exceptions.md", Title: "Exceptions", Content: b.String()}
}

func generateConfigurationsDoc(tbl *orbital.Table) docFile {
	var b strings.Builder
	b.WriteString("# Ground-State Configurations\n\n")
	b.WriteString("Source: `internal/element/catalog.go` (`Catalog`) and `internal/orbital` (`ComputeTarget`).\n\n")
	b.WriteString(fmt.Sprintf("Total elements: **%d**.\n\n", len(element.Catalog())))
	b.WriteString("| Z | Symbol | Name | Configuration | Exception |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, e := range element.Catalog() {
		plain := tbl.ComputeTarget(orbital.Target{Z: e.Z})
		adjusted := tbl.ComputeTarget(orbital.Target{Z: e.Z, Exceptions: true})
		exception := ""
		if adjusted.Exception != nil {
			exception = tbl.Notation(adjusted.Counts)
		}
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			e.Z, escape(e.Symbol), escape(e.Name), escape(tbl.Notation(plain.Counts)), escape(exception)))
	}
	return docFile{Name: "configurations.md", Title: "Ground-State Configurations", Content: b.String()}
}

// tail renders just the two subshells a rule touches.
func tail(tbl *orbital.Table, c orbital.Counts, rule orbital.ExceptionRule) string {
	first, second := rule.S, rule.D
	if tbl.Position(second) < tbl.Position(first) {
		first, second = second, first
	}
	return fmt.Sprintf("%s%d %s%d", first, c[first], second, c[second])
}

func elementName(z int) string {
	if e, ok := element.ByNumber(z); ok {
		return e.Name
	}
	return ""
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
