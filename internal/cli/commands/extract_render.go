package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// extractResult holds the tables extracted from one input.
type extractResult struct {
	File   string   `json:"file,omitempty"`
	Tables []string `json:"tables"`
	Count  int      `json:"count"`
}

func newExtractResult(file string, tables []string) extractResult {
	if tables == nil {
		tables = []string{}
	}
	return extractResult{File: file, Tables: tables, Count: len(tables)}
}

func renderExtract(w io.Writer, results []extractResult, format string) error {
	switch format {
	case "json":
		return renderExtractJSON(w, results)
	case "csv":
		return renderExtractCSV(w, results)
	case "table":
		return renderExtractTable(w, results)
	default:
		return renderExtractText(w, results)
	}
}

// renderExtractText prints one table name per line. Multiple inputs get a
// header line per file so the sections stay attributable.
func renderExtractText(w io.Writer, results []extractResult) error {
	if len(results) == 1 {
		for _, name := range results[0].Tables {
			_, _ = fmt.Fprintln(w, name)
		}
		return nil
	}
	for i, res := range results {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "%s:\n", res.File)
		for _, name := range res.Tables {
			_, _ = fmt.Fprintf(w, "  %s\n", name)
		}
	}
	return nil
}

func renderExtractJSON(w io.Writer, results []extractResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}

func renderExtractCSV(w io.Writer, results []extractResult) error {
	if len(results) == 1 {
		_, _ = fmt.Fprintln(w, "table")
		for _, name := range results[0].Tables {
			_, _ = fmt.Fprintln(w, escapeCSV(name))
		}
		return nil
	}
	_, _ = fmt.Fprintln(w, "file,table")
	for _, res := range results {
		for _, name := range res.Tables {
			_, _ = fmt.Fprintf(w, "%s,%s\n", escapeCSV(res.File), escapeCSV(name))
		}
	}
	return nil
}

func renderExtractTable(w io.Writer, results []extractResult) error {
	total := 0
	for _, res := range results {
		total += len(res.Tables)
	}
	if total == 0 {
		_, _ = fmt.Fprintln(w, "(0 tables)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	multi := len(results) > 1
	if multi {
		t.AppendHeader(table.Row{"File", "Table"})
	} else {
		t.AppendHeader(table.Row{"Table"})
	}

	for _, res := range results {
		for _, name := range res.Tables {
			if multi {
				t.AppendRow(table.Row{res.File, name})
			} else {
				t.AppendRow(table.Row{name})
			}
		}
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d tables)\n", total)
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
