package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/kustosql/kustosql/pkg/frame"
)

// renderFrame writes a frame in the requested format.
func renderFrame(w io.Writer, f *frame.Frame, format string) error {
	switch format {
	case "json":
		return renderJSON(w, f)
	case "csv":
		return renderCSV(w, f)
	case "md", "markdown":
		return renderMarkdown(w, f)
	case "", "table":
		return renderTable(w, f)
	default:
		return fmt.Errorf("unknown output format %q (want table, json, csv, or md)", format)
	}
}

func renderTable(w io.Writer, f *frame.Frame) error {
	if f.NumRows() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	cols := f.Columns()
	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for i := 0; i < f.NumRows(); i++ {
		row := make(table.Row, len(cols))
		for j, v := range f.Row(i) {
			row[j] = formatValue(v)
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", f.NumRows())
	return nil
}

func renderJSON(w io.Writer, f *frame.Frame) error {
	cols := f.Columns()
	results := make([]map[string]any, 0, f.NumRows())
	for i := 0; i < f.NumRows(); i++ {
		row := make(map[string]any, len(cols))
		for j, col := range cols {
			row[col] = f.Row(i)[j]
		}
		results = append(results, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func renderCSV(w io.Writer, f *frame.Frame) error {
	cols := f.Columns()
	_, _ = fmt.Fprintln(w, strings.Join(cols, ","))

	for i := 0; i < f.NumRows(); i++ {
		values := make([]string, len(cols))
		for j, v := range f.Row(i) {
			values[j] = escapeCSV(formatValue(v))
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, f *frame.Frame) error {
	cols := f.Columns()
	_, _ = fmt.Fprintln(w, "| "+strings.Join(cols, " | ")+" |")

	sep := make([]string, len(cols))
	for i := range sep {
		sep[i] = "---"
	}
	_, _ = fmt.Fprintln(w, "| "+strings.Join(sep, " | ")+" |")

	for i := 0; i < f.NumRows(); i++ {
		values := make([]string, len(cols))
		for j, v := range f.Row(i) {
			values[j] = strings.ReplaceAll(formatValue(v), "|", "\\|")
		}
		_, _ = fmt.Fprintln(w, "| "+strings.Join(values, " | ")+" |")
	}
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
