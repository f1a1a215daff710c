// Package report aggregates per-file metrics and renders the scan
// summary to the log and to stdout.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/pyloc/internal/metrics"
)

// Totals aggregates the metrics of every analyzed file.
type Totals struct {
	Files          int `json:"files"           yaml:"files"`
	TotalLines     int `json:"lines"           yaml:"lines"`
	NonblankLines  int `json:"nonblank_lines"  yaml:"nonblank_lines"`
	Statements     int `json:"statements"      yaml:"statements"`
	CommentedLines int `json:"commented_lines" yaml:"commented_lines"`
}

// Report collects the per-file results of one scan.
type Report struct {
	Files  []metrics.Result `json:"files"  yaml:"files"`
	Totals Totals           `json:"totals" yaml:"totals"`
}

// Add appends one file result and folds it into the totals.
func (r *Report) Add(result metrics.Result) {
	r.Files = append(r.Files, result)
	r.Totals.Files++
	r.Totals.TotalLines += result.TotalLines
	r.Totals.NonblankLines += result.NonblankLines
	r.Totals.Statements += result.Statements
	r.Totals.CommentedLines += result.CommentedLines
}

// LogFileResult writes the per-file result line to the scan log.
func LogFileResult(logger *slog.Logger, result metrics.Result) {
	logger.Info(fmt.Sprintf(
		"Result of %s: #line=%d #nonblank-line=%d #statement=%d #commented-line=%d",
		result.Path, result.TotalLines, result.NonblankLines, result.Statements, result.CommentedLines,
	))
}

// LogTotals writes the final summary line to the scan log.
func LogTotals(logger *slog.Logger, totals Totals) {
	logger.Info(fmt.Sprintf(
		"Overall result: #file=%d #line=%d #nonblank-line=%d #statement=%d #commented-line=%d",
		totals.Files, totals.TotalLines, totals.NonblankLines, totals.Statements, totals.CommentedLines,
	))
}

// RenderText writes the per-file table and totals row as
// human-readable text.
func (r *Report) RenderText(w io.Writer, noColor bool) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"File", "Lines", "Nonblank", "Statements", "Commented"})

	for _, result := range r.Files {
		tbl.AppendRow(table.Row{
			result.Path,
			result.TotalLines,
			result.NonblankLines,
			result.Statements,
			result.CommentedLines,
		})
	}

	tbl.AppendFooter(table.Row{
		fmt.Sprintf("%d files", r.Totals.Files),
		r.Totals.TotalLines,
		r.Totals.NonblankLines,
		r.Totals.Statements,
		r.Totals.CommentedLines,
	})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("render text: %w", err)
	}

	summary := fmt.Sprintf(
		"%d files: %d lines, %d nonblank, %d statements, %d commented",
		r.Totals.Files, r.Totals.TotalLines, r.Totals.NonblankLines,
		r.Totals.Statements, r.Totals.CommentedLines,
	)

	if noColor {
		_, err = fmt.Fprintln(w, summary)
	} else {
		_, err = color.New(color.Bold, color.FgGreen).Fprintln(w, summary)
	}

	if err != nil {
		return fmt.Errorf("render text: %w", err)
	}

	return nil
}

// RenderJSON writes the report as indented JSON.
func (r *Report) RenderJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(r)
	if err != nil {
		return fmt.Errorf("render json: %w", err)
	}

	return nil
}

// RenderYAML writes the report as YAML.
func (r *Report) RenderYAML(w io.Writer) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}

	return nil
}
