// Package metrics combines the statement and line analyzers into
// per-file size and density metrics.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/Sumatoshi-tech/pyloc/internal/analyzers/lines"
	"github.com/Sumatoshi-tech/pyloc/internal/analyzers/statements"
	"github.com/Sumatoshi-tech/pyloc/internal/pysrc"
)

// Result holds the metrics of one analyzed file. A Result is always
// fully populated; files that cannot be analyzed yield no Result at all.
type Result struct {
	Path           string `json:"path"            yaml:"path"`
	TotalLines     int    `json:"lines"           yaml:"lines"`
	NonblankLines  int    `json:"nonblank_lines"  yaml:"nonblank_lines"`
	Statements     int    `json:"statements"      yaml:"statements"`
	CommentedLines int    `json:"commented_lines" yaml:"commented_lines"`
}

// Analyzer produces per-file Results. Unreadable or unparsable files
// are reported to the logger and skipped; the caller sees a nil Result
// and continues with the next file.
type Analyzer struct {
	statements   *statements.Counter
	lines        *lines.Classifier
	excludeNames []*regexp.Regexp
	logger       *slog.Logger
}

// NewAnalyzer creates an Analyzer. excludeNames are the compiled
// patterns for definition names whose bodies are excluded from the
// statement count; logger receives the advisory skip diagnostics.
func NewAnalyzer(parser *pysrc.Parser, excludeNames []*regexp.Regexp, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		statements:   statements.NewCounter(parser),
		lines:        lines.NewClassifier(parser),
		excludeNames: excludeNames,
		logger:       logger,
	}
}

// AnalyzeFile reads and analyzes one file. I/O failures and syntax
// errors are advisory: they are logged and produce a (nil, nil) return
// so the surrounding scan continues. Any other error is propagated.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		a.logger.Info(fmt.Sprintf("Failed to open: %s", path))

		return nil, nil //nolint:nilnil // absent result, scan continues
	}

	statementCount, err := a.statements.Count(ctx, source, a.excludeNames)
	if err != nil {
		return nil, a.skipOnSyntaxError(err, path)
	}

	lineCounts, err := a.lines.Count(ctx, source)
	if err != nil {
		return nil, a.skipOnSyntaxError(err, path)
	}

	return &Result{
		Path:           path,
		TotalLines:     lineCounts.Total,
		NonblankLines:  lineCounts.Nonblank,
		Statements:     statementCount,
		CommentedLines: lineCounts.Commented,
	}, nil
}

// skipOnSyntaxError converts a syntax failure into an advisory log
// entry and a nil error; anything else passes through unchanged.
func (a *Analyzer) skipOnSyntaxError(err error, path string) error {
	if errors.Is(err, pysrc.ErrSyntax) {
		a.logger.Info(fmt.Sprintf("File has syntax error: %s", path))

		return nil
	}

	return err
}
