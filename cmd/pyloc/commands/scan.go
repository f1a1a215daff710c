// Package commands implements the pyloc CLI subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/pyloc/internal/config"
	"github.com/Sumatoshi-tech/pyloc/internal/logging"
	"github.com/Sumatoshi-tech/pyloc/internal/metrics"
	"github.com/Sumatoshi-tech/pyloc/internal/pysrc"
	"github.com/Sumatoshi-tech/pyloc/internal/report"
	"github.com/Sumatoshi-tech/pyloc/internal/scanner"
)

// ScanCommand holds the flags for the scan command.
type ScanCommand struct {
	configPath   string
	rootDir      string
	outputFile   string
	format       string
	excludeFiles []string
	excludeNames []string
	noColor      bool
}

// NewScanCommand creates and configures the scan command.
func NewScanCommand() *cobra.Command {
	cmd := &ScanCommand{}

	cobraCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a directory tree for Python files and report metrics",
		Long: "Scan recursively enumerates *.py files, computes per-file line and " +
			"statement metrics, writes the scan log, and prints a summary report.",
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.configPath, "config", "", "Config file path (default: .pyloc.yaml in CWD or $HOME)")
	cobraCmd.Flags().StringVarP(&cmd.rootDir, "root", "r", "", "Root directory to scan")
	cobraCmd.Flags().StringVarP(&cmd.outputFile, "output", "o", "", "Scan log file, truncated on start")
	cobraCmd.Flags().StringVarP(&cmd.format, "format", "f", "", "Report format: text, json, or yaml")
	cobraCmd.Flags().StringSliceVar(&cmd.excludeFiles, "exclude-file", nil, "Regex excluding file paths (repeatable)")
	cobraCmd.Flags().StringSliceVar(&cmd.excludeNames, "exclude-name", nil, "Regex excluding definition names from statement counts (repeatable)")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")

	return cobraCmd
}

// Run executes the scan command.
func (c *ScanCommand) Run(cmd *cobra.Command, _ []string) error {
	cfg, err := c.resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := logging.NewFileLogger(cfg.OutputFile)
	if err != nil {
		return err
	}

	defer closer.Close()

	scanReport, err := c.scan(cmd, cfg, logger)
	if err != nil {
		return err
	}

	return c.render(cfg, scanReport, cmd.OutOrStdout())
}

// resolveConfig loads the configuration and applies flag overrides.
// Overridden pattern lists are revalidated so compilation still happens
// exactly once, before the scan starts.
func (c *ScanCommand) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("root") {
		cfg.RootDir = c.rootDir
	}

	if cmd.Flags().Changed("output") {
		cfg.OutputFile = c.outputFile
	}

	if cmd.Flags().Changed("format") {
		cfg.Report.Format = c.format
	}

	if cmd.Flags().Changed("no-color") {
		cfg.Report.NoColor = c.noColor
	}

	if cmd.Flags().Changed("exclude-file") {
		cfg.ExcludeFilePatterns = c.excludeFiles
	}

	if cmd.Flags().Changed("exclude-name") {
		cfg.ExcludeNamePatterns = c.excludeNames
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return cfg, nil
}

// scan walks the tree, analyzes every included file, and aggregates the
// results. Skipped files (unreadable or syntactically invalid) are
// already logged by the analyzer and do not abort the scan.
func (c *ScanCommand) scan(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*report.Report, error) {
	walker := scanner.NewWalker(cfg.FilePatterns(), logger)

	paths, err := walker.FindPythonFiles(cfg.RootDir)
	if err != nil {
		return nil, err
	}

	parser := pysrc.NewParser()
	analyzer := metrics.NewAnalyzer(parser, cfg.NamePatterns(), logger)
	scanReport := &report.Report{}

	for _, path := range paths {
		result, analyzeErr := analyzer.AnalyzeFile(cmd.Context(), path)
		if analyzeErr != nil {
			return nil, analyzeErr
		}

		if result == nil {
			continue
		}

		report.LogFileResult(logger, *result)
		scanReport.Add(*result)
	}

	report.LogTotals(logger, scanReport.Totals)

	return scanReport, nil
}

// render writes the report to stdout in the configured format.
func (c *ScanCommand) render(cfg *config.Config, scanReport *report.Report, w io.Writer) error {
	switch cfg.Report.Format {
	case config.FormatJSON:
		return scanReport.RenderJSON(w)
	case config.FormatYAML:
		return scanReport.RenderYAML(w)
	default:
		noColor := cfg.Report.NoColor || !isTerminal(w)

		return scanReport.RenderText(w, noColor)
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	info, err := file.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}
