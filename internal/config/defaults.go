package config

// Default values applied when the config file and environment leave a
// key unset.
const (
	// DefaultRootDir is the directory scanned for Python files.
	DefaultRootDir = "."

	// DefaultOutputFile is the scan log path, truncated on every run.
	DefaultOutputFile = "count_lines.log"

	// DefaultReportFormat is the stdout report format.
	DefaultReportFormat = FormatText

	// DefaultReportNoColor disables color in the stdout report.
	DefaultReportNoColor = false
)
