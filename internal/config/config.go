package config

import (
	"errors"
	"fmt"
	"regexp"
)

// Config is the top-level configuration struct for pyloc.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	RootDir             string       `mapstructure:"root_dir"`
	OutputFile          string       `mapstructure:"output_file"`
	ExcludeFilePatterns []string     `mapstructure:"exclude_file_patterns"`
	ExcludeNamePatterns []string     `mapstructure:"exclude_name_patterns"`
	Report              ReportConfig `mapstructure:"report"`

	filePatterns []*regexp.Regexp
	namePatterns []*regexp.Regexp
}

// ReportConfig holds the stdout report settings.
type ReportConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// Report format constants.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Sentinel errors for configuration validation.
var (
	// ErrEmptyRootDir indicates root_dir is empty.
	ErrEmptyRootDir = errors.New("root_dir must not be empty")
	// ErrEmptyOutputFile indicates output_file is empty.
	ErrEmptyOutputFile = errors.New("output_file must not be empty")
	// ErrInvalidFilePattern indicates a file exclusion regex does not compile.
	ErrInvalidFilePattern = errors.New("invalid exclude_file_patterns entry")
	// ErrInvalidNamePattern indicates a name exclusion regex does not compile.
	ErrInvalidNamePattern = errors.New("invalid exclude_name_patterns entry")
	// ErrInvalidReportFormat indicates an unsupported report format.
	ErrInvalidReportFormat = errors.New("report.format must be text, json, or yaml")
)

// Validate checks the configuration and compiles the exclusion
// patterns. Compilation happens here, once, not per file or per name.
func (c *Config) Validate() error {
	if c.RootDir == "" {
		return ErrEmptyRootDir
	}

	if c.OutputFile == "" {
		return ErrEmptyOutputFile
	}

	if c.Report.Format != FormatText && c.Report.Format != FormatJSON && c.Report.Format != FormatYAML {
		return fmt.Errorf("%w: %q", ErrInvalidReportFormat, c.Report.Format)
	}

	filePatterns, err := compilePatterns(c.ExcludeFilePatterns, ErrInvalidFilePattern)
	if err != nil {
		return err
	}

	namePatterns, err := compilePatterns(c.ExcludeNamePatterns, ErrInvalidNamePattern)
	if err != nil {
		return err
	}

	c.filePatterns = filePatterns
	c.namePatterns = namePatterns

	return nil
}

// FilePatterns returns the compiled file-path exclusion patterns, in
// configuration order. Validate must have succeeded first.
func (c *Config) FilePatterns() []*regexp.Regexp {
	return c.filePatterns
}

// NamePatterns returns the compiled definition-name exclusion patterns,
// in configuration order. Validate must have succeeded first.
func (c *Config) NamePatterns() []*regexp.Regexp {
	return c.namePatterns
}

// compilePatterns compiles the configured expressions anchored at the
// start of the input: a pattern matches a prefix unless it says
// otherwise.
func compilePatterns(raw []string, sentinel error) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(raw))

	for _, expr := range raw {
		pattern, err := regexp.Compile("^(?:" + expr + ")")
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", sentinel, expr, err)
		}

		patterns = append(patterns, pattern)
	}

	return patterns, nil
}
