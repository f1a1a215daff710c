package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	// Explicit empty file so CWD/$HOME configs cannot leak in.
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultRootDir, cfg.RootDir)
	assert.Equal(t, DefaultOutputFile, cfg.OutputFile)
	assert.Empty(t, cfg.ExcludeFilePatterns)
	assert.Empty(t, cfg.ExcludeNamePatterns)
	assert.Equal(t, FormatText, cfg.Report.Format)
	assert.False(t, cfg.Report.NoColor)
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Parallel()

	content := `root_dir: /srv/code
output_file: scan.log
exclude_file_patterns:
  - ".*test.*"
  - ".*/build/.*"
exclude_name_patterns:
  - ".*[tT]est.*"
report:
  format: json
  no_color: true
`

	path := filepath.Join(t.TempDir(), "pyloc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/code", cfg.RootDir)
	assert.Equal(t, "scan.log", cfg.OutputFile)
	assert.Len(t, cfg.FilePatterns(), 2)
	assert.Len(t, cfg.NamePatterns(), 1)
	assert.Equal(t, FormatJSON, cfg.Report.Format)
	assert.True(t, cfg.Report.NoColor)
}

func TestLoadConfig_InvalidPattern(t *testing.T) {
	t.Parallel()

	content := "exclude_file_patterns:\n  - \"(\"\n"

	path := filepath.Join(t.TempDir(), "pyloc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFilePattern)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
