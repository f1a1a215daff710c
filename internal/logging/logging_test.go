package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineFormat is the `timestamp | message` shape every record must have.
var lineFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} \| `)

func TestPipeHandler_LineFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := NewWriterLogger(&buf)
	logger.Info("hello scan")

	line := buf.String()
	assert.Regexp(t, lineFormat, line)
	assert.Contains(t, line, "| hello scan\n")
}

func TestPipeHandler_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := NewWriterLogger(&buf)
	logger.Debug("invisible")

	assert.Empty(t, buf.String())
}

func TestPipeHandler_Attrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := NewWriterLogger(&buf)
	logger.Info("scanned", slog.Int("files", 3))

	assert.Contains(t, buf.String(), "scanned files=3")
}

func TestPipeHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := NewWriterLogger(&buf).With("run", "alpha")
	logger.Info("done")

	assert.Contains(t, buf.String(), "done run=alpha")
}

func TestNewFileLogger_TruncatesOnStart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scan.log")
	require.NoError(t, os.WriteFile(path, []byte("stale content\n"), 0o600))

	logger, closer, err := NewFileLogger(path)
	require.NoError(t, err)

	logger.Info("fresh")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.NotContains(t, string(content), "stale content")
	assert.Contains(t, string(content), "fresh")
}
