package scanner

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/pyloc/internal/logging"
)

func makeTree(t *testing.T) string {
	t.Helper()

	// os.MkdirTemp rather than t.TempDir: the latter embeds the test's
	// name ("Test...") in the path, which the exclusion patterns under
	// test would match since the scanner matches against full paths.
	root, err := os.MkdirTemp("", "pyloc-scanner")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(root) })

	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg", "tests"), 0o750))

	files := []string{
		"main.py",
		filepath.Join("pkg", "util.py"),
		filepath.Join("pkg", "tests", "test_util.py"),
		"README.md",
	}
	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x = 1\n"), 0o600))
	}

	return root
}

func TestFindPythonFiles_IncludesOnlyPython(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	root := makeTree(t)
	walker := NewWalker(nil, logging.NewWriterLogger(&buf))

	paths, err := walker.FindPythonFiles(root)
	require.NoError(t, err)

	assert.Len(t, paths, 3)

	for _, path := range paths {
		assert.Contains(t, buf.String(), "Include "+path)
	}
}

func TestFindPythonFiles_ExclusionPatterns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	root := makeTree(t)
	excludes := []*regexp.Regexp{regexp.MustCompile(".*[tT]est.*")}
	walker := NewWalker(excludes, logging.NewWriterLogger(&buf))

	paths, err := walker.FindPythonFiles(root)
	require.NoError(t, err)

	assert.Len(t, paths, 2)

	for _, path := range paths {
		assert.NotContains(t, path, "test_util.py")
	}

	assert.Contains(t, buf.String(), "Exclude ")
	assert.Contains(t, buf.String(), "by pattern ")
}

func TestFindPythonFiles_MissingRoot(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	walker := NewWalker(nil, logging.NewWriterLogger(&buf))

	paths, err := walker.FindPythonFiles(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)

	assert.Empty(t, paths)
	assert.Contains(t, buf.String(), "does not exist")
}

func TestFindPythonFiles_FirstPatternWins(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	root := makeTree(t)
	excludes := []*regexp.Regexp{
		regexp.MustCompile(".*util.*"),
		regexp.MustCompile(".*\\.py"),
	}
	walker := NewWalker(excludes, logging.NewWriterLogger(&buf))

	paths, err := walker.FindPythonFiles(root)
	require.NoError(t, err)
	assert.Empty(t, paths)

	// util.py must have been excluded by the first matching pattern.
	assert.Contains(t, buf.String(), "by pattern .*util.*")
}
