package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/pyloc/internal/report"
)

func writeTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"app.py":        "def f():\n    x = 1\n    return x\n",
		"test_app.py":   "def test_f():\n    assert True\n",
		"broken.py":     "def f(:\n",
		"notes.txt":     "not python\n",
		"docs/guide.py": "y = 2\n",
	}

	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	return root
}

func runScan(t *testing.T, args ...string) (string, string) {
	t.Helper()

	root := writeTree(t)
	logPath := filepath.Join(t.TempDir(), "scan.log")

	var out bytes.Buffer

	cmd := NewScanCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--root", root, "--output", logPath}, args...))

	require.NoError(t, cmd.Execute())

	logContent, err := os.ReadFile(logPath)
	require.NoError(t, err)

	return out.String(), string(logContent)
}

func TestScan_JSONReport(t *testing.T) {
	out, logContent := runScan(t, "--format", "json")

	var decoded report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	// app.py, test_app.py, and docs/guide.py analyzed; broken.py skipped.
	assert.Equal(t, 3, decoded.Totals.Files)
	assert.Equal(t, 6, decoded.Totals.Statements)

	assert.Contains(t, logContent, "File has syntax error:")
	assert.Contains(t, logContent, "Overall result: #file=3")
}

func TestScan_FileAndNameExclusions(t *testing.T) {
	out, logContent := runScan(t,
		"--format", "json",
		"--exclude-file", ".*test.*",
		"--exclude-file", ".*/docs/.*",
		"--exclude-name", ".*[tT]est.*",
	)

	var decoded report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	// Only app.py survives the path exclusions.
	assert.Equal(t, 1, decoded.Totals.Files)
	assert.Equal(t, 3, decoded.Totals.Statements)

	assert.Contains(t, logContent, "Exclude ")
	assert.Contains(t, logContent, "Include ")
}

func TestScan_TextReport(t *testing.T) {
	out, _ := runScan(t, "--no-color")

	assert.Contains(t, out, "app.py")
	assert.Contains(t, out, "3 files:")
}

func TestScan_MissingRootIsNotFatal(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "scan.log")

	var out bytes.Buffer

	cmd := NewScanCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--root", filepath.Join(t.TempDir(), "absent"), "--output", logPath, "--format", "json"})

	require.NoError(t, cmd.Execute())

	logContent, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logContent), "does not exist")

	var decoded report.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 0, decoded.Totals.Files)
}

func TestScan_BadPatternFails(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "scan.log")

	cmd := NewScanCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--root", t.TempDir(), "--output", logPath, "--exclude-file", "("})

	assert.Error(t, cmd.Execute())
}
