// Package scanner enumerates the Python files of a directory tree,
// applying the configured path exclusions.
package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// pythonExtension is the file extension recognized by the scan.
const pythonExtension = ".py"

// Walker enumerates Python source files under a root directory.
// Every include and exclude decision is logged.
type Walker struct {
	excludePaths []*regexp.Regexp
	logger       *slog.Logger
}

// NewWalker creates a Walker. excludePaths are compiled patterns tested
// in order against each file's full path; the first match excludes the
// file. logger receives one line per include/exclude decision.
func NewWalker(excludePaths []*regexp.Regexp, logger *slog.Logger) *Walker {
	return &Walker{
		excludePaths: excludePaths,
		logger:       logger,
	}
}

// FindPythonFiles returns the paths of all non-excluded Python files
// under rootDir, in walk order. A missing root directory is logged and
// yields no files rather than failing the run.
func (w *Walker) FindPythonFiles(rootDir string) ([]string, error) {
	_, err := os.Stat(rootDir)
	if err != nil {
		w.logger.Info(fmt.Sprintf("Root directory %s does not exist", rootDir))

		return nil, nil
	}

	w.logger.Info(fmt.Sprintf("Scanning %s files under %s", pythonExtension, rootDir))

	var paths []string

	walkErr := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || !strings.HasSuffix(path, pythonExtension) {
			return nil
		}

		if w.isExcluded(path) {
			return nil
		}

		w.logger.Info(fmt.Sprintf("Include %s", path))
		paths = append(paths, path)

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", rootDir, walkErr)
	}

	return paths, nil
}

// isExcluded tests the path against the exclusion patterns in order,
// short-circuiting on the first match. Matches are logged with the
// pattern that caused them.
func (w *Walker) isExcluded(path string) bool {
	for _, pattern := range w.excludePaths {
		if pattern.MatchString(path) {
			w.logger.Info(fmt.Sprintf("Exclude %s by pattern %s", path, pattern))

			return true
		}
	}

	return false
}
