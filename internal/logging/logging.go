// Package logging builds the scan log: an append-only, process-wide
// log file with one `timestamp | message` line per record.
//
// The logger is handed to the scanner and analyzer components as their
// diagnostic sink rather than installed as a global, so the core stays
// testable against an in-memory writer.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// timestampLayout renders timestamps with millisecond precision,
// comma-separated, matching the scan log's line format.
const timestampLayout = "2006-01-02 15:04:05,000"

// fieldSeparator separates the timestamp from the message.
const fieldSeparator = " | "

// NewFileLogger opens (truncating) the log file at path and returns an
// info-level logger writing pipe-delimited lines to it. The returned
// closer must be called before process exit to flush the file handle.
func NewFileLogger(path string) (*slog.Logger, io.Closer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return slog.New(NewPipeHandler(file, slog.LevelInfo)), file, nil
}

// NewWriterLogger returns an info-level pipe-delimited logger writing
// to w. Intended for tests and for redirecting diagnostics.
func NewWriterLogger(w io.Writer) *slog.Logger {
	return slog.New(NewPipeHandler(w, slog.LevelInfo))
}

// PipeHandler is an [slog.Handler] that writes one `timestamp | message`
// line per record. Attributes are appended as `key=value` pairs after
// the message. Writes are serialized; the log stream is shared by every
// component of a scan.
type PipeHandler struct {
	writer io.Writer
	level  slog.Level
	attrs  []slog.Attr
	mu     *sync.Mutex
}

// NewPipeHandler creates a PipeHandler writing records at or above the
// given level to w.
func NewPipeHandler(w io.Writer, level slog.Level) *PipeHandler {
	return &PipeHandler{
		writer: w,
		level:  level,
		mu:     &sync.Mutex{},
	}
}

// Enabled reports whether the record level meets the handler minimum.
func (h *PipeHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle writes the record as a single pipe-delimited line.
func (h *PipeHandler) Handle(_ context.Context, record slog.Record) error {
	var line strings.Builder

	line.WriteString(record.Time.Format(timestampLayout))
	line.WriteString(fieldSeparator)
	line.WriteString(record.Message)

	for _, attr := range h.attrs {
		appendAttr(&line, attr)
	}

	record.Attrs(func(attr slog.Attr) bool {
		appendAttr(&line, attr)

		return true
	})

	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.writer, line.String())
	if err != nil {
		return fmt.Errorf("pipe handler: %w", err)
	}

	return nil
}

// WithAttrs returns a handler that prepends the given attributes to
// every record.
func (h *PipeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &PipeHandler{
		writer: h.writer,
		level:  h.level,
		attrs:  merged,
		mu:     h.mu,
	}
}

// WithGroup returns the handler unchanged; the line format is flat.
func (h *PipeHandler) WithGroup(_ string) slog.Handler {
	return h
}

func appendAttr(line *strings.Builder, attr slog.Attr) {
	line.WriteByte(' ')
	line.WriteString(attr.Key)
	line.WriteByte('=')
	line.WriteString(attr.Value.String())
}
