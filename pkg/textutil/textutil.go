// Package textutil provides byte-level text utilities shared by the
// line analyzers.
package textutil

import "bytes"

// CountLines returns the number of newline-delimited physical lines in
// data. A non-empty buffer without a trailing newline counts the last
// partial line. Returns 0 for empty data.
func CountLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	lines := bytes.Count(data, []byte{'\n'})

	if data[len(data)-1] != '\n' {
		lines++
	}

	return lines
}

// Line returns the idx-th (0-based) physical line of data without its
// trailing newline, or an empty slice when idx is out of range.
func Line(data []byte, idx int) []byte {
	for idx > 0 {
		next := bytes.IndexByte(data, '\n')
		if next < 0 {
			return nil
		}

		data = data[next+1:]
		idx--
	}

	if idx < 0 {
		return nil
	}

	end := bytes.IndexByte(data, '\n')
	if end < 0 {
		return data
	}

	return data[:end]
}
