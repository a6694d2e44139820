// Package audio assembles synthesized segments into a single output file.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteError wraps a filesystem failure while persisting audio output.
type WriteError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("writing audio to %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error { return e.Cause }

// WriteFile concatenates the segment buffers in order and writes them to path
// atomically: the data lands in a temp file in the destination directory and
// is renamed into place only after a successful sync. Readers never observe a
// partially written file.
func WriteFile(path string, segments [][]byte) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, &WriteError{Path: path, Cause: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, &WriteError{Path: path, Cause: err}
	}
	defer os.Remove(tmp.Name())

	var written int64
	for _, seg := range segments {
		n, err := tmp.Write(seg)
		written += int64(n)
		if err != nil {
			tmp.Close()
			return written, &WriteError{Path: path, Cause: err}
		}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return written, &WriteError{Path: path, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return written, &WriteError{Path: path, Cause: err}
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return written, &WriteError{Path: path, Cause: err}
	}
	return written, nil
}
