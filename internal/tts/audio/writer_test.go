package audio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileConcatenatesInOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.mp3")

	segments := [][]byte{[]byte("first-"), []byte("second-"), []byte("third")}
	n, err := WriteFile(path, segments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []byte("first-second-third")
	if n != int64(len(want)) {
		t.Errorf("reported %d bytes written, want %d", n, len(want))
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("file content = %q, want %q", got, want)
	}
}

func TestWriteFileCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "out.mp3")

	if _, err := WriteFile(path, [][]byte{[]byte("audio")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestWriteFileLeavesNoTempOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.mp3")

	if _, err := WriteFile(path, [][]byte{[]byte("audio")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteFileErrorWrapsPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Parent "directory" is a regular file, so MkdirAll must fail.
	_, err := WriteFile(filepath.Join(blocker, "out.mp3"), [][]byte{[]byte("audio")})
	if err == nil {
		t.Fatal("expected an error")
	}
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected *WriteError, got %T: %v", err, err)
	}
	if we.Path == "" {
		t.Error("WriteError.Path is empty")
	}
}
