// Package writer provides sinks for serialized documents.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives one complete serialized document.
type Sink interface {
	Commit(b []byte) error
}

// FileWriter replaces the file at Path atomically via temp file + rename.
type FileWriter struct {
	Path string
	// Perm applies to a newly created file. Zero means 0o644.
	Perm os.FileMode
}

// Commit writes b to a temp file next to Path, syncs it, and renames it
// over Path.
func (w *FileWriter) Commit(b []byte) error {
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".hexkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	perm := w.Perm
	if perm == 0 {
		perm = 0o644
	}
	if chmodErr := tmpFile.Chmod(perm); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}
	if _, writeErr := tmpFile.Write(b); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}
	return nil
}
