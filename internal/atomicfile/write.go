// Package atomicfile publishes new files without ever exposing a
// half-written one or clobbering an existing one.

package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteNew writes data to a new file at path with permissions perm. It
// fails with an error satisfying [os.ErrExist] when path already exists.
// The bytes are staged and synced in a temp file next to path, which is
// then hard-linked into place, so the existence check and the publish are
// one step and a reader never sees a partial file.
func WriteNew(path string, data []byte, perm os.FileMode) error {
	tmpName, err := stage(path, data, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpName)

	if err := os.Link(tmpName, path); err != nil {
		return fmt.Errorf("publish %s: %w", filepath.Base(path), err)
	}
	return nil
}

// stage writes data to a temp file in the directory of path and returns its
// name. On failure the temp file is removed.
func stage(path string, data []byte, perm os.FileMode) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := f.Name()
	var success bool
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	success = true
	return tmpName, nil
}
