// write_test.go covers [WriteNew] for content, permissions, the no-clobber
// guarantee, and temp file cleanup on success and failure.

package atomicfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// assertNoTemps fails the test if any staged temp file remains in dir.
func assertNoTemps(t *testing.T, dir string) {
	t.Helper()
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if matched, _ := filepath.Match("*.tmp.*", e.Name()); matched {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteNew_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := []byte("version = 1\n")

	if err := WriteNew(path, data, 0o644); err != nil {
		t.Fatalf("WriteNew failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("content = %q, want %q", got, data)
	}
	assertNoTemps(t, dir)
}

func TestWriteNew_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perms.toml")

	if err := WriteNew(path, []byte("secret"), 0o600); err != nil {
		t.Fatalf("WriteNew failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if got := info.Mode().Perm(); got&0o600 == 0 {
		t.Errorf("permissions = %o, expected at least owner rw", got)
	}
}

func TestWriteNew_RefusesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := WriteNew(path, []byte("clobber"), 0o644)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("WriteNew error = %v, want os.ErrExist", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "keep me" {
		t.Errorf("existing file modified: %q", got)
	}
	assertNoTemps(t, dir)
}

func TestWriteNew_CleanupOnFailure(t *testing.T) {
	badPath := filepath.Join(t.TempDir(), "no-such-dir", "config.toml")

	if err := WriteNew(badPath, []byte("data"), 0o644); err == nil {
		t.Fatal("expected error writing to non-existent directory")
	}
	assertNoTemps(t, filepath.Dir(filepath.Dir(badPath)))
}
