package testutil

import (
	"path"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// FileTree describes files to create, keyed by slash-separated path
// relative to a root. A key ending in "/" creates an empty directory.
type FileTree map[string]string

// NewMemFS returns an in-memory afero filesystem populated with tree under
// root.
func NewMemFS(t *testing.T, root string, tree FileTree) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	WriteTree(t, fs, root, tree)
	return fs
}

// WriteTree creates tree under root in fs.
func WriteTree(t *testing.T, fs afero.Fs, root string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		full := path.Join(root, name)
		if strings.HasSuffix(name, "/") {
			if err := fs.MkdirAll(full, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", full, err)
			}
			continue
		}
		if err := fs.MkdirAll(path.Dir(full), 0755); err != nil {
			t.Fatalf("Failed to create parent directories for %s: %v", full, err)
		}
		if err := afero.WriteFile(fs, full, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", full, err)
		}
	}
}

// AssertMemFile checks that a file in fs has the expected content.
func AssertMemFile(t *testing.T, fs afero.Fs, name, expected string) {
	t.Helper()

	data, err := afero.ReadFile(fs, name)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	if string(data) != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", name, expected, string(data))
	}
}
