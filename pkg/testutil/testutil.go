package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateFile writes content to dir/name, creating parents, and returns the
// path.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// CreateDir creates parent/name and returns the path.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()
	path := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(path, 0o755))
	return path
}

// CreateSymlink creates link pointing at target.
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0o755))
	require.NoError(t, os.Symlink(target, link))
}

// FileExists reports whether path is a regular file or a link to one.
func FileExists(t *testing.T, path string) bool {
	t.Helper()
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists reports whether path is a directory.
func DirExists(t *testing.T, path string) bool {
	t.Helper()
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// SymlinkExists reports whether path itself is a symbolic link.
func SymlinkExists(t *testing.T, path string) bool {
	t.Helper()
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// AssertFileContent fails unless path is a file holding expected.
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "reading %s", path)
	assert.Equal(t, expected, string(data), "content of %s", path)
}

// AssertSymlink fails unless link is a symlink to expectedTarget.
func AssertSymlink(t *testing.T, link, expectedTarget string) {
	t.Helper()
	require.True(t, SymlinkExists(t, link), "%s is not a symlink", link)
	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, expectedTarget, target, "target of %s", link)
}

// AssertNoFile fails if anything exists at path.
func AssertNoFile(t *testing.T, path string) {
	t.Helper()
	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "%s exists but should not", path)
}

// Chmod sets the mode of path.
func Chmod(t *testing.T, path string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.Chmod(path, mode))
}

// SkipIfRoot skips tests that rely on permission checks, which root
// bypasses.
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("Test relies on permission checks and is running as root")
	}
}

// SkipOnWindows skips the test if running on Windows.
func SkipOnWindows(t *testing.T) {
	t.Helper()
	if os.PathSeparator == '\\' {
		t.Skip("Test not supported on Windows")
	}
}
