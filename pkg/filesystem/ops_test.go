package filesystem

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icarus-vfx/icshared/pkg/config"
	"github.com/icarus-vfx/icshared/pkg/errors"
	"github.com/icarus-vfx/icshared/pkg/paths"
	"github.com/icarus-vfx/icshared/pkg/platform"
	"github.com/icarus-vfx/icshared/pkg/testutil"
)

const memGlobals = `{"translation": {"rules": [
	{"mac": "/Volumes/proj", "win": "P:", "linux": "/mem/proj"}
]}}`

func newTranslator(t *testing.T, target platform.OS) *paths.Translator {
	t.Helper()
	g, err := config.ParseGlobals([]byte(memGlobals), "json")
	require.NoError(t, err)
	return paths.NewTranslator(config.Default(target), config.StaticGlobals{Doc: g}, nil)
}

func newMemOps(t *testing.T, tree testutil.FileTree) (*Ops, afero.Fs, *testutil.Recorder) {
	t.Helper()
	mem := testutil.NewMemFS(t, "/mem", tree)
	rec := &testutil.Recorder{}
	return NewOps(NewAferoFS(mem), newTranslator(t, platform.Linux), platform.Linux, rec), mem, rec
}

func newOSOps(t *testing.T) (*Ops, *testutil.Recorder) {
	t.Helper()
	rec := &testutil.Recorder{}
	return NewOps(NewOS(), nil, platform.Host(), rec), rec
}

func TestMkdir(t *testing.T) {
	t.Run("translates and creates parents", func(t *testing.T) {
		ops, mem, _ := newMemOps(t, nil)

		got, err := ops.Mkdir("/Volumes/proj/sh010/comp")
		require.NoError(t, err)
		assert.Equal(t, "/mem/proj/sh010/comp", got)

		isDir, err := afero.IsDir(mem, "/mem/proj/sh010/comp")
		require.NoError(t, err)
		assert.True(t, isDir)
	})

	t.Run("is idempotent", func(t *testing.T) {
		ops, _, rec := newMemOps(t, nil)

		first, err := ops.Mkdir("/mem/proj/sh020")
		require.NoError(t, err)
		second, err := ops.Mkdir("/mem/proj/sh020")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.True(t, rec.Contains("detail", "already exists"))
	})

	t.Run("a file in the way fails", func(t *testing.T) {
		ops, _, rec := newMemOps(t, testutil.FileTree{"proj/sh030": "not a dir"})

		_, err := ops.Mkdir("/mem/proj/sh030")
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
		assert.Len(t, rec.Messages("error"), 1)
	})

	t.Run("dot directory on windows", func(t *testing.T) {
		mem := afero.NewMemMapFs()
		ops := NewOps(NewAferoFS(mem), nil, platform.Windows, nil)

		got, err := ops.Mkdir("/home/artist/.icshared")
		require.NoError(t, err)
		assert.Equal(t, "/home/artist/.icshared", got)
	})

	t.Run("empty path", func(t *testing.T) {
		ops, _, _ := newMemOps(t, nil)
		_, err := ops.Mkdir("")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("permission denied", func(t *testing.T) {
		testutil.SkipOnWindows(t)
		testutil.SkipIfRoot(t)

		ops, _ := newOSOps(t)
		dir := t.TempDir()
		testutil.Chmod(t, dir, 0o500)
		defer testutil.Chmod(t, dir, 0o755)

		_, err := ops.Mkdir(filepath.Join(dir, "nope"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrPermissionDenied))
	})
}

func TestCopy(t *testing.T) {
	ops, mem, rec := newMemOps(t, testutil.FileTree{
		"src/plate.exr": "pixels",
		"dst/":          "",
	})

	got, err := ops.Copy("/mem/src/plate.exr", "/mem/dst/plate_copy.exr")
	require.NoError(t, err)
	assert.Equal(t, "/mem/dst/plate_copy.exr", got)
	testutil.AssertMemFile(t, mem, "/mem/dst/plate_copy.exr", "pixels")
	assert.True(t, rec.Contains("detail", "copy"))

	_, err = ops.Copy("/mem/src/missing.exr", "/mem/dst/x.exr")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Len(t, rec.Messages("error"), 1)

	_, err = ops.Copy("/mem/src", "/mem/dst/src")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = ops.Copy("/mem/src/plate.exr", "/mem/dst")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestQuiet(t *testing.T) {
	ops, _, rec := newMemOps(t, nil)

	_, err := ops.Quiet().Copy("/mem/missing", "/mem/other")
	assert.Error(t, err)
	assert.Empty(t, rec.Entries())
}

func TestMove(t *testing.T) {
	t.Run("into a directory", func(t *testing.T) {
		ops, mem, _ := newMemOps(t, testutil.FileTree{
			"in/render.0001.exr": "frame",
			"out/":               "",
		})

		got, err := ops.Move("/mem/in/render.0001.exr", "/mem/out")
		require.NoError(t, err)
		assert.Equal(t, "/mem/out/render.0001.exr", got)
		testutil.AssertMemFile(t, mem, "/mem/out/render.0001.exr", "frame")

		exists, _ := afero.Exists(mem, "/mem/in/render.0001.exr")
		assert.False(t, exists)
	})

	t.Run("to a new name", func(t *testing.T) {
		ops, mem, _ := newMemOps(t, testutil.FileTree{"in/a.txt": "a"})

		got, err := ops.Move("/mem/in/a.txt", "/mem/in/b.txt")
		require.NoError(t, err)
		assert.Equal(t, "/mem/in/b.txt", got)
		testutil.AssertMemFile(t, mem, "/mem/in/b.txt", "a")
	})

	t.Run("existing entry in destination directory", func(t *testing.T) {
		ops, _, _ := newMemOps(t, testutil.FileTree{
			"in/a.txt":  "a",
			"out/a.txt": "old",
		})

		_, err := ops.Move("/mem/in/a.txt", "/mem/out")
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	})

	t.Run("missing source", func(t *testing.T) {
		ops, _, _ := newMemOps(t, nil)
		_, err := ops.Move("/mem/nothing", "/mem/else")
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}

func TestRename(t *testing.T) {
	ops, mem, _ := newMemOps(t, testutil.FileTree{"sh010/v001/": ""})

	got, err := ops.Rename("/mem/sh010/v001", "/mem/sh010/v002")
	require.NoError(t, err)
	assert.Equal(t, "/mem/sh010/v002", got)

	isDir, _ := afero.IsDir(mem, "/mem/sh010/v002")
	assert.True(t, isDir)

	_, err = ops.Rename("/mem/sh010/v001", "/mem/sh010/v003")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestRemove(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		ops, mem, _ := newMemOps(t, testutil.FileTree{"tmp/a.txt": "a"})

		got, err := ops.Remove("/mem/tmp/a.txt", false)
		require.NoError(t, err)
		assert.Equal(t, "/mem/tmp/a.txt", got)

		exists, _ := afero.Exists(mem, "/mem/tmp/a.txt")
		assert.False(t, exists)
	})

	t.Run("directory tree", func(t *testing.T) {
		ops, mem, _ := newMemOps(t, testutil.FileTree{
			"tmp/a/b/c.txt": "c",
			"tmp/a/d.txt":   "d",
		})

		_, err := ops.Remove("/mem/tmp/a", false)
		require.NoError(t, err)

		exists, _ := afero.Exists(mem, "/mem/tmp/a")
		assert.False(t, exists)
	})

	t.Run("path is not translated", func(t *testing.T) {
		ops, _, _ := newMemOps(t, testutil.FileTree{"proj/a.txt": "a"})

		_, err := ops.Remove("/Volumes/proj/a.txt", false)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("nonexistent path fails", func(t *testing.T) {
		ops, _, rec := newMemOps(t, nil)

		_, err := ops.Remove("/mem/never/was", false)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
		assert.True(t, rec.Contains("detail", "remove"))
		assert.Len(t, rec.Messages("error"), 1)
	})

	t.Run("quiet reports nothing", func(t *testing.T) {
		ops, _, rec := newMemOps(t, nil)

		_, err := ops.Remove("/mem/never/was", true)
		assert.Error(t, err)
		assert.Empty(t, rec.Entries())
	})
}

func TestHardlink(t *testing.T) {
	t.Run("falls back to copy when links are refused", func(t *testing.T) {
		ops, mem, rec := newMemOps(t, testutil.FileTree{
			"proj/cache/plate.exr": "pixels",
			"proj/shot/":           "",
		})

		got, err := ops.Hardlink("/Volumes/proj/cache/plate.exr", "/Volumes/proj/shot", true)
		require.NoError(t, err)

		want, err := ops.Quiet().Copy("/mem/proj/cache/plate.exr", "/mem/proj/shot/plate.exr")
		require.NoError(t, err)
		assert.Equal(t, want, got)

		testutil.AssertMemFile(t, mem, got, "pixels")
		assert.True(t, rec.Contains("warning", "Attempting to copy"))
	})

	t.Run("replaces an existing destination", func(t *testing.T) {
		ops, mem, _ := newMemOps(t, testutil.FileTree{
			"cache/plate.exr": "new",
			"shot/plate.exr":  "old",
		})

		got, err := ops.Hardlink("/mem/cache/plate.exr", "/mem/shot/plate.exr", true)
		require.NoError(t, err)
		testutil.AssertMemFile(t, mem, got, "new")
	})

	t.Run("unverified link failure is reported", func(t *testing.T) {
		ops, _, _ := newMemOps(t, testutil.FileTree{"cache/plate.exr": "x"})

		_, err := ops.Hardlink("/mem/cache/plate.exr", "/mem/shot.exr", false)
		assert.Error(t, err)
	})

	t.Run("linking a file onto itself keeps it", func(t *testing.T) {
		ops, mem, _ := newMemOps(t, testutil.FileTree{"cache/plate.exr": "pixels"})

		for _, dst := range []string{"/mem/cache", "/mem/cache/plate.exr"} {
			got, err := ops.Hardlink("/mem/cache/plate.exr", dst, true)
			require.NoError(t, err, dst)
			assert.Equal(t, "/mem/cache/plate.exr", got)
			testutil.AssertMemFile(t, mem, "/mem/cache/plate.exr", "pixels")
		}
	})

	t.Run("existing link to the source is kept", func(t *testing.T) {
		ops, rec := newOSOps(t)
		dir := t.TempDir()
		src := testutil.CreateFile(t, dir, "cache/plate.exr", "pixels")
		dst := filepath.Join(testutil.CreateDir(t, dir, "shot"), "plate.exr")
		require.NoError(t, os.Link(src, dst))

		got, err := ops.Hardlink(src, dst, true)
		require.NoError(t, err)
		assert.Equal(t, dst, got)
		assert.True(t, rec.Contains("detail", "Already linked"))
		testutil.AssertFileContent(t, src, "pixels")
		testutil.AssertFileContent(t, dst, "pixels")

		_, err = ops.Hardlink(src, src, true)
		require.NoError(t, err)
		testutil.AssertFileContent(t, src, "pixels")
	})

	t.Run("real hard link", func(t *testing.T) {
		ops, rec := newOSOps(t)
		dir := t.TempDir()
		src := testutil.CreateFile(t, dir, "cache/plate.exr", "pixels")
		dstDir := testutil.CreateDir(t, dir, "shot")

		got, err := ops.Hardlink(src, dstDir, true)
		require.NoError(t, err)
		assert.Empty(t, rec.Messages("warning"))

		a, err := os.Stat(src)
		require.NoError(t, err)
		b, err := os.Stat(got)
		require.NoError(t, err)
		assert.True(t, os.SameFile(a, b))
	})
}

func TestCopyTree(t *testing.T) {
	t.Run("copies everything and merges", func(t *testing.T) {
		ops, mem, rec := newMemOps(t, testutil.FileTree{
			"src/comp.nk":            "nuke",
			"src/renders/v001/a.exr": "a",
			"src/renders/v001/b.exr": "b",
			"src/empty/":             "",
			"dst/existing.txt":       "keep",
		})

		got, err := ops.CopyTree("/mem/src", "/mem/dst", CopyTreeOptions{})
		require.NoError(t, err)
		assert.Equal(t, "/mem/dst", got)

		testutil.AssertMemFile(t, mem, "/mem/dst/comp.nk", "nuke")
		testutil.AssertMemFile(t, mem, "/mem/dst/renders/v001/b.exr", "b")
		testutil.AssertMemFile(t, mem, "/mem/dst/existing.txt", "keep")
		isDir, _ := afero.IsDir(mem, "/mem/dst/empty")
		assert.True(t, isDir)
		assert.True(t, rec.Contains("detail", "Copied 3 files"))
	})

	t.Run("creates a missing destination", func(t *testing.T) {
		ops, mem, _ := newMemOps(t, testutil.FileTree{"src/a.txt": "a"})

		_, err := ops.CopyTree("/mem/src", "/mem/new/dst", CopyTreeOptions{})
		require.NoError(t, err)
		testutil.AssertMemFile(t, mem, "/mem/new/dst/a.txt", "a")
	})

	t.Run("ignore patterns", func(t *testing.T) {
		ops, mem, _ := newMemOps(t, testutil.FileTree{
			"src/comp.nk":         "nuke",
			"src/comp.nk~":        "backup",
			"src/.DS_Store":       "junk",
			"src/tmp/scratch.exr": "tmp",
			"src/renders/a.exr":   "a",
			"src/renders/a.tmp":   "tmp",
		})

		_, err := ops.CopyTree("/mem/src", "/mem/dst", CopyTreeOptions{
			Ignore: []string{"*~", ".DS_Store", "tmp", "**/*.tmp"},
		})
		require.NoError(t, err)

		testutil.AssertMemFile(t, mem, "/mem/dst/comp.nk", "nuke")
		testutil.AssertMemFile(t, mem, "/mem/dst/renders/a.exr", "a")
		for _, skipped := range []string{"/mem/dst/comp.nk~", "/mem/dst/.DS_Store", "/mem/dst/tmp", "/mem/dst/renders/a.tmp"} {
			exists, _ := afero.Exists(mem, skipped)
			assert.False(t, exists, skipped)
		}
	})

	t.Run("invalid pattern", func(t *testing.T) {
		ops, _, _ := newMemOps(t, testutil.FileTree{"src/a.txt": "a"})
		_, err := ops.CopyTree("/mem/src", "/mem/dst", CopyTreeOptions{Ignore: []string{"[a-"}})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("source must be a directory", func(t *testing.T) {
		ops, _, _ := newMemOps(t, testutil.FileTree{"src/a.txt": "a"})

		_, err := ops.CopyTree("/mem/src/a.txt", "/mem/dst", CopyTreeOptions{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

		_, err = ops.CopyTree("/mem/none", "/mem/dst", CopyTreeOptions{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("refuses to copy into itself", func(t *testing.T) {
		ops, mem, _ := newMemOps(t, testutil.FileTree{"src/a.txt": "a"})

		for _, dst := range []string{"/mem/src", "/mem/src/backup", "/mem/src/x/../backup"} {
			_, err := ops.CopyTree("/mem/src", dst, CopyTreeOptions{})
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), dst)
		}
		exists, _ := afero.Exists(mem, "/mem/src/backup")
		assert.False(t, exists)
		testutil.AssertMemFile(t, mem, "/mem/src/a.txt", "a")

		_, err := ops.CopyTree("/mem/src", "/mem/src2", CopyTreeOptions{})
		require.NoError(t, err)
		testutil.AssertMemFile(t, mem, "/mem/src2/a.txt", "a")
	})

	t.Run("refuses a nested destination on disk", func(t *testing.T) {
		ops, _ := newOSOps(t)
		dir := t.TempDir()
		testutil.CreateFile(t, dir, "plate.exr", "pixels")

		_, err := ops.CopyTree(dir, filepath.Join(dir, "backup"), CopyTreeOptions{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		testutil.AssertNoFile(t, filepath.Join(dir, "backup"))
	})

	t.Run("preserves mode and mtime", func(t *testing.T) {
		testutil.SkipOnWindows(t)
		ops, _ := newOSOps(t)
		dir := t.TempDir()
		script := testutil.CreateFile(t, dir, "src/bin/render.sh", "#!/bin/sh\n")
		testutil.Chmod(t, script, 0o750)
		mtime := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, os.Chtimes(script, mtime, mtime))

		_, err := ops.CopyTree(filepath.Join(dir, "src"), filepath.Join(dir, "dst"), CopyTreeOptions{})
		require.NoError(t, err)

		info, err := os.Stat(filepath.Join(dir, "dst", "bin", "render.sh"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o750), info.Mode().Perm())
		assert.True(t, info.ModTime().Equal(mtime))
	})

	t.Run("symlinks", func(t *testing.T) {
		testutil.SkipOnWindows(t)
		ops, _ := newOSOps(t)
		dir := t.TempDir()
		testutil.CreateFile(t, dir, "src/v001/a.exr", "a")
		testutil.CreateSymlink(t, "v001", filepath.Join(dir, "src", "latest"))

		_, err := ops.CopyTree(filepath.Join(dir, "src"), filepath.Join(dir, "kept"), CopyTreeOptions{})
		require.NoError(t, err)
		testutil.AssertSymlink(t, filepath.Join(dir, "kept", "latest"), "v001")

		_, err = ops.CopyTree(filepath.Join(dir, "src"), filepath.Join(dir, "followed"), CopyTreeOptions{FollowSymlinks: true})
		require.NoError(t, err)
		assert.False(t, testutil.SymlinkExists(t, filepath.Join(dir, "followed", "latest")))
		testutil.AssertFileContent(t, filepath.Join(dir, "followed", "latest", "a.exr"), "a")
	})
}

func TestExistsAndIsDir(t *testing.T) {
	ops, _, _ := newMemOps(t, testutil.FileTree{"a/b.txt": "b"})

	assert.True(t, ops.Exists("/mem/a/b.txt"))
	assert.True(t, ops.Exists("/mem/a/"))
	assert.False(t, ops.Exists("/mem/c"))
	assert.True(t, ops.IsDir("/mem/a"))
	assert.False(t, ops.IsDir("/mem/a/b.txt"))
	assert.NotNil(t, ops.FS())
}
