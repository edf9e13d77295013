package files_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/jmgilman/go/stridepack/config"
	"github.com/jmgilman/go/stridepack/files"
	"github.com/jmgilman/go/stridepack/fs/billy"
	"github.com/jmgilman/go/stridepack/fs/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invalidPath = "bad\x00path"

// faultFS injects failures into selected operations of a memory filesystem.
type faultFS struct {
	core.FS
	renameErr   error
	removeErr   map[string]error
	writeErr    map[string]error
	shortWrites bool
}

func newFaultFS() *faultFS {
	return &faultFS{
		FS:        billy.NewMemory(),
		removeErr: map[string]error{},
		writeErr:  map[string]error{},
	}
}

func (f *faultFS) Rename(oldpath, newpath string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *faultFS) Remove(name string) error {
	if err, ok := f.removeErr[name]; ok {
		return err
	}
	return f.FS.Remove(name)
}

func (f *faultFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err, ok := f.writeErr[name]; ok {
		return err
	}
	if f.shortWrites && len(data) > 0 {
		data = data[:len(data)-1]
	}
	return f.FS.WriteFile(name, data, perm)
}

func p(elem ...string) string {
	return filepath.FromSlash("/" + strings.Join(elem, "/"))
}

func TestSaveLoadDeleteOnDisk(t *testing.T) {
	svc := files.New()
	path := filepath.Join(t.TempDir(), "nested", "dir", "notes.txt")

	require.True(t, svc.SaveFile("hello stride", path))
	assert.Equal(t, "hello stride", svc.LoadFile(path))

	require.True(t, svc.SaveFile("second", path))
	assert.Equal(t, "second", svc.LoadFile(path))

	assert.True(t, svc.DeleteFile(path))
	assert.Equal(t, "", svc.LoadFile(path))
	assert.False(t, svc.DeleteFile(path))
}

func TestSaveLoadDeleteInMemory(t *testing.T) {
	fsys := billy.NewMemory()
	svc := files.New(files.WithFS(fsys))
	path := p("project", "Assets", "Hero.sdprefab")

	require.True(t, svc.SaveFile("!Prefab", path))
	assert.Equal(t, "!Prefab", svc.LoadFile(path))
	assert.True(t, svc.DeleteFile(path))
	assert.Equal(t, "", svc.LoadFile(path))
}

func TestSentinelsWithoutMutation(t *testing.T) {
	fsys := billy.NewMemory()
	svc := files.New(files.WithFS(fsys))

	for _, bad := range []string{"", "   ", invalidPath} {
		assert.False(t, svc.SaveFile("content", bad), "SaveFile(%q)", bad)
		assert.Equal(t, "", svc.LoadFile(bad), "LoadFile(%q)", bad)
		assert.False(t, svc.DeleteFile(bad), "DeleteFile(%q)", bad)
		assert.False(t, svc.EnsureDir(bad), "EnsureDir(%q)", bad)
		assert.False(t, svc.MoveFile(bad, p("x")), "MoveFile(%q, x)", bad)
		assert.False(t, svc.MoveFile(p("x"), bad), "MoveFile(x, %q)", bad)
		assert.False(t, svc.CopyDir(bad, p("x")), "CopyDir(%q, x)", bad)
		assert.False(t, svc.CopyDir(p("x"), bad), "CopyDir(x, %q)", bad)

		got := svc.ListFiles(bad)
		assert.NotNil(t, got)
		assert.Empty(t, got)

		_, ok := svc.LastModified(bad)
		assert.False(t, ok)
	}

	assert.False(t, svc.SaveFile("", p("empty.txt")))

	entries, err := fsys.ReadDir("/")
	require.NoError(t, err)
	assert.Empty(t, entries, "failed calls must not touch the filesystem")
}

func TestSaveFileOntoDirectory(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.MkdirAll(p("dir"), 0o755))

	svc := files.New(files.WithFS(fsys))
	assert.False(t, svc.SaveFile("x", p("dir")))
	assert.Equal(t, "", svc.LoadFile(p("dir")))
	assert.False(t, svc.DeleteFile(p("dir")))
}

func TestSaveFileUnwritable(t *testing.T) {
	fsys := newFaultFS()
	fsys.writeErr[p("locked.txt")] = &fs.PathError{Op: "open", Path: "locked.txt", Err: fs.ErrPermission}

	svc := files.New(files.WithFS(fsys))
	assert.False(t, svc.SaveFile("x", p("locked.txt")))
}

func TestSaveFileRemovesCreatedParents(t *testing.T) {
	fsys := newFaultFS()
	require.NoError(t, fsys.MkdirAll(p("existing"), 0o755))
	fsys.writeErr[p("existing", "new", "dir", "file.txt")] = errors.New("disk full")

	svc := files.New(files.WithFS(fsys))
	assert.False(t, svc.SaveFile("x", p("existing", "new", "dir", "file.txt")))

	ok, err := fsys.Exists(p("existing", "new"))
	require.NoError(t, err)
	assert.False(t, ok, "directories created for the failed write are removed")

	ok, err = fsys.Exists(p("existing"))
	require.NoError(t, err)
	assert.True(t, ok, "directories that already existed are kept")
}

// symlinkOrSkip creates a symbolic link or skips the test where the
// platform does not allow it.
func symlinkOrSkip(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symbolic links unavailable: %v", err)
	}
}

func TestListFilesFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real.txt"), []byte("1"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	symlinkOrSkip(t, filepath.Join(dir, "real.txt"), filepath.Join(dir, "link.txt"))
	symlinkOrSkip(t, filepath.Join(dir, "gone.txt"), filepath.Join(dir, "dangling.txt"))
	symlinkOrSkip(t, filepath.Join(dir, "sub"), filepath.Join(dir, "subdir.txt"))
	symlinkOrSkip(t, filepath.Join(dir, "real.txt"), filepath.Join(dir, "sub", "nested.txt"))

	svc := files.New()
	assert.Equal(t, []string{filepath.Join(dir, "link.txt"), filepath.Join(dir, "real.txt")},
		svc.ListFiles(dir, files.WithPattern("*.txt")))
	assert.Equal(t, []string{
		filepath.Join(dir, "link.txt"),
		filepath.Join(dir, "real.txt"),
		filepath.Join(dir, "sub", "nested.txt"),
	}, svc.ListFiles(dir, files.WithPattern("*.txt"), files.Recursive()))
}

func TestListFiles(t *testing.T) {
	fsys := billy.NewMemory()
	for _, f := range []string{"b.txt", "a.txt", "c.sdprefab", "sub/d.txt", "sub/deep/e.txt"} {
		require.NoError(t, fsys.WriteFile(p("proj", f), []byte(f), 0o644))
	}
	require.NoError(t, fsys.MkdirAll(p("proj", "empty.txt"), 0o755))

	svc := files.New(files.WithFS(fsys))

	assert.Equal(t, []string{p("proj", "a.txt"), p("proj", "b.txt"), p("proj", "c.sdprefab")},
		svc.ListFiles(p("proj")))

	assert.Equal(t, []string{p("proj", "a.txt"), p("proj", "b.txt")},
		svc.ListFiles(p("proj"), files.WithPattern("*.txt")))

	assert.Equal(t, []string{
		p("proj", "a.txt"),
		p("proj", "b.txt"),
		p("proj", "sub", "d.txt"),
		p("proj", "sub", "deep", "e.txt"),
	}, svc.ListFiles(p("proj"), files.WithPattern("*.txt"), files.Recursive()))

	assert.Equal(t, []string{p("proj", "sub", "deep", "e.txt")},
		svc.ListFiles(p("proj"), files.WithPattern("e.*"), files.Recursive()))

	missing := svc.ListFiles(p("nowhere"))
	assert.NotNil(t, missing)
	assert.Empty(t, missing)

	notDir := svc.ListFiles(p("proj", "a.txt"))
	assert.NotNil(t, notDir)
	assert.Empty(t, notDir)

	badPattern := svc.ListFiles(p("proj"), files.WithPattern("[unclosed"))
	assert.NotNil(t, badPattern)
	assert.Empty(t, badPattern)

	none := svc.ListFiles(p("proj"), files.WithPattern("*.sdscene"))
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestListFilesOnDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.txt"), []byte("1"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "two.txt"), []byte("2"), 0o644))

	svc := files.New()
	assert.Equal(t, []string{filepath.Join(dir, "one.txt")}, svc.ListFiles(dir))
	assert.Equal(t, []string{filepath.Join(dir, "one.txt"), filepath.Join(dir, "sub", "two.txt")},
		svc.ListFiles(dir, files.Recursive()))
}

func TestEnsureDir(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.WriteFile(p("file.txt"), []byte("x"), 0o644))
	svc := files.New(files.WithFS(fsys))

	assert.True(t, svc.EnsureDir(p("a", "b", "c")))
	info, err := fsys.Stat(p("a", "b", "c"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.True(t, svc.EnsureDir(p("a", "b", "c")), "existing directory")
	assert.False(t, svc.EnsureDir(p("file.txt")), "path names a file")
}

func TestMoveFile(t *testing.T) {
	newSvc := func(t *testing.T) (*files.Service, core.FS) {
		fsys := billy.NewMemory()
		require.NoError(t, fsys.WriteFile(p("src", "Hero.sdprefab"), []byte("hero"), 0o644))
		require.NoError(t, fsys.WriteFile(p("dst", "existing.txt"), []byte("old"), 0o644))
		return files.New(files.WithFS(fsys)), fsys
	}

	t.Run("success", func(t *testing.T) {
		svc, _ := newSvc(t)
		require.True(t, svc.MoveFile(p("src", "Hero.sdprefab"), p("dst", "Hero.sdprefab")))
		assert.Equal(t, "", svc.LoadFile(p("src", "Hero.sdprefab")))
		assert.Equal(t, "hero", svc.LoadFile(p("dst", "Hero.sdprefab")))
	})

	t.Run("destination exists", func(t *testing.T) {
		svc, _ := newSvc(t)
		assert.False(t, svc.MoveFile(p("src", "Hero.sdprefab"), p("dst", "existing.txt")))
		assert.Equal(t, "hero", svc.LoadFile(p("src", "Hero.sdprefab")))
		assert.Equal(t, "old", svc.LoadFile(p("dst", "existing.txt")))
	})

	t.Run("destination directory missing", func(t *testing.T) {
		svc, fsys := newSvc(t)
		assert.False(t, svc.MoveFile(p("src", "Hero.sdprefab"), p("nowhere", "Hero.sdprefab")))
		assert.Equal(t, "hero", svc.LoadFile(p("src", "Hero.sdprefab")))
		ok, err := fsys.Exists(p("nowhere"))
		require.NoError(t, err)
		assert.False(t, ok, "no directory may be created")
	})

	t.Run("source missing", func(t *testing.T) {
		svc, _ := newSvc(t)
		assert.False(t, svc.MoveFile(p("src", "Missing.sdprefab"), p("dst", "Missing.sdprefab")))
	})

	t.Run("source is a directory", func(t *testing.T) {
		svc, _ := newSvc(t)
		assert.False(t, svc.MoveFile(p("src"), p("dst", "moved")))
	})
}

func TestMoveFileAcrossDevices(t *testing.T) {
	exdev := &os.LinkError{Op: "rename", Old: "a", New: "b", Err: syscall.EXDEV}

	setup := func(t *testing.T) (*faultFS, *files.Service) {
		fsys := newFaultFS()
		fsys.renameErr = exdev
		require.NoError(t, fsys.FS.WriteFile(p("src", "a.txt"), []byte("payload"), 0o644))
		require.NoError(t, fsys.FS.MkdirAll(p("dst"), 0o755))
		return fsys, files.New(files.WithFS(fsys))
	}

	t.Run("falls back to copy", func(t *testing.T) {
		_, svc := setup(t)
		require.True(t, svc.MoveFile(p("src", "a.txt"), p("dst", "a.txt")))
		assert.Equal(t, "payload", svc.LoadFile(p("dst", "a.txt")))
		assert.Equal(t, "", svc.LoadFile(p("src", "a.txt")))
	})

	t.Run("source kept when it cannot be removed", func(t *testing.T) {
		fsys, svc := setup(t)
		fsys.removeErr[p("src", "a.txt")] = &fs.PathError{Op: "remove", Path: "a.txt", Err: syscall.EBUSY}

		assert.False(t, svc.MoveFile(p("src", "a.txt"), p("dst", "a.txt")))
		assert.Equal(t, "payload", svc.LoadFile(p("src", "a.txt")))
		assert.Equal(t, "", svc.LoadFile(p("dst", "a.txt")), "the copy must be discarded")
	})

	t.Run("source kept when copy is short", func(t *testing.T) {
		fsys, svc := setup(t)
		fsys.shortWrites = true

		assert.False(t, svc.MoveFile(p("src", "a.txt"), p("dst", "a.txt")))
		assert.Equal(t, "payload", svc.LoadFile(p("src", "a.txt")))
		assert.Equal(t, "", svc.LoadFile(p("dst", "a.txt")))
	})

	t.Run("other rename errors fail", func(t *testing.T) {
		fsys, svc := setup(t)
		fsys.renameErr = &os.LinkError{Op: "rename", Old: "a", New: "b", Err: fs.ErrPermission}

		assert.False(t, svc.MoveFile(p("src", "a.txt"), p("dst", "a.txt")))
		assert.Equal(t, "payload", svc.LoadFile(p("src", "a.txt")))
	})
}

func TestLastModified(t *testing.T) {
	svc := files.New()
	dir := t.TempDir()
	path := filepath.Join(dir, "stamp.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	want := time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, want, want))

	got, ok := svc.LastModified(path)
	require.True(t, ok)
	assert.True(t, want.Equal(got), "got %v, want %v", got, want)

	_, ok = svc.LastModified(filepath.Join(dir, "missing.txt"))
	assert.False(t, ok)

	_, ok = svc.LastModified(dir)
	assert.False(t, ok, "directories have no file timestamp")
}

func TestCopyDir(t *testing.T) {
	seed := func(t *testing.T, fsys core.FS) {
		for f, content := range map[string]string{
			"Game.sdpkg":                   "pkg",
			"Assets/Hero.sdprefab":         "hero",
			"Assets/Materials/Stone.sdmat": "stone",
		} {
			require.NoError(t, fsys.WriteFile(p("src", f), []byte(content), 0o644))
		}
		require.NoError(t, fsys.MkdirAll(p("src", "Empty"), 0o755))
	}

	t.Run("copies tree", func(t *testing.T) {
		fsys := billy.NewMemory()
		seed(t, fsys)
		svc := files.New(files.WithFS(fsys))

		require.True(t, svc.CopyDir(p("src"), p("out", "copy")))
		assert.Equal(t, "stone", svc.LoadFile(p("out", "copy", "Assets", "Materials", "Stone.sdmat")))
		assert.Equal(t, "pkg", svc.LoadFile(p("out", "copy", "Game.sdpkg")))

		info, err := fsys.Stat(p("out", "copy", "Empty"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		assert.Equal(t, "hero", svc.LoadFile(p("src", "Assets", "Hero.sdprefab")), "source untouched")
	})

	t.Run("overwrites existing files", func(t *testing.T) {
		fsys := billy.NewMemory()
		seed(t, fsys)
		require.NoError(t, fsys.WriteFile(p("dst", "Game.sdpkg"), []byte("old"), 0o644))
		require.NoError(t, fsys.WriteFile(p("dst", "keep.txt"), []byte("keep"), 0o644))
		svc := files.New(files.WithFS(fsys))

		require.True(t, svc.CopyDir(p("src"), p("dst")))
		assert.Equal(t, "pkg", svc.LoadFile(p("dst", "Game.sdpkg")))
		assert.Equal(t, "keep", svc.LoadFile(p("dst", "keep.txt")))
	})

	t.Run("missing source creates nothing", func(t *testing.T) {
		fsys := billy.NewMemory()
		svc := files.New(files.WithFS(fsys))

		assert.False(t, svc.CopyDir(p("nowhere"), p("out", "copy")))
		ok, err := fsys.Exists(p("out"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("destination inside source", func(t *testing.T) {
		fsys := billy.NewMemory()
		seed(t, fsys)
		svc := files.New(files.WithFS(fsys))

		assert.False(t, svc.CopyDir(p("src"), p("src", "backup")))
		assert.False(t, svc.CopyDir(p("src"), p("src")))
		ok, err := fsys.Exists(p("src", "backup"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("destination is a file", func(t *testing.T) {
		fsys := billy.NewMemory()
		seed(t, fsys)
		require.NoError(t, fsys.WriteFile(p("target"), []byte("file"), 0o644))
		svc := files.New(files.WithFS(fsys))

		assert.False(t, svc.CopyDir(p("src"), p("target")))
		assert.Equal(t, "file", svc.LoadFile(p("target")))
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		fsys := newFaultFS()
		seed(t, fsys.FS)
		require.NoError(t, fsys.FS.WriteFile(p("out", "existing.txt"), []byte("keep"), 0o644))
		fsys.writeErr[p("out", "copy", "Game.sdpkg")] = errors.New("disk full")
		svc := files.New(files.WithFS(fsys))

		assert.False(t, svc.CopyDir(p("src"), p("out", "copy")))

		ok, err := fsys.Exists(p("out", "copy"))
		require.NoError(t, err)
		assert.False(t, ok, "created entries must be removed")
		assert.Equal(t, "keep", svc.LoadFile(p("out", "existing.txt")))
	})
}

func TestCopyDirOnDisk(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "Assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Assets", "Hero.sdprefab"), []byte("hero"), 0o644))

	dst := filepath.Join(t.TempDir(), "copy")
	svc := files.New()
	require.True(t, svc.CopyDir(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "Assets", "Hero.sdprefab"))
	require.NoError(t, err)
	assert.Equal(t, "hero", string(data))
}

func TestCopyDirSymlinks(t *testing.T) {
	src := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "shared.sdmat"), []byte("shared"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(outside, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Game.sdpkg"), []byte("pkg"), 0o644))
	symlinkOrSkip(t, filepath.Join(outside, "shared.sdmat"), filepath.Join(src, "shared.sdmat"))
	symlinkOrSkip(t, filepath.Join(outside, "lib"), filepath.Join(src, "lib"))
	symlinkOrSkip(t, filepath.Join(outside, "missing.sdmat"), filepath.Join(src, "dangling.sdmat"))

	dst := filepath.Join(t.TempDir(), "copy")
	svc := files.New()
	require.True(t, svc.CopyDir(src, dst))

	info, err := os.Lstat(filepath.Join(dst, "shared.sdmat"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular(), "a link to a file is copied as a file")
	assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm(), "the target's permissions are kept")

	data, err := os.ReadFile(filepath.Join(dst, "shared.sdmat"))
	require.NoError(t, err)
	assert.Equal(t, "shared", string(data))

	for _, skipped := range []string{"lib", "dangling.sdmat"} {
		_, err := os.Lstat(filepath.Join(dst, skipped))
		assert.True(t, os.IsNotExist(err), "%s is skipped", skipped)
	}
}

func TestUniqueFileName(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	svc := files.New(files.WithClock(func() time.Time { return fixed }))

	assert.Equal(t, "test_20250314_150926.txt", svc.UniqueFileName("test", ".txt", ""))
	assert.Equal(t, "test_20250314_150926.txt", svc.UniqueFileName("test", "txt", ""))
	assert.Equal(t, "test_20250314_150926", svc.UniqueFileName("test", "", ""))
	assert.Equal(t, "_20250314_150926.log", svc.UniqueFileName("", ".log", ""))
	assert.Equal(t, "a_b_c_20250314_150926.txt", svc.UniqueFileName(`a/b\c`, ".txt", ""))

	name := svc.UniqueFileName("test", ".txt", "")
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, `\`)

	full := svc.UniqueFileName("test", ".txt", "/tmp")
	assert.True(t, strings.HasPrefix(full, filepath.Join("/tmp", "test_")), full)
	assert.True(t, strings.HasSuffix(full, ".txt"))

	assert.Equal(t, svc.UniqueFileName("same", ".txt", ""), svc.UniqueFileName("same", ".txt", ""),
		"calls within one second collide")

	assert.Equal(t, "", svc.UniqueFileName("test", ".txt", invalidPath))

	cfg := config.Default()
	cfg.UniqueNameLayout = "20060102T150405.000"
	precise := files.New(files.WithConfig(cfg), files.WithClock(func() time.Time { return fixed }))
	assert.Equal(t, "build_20250314T150926.000.zip", precise.UniqueFileName("build", "zip", ""))
}

func TestUniqueFileNameRealClock(t *testing.T) {
	name := files.New().UniqueFileName("test", ".txt", "")
	assert.Regexp(t, `^test_\d{8}_\d{6}\.txt$`, name)
}

func TestZeroConfigUsesDefaults(t *testing.T) {
	svc := files.New(files.WithConfig(config.Config{}))
	assert.Regexp(t, `^test_\d{8}_\d{6}\.txt$`, svc.UniqueFileName("test", ".txt", ""))
}
