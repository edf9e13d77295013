package core_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/jmgilman/go/stridepack/fs/billy"
	"github.com/jmgilman/go/stridepack/fs/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSTypeString(t *testing.T) {
	tests := []struct {
		fsType core.FSType
		want   string
	}{
		{core.FSTypeLocal, "local"},
		{core.FSTypeMemory, "memory"},
		{core.FSTypeUnknown, "unknown"},
		{core.FSType(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.fsType.String())
	}
}

func seed(t *testing.T, fsys core.FS, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, fsys.MkdirAll(parent(name), 0o755))
		require.NoError(t, fsys.WriteFile(name, []byte(content), 0o644))
	}
}

func parent(name string) string {
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == '/' {
			return name[:i]
		}
	}
	return "/"
}

func TestCopyTree(t *testing.T) {
	fsys := billy.NewMemory()
	seed(t, fsys, map[string]string{
		"/src/a.txt":       "a",
		"/src/sub/b.txt":   "b",
		"/src/sub/x/c.txt": "c",
	})

	created, err := core.CopyTree(fsys, fsys, "/src", "/out/dst")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/out",
		"/out/dst",
		"/out/dst/a.txt",
		"/out/dst/sub",
		"/out/dst/sub/b.txt",
		"/out/dst/sub/x",
		"/out/dst/sub/x/c.txt",
	}, created)

	data, err := fsys.ReadFile("/out/dst/sub/x/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "c", string(data))
}

func TestCopyTreeOverwriteNotRecorded(t *testing.T) {
	fsys := billy.NewMemory()
	seed(t, fsys, map[string]string{
		"/src/a.txt": "new",
		"/src/b.txt": "b",
		"/dst/a.txt": "old",
	})

	created, err := core.CopyTree(fsys, fsys, "/src", "/dst")
	require.NoError(t, err)
	assert.Equal(t, []string{"/dst/b.txt"}, created)

	data, err := fsys.ReadFile("/dst/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestUndo(t *testing.T) {
	fsys := billy.NewMemory()
	seed(t, fsys, map[string]string{
		"/src/a.txt":     "a",
		"/src/sub/b.txt": "b",
		"/keep/k.txt":    "k",
	})

	created, err := core.CopyTree(fsys, fsys, "/src", "/keep/copy")
	require.NoError(t, err)
	require.NoError(t, core.Undo(fsys, created))

	ok, err := fsys.Exists("/keep/copy")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = fsys.Exists("/keep/k.txt")
	require.NoError(t, err)
	assert.True(t, ok, "pre-existing entries must survive Undo")
}

func TestUndoSkipsMissing(t *testing.T) {
	fsys := billy.NewMemory()
	assert.NoError(t, core.Undo(fsys, []string{"/gone", "/gone/file.txt"}))
}

// failingWriter fails every write to one path.
type failingWriter struct {
	core.FS
	failOn string
}

func (f *failingWriter) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if name == f.failOn {
		return errors.New("disk full")
	}
	return f.FS.WriteFile(name, data, perm)
}

func TestCopyTreePartialFailure(t *testing.T) {
	fsys := billy.NewMemory()
	seed(t, fsys, map[string]string{
		"/src/a.txt": "a",
		"/src/b.txt": "b",
	})

	dst := &failingWriter{FS: fsys, failOn: "/dst/b.txt"}
	created, err := core.CopyTree(fsys, dst, "/src", "/dst")
	require.Error(t, err)
	assert.Equal(t, []string{"/dst", "/dst/a.txt"}, created)

	require.NoError(t, core.Undo(fsys, created))
	ok, err := fsys.Exists("/dst")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMissingAncestors(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, fsys.MkdirAll("/a", 0o755))

	missing, err := core.MissingAncestors(fsys, "/a/b/c")
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/b", "/a/b/c"}, missing)

	missing, err = core.MissingAncestors(fsys, "/a")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestCopyTreeSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "real.txt"), []byte("real"), 0o640))
	for link, target := range map[string]string{
		"file.txt":     "real.txt",
		"dir":          "sub",
		"dangling.txt": "gone.txt",
	} {
		if err := os.Symlink(target, filepath.Join(dir, "src", link)); err != nil {
			t.Skipf("symbolic links unavailable: %v", err)
		}
	}

	fsys := billy.NewLocal(billy.WithRoot(dir))

	entries, err := fsys.ReadDir("/src")
	require.NoError(t, err)
	regular := map[string]bool{}
	for _, e := range entries {
		regular[e.Name()] = core.RegularFile(fsys, "/src/"+e.Name(), e)
	}
	assert.Equal(t, map[string]bool{
		"dangling.txt": false,
		"dir":          false,
		"file.txt":     true,
		"real.txt":     true,
		"sub":          false,
	}, regular)

	created, err := core.CopyTree(fsys, fsys, "/src", "/dst")
	require.NoError(t, err)
	assert.Equal(t, []string{"/dst", "/dst/file.txt", "/dst/real.txt", "/dst/sub"}, created)

	info, err := os.Lstat(filepath.Join(dir, "dst", "file.txt"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Equal(t, fs.FileMode(0o640), info.Mode().Perm())

	data, err := fsys.ReadFile("/dst/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "real", string(data))
}

func TestIsMissing(t *testing.T) {
	assert.True(t, core.IsMissing(fs.ErrNotExist))
	assert.True(t, core.IsMissing(&fs.PathError{Op: "stat", Path: "/a", Err: fs.ErrNotExist}))
	assert.True(t, core.IsMissing(&fs.PathError{Op: "stat", Path: "/file/sub", Err: syscall.ENOTDIR}))
	assert.False(t, core.IsMissing(fs.ErrPermission))
	assert.False(t, core.IsMissing(nil))
}
