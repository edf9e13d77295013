package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/stridepack/fs/core"
)

// TestManageFS tests Remove, RemoveAll and Rename.
func TestManageFS(t *testing.T, fsys core.FS, base string) {
	t.Run("RemoveFile", func(t *testing.T) {
		name := join(base, "remove.txt")
		mustWrite(t, fsys, name, "bye")
		if err := fsys.Remove(name); err != nil {
			t.Fatalf("Remove(remove.txt): got error %v, want nil", err)
		}
		if ok, _ := fsys.Exists(name); ok {
			t.Errorf("Exists(remove.txt) after Remove: got true, want false")
		}
	})

	t.Run("RemoveMissing", func(t *testing.T) {
		err := fsys.Remove(join(base, "never-existed.txt"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Remove(never-existed.txt): got error %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("RemoveAllTree", func(t *testing.T) {
		mustWrite(t, fsys, join(base, "tree", "x", "one.txt"), "1")
		mustWrite(t, fsys, join(base, "tree", "two.txt"), "2")
		if err := fsys.RemoveAll(join(base, "tree")); err != nil {
			t.Fatalf("RemoveAll(tree): got error %v, want nil", err)
		}
		if ok, _ := fsys.Exists(join(base, "tree")); ok {
			t.Errorf("Exists(tree) after RemoveAll: got true, want false")
		}
		if err := fsys.RemoveAll(join(base, "tree")); err != nil {
			t.Errorf("RemoveAll(tree) on missing path: got error %v, want nil", err)
		}
	})

	t.Run("Rename", func(t *testing.T) {
		from := join(base, "from.txt")
		to := join(base, "to.txt")
		mustWrite(t, fsys, from, "moved")
		if err := fsys.Rename(from, to); err != nil {
			t.Fatalf("Rename(from.txt, to.txt): got error %v, want nil", err)
		}
		if ok, _ := fsys.Exists(from); ok {
			t.Errorf("Exists(from.txt) after Rename: got true, want false")
		}
		data, err := fsys.ReadFile(to)
		if err != nil {
			t.Fatalf("ReadFile(to.txt): got error %v, want nil", err)
		}
		if string(data) != "moved" {
			t.Errorf("ReadFile(to.txt): got %q, want %q", data, "moved")
		}
	})

	t.Run("RenameMissing", func(t *testing.T) {
		err := fsys.Rename(join(base, "ghost.txt"), join(base, "ghost2.txt"))
		if err == nil {
			t.Errorf("Rename(ghost.txt): got nil error, want an error")
		}
	})
}
