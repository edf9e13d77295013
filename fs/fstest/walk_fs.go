package fstest

import (
	"io/fs"
	"testing"

	"github.com/jmgilman/go/stridepack/fs/core"
)

// TestWalkFS tests directory tree traversal with Walk.
// Verifies lexical ordering and SkipDir handling.
func TestWalkFS(t *testing.T, fsys core.FS, base string) {
	root := join(base, "walk")
	mustWrite(t, fsys, join(root, "b.txt"), "b")
	mustWrite(t, fsys, join(root, "a", "deep.txt"), "deep")
	mustWrite(t, fsys, join(root, "c", "skipped.txt"), "skip")

	t.Run("LexicalOrder", func(t *testing.T) {
		var visited []string
		err := fsys.Walk(root, func(p string, _ fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, p)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk(walk): got error %v, want nil", err)
		}

		want := []string{
			root,
			join(root, "a"),
			join(root, "a", "deep.txt"),
			join(root, "b.txt"),
			join(root, "c"),
			join(root, "c", "skipped.txt"),
		}
		if len(visited) != len(want) {
			t.Fatalf("Walk(walk): visited %v, want %v", visited, want)
		}
		for i := range want {
			if visited[i] != want[i] {
				t.Errorf("Walk(walk)[%d]: got %q, want %q", i, visited[i], want[i])
			}
		}
	})

	t.Run("SkipDir", func(t *testing.T) {
		var files []string
		err := fsys.Walk(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && d.Name() == "c" {
				return fs.SkipDir
			}
			if !d.IsDir() {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Walk(walk) with SkipDir: got error %v, want nil", err)
		}
		for _, f := range files {
			if f == join(root, "c", "skipped.txt") {
				t.Errorf("Walk(walk) with SkipDir: visited %q inside skipped directory", f)
			}
		}
		if len(files) != 2 {
			t.Errorf("Walk(walk) with SkipDir: got %d files, want 2", len(files))
		}
	})

	t.Run("MissingRoot", func(t *testing.T) {
		var called bool
		err := fsys.Walk(join(base, "no-such-dir"), func(_ string, _ fs.DirEntry, err error) error {
			called = true
			return err
		})
		if !called {
			t.Errorf("Walk(no-such-dir): walkFn was not called with the error")
		}
		if err == nil {
			t.Errorf("Walk(no-such-dir): got nil error, want an error")
		}
	})
}
