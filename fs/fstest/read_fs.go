package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/stridepack/fs/core"
)

// TestReadFS tests Stat, ReadDir, ReadFile and Exists.
func TestReadFS(t *testing.T, fsys core.FS, base string) {
	mustWrite(t, fsys, join(base, "read", "b.txt"), "bravo")
	mustWrite(t, fsys, join(base, "read", "a.txt"), "alpha")
	if err := fsys.MkdirAll(join(base, "read", "sub"), 0o755); err != nil {
		t.Fatalf("MkdirAll(read/sub): setup failed: %v", err)
	}

	t.Run("ReadFile", func(t *testing.T) {
		data, err := fsys.ReadFile(join(base, "read", "a.txt"))
		if err != nil {
			t.Fatalf("ReadFile(read/a.txt): got error %v, want nil", err)
		}
		if string(data) != "alpha" {
			t.Errorf("ReadFile(read/a.txt): got %q, want %q", data, "alpha")
		}
	})

	t.Run("ReadFileMissing", func(t *testing.T) {
		_, err := fsys.ReadFile(join(base, "read", "missing.txt"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("ReadFile(read/missing.txt): got error %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("Stat", func(t *testing.T) {
		info, err := fsys.Stat(join(base, "read", "a.txt"))
		if err != nil {
			t.Fatalf("Stat(read/a.txt): got error %v, want nil", err)
		}
		if info.IsDir() {
			t.Errorf("Stat(read/a.txt).IsDir(): got true, want false")
		}
		if info.Size() != int64(len("alpha")) {
			t.Errorf("Stat(read/a.txt).Size(): got %d, want %d", info.Size(), len("alpha"))
		}

		info, err = fsys.Stat(join(base, "read", "sub"))
		if err != nil {
			t.Fatalf("Stat(read/sub): got error %v, want nil", err)
		}
		if !info.IsDir() {
			t.Errorf("Stat(read/sub).IsDir(): got false, want true")
		}
	})

	t.Run("ReadDirSorted", func(t *testing.T) {
		entries, err := fsys.ReadDir(join(base, "read"))
		if err != nil {
			t.Fatalf("ReadDir(read): got error %v, want nil", err)
		}
		want := []string{"a.txt", "b.txt", "sub"}
		if len(entries) != len(want) {
			t.Fatalf("ReadDir(read): got %d entries, want %d", len(entries), len(want))
		}
		for i, entry := range entries {
			if entry.Name() != want[i] {
				t.Errorf("ReadDir(read)[%d]: got %q, want %q", i, entry.Name(), want[i])
			}
		}
		if !entries[2].IsDir() {
			t.Errorf("ReadDir(read)[2].IsDir(): got false, want true")
		}
	})

	t.Run("Exists", func(t *testing.T) {
		ok, err := fsys.Exists(join(base, "read", "a.txt"))
		if err != nil || !ok {
			t.Errorf("Exists(read/a.txt): got (%v, %v), want (true, nil)", ok, err)
		}
		ok, err = fsys.Exists(join(base, "read", "nope"))
		if err != nil || ok {
			t.Errorf("Exists(read/nope): got (%v, %v), want (false, nil)", ok, err)
		}
	})
}
