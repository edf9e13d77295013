package fstest

import (
	"testing"

	"github.com/jmgilman/go/stridepack/fs/core"
)

// TestWriteFS tests WriteFile and MkdirAll.
func TestWriteFS(t *testing.T, fsys core.FS, base string) {
	t.Run("WriteAndOverwrite", func(t *testing.T) {
		name := join(base, "write.txt")
		if err := fsys.WriteFile(name, []byte("first version"), 0o644); err != nil {
			t.Fatalf("WriteFile(write.txt): got error %v, want nil", err)
		}
		if err := fsys.WriteFile(name, []byte("second"), 0o644); err != nil {
			t.Fatalf("WriteFile(write.txt) overwrite: got error %v, want nil", err)
		}
		data, err := fsys.ReadFile(name)
		if err != nil {
			t.Fatalf("ReadFile(write.txt): got error %v, want nil", err)
		}
		if string(data) != "second" {
			t.Errorf("ReadFile(write.txt): got %q, want %q (file must be truncated)", data, "second")
		}
	})

	t.Run("MkdirAllNested", func(t *testing.T) {
		dir := join(base, "a", "b", "c")
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll(a/b/c): got error %v, want nil", err)
		}
		for _, p := range []string{join(base, "a"), join(base, "a", "b"), dir} {
			info, err := fsys.Stat(p)
			if err != nil {
				t.Fatalf("Stat(%s): got error %v, want nil", p, err)
			}
			if !info.IsDir() {
				t.Errorf("Stat(%s).IsDir(): got false, want true", p)
			}
		}
	})

	t.Run("MkdirAllIdempotent", func(t *testing.T) {
		dir := join(base, "again")
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll(again): got error %v, want nil", err)
		}
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			t.Errorf("MkdirAll(again) second call: got error %v, want nil", err)
		}
	})
}
