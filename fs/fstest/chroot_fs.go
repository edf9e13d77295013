package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/stridepack/fs/core"
)

// TestChrootFS tests scoped filesystem views and boundary enforcement.
func TestChrootFS(t *testing.T, fsys core.FS, base string) {
	mustWrite(t, fsys, join(base, "jail", "inside.txt"), "inside")
	mustWrite(t, fsys, join(base, "outside.txt"), "outside")

	jail, err := fsys.Chroot(join(base, "jail"))
	if err != nil {
		t.Fatalf("Chroot(jail): got error %v, want nil", err)
	}

	t.Run("ReadInside", func(t *testing.T) {
		data, err := jail.ReadFile("/inside.txt")
		if err != nil {
			t.Fatalf("jail.ReadFile(/inside.txt): got error %v, want nil", err)
		}
		if string(data) != "inside" {
			t.Errorf("jail.ReadFile(/inside.txt): got %q, want %q", data, "inside")
		}
	})

	t.Run("WriteLandsInside", func(t *testing.T) {
		if err := jail.WriteFile("/new.txt", []byte("new"), 0o644); err != nil {
			t.Fatalf("jail.WriteFile(/new.txt): got error %v, want nil", err)
		}
		data, err := fsys.ReadFile(join(base, "jail", "new.txt"))
		if err != nil {
			t.Fatalf("ReadFile(jail/new.txt): got error %v, want nil", err)
		}
		if string(data) != "new" {
			t.Errorf("ReadFile(jail/new.txt): got %q, want %q", data, "new")
		}
	})

	t.Run("TraversalRejected", func(t *testing.T) {
		_, err := jail.ReadFile("../outside.txt")
		if err == nil {
			t.Errorf("jail.ReadFile(../outside.txt): got nil error, want traversal rejected")
		}
		_, err = jail.ReadFile("/outside.txt")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("jail.ReadFile(/outside.txt): got error %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("TypePreserved", func(t *testing.T) {
		if jail.Type() != fsys.Type() {
			t.Errorf("jail.Type(): got %v, want %v", jail.Type(), fsys.Type())
		}
	})
}
