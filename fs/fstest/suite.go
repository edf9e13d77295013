// Package fstest provides a conformance test suite for core.FS providers.
//
// Provider packages call TestSuite from their own tests to verify they honor
// the contracts documented on the core interfaces. The suite only checks
// interface behavior; it does not care where the bytes live.
//
// Example usage:
//
//	func TestMemory(t *testing.T) {
//	    fstest.TestSuite(t, func(t *testing.T) (core.FS, string) {
//	        return billy.NewMemory(), "/"
//	    })
//	}
package fstest

import (
	"path"
	"testing"

	"github.com/jmgilman/go/stridepack/fs/core"
)

// Factory returns a fresh, empty filesystem and the directory inside it that
// tests may freely populate.
type Factory func(t *testing.T) (core.FS, string)

// TestSuite runs every conformance group against filesystems produced by
// newFS. Each group receives its own instance.
func TestSuite(t *testing.T, newFS Factory) {
	t.Run("ReadFS", func(t *testing.T) {
		fsys, base := newFS(t)
		TestReadFS(t, fsys, base)
	})
	t.Run("WriteFS", func(t *testing.T) {
		fsys, base := newFS(t)
		TestWriteFS(t, fsys, base)
	})
	t.Run("ManageFS", func(t *testing.T) {
		fsys, base := newFS(t)
		TestManageFS(t, fsys, base)
	})
	t.Run("WalkFS", func(t *testing.T) {
		fsys, base := newFS(t)
		TestWalkFS(t, fsys, base)
	})
	t.Run("ChrootFS", func(t *testing.T) {
		fsys, base := newFS(t)
		TestChrootFS(t, fsys, base)
	})
}

// join builds a path under base using forward slashes.
func join(base string, elem ...string) string {
	return path.Join(append([]string{base}, elem...)...)
}

// mustWrite writes a setup file and fails the test on error.
func mustWrite(t *testing.T, fsys core.FS, name, content string) {
	t.Helper()
	if err := fsys.MkdirAll(path.Dir(name), 0o755); err != nil {
		t.Fatalf("MkdirAll(%s): setup failed: %v", path.Dir(name), err)
	}
	if err := fsys.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): setup failed: %v", name, err)
	}
}
