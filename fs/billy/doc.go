// Package billy provides a go-billy-backed implementation of core.FS.
//
// NewLocal wraps billy's osfs and NewMemory wraps memfs. Both are exposed
// through the same FS type, so code written against core.FS runs unchanged
// against the local disk or an in-memory tree.
//
// Usage:
//
//	// Local filesystem accepting absolute host paths on any volume
//	fsys := billy.NewLocal()
//	data, err := fsys.ReadFile("/home/me/Game/Game.sdpkg")
//	data, err = fsys.ReadFile(`D:\Games\Hero\Hero.sdpkg`) // on Windows
//
//	// Local filesystem confined to a project directory; symbolic links
//	// are resolved and may not point outside the root
//	projectFS := billy.NewLocal(billy.WithRoot("/home/me/Game"), billy.WithBoundOS())
//
// # Memory Filesystem
//
// For tests, use the in-memory filesystem:
//
//	fsys := billy.NewMemory()
//	err := fsys.WriteFile("/project/Game.sdpkg", []byte("{}"), 0o644)
//
// # Thread Safety
//
// Local FS values are safe for concurrent use by multiple goroutines.
// The memory filesystem is meant for single-goroutine tests.
package billy
