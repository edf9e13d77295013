// Package core defines the filesystem contracts the stridepack services are
// written against.
//
// The services never call the os package directly. They receive an FS (or
// one of its smaller sub-interfaces) so that the same code runs against the
// local disk and against an in-memory filesystem in tests.
//
// # Interface Hierarchy
//
// FS is composed of five sub-interfaces:
//
//   - ReadFS: Stat, ReadDir, ReadFile, Exists
//   - WriteFS: WriteFile, MkdirAll
//   - ManageFS: Remove, RemoveAll, Rename
//   - WalkFS: Walk
//   - ChrootFS: Chroot
//
// # Paths
//
// Paths are slash-separated. Absolute paths are resolved against the
// provider's root. The default local provider keeps one root per volume, so
// host paths such as "/home/me/project/Game.sdpkg" or "C:/Games/Game.sdpkg"
// are accepted unchanged.
//
// # Copying
//
// CopyTree copies a directory tree between two filesystems and reports
// every entry it created, which Undo can later remove again:
//
//	created, err := core.CopyTree(src, dst, "/project/Assets", "/backup/Assets")
//	if err != nil {
//	    _ = core.Undo(dst, created)
//	}
//
// Concrete implementations live in github.com/jmgilman/go/stridepack/fs/billy.
package core
