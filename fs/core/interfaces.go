package core

import (
	"io/fs"
)

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a disk-backed filesystem.
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// FS is the full filesystem contract used by the file service.
type FS interface {
	ReadFS
	WriteFS
	ManageFS
	WalkFS
	ChrootFS

	// Type returns the underlying filesystem type.
	Type() FSType
}

// ReadFS defines read-only filesystem operations.
//
// The path service only needs ReadFS: it inspects directories while
// looking for project markers but never modifies anything.
type ReadFS interface {
	// Stat returns metadata for the named file or directory.
	// A missing path yields an error matching fs.ErrNotExist.
	Stat(name string) (fs.FileInfo, error)

	// ReadDir returns the entries of the named directory sorted by name.
	ReadDir(name string) ([]fs.DirEntry, error)

	// ReadFile returns the full contents of the named file.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether the named file or directory exists.
	// A false result with a non-nil error means existence could not be
	// determined, not that the path is absent.
	Exists(name string) (bool, error)
}

// WriteFS defines write operations.
type WriteFS interface {
	// WriteFile writes data to the named file, truncating it if it exists.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory along with any missing parents.
	// It does nothing if the directory already exists.
	MkdirAll(path string, perm fs.FileMode) error
}

// ManageFS defines operations that remove or move entries.
type ManageFS interface {
	// Remove removes the named file or empty directory.
	Remove(name string) error

	// RemoveAll removes path and any children it contains.
	// A missing path is not an error.
	RemoveAll(path string) error

	// Rename moves oldpath to newpath.
	Rename(oldpath, newpath string) error
}

// WalkFS defines directory tree traversal.
type WalkFS interface {
	// Walk visits root and every entry below it in lexical order,
	// calling walkFn for each. Symbolic links are not followed.
	Walk(root string, walkFn fs.WalkDirFunc) error
}

// ChrootFS defines the ability to create scoped filesystem views.
//
// The returned FS resolves every path relative to dir and refuses paths
// that would climb out of it.
type ChrootFS interface {
	Chroot(dir string) (FS, error)
}

// TreeReader is the source side of CopyTree.
type TreeReader interface {
	ReadFS
	WalkFS
}

// TreeWriter is the destination side of CopyTree.
type TreeWriter interface {
	ReadFS
	WriteFS
}
