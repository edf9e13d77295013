package billy

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/jmgilman/go/stridepack/fs/core"
)

// FS adapts a billy.Filesystem to core.FS.
//
// An FS either has a single root (bfs) or, for host filesystems, one root
// per volume (host).
type FS struct {
	bfs    billy.Filesystem
	host   *volumes
	fsType core.FSType
}

// volumes opens one billy root per volume on first use. Volume names are
// matched case-insensitively.
type volumes struct {
	mu     sync.Mutex
	roots  map[string]billy.Filesystem
	volume func(path string) string
	open   func(vol string) billy.Filesystem
}

func (v *volumes) root(vol string) billy.Filesystem {
	v.mu.Lock()
	defer v.mu.Unlock()

	key := strings.ToUpper(vol)
	r, ok := v.roots[key]
	if !ok {
		r = v.open(key)
		v.roots[key] = r
	}
	return r
}

// Option configures filesystem creation.
type Option func(*config)

type config struct {
	root  string
	bound bool
}

// WithRoot roots a local filesystem at dir. Every path is then resolved
// relative to dir.
func WithRoot(dir string) Option {
	return func(c *config) {
		c.root = dir
	}
}

// WithBoundOS makes a local filesystem resolve symbolic links and reject
// any that point outside its root.
func WithBoundOS() Option {
	return func(c *config) {
		c.bound = true
	}
}

// NewLocal creates a go-billy-backed local filesystem.
//
// Without WithRoot it accepts absolute host paths on any volume: each path
// is served by an osfs rooted at its volume ("/" on POSIX, "C:\" for
// "C:\Users\me" on Windows).
func NewLocal(opts ...Option) *FS {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	var osOpts []osfs.Option
	if cfg.bound {
		osOpts = append(osOpts, osfs.WithBoundOS())
	}

	if cfg.root != "" {
		return &FS{
			bfs:    osfs.New(cfg.root, osOpts...),
			fsType: core.FSTypeLocal,
		}
	}

	return &FS{
		host: &volumes{
			roots:  map[string]billy.Filesystem{},
			volume: filepath.VolumeName,
			open: func(vol string) billy.Filesystem {
				return osfs.New(filepath.FromSlash(vol)+string(filepath.Separator), osOpts...)
			},
		},
		fsType: core.FSTypeLocal,
	}
}

// NewMemory creates an empty go-billy-backed in-memory filesystem.
func NewMemory(_ ...Option) *FS {
	return &FS{
		bfs:    memfs.New(),
		fsType: core.FSTypeMemory,
	}
}

// Type returns the filesystem type chosen at construction.
func (f *FS) Type() core.FSType {
	return f.fsType
}

// normalize converts paths to use forward slashes consistently.
// Containment is enforced by billy itself.
func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// resolve returns the billy filesystem serving name, the path within it
// and the volume prefix that was stripped.
func (f *FS) resolve(name string) (billy.Filesystem, string, string) {
	name = normalize(name)
	if f.host == nil {
		return f.bfs, name, ""
	}

	vol := f.host.volume(name)
	inner := name[len(vol):]
	if inner == "" {
		inner = "/"
	}
	return f.host.root(vol), inner, vol
}

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info fs.FileInfo
}

func (d *dirEntry) Name() string               { return d.info.Name() }
func (d *dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d *dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d *dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

// Stat returns file metadata for the named file, following symbolic links.
func (f *FS) Stat(name string) (fs.FileInfo, error) {
	bfs, p, _ := f.resolve(name)
	return bfs.Stat(p)
}

// ReadDir reads the named directory and returns its entries sorted by name.
// Entries describe the links themselves, not their targets.
func (f *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	bfs, p, _ := f.resolve(name)
	// Billy's ReadDir returns []fs.FileInfo, we need []fs.DirEntry
	infos, err := bfs.ReadDir(p)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = &dirEntry{info: info}
	}
	return entries, nil
}

// ReadFile reads the named file and returns its contents.
func (f *FS) ReadFile(name string) ([]byte, error) {
	bfs, p, _ := f.resolve(name)
	return util.ReadFile(bfs, p)
}

// Exists reports whether the named file or directory exists.
func (f *FS) Exists(name string) (bool, error) {
	_, err := f.Stat(name)
	if err == nil {
		return true, nil
	}
	if core.IsMissing(err) {
		return false, nil
	}
	return false, err
}

// WriteFile writes data to the named file, creating or truncating it.
func (f *FS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	bfs, p, _ := f.resolve(name)
	return util.WriteFile(bfs, p, data, perm)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (f *FS) MkdirAll(path string, perm fs.FileMode) error {
	bfs, p, _ := f.resolve(path)
	return bfs.MkdirAll(p, perm)
}

// Remove removes the named file or empty directory.
func (f *FS) Remove(name string) error {
	bfs, p, _ := f.resolve(name)
	return bfs.Remove(p)
}

// RemoveAll removes path and any children it contains.
func (f *FS) RemoveAll(path string) error {
	bfs, p, _ := f.resolve(path)
	return util.RemoveAll(bfs, p)
}

// Rename renames (moves) oldpath to newpath.
//
// Both billy backends create missing parents of newpath; callers that must
// not create directories check the destination parent first. Renaming
// between two volumes fails with an error matching syscall.EXDEV.
func (f *FS) Rename(oldpath, newpath string) error {
	oldFS, oldP, oldVol := f.resolve(oldpath)
	_, newP, newVol := f.resolve(newpath)
	if !strings.EqualFold(oldVol, newVol) {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
	}
	return oldFS.Rename(oldP, newP)
}

// Walk walks the file tree rooted at root, calling walkFn for each file or
// directory in the tree, including root. Symbolic links are reported but
// never followed.
func (f *FS) Walk(root string, walkFn fs.WalkDirFunc) error {
	bfs, p, vol := f.resolve(root)
	w := walker{bfs: bfs, vol: vol, fn: walkFn}

	info, err := bfs.Lstat(p)
	if err != nil {
		err = walkFn(vol+p, nil, err)
	} else {
		err = w.walk(p, &dirEntry{info: info})
	}
	if errors.Is(err, fs.SkipDir) || errors.Is(err, fs.SkipAll) {
		return nil
	}
	return err
}

// walker reports paths with the volume prefix the caller used.
type walker struct {
	bfs billy.Filesystem
	vol string
	fn  fs.WalkDirFunc
}

func (w walker) walk(path string, d fs.DirEntry) error {
	if err := w.fn(w.vol+path, d, nil); err != nil || !d.IsDir() {
		if errors.Is(err, fs.SkipDir) && d.IsDir() {
			err = nil
		}
		return err
	}

	entries, err := w.bfs.ReadDir(path)
	if err != nil {
		err = w.fn(w.vol+path, d, err)
		if err != nil {
			return err
		}
	}

	for _, entry := range entries {
		newPath := normalize(filepath.Join(path, entry.Name()))
		if err := w.walk(newPath, &dirEntry{info: entry}); err != nil {
			if errors.Is(err, fs.SkipDir) {
				continue
			}
			return err
		}
	}
	return nil
}

// Chroot returns a filesystem scoped to the given directory.
func (f *FS) Chroot(dir string) (core.FS, error) {
	bfs, p, _ := f.resolve(dir)
	chrootFS, err := bfs.Chroot(p)
	if err != nil {
		return nil, err
	}
	return &FS{bfs: chrootFS, fsType: f.fsType}, nil
}

// Compile-time interface check.
var _ core.FS = (*FS)(nil)
