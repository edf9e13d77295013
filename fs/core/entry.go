package core

import "io/fs"

// RegularFile reports whether the entry d found at p is a regular file or a
// symbolic link whose target is one. Links are resolved with fsys.Stat;
// dangling links and links to directories report false.
func RegularFile(fsys ReadFS, p string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}

	info, err := fsys.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
