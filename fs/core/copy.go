package core

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// CopyTree copies the directory tree at srcRoot in src to dstRoot in dst,
// preserving the directory structure and file permission bits.
//
// Symbolic links to regular files are copied as the file they point to.
// Every other link is skipped.
//
// Existing destination files are overwritten. The returned slice lists every
// destination entry that did not exist before the call, in creation order,
// including missing ancestors of dstRoot. It is populated even when an error
// is returned so the caller can pass it to Undo.
//
// Example:
//
//	created, err := core.CopyTree(localFS, localFS, "/project/Assets", "/tmp/Assets")
func CopyTree(src TreeReader, dst TreeWriter, srcRoot, dstRoot string) ([]string, error) {
	srcRoot = clean(srcRoot)
	dstRoot = clean(dstRoot)

	var created []string

	missing, err := MissingAncestors(dst, dstRoot)
	if err != nil {
		return created, err
	}
	if len(missing) > 0 {
		if err := dst.MkdirAll(dstRoot, 0o755); err != nil {
			return created, fmt.Errorf("failed to create %s: %w", dstRoot, err)
		}
		created = append(created, missing...)
	}

	prefix := srcRoot
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	walkErr := src.Walk(srcRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := ""
		if p != srcRoot {
			rel = strings.TrimPrefix(p, prefix)
		}
		target := path.Join(dstRoot, rel)

		existed, err := dst.Exists(target)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", target, err)
		}

		if d.IsDir() {
			if existed {
				return nil
			}
			if err := dst.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", target, err)
			}
			created = append(created, target)
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 && !RegularFile(src, p, d) {
			return nil
		}

		info, err := src.Stat(p)
		if err != nil {
			return fmt.Errorf("failed to get file info for %s: %w", p, err)
		}

		data, err := src.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}

		if err := dst.WriteFile(target, data, info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		if !existed {
			created = append(created, target)
		}
		return nil
	})

	return created, walkErr
}

// Undo removes the entries listed in created in reverse order, so files go
// before the directories that hold them. Entries that are already gone are
// skipped. All removal errors are joined.
func Undo(dst ManageFS, created []string) error {
	var errs []error
	for i := len(created) - 1; i >= 0; i-- {
		if err := dst.Remove(created[i]); err != nil && !IsMissing(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MissingAncestors returns dir and each of its ancestors that do not exist
// yet, outermost first. Passing the result to Undo after a failed write
// removes exactly the directories that MkdirAll created.
func MissingAncestors(fsys ReadFS, dir string) ([]string, error) {
	var missing []string
	for current := dir; ; {
		ok, err := fsys.Exists(current)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", current, err)
		}
		if ok {
			break
		}
		missing = append([]string{current}, missing...)

		parent := path.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return missing, nil
}

func clean(p string) string {
	return path.Clean(filepath.ToSlash(p))
}
