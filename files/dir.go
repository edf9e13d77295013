package files

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	"github.com/jmgilman/go/stridepack/errors"
	"github.com/jmgilman/go/stridepack/fs/core"
	"github.com/jmgilman/go/stridepack/internal/guard"
	"github.com/jmgilman/go/stridepack/internal/validate"
)

// ListOption configures ListFiles.
type ListOption func(*listConfig)

type listConfig struct {
	pattern   string
	recursive bool
}

// WithPattern restricts results to files whose base name matches the glob
// pattern. The default pattern "*" matches every file.
func WithPattern(pattern string) ListOption {
	return func(c *listConfig) {
		c.pattern = pattern
	}
}

// Recursive includes files in all subdirectories.
func Recursive() ListOption {
	return func(c *listConfig) {
		c.recursive = true
	}
}

// ListFiles returns the full paths of the regular files in dirPath in
// lexical order, including symbolic links to regular files. Directories are
// never included. The result is empty, and
// never nil, if the directory is invalid, missing or unreadable, or if the
// pattern does not compile.
func (s *Service) ListFiles(dirPath string, opts ...ListOption) []string {
	cfg := listConfig{pattern: "*"}
	for _, opt := range opts {
		opt(&cfg)
	}

	return guard.Run(s.logger, "list_files", []string{}, func() ([]string, error) {
		dir, err := validate.Resolve(dirPath)
		if err != nil {
			return nil, err
		}

		matcher, err := glob.Compile(cfg.pattern)
		if err != nil {
			return nil, errors.WrapWithContext(err, errors.CodeInvalidInput, "invalid pattern", map[string]interface{}{
				"pattern": cfg.pattern,
			})
		}

		if _, err := s.statDir(dir); err != nil {
			return nil, err
		}

		var files []string
		if cfg.recursive {
			files, err = s.walkFiles(dir, matcher)
		} else {
			files, err = s.readDirFiles(dir, matcher)
		}
		if err != nil {
			return nil, err
		}

		sort.Strings(files)
		return files, nil
	})
}

func (s *Service) readDirFiles(dir string, matcher glob.Glob) ([]string, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, fsErr(err, "failed to read directory", dir)
	}

	files := []string{}
	for _, entry := range entries {
		p := filepath.Join(dir, entry.Name())
		if matcher.Match(entry.Name()) && core.RegularFile(s.fs, p, entry) {
			files = append(files, p)
		}
	}
	return files, nil
}

func (s *Service) walkFiles(dir string, matcher glob.Glob) ([]string, error) {
	files := []string{}
	err := s.fs.Walk(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if matcher.Match(d.Name()) && core.RegularFile(s.fs, p, d) {
			files = append(files, filepath.FromSlash(p))
		}
		return nil
	})
	if err != nil {
		return nil, fsErr(err, "failed to walk directory", dir)
	}
	return files, nil
}

// EnsureDir creates dirPath and any missing parents. It returns true if the
// directory exists afterwards and false if the path names a file.
func (s *Service) EnsureDir(dirPath string) bool {
	return guard.Run(s.logger, "ensure_dir", false, func() (bool, error) {
		dir, err := validate.Resolve(dirPath)
		if err != nil {
			return false, err
		}

		ok, err := s.exists(dir)
		if err != nil {
			return false, err
		}
		if ok {
			if _, err := s.statDir(dir); err != nil {
				return false, err
			}
			return true, nil
		}

		if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
			return false, fsErr(err, "failed to create directory", dir)
		}
		return true, nil
	})
}

// CopyDir recursively copies srcDir into dstDir, overwriting files that
// already exist at the destination. It returns true only if every entry
// was copied.
//
// All checks run before anything is written: both paths must be valid,
// srcDir must be an existing directory that can be read in full, and dstDir
// must be neither srcDir nor inside it. Symbolic links to regular files are
// copied as files; links to directories and dangling links are skipped.
// If copying fails partway, every
// file and directory this call created is removed again. Destination files
// that were overwritten before the failure keep their new contents.
func (s *Service) CopyDir(srcDir, dstDir string) bool {
	return guard.Run(s.logger, "copy_dir", false, func() (bool, error) {
		src, err := validate.Resolve(srcDir)
		if err != nil {
			return false, err
		}
		dst, err := validate.Resolve(dstDir)
		if err != nil {
			return false, err
		}

		if _, err := s.statDir(src); err != nil {
			return false, err
		}
		if validate.Within(src, dst) {
			return false, errors.WithContextMap(
				errors.New(errors.CodeInvalidInput, "destination is the source or inside it"),
				map[string]interface{}{"source": src, "destination": dst},
			)
		}

		ok, err := s.exists(dst)
		if err != nil {
			return false, err
		}
		if ok {
			if _, err := s.statDir(dst); err != nil {
				return false, err
			}
		}

		if err := s.preflight(src); err != nil {
			return false, err
		}

		created, err := core.CopyTree(s.fs, s.fs, src, dst)
		if err != nil {
			copyErr := errors.WithContextMap(errors.WrapFS(err, "copy failed"), map[string]interface{}{
				"source":      src,
				"destination": dst,
				"created":     len(created),
			})
			if undoErr := core.Undo(s.fs, created); undoErr != nil {
				s.logger.WithOperation("copy_dir_rollback").Failure(errors.WrapFS(undoErr, "rollback incomplete"))
			}
			return false, copyErr
		}

		s.logger.Debug("directory copied", "source", src, "destination", dst, "created", len(created))
		return true, nil
	})
}

// preflight walks the source tree so that unreadable directories and
// unsupported entries are found before anything is written.
func (s *Service) preflight(src string) error {
	return s.fs.Walk(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fsErr(err, "source is not readable", p)
		}
		switch {
		case d.IsDir(), d.Type().IsRegular():
		case d.Type()&fs.ModeSymlink != 0:
			if !core.RegularFile(s.fs, p, d) {
				s.logger.WithPath(p).Debug("skipping symbolic link")
			}
		default:
			return errors.WithContext(errors.New(errors.CodeNotAFile, "unsupported entry in source"), "path", p)
		}
		return nil
	})
}
