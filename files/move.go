package files

import (
	stderrors "errors"
	"path/filepath"
	"syscall"

	"github.com/jmgilman/go/stridepack/errors"
	"github.com/jmgilman/go/stridepack/fs/core"
	"github.com/jmgilman/go/stridepack/internal/guard"
	"github.com/jmgilman/go/stridepack/internal/validate"
)

// MoveFile moves the regular file srcPath to dstPath. The destination must
// not exist and its parent directory must already exist. It returns true
// only once the file is at dstPath and gone from srcPath.
//
// A rename is tried first. When the paths are on different devices the file
// is copied, the copy's size is checked, and only then is the source
// removed.
func (s *Service) MoveFile(srcPath, dstPath string) bool {
	return guard.Run(s.logger, "move_file", false, func() (bool, error) {
		src, err := validate.Resolve(srcPath)
		if err != nil {
			return false, err
		}
		dst, err := validate.Resolve(dstPath)
		if err != nil {
			return false, err
		}

		if _, err := s.statFile(src); err != nil {
			return false, err
		}

		ok, err := s.exists(dst)
		if err != nil {
			return false, err
		}
		if ok {
			return false, errors.WithContext(errors.New(errors.CodeAlreadyExists, "destination exists"), "path", dst)
		}

		// Both billy backends create missing parents on rename.
		if _, err := s.statDir(filepath.Dir(dst)); err != nil {
			return false, err
		}

		err = s.fs.Rename(src, dst)
		if err == nil {
			return true, nil
		}
		if !stderrors.Is(err, syscall.EXDEV) {
			return false, errors.WithContextMap(errors.WrapFS(err, "rename failed"), map[string]interface{}{
				"source":      src,
				"destination": dst,
			})
		}

		s.logger.Debug("cross-device move, copying", "source", src, "destination", dst)
		return true, s.copyThenRemove(src, dst)
	})
}

// copyThenRemove moves src to dst by copying. The source is removed only
// after the copy is confirmed; on any failure the partial copy is removed
// and the source is left untouched.
func (s *Service) copyThenRemove(src, dst string) error {
	info, err := s.statFile(src)
	if err != nil {
		return err
	}

	data, err := s.fs.ReadFile(src)
	if err != nil {
		return fsErr(err, "failed to read source", src)
	}

	if err := s.fs.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		s.discard(dst)
		return fsErr(err, "failed to write destination", dst)
	}

	written, err := s.stat(dst)
	if err != nil {
		s.discard(dst)
		return err
	}
	if written.Size() != int64(len(data)) {
		s.discard(dst)
		return errors.WithContextMap(errors.New(errors.CodeIO, "copy size mismatch"), map[string]interface{}{
			"path":     dst,
			"expected": len(data),
			"actual":   written.Size(),
		})
	}

	if err := s.fs.Remove(src); err != nil {
		s.discard(dst)
		return fsErr(err, "failed to remove source", src)
	}
	return nil
}

// discard removes a partial destination, logging rather than returning any
// failure.
func (s *Service) discard(path string) {
	if err := s.fs.Remove(path); err != nil && !core.IsMissing(err) {
		s.logger.WithOperation("discard_partial").Failure(fsErr(err, "failed to remove partial copy", path))
	}
}
