package files

import (
	"path/filepath"
	"time"

	"github.com/jmgilman/go/stridepack/errors"
	"github.com/jmgilman/go/stridepack/fs/core"
	"github.com/jmgilman/go/stridepack/internal/guard"
	"github.com/jmgilman/go/stridepack/internal/validate"
)

// SaveFile writes content to filePath, replacing any existing file and
// creating missing parent directories. Empty content is rejected. If the
// write fails, the parent directories this call created are removed again.
// Returns true only once the write has succeeded.
func (s *Service) SaveFile(content, filePath string) bool {
	return guard.Run(s.logger, "save_file", false, func() (bool, error) {
		if content == "" {
			return false, errors.WithContext(errors.New(errors.CodeInvalidInput, "empty content"), "path", filePath)
		}

		path, err := validate.Resolve(filePath)
		if err != nil {
			return false, err
		}

		ok, err := s.exists(path)
		if err != nil {
			return false, err
		}
		if ok {
			if _, err := s.statFile(path); err != nil {
				return false, err
			}
		}

		parent := filepath.Dir(path)
		created, err := core.MissingAncestors(s.fs, filepath.ToSlash(parent))
		if err != nil {
			return false, fsErr(err, "failed to inspect parent directory", path)
		}
		if err := s.fs.MkdirAll(parent, dirPerm); err != nil {
			return false, fsErr(err, "failed to create parent directory", path)
		}
		if err := s.fs.WriteFile(path, []byte(content), filePerm); err != nil {
			if undoErr := core.Undo(s.fs, created); undoErr != nil {
				s.logger.WithOperation("save_file_rollback").Failure(errors.WrapFS(undoErr, "rollback incomplete"))
			}
			return false, fsErr(err, "failed to write file", path)
		}

		s.logger.Debug("file saved", "path", path, "size", len(content))
		return true, nil
	})
}

// LoadFile returns the contents of filePath, or "" if it cannot be read.
func (s *Service) LoadFile(filePath string) string {
	return guard.Run(s.logger, "load_file", "", func() (string, error) {
		path, err := validate.Resolve(filePath)
		if err != nil {
			return "", err
		}

		if _, err := s.statFile(path); err != nil {
			return "", err
		}

		data, err := s.fs.ReadFile(path)
		if err != nil {
			return "", fsErr(err, "failed to read file", path)
		}
		return string(data), nil
	})
}

// DeleteFile removes the regular file at filePath. It returns true only if
// the file existed and was removed.
func (s *Service) DeleteFile(filePath string) bool {
	return guard.Run(s.logger, "delete_file", false, func() (bool, error) {
		path, err := validate.Resolve(filePath)
		if err != nil {
			return false, err
		}

		if _, err := s.statFile(path); err != nil {
			return false, err
		}

		if err := s.fs.Remove(path); err != nil {
			return false, fsErr(err, "failed to delete file", path)
		}
		return true, nil
	})
}

// LastModified returns the modification time of the regular file at
// filePath. The boolean is false if the time is unavailable.
func (s *Service) LastModified(filePath string) (time.Time, bool) {
	type result struct {
		t  time.Time
		ok bool
	}

	r := guard.Run(s.logger, "last_modified", result{}, func() (result, error) {
		path, err := validate.Resolve(filePath)
		if err != nil {
			return result{}, err
		}

		info, err := s.statFile(path)
		if err != nil {
			return result{}, err
		}
		return result{t: info.ModTime(), ok: true}, nil
	})
	return r.t, r.ok
}
