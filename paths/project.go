package paths

import (
	"path/filepath"

	"github.com/jmgilman/go/stridepack/errors"
	"github.com/jmgilman/go/stridepack/fs/core"
	"github.com/jmgilman/go/stridepack/internal/guard"
	"github.com/jmgilman/go/stridepack/internal/validate"
)

// IsProject reports whether dirPath is an existing directory holding a
// regular file that matches one of the configured project markers.
func (s *Service) IsProject(dirPath string) bool {
	return guard.Run(s.logger, "is_project", false, func() (bool, error) {
		dir, err := validate.Resolve(dirPath)
		if err != nil {
			return false, err
		}

		info, err := s.fs.Stat(dir)
		if err != nil {
			return false, errors.WithContext(errors.WrapFS(err, "failed to stat directory"), "path", dir)
		}
		if !info.IsDir() {
			return false, errors.WithContext(errors.New(errors.CodeNotADirectory, "not a directory"), "path", dir)
		}

		return s.hasMarker(dir)
	})
}

// ProjectRoot walks upward from the directory holding assetPath and returns
// the first directory that is a project. It returns "" if assetPath is
// invalid or missing, or if the filesystem root is reached without finding
// a project.
func (s *Service) ProjectRoot(assetPath string) string {
	return guard.Run(s.logger, "project_root", "", func() (string, error) {
		asset, err := validate.Resolve(assetPath)
		if err != nil {
			return "", err
		}

		if _, err := s.fs.Stat(asset); err != nil {
			return "", errors.WithContext(errors.WrapFS(err, "failed to stat asset"), "path", asset)
		}

		for dir := filepath.Dir(asset); ; {
			ok, err := s.hasMarker(dir)
			if err != nil {
				// An unreadable ancestor is not a project; keep climbing.
				s.logger.WithPath(dir).Debug("skipping unreadable directory", "error", err.Error())
			}
			if ok {
				return dir, nil
			}

			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}

		s.logger.WithPath(asset).Debug("no project root found")
		return "", nil
	})
}

// hasMarker reports whether dir directly contains a regular file, or a link
// to one, whose name matches a project marker.
func (s *Service) hasMarker(dir string) (bool, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return false, errors.WithContext(errors.WrapFS(err, "failed to read directory"), "path", dir)
	}

	for _, entry := range entries {
		for _, marker := range s.markers {
			if marker.Match(entry.Name()) && core.RegularFile(s.fs, filepath.Join(dir, entry.Name()), entry) {
				return true, nil
			}
		}
	}
	return false, nil
}
