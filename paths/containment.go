package paths

import (
	"path/filepath"

	"github.com/jmgilman/go/stridepack/errors"
	"github.com/jmgilman/go/stridepack/internal/guard"
	"github.com/jmgilman/go/stridepack/internal/validate"
)

// IsWithin reports whether filePath equals dirPath or lies below it after
// both are made absolute and cleaned. Either path being empty or invalid
// yields false.
func (s *Service) IsWithin(filePath, dirPath string) bool {
	return guard.Run(s.logger, "is_within", false, func() (bool, error) {
		target, err := validate.Resolve(filePath)
		if err != nil {
			return false, err
		}
		root, err := validate.Resolve(dirPath)
		if err != nil {
			return false, err
		}
		return validate.Within(root, target), nil
	})
}

// Normalize returns the absolute, cleaned form of path using '/' as the
// only separator. Empty or invalid input is returned unchanged.
// Normalize is idempotent.
func (s *Service) Normalize(path string) string {
	return guard.Run(s.logger, "normalize", path, func() (string, error) {
		canonical, err := validate.Resolve(path)
		if err != nil {
			return path, err
		}
		return filepath.ToSlash(canonical), nil
	})
}

// Rel returns toPath relative to the directory fromPath, '/'-separated.
//
// An empty toPath gives "". If fromPath is empty or invalid, toPath is
// invalid, or no relative path exists (different volumes), toPath is
// returned unchanged.
func (s *Service) Rel(fromPath, toPath string) string {
	if toPath == "" {
		return ""
	}
	return guard.Run(s.logger, "rel", toPath, func() (string, error) {
		to, err := validate.Resolve(toPath)
		if err != nil {
			return toPath, err
		}
		from, err := validate.Resolve(fromPath)
		if err != nil {
			return toPath, err
		}
		rel, err := filepath.Rel(from, to)
		if err != nil {
			return toPath, errors.WrapWithContext(err, errors.CodeInvalidInput, "no relative path", map[string]interface{}{
				"from": fromPath,
				"to":   toPath,
			})
		}
		return filepath.ToSlash(rel), nil
	})
}
