package files

import (
	"path/filepath"
	"strings"

	"github.com/jmgilman/go/stridepack/errors"
	"github.com/jmgilman/go/stridepack/internal/guard"
	"github.com/jmgilman/go/stridepack/internal/validate"
)

// UniqueFileName returns "{baseName}_{timestamp}{ext}", joined onto dir
// when dir is not empty.
//
// The timestamp uses the configured layout, which by default has one-second
// resolution: two calls in the same second return the same name. A non-empty
// ext without a leading dot gets one. Path separators in the name are replaced
// with '_' so that without a dir the result is a bare file name.
// An invalid dir yields "".
func (s *Service) UniqueFileName(baseName, ext, dir string) string {
	return guard.Run(s.logger, "unique_file_name", "", func() (string, error) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		name := cleanName(baseName + "_" + s.now().Format(s.cfg.UniqueNameLayout) + ext)

		if dir == "" {
			return name, nil
		}
		if err := validate.Path(dir); err != nil {
			return "", errors.WrapWithContext(err, errors.CodeInvalidPath, "invalid directory", map[string]interface{}{
				"path": dir,
			})
		}
		return filepath.Join(dir, name), nil
	})
}

// cleanName replaces separators and control characters with '_'.
func cleanName(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r < 32 || r == 127 {
			return '_'
		}
		return r
	}, s)
}
