package files

import (
	"io/fs"
	"time"

	"github.com/jmgilman/go/stridepack/config"
	"github.com/jmgilman/go/stridepack/errors"
	"github.com/jmgilman/go/stridepack/fs/billy"
	"github.com/jmgilman/go/stridepack/fs/core"
	"github.com/jmgilman/go/stridepack/internal/logging"
)

const (
	filePerm fs.FileMode = 0o644
	dirPerm  fs.FileMode = 0o755
)

// Service provides non-failing filesystem operations.
// A Service holds only immutable state and is safe for concurrent use;
// concurrent writes to the same path are not coordinated.
type Service struct {
	fs     core.FS
	cfg    config.Config
	logger *logging.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithFS sets the filesystem. Defaults to the local filesystem.
func WithFS(fsys core.FS) Option {
	return func(s *Service) {
		s.fs = fsys
	}
}

// WithConfig sets the configuration. Empty fields take their values from
// config.Default().
func WithConfig(cfg config.Config) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock sets the time source used by UniqueFileName.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a file service.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:    config.Default(),
		logger: logging.NewNopLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg = s.cfg.WithDefaults()
	if s.fs == nil {
		s.fs = billy.NewLocal()
	}
	s.logger = s.logger.With("component", "files")
	return s
}

// stat returns file info for a canonical path, classifying failures.
func (s *Service) stat(path string) (fs.FileInfo, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, errors.WithContext(errors.WrapFS(err, "failed to stat"), "path", path)
	}
	return info, nil
}

// statFile is stat restricted to regular files.
func (s *Service) statFile(path string) (fs.FileInfo, error) {
	info, err := s.stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, errors.WithContext(errors.New(errors.CodeNotAFile, "not a regular file"), "path", path)
	}
	return info, nil
}

// statDir is stat restricted to directories.
func (s *Service) statDir(path string) (fs.FileInfo, error) {
	info, err := s.stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.WithContext(errors.New(errors.CodeNotADirectory, "not a directory"), "path", path)
	}
	return info, nil
}

// exists reports whether path exists, classifying failures.
func (s *Service) exists(path string) (bool, error) {
	ok, err := s.fs.Exists(path)
	if err != nil {
		return false, errors.WithContext(errors.WrapFS(err, "failed to check existence"), "path", path)
	}
	return ok, nil
}

// fsErr wraps a filesystem error with the operation message and path.
func fsErr(err error, message, path string) error {
	return errors.WithContext(errors.WrapFS(err, message), "path", path)
}
