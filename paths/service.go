package paths

import (
	"github.com/gobwas/glob"
	"github.com/jmgilman/go/stridepack/config"
	"github.com/jmgilman/go/stridepack/errors"
	"github.com/jmgilman/go/stridepack/fs/billy"
	"github.com/jmgilman/go/stridepack/fs/core"
	"github.com/jmgilman/go/stridepack/internal/logging"
)

// Service provides path safety checks and domain classification.
// A Service holds only immutable state and is safe for concurrent use.
type Service struct {
	fs      core.ReadFS
	cfg     config.Config
	markers []glob.Glob
	logger  *logging.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithFS sets the filesystem used for existence checks and project-marker
// lookups. Defaults to the local filesystem.
func WithFS(fsys core.ReadFS) Option {
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

// New creates a path service.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:    config.Default(),
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg = s.cfg.WithDefaults()
	if s.fs == nil {
		s.fs = billy.NewLocal()
	}
	s.logger = s.logger.With("component", "paths")

	for _, pattern := range s.cfg.ProjectMarkers {
		g, err := glob.Compile(pattern)
		if err != nil {
			s.logger.WithOperation("compile_marker").Failure(errors.WrapWithContext(err, errors.CodeInvalidConfig,
				"ignoring invalid project marker", map[string]interface{}{"pattern": pattern}))
			continue
		}
		s.markers = append(s.markers, g)
	}
	return s
}
