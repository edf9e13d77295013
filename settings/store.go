package settings

import (
	"context"
	_ "embed"
	"path/filepath"
	"sync"

	gocue "cuelang.org/go/cue"
	"github.com/jmgilman/go/stridepack/config"
	"github.com/jmgilman/go/stridepack/cue"
	"github.com/jmgilman/go/stridepack/errors"
	"github.com/jmgilman/go/stridepack/files"
	"github.com/jmgilman/go/stridepack/fs/billy"
	"github.com/jmgilman/go/stridepack/fs/core"
	"github.com/jmgilman/go/stridepack/internal/logging"
	"github.com/jmgilman/go/stridepack/internal/validate"
	"github.com/jmgilman/go/stridepack/paths"
)

//go:embed schema.cue
var schemaSource []byte

const (
	settingsFile = "settings.json"
	presetsDir   = "presets"
	presetExt    = ".json"
)

// Store reads and writes settings and presets below one directory.
// It is safe for concurrent use.
type Store struct {
	dir     string
	presets string

	fs       core.FS
	presetFS core.FS // confined to presets
	files    *files.Service
	paths  *paths.Service
	cfg    config.Config
	logger *logging.Logger

	// CUE values are not safe for concurrent use.
	mu             sync.Mutex
	loader         *cue.Loader
	settingsSchema gocue.Value
	presetSchema   gocue.Value
}

// Option configures a Store.
type Option func(*Store)

// WithFS sets the filesystem the store reads and writes. Defaults to the
// local filesystem.
func WithFS(fsys core.FS) Option {
	return func(s *Store) {
		s.fs = fsys
	}
}

// WithConfig sets the configuration that supplies default settings. Empty
// fields take their values from config.Default.
func WithConfig(cfg config.Config) Option {
	return func(s *Store) {
		s.cfg = cfg
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a store rooted at dir, creating dir and its presets
// directory if needed. Preset files are read and written through a view of
// the filesystem rooted at the presets directory.
//
// Unlike the record operations, NewStore returns an error: CodeInvalidPath
// for an unusable dir and CodeIO if the directories cannot be created.
func NewStore(dir string, opts ...Option) (*Store, error) {
	s := &Store{
		cfg:    config.Default(),
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg = s.cfg.WithDefaults()
	s.logger = s.logger.With("component", "settings")
	if s.fs == nil {
		s.fs = billy.NewLocal()
	}
	s.files = files.New(files.WithFS(s.fs), files.WithConfig(s.cfg), files.WithLogger(s.logger))
	s.paths = paths.New(paths.WithFS(s.fs), paths.WithConfig(s.cfg), paths.WithLogger(s.logger))

	root, err := validate.Resolve(dir)
	if err != nil {
		return nil, err
	}
	s.dir = root
	s.presets = filepath.Join(root, presetsDir)

	if !s.files.EnsureDir(s.presets) {
		return nil, errors.WithContext(errors.New(errors.CodeIO, "failed to create presets directory"), "path", s.presets)
	}
	presetFS, err := s.fs.Chroot(s.presets)
	if err != nil {
		return nil, errors.WithContext(errors.WrapFS(err, "failed to open presets directory"), "path", s.presets)
	}
	s.presetFS = presetFS

	s.loader = cue.NewLoader(nil)
	schema, err := s.loader.LoadBytes(context.Background(), schemaSource, "schema.cue")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "embedded settings schema does not compile")
	}
	s.settingsSchema = schema.LookupPath(gocue.ParsePath("#Settings"))
	s.presetSchema = schema.LookupPath(gocue.ParsePath("#Preset"))

	s.logger.WithPath(root).Info("settings store opened")
	return s, nil
}

// Dir returns the absolute directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// encode validates v against schema and renders the result as JSON.
func (s *Store) encode(ctx context.Context, schema gocue.Value, v interface{}) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, err := s.loader.Encode(ctx, v)
	if err != nil {
		return nil, err
	}
	unified, err := cue.Validate(ctx, schema, val)
	if err != nil {
		return nil, err
	}
	return cue.EncodeJSON(ctx, unified)
}

// decode compiles JSON data, validates it against schema and decodes it
// into target.
func (s *Store) decode(ctx context.Context, schema gocue.Value, data []byte, filename string, target interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, err := s.loader.LoadBytes(ctx, data, filename)
	if err != nil {
		return err
	}
	return s.decodeValue(ctx, schema, val, target)
}

func (s *Store) decodeValue(ctx context.Context, schema, val gocue.Value, target interface{}) error {
	unified, err := cue.Validate(ctx, schema, val)
	if err != nil {
		return err
	}
	return cue.Decode(ctx, unified, target)
}

// write saves data to path through the file service.
func (s *Store) write(path string, data []byte) error {
	if !s.files.SaveFile(string(data), path) {
		return errors.WithContext(errors.New(errors.CodeIO, "failed to write record"), "path", path)
	}
	return nil
}

// read loads path through the file service. A missing or unreadable file
// is reported as CodeNotFound.
func (s *Store) read(path string) ([]byte, error) {
	content := s.files.LoadFile(path)
	if content == "" {
		return nil, errors.WithContext(errors.New(errors.CodeNotFound, "record not found"), "path", path)
	}
	return []byte(content), nil
}
