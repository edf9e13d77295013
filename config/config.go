// Package config holds the immutable settings shared by the path, file and
// settings services.
//
// A Config is a plain value. Components receive it at construction and never
// consult package-level state, so two services with different configurations
// can coexist in one process.
package config

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"path/filepath"
	"strings"

	gocue "cuelang.org/go/cue"
	"github.com/jmgilman/go/stridepack/cue"
	"github.com/jmgilman/go/stridepack/errors"
	"github.com/jmgilman/go/stridepack/fs/core"
	"github.com/jmgilman/go/stridepack/internal/logging"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource []byte

// Config is the tool-wide configuration.
type Config struct {
	// DefaultRegistry is the package source used when none is given.
	DefaultRegistry string `json:"defaultRegistry"`
	// DefaultVersion is the version assigned to new packages.
	DefaultVersion string `json:"defaultVersion"`
	// PackageExtension is appended to synthesized package file names.
	PackageExtension string `json:"packageExtension"`
	// ProjectMarkers are glob patterns; a directory holding a regular file
	// whose name matches one of them is a project root.
	ProjectMarkers []string `json:"projectMarkers"`
	// UniqueNameLayout is the time layout used for unique file names.
	UniqueNameLayout string `json:"uniqueNameLayout"`
	// LogLevel is the minimum level for the service logger.
	LogLevel string `json:"logLevel"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DefaultRegistry:  "https://api.nuget.org/v3/index.json",
		DefaultVersion:   "1.0.0",
		PackageExtension: ".stridepackage",
		ProjectMarkers:   []string{"*.sdpkg"},
		UniqueNameLayout: "20060102_150405",
		LogLevel:         "info",
	}
}

// WithDefaults returns a copy of c with every empty field taken from
// Default. The project markers are replaced only when c has none.
func (c Config) WithDefaults() Config {
	def := Default()
	if c.DefaultRegistry == "" {
		c.DefaultRegistry = def.DefaultRegistry
	}
	if c.DefaultVersion == "" {
		c.DefaultVersion = def.DefaultVersion
	}
	if c.PackageExtension == "" {
		c.PackageExtension = def.PackageExtension
	}
	if len(c.ProjectMarkers) == 0 {
		c.ProjectMarkers = def.ProjectMarkers
	} else {
		c.ProjectMarkers = append([]string(nil), c.ProjectMarkers...)
	}
	if c.UniqueNameLayout == "" {
		c.UniqueNameLayout = def.UniqueNameLayout
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	return c
}

// Logger returns a logger writing at the configured level.
func (c Config) Logger() *logging.Logger {
	level, err := logging.ParseLogLevel(c.LogLevel)
	if err != nil {
		level = logging.LogLevelInfo
	}
	cfg := logging.DefaultLogConfig()
	cfg.Level = level
	return logging.NewLogger(cfg)
}

// yamlConfig mirrors Config for YAML input. Pointer and omitempty fields let
// the schema fill in whatever the file leaves out.
type yamlConfig struct {
	DefaultRegistry  *string  `yaml:"defaultRegistry" json:"defaultRegistry,omitempty"`
	DefaultVersion   *string  `yaml:"defaultVersion" json:"defaultVersion,omitempty"`
	PackageExtension *string  `yaml:"packageExtension" json:"packageExtension,omitempty"`
	ProjectMarkers   []string `yaml:"projectMarkers" json:"projectMarkers,omitempty"`
	UniqueNameLayout *string  `yaml:"uniqueNameLayout" json:"uniqueNameLayout,omitempty"`
	LogLevel         *string  `yaml:"logLevel" json:"logLevel,omitempty"`
}

// Load reads a configuration file and validates it against the embedded
// schema. Fields the file omits take their default values.
//
// Files ending in .cue or .json are compiled as CUE. Files ending in .yaml
// or .yml are decoded strictly: unknown keys are rejected.
//
// Returns CodeLoadFailed if the file cannot be read, CodeInvalidConfig if it
// cannot be parsed, and CodeSchemaFailed if it violates the schema.
func Load(ctx context.Context, fsys core.ReadFS, path string) (Config, error) {
	loader := cue.NewLoader(fsys)

	schema, err := loadSchema(ctx, loader)
	if err != nil {
		return Config{}, err
	}

	var data gocue.Value
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue", ".json":
		data, err = loader.LoadFile(ctx, path)
		if err != nil {
			return Config{}, err
		}
	case ".yaml", ".yml":
		data, err = loadYAML(ctx, fsys, loader, path)
		if err != nil {
			return Config{}, err
		}
	default:
		return Config{}, errors.WithContext(
			errors.Newf(errors.CodeInvalidConfig, "unsupported config format %q", ext),
			"path", path,
		)
	}

	unified, err := cue.Validate(ctx, schema, data)
	if err != nil {
		return Config{}, errors.WithContext(err, "path", path)
	}

	var cfg Config
	if err := cue.Decode(ctx, unified, &cfg); err != nil {
		return Config{}, errors.WithContext(err, "path", path)
	}
	return cfg, nil
}

// Validate checks c against the embedded schema.
func (c Config) Validate(ctx context.Context) error {
	loader := cue.NewLoader(nil)

	schema, err := loadSchema(ctx, loader)
	if err != nil {
		return err
	}

	data, err := loader.Encode(ctx, c)
	if err != nil {
		return err
	}

	_, err = cue.Validate(ctx, schema, data)
	return err
}

func loadSchema(ctx context.Context, loader *cue.Loader) (gocue.Value, error) {
	file, err := loader.LoadBytes(ctx, schemaSource, "schema.cue")
	if err != nil {
		return gocue.Value{}, errors.Wrap(err, errors.CodeInternal, "embedded config schema does not compile")
	}
	return file.LookupPath(gocue.ParsePath("#Config")), nil
}

func loadYAML(ctx context.Context, fsys core.ReadFS, loader *cue.Loader, path string) (gocue.Value, error) {
	raw, err := fsys.ReadFile(path)
	if err != nil {
		return gocue.Value{}, errors.WrapWithContext(err, errors.CodeLoadFailed, "failed to read config", map[string]interface{}{
			"path": path,
		})
	}

	var yc yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&yc); err != nil && !errors.Is(err, io.EOF) {
		return gocue.Value{}, errors.WrapWithContext(err, errors.CodeInvalidConfig, "failed to parse YAML config", map[string]interface{}{
			"path": path,
		})
	}

	return loader.Encode(ctx, yc)
}
