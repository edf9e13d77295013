package cue

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"github.com/jmgilman/go/stridepack/fs/core"
)

// Loader compiles CUE and YAML sources read from a filesystem.
// It owns a CUE context; values from one Loader must only be combined with
// values from the same Loader.
type Loader struct {
	fs     core.ReadFS
	cueCtx *cue.Context
}

// NewLoader creates a new CUE loader with the given filesystem.
// The loader manages its own CUE context for compilation operations.
func NewLoader(filesystem core.ReadFS) *Loader {
	return &Loader{
		fs:     filesystem,
		cueCtx: cuecontext.New(),
	}
}

// Context returns the underlying CUE context.
func (l *Loader) Context() *cue.Context {
	return l.cueCtx
}

// LoadFile loads a single file from the filesystem.
// Files ending in .yaml or .yml are parsed as YAML; anything else
// (.cue, .json) is compiled as CUE.
//
// Returns CodeLoadFailed on file I/O errors.
// Returns CodeSchemaFailed on compilation errors.
func (l *Loader) LoadFile(ctx context.Context, filePath string) (cue.Value, error) {
	if err := ctx.Err(); err != nil {
		return cue.Value{}, wrapLoadErrorWithContext(err, "context cancelled", makeContext("file_path", filePath))
	}

	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return cue.Value{}, wrapLoadErrorWithContext(
			err,
			"failed to read file",
			makeContext("file_path", filePath),
		)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return l.LoadYAML(ctx, data, filePath)
	default:
		return l.LoadBytes(ctx, data, filePath)
	}
}

// LoadBytes compiles CUE source. The filename is used only in error
// messages and may be empty.
//
// Returns CodeSchemaFailed on compilation errors.
func (l *Loader) LoadBytes(ctx context.Context, source []byte, filename string) (cue.Value, error) {
	if err := ctx.Err(); err != nil {
		return cue.Value{}, wrapSchemaErrorWithContext(err, "context cancelled", makeContext("filename", filename))
	}

	if filename == "" {
		filename = "<input>"
	}

	val := l.cueCtx.CompileBytes(source, cue.Filename(filename))
	if err := val.Err(); err != nil {
		return cue.Value{}, wrapSchemaErrorWithContext(
			err,
			"failed to compile CUE source",
			makeContext("filename", filename, "source_size", len(source)),
		)
	}

	if err := val.Validate(); err != nil {
		return cue.Value{}, wrapSchemaErrorWithContext(
			err,
			"CUE validation failed",
			makeContext("filename", filename),
		)
	}

	return val, nil
}

// LoadYAML converts a YAML document into a CUE value.
//
// Returns CodeSchemaFailed if the YAML cannot be parsed.
func (l *Loader) LoadYAML(ctx context.Context, source []byte, filename string) (cue.Value, error) {
	if err := ctx.Err(); err != nil {
		return cue.Value{}, wrapSchemaErrorWithContext(err, "context cancelled", makeContext("filename", filename))
	}

	if filename == "" {
		filename = "<input>.yaml"
	}

	file, err := cueyaml.Extract(filename, source)
	if err != nil {
		return cue.Value{}, wrapSchemaErrorWithContext(
			err,
			"failed to parse YAML",
			makeContext("filename", filename, "source_size", len(source)),
		)
	}

	val := l.cueCtx.BuildFile(file)
	if err := val.Err(); err != nil {
		return cue.Value{}, wrapSchemaErrorWithContext(
			err,
			"failed to build YAML value",
			makeContext("filename", filename),
		)
	}

	return val, nil
}

// Encode converts a Go value into a CUE value using this loader's context.
// It is used to validate data that originates in Go, such as a struct
// about to be persisted.
func (l *Loader) Encode(ctx context.Context, x interface{}) (cue.Value, error) {
	if err := ctx.Err(); err != nil {
		return cue.Value{}, wrapEncodeErrorWithContext(err, "context cancelled", nil)
	}

	val := l.cueCtx.Encode(x)
	if err := val.Err(); err != nil {
		return cue.Value{}, wrapEncodeErrorWithContext(
			err,
			"failed to encode Go value",
			makeContext("type", fmt.Sprintf("%T", x)),
		)
	}
	return val, nil
}
