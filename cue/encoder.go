package cue

import (
	"bytes"
	"context"
	"encoding/json"

	"cuelang.org/go/cue"
	cueyaml "cuelang.org/go/encoding/yaml"
	"github.com/jmgilman/go/stridepack/errors"
)

// EncodeYAML encodes a concrete CUE value to YAML bytes.
// Returns CodeEncodeFailed if the value contains errors or is not concrete.
func EncodeYAML(ctx context.Context, value cue.Value) ([]byte, error) {
	if err := checkEncodable(ctx, value); err != nil {
		return nil, err
	}

	data, err := cueyaml.Encode(value)
	if err != nil {
		return nil, wrapEncodeErrorWithContext(err, "failed to encode CUE value to YAML", nil)
	}
	return data, nil
}

// EncodeJSON encodes a concrete CUE value to indented JSON bytes.
// Returns CodeEncodeFailed if the value contains errors or is not concrete.
func EncodeJSON(ctx context.Context, value cue.Value) ([]byte, error) {
	if err := checkEncodable(ctx, value); err != nil {
		return nil, err
	}

	data, err := value.MarshalJSON()
	if err != nil {
		return nil, wrapEncodeErrorWithContext(err, "failed to encode CUE value to JSON", nil)
	}

	// MarshalJSON emits compact output; settings files are meant to be
	// read by people too.
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, wrapEncodeErrorWithContext(err, "failed to indent JSON", nil)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func checkEncodable(ctx context.Context, value cue.Value) error {
	if ctx.Err() != nil {
		return wrapEncodeErrorWithContext(ctx.Err(), "context cancelled before encoding", nil)
	}

	if err := value.Err(); err != nil {
		return wrapEncodeErrorWithContext(
			err,
			"CUE value contains errors and cannot be encoded",
			makeContext("error", err.Error()),
		)
	}

	if err := value.Validate(cue.Concrete(true)); err != nil {
		return errors.Wrap(err, errors.CodeEncodeFailed, "CUE value is not concrete and cannot be encoded")
	}
	return nil
}
