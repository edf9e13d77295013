package cue

import (
	"context"
	"fmt"
	"reflect"

	"cuelang.org/go/cue"
	"github.com/jmgilman/go/stridepack/errors"
)

// Decode decodes a CUE value into a Go struct pointer.
//
// Returns CodeDecodeFailed if target is not a non-nil pointer to a struct,
// the value contains errors, or the types do not match.
func Decode(ctx context.Context, value cue.Value, target interface{}) error {
	if ctx.Err() != nil {
		return wrapDecodeErrorWithContext(ctx.Err(), "context cancelled before decoding", nil)
	}

	if target == nil {
		return errors.New(errors.CodeDecodeFailed, "decode target cannot be nil")
	}

	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr || targetValue.IsNil() {
		return errors.Newf(errors.CodeDecodeFailed, "decode target must be a non-nil pointer to a struct, got %T", target)
	}

	targetElem := targetValue.Elem()
	if targetElem.Kind() != reflect.Struct {
		return errors.New(
			errors.CodeDecodeFailed,
			fmt.Sprintf("decode target must be a pointer to a struct, got pointer to %s", targetElem.Kind()),
		)
	}

	if err := value.Err(); err != nil {
		return wrapDecodeErrorWithContext(
			err,
			"CUE value contains errors and cannot be decoded",
			makeContext("error", err.Error()),
		)
	}

	if err := value.Decode(target); err != nil {
		return wrapDecodeErrorWithContext(
			err,
			"failed to decode CUE value to Go struct",
			makeContext(
				"target_type", targetElem.Type().String(),
				"value_kind", value.Kind().String(),
			),
		)
	}

	return nil
}
