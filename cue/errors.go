package cue

import (
	"github.com/jmgilman/go/stridepack/errors"
)

// wrapLoadErrorWithContext wraps an error with CodeLoadFailed and attaches context metadata.
func wrapLoadErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeLoadFailed, message, ctx)
}

// wrapSchemaErrorWithContext wraps an error with CodeSchemaFailed and attaches context metadata.
// Used for compilation failures as well as failed validation.
func wrapSchemaErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeSchemaFailed, message, ctx)
}

// wrapDecodeErrorWithContext wraps an error with CodeDecodeFailed and attaches context metadata.
func wrapDecodeErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeDecodeFailed, message, ctx)
}

// wrapEncodeErrorWithContext wraps an error with CodeEncodeFailed and attaches context metadata.
func wrapEncodeErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeEncodeFailed, message, ctx)
}

// makeContext is a convenience helper for creating context maps inline.
// Example: makeContext("path", "/foo/bar", "line", 42).
func makeContext(kvPairs ...interface{}) map[string]interface{} {
	if len(kvPairs) == 0 {
		return nil
	}

	ctx := make(map[string]interface{})
	for i := 0; i < len(kvPairs)-1; i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			continue
		}
		ctx[key] = kvPairs[i+1]
	}

	if len(ctx) == 0 {
		return nil
	}
	return ctx
}
