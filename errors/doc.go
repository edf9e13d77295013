// Package errors provides the structured error type used inside stridepack.
//
// The public services in this module (paths, files, settings) never hand
// errors to their callers: every operation returns a sentinel value instead.
// Internally, however, each failure is still represented as a PlatformError
// carrying an ErrorCode and a retry classification, so that the logging layer
// can tell an invalid input apart from a missing file or a locked one.
//
// # Creating errors
//
//	err := errors.New(errors.CodeInvalidPath, "path contains a NUL byte")
//	err := errors.Newf(errors.CodeOutsideBoundary, "%s escapes %s", target, root)
//
// # Wrapping filesystem errors
//
// WrapFS picks the error code from the io/fs sentinel found in the chain:
//
//	if err := fsys.Remove(path); err != nil {
//	    return errors.WrapFS(err, "failed to delete file")
//	}
//
// # Context
//
//	err = errors.WithContext(err, "path", path)
//
// All errors remain compatible with the standard library (errors.Is,
// errors.As, errors.Unwrap).
package errors
