package errors

import (
	stderrors "errors"
)

// Wrap wraps err with a code and message while preserving the original error.
// If err already carries a PlatformError, its classification is kept.
//
// Returns nil if err is nil.
func Wrap(err error, code ErrorCode, message string) PlatformError {
	if err == nil {
		return nil
	}

	return &platformError{
		code:           code,
		classification: inheritClassification(err, code),
		message:        message,
		cause:          err,
	}
}

// WrapWithContext wraps err and attaches a copy of ctx in one step.
//
// Returns nil if err is nil.
//
// Example:
//
//	return errors.WrapWithContext(err, errors.CodeIO, "copy failed", map[string]interface{}{
//	    "src": src,
//	    "dst": dst,
//	})
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	var contextCopy map[string]interface{}
	if ctx != nil {
		contextCopy = copyContext(ctx)
	}

	return &platformError{
		code:           code,
		classification: inheritClassification(err, code),
		message:        message,
		context:        contextCopy,
		cause:          err,
	}
}

// WithContext returns a copy of err with one more context field.
// Plain errors are converted to a PlatformError with CodeUnknown.
//
// Returns nil if err is nil.
func WithContext(err error, key string, value interface{}) PlatformError {
	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap returns a copy of err with ctx merged into its context.
// New fields override existing ones with the same key.
//
// Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	platformErr := asPlatformError(err)

	merged := make(map[string]interface{})
	for k, v := range platformErr.Context() {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}

	return &platformError{
		code:           platformErr.Code(),
		classification: platformErr.Classification(),
		message:        platformErr.Message(),
		context:        merged,
		cause:          platformErr.Unwrap(),
	}
}

func inheritClassification(err error, code ErrorCode) ErrorClassification {
	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Classification()
	}
	return getDefaultClassification(code)
}

func asPlatformError(err error) PlatformError {
	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr
	}
	return &platformError{
		code:           CodeUnknown,
		classification: ClassificationPermanent,
		message:        err.Error(),
		cause:          err,
	}
}
