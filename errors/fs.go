package errors

import (
	stderrors "errors"
	"io/fs"
)

// CodeForFS maps an error returned by a filesystem call to an ErrorCode.
//
// The io/fs sentinels are checked first so that *fs.PathError and
// *os.LinkError values from any provider classify the same way. Anything
// else that is not already a PlatformError is treated as CodeIO.
func CodeForFS(err error) ErrorCode {
	switch {
	case err == nil:
		return CodeUnknown
	case stderrors.Is(err, fs.ErrNotExist):
		return CodeNotFound
	case stderrors.Is(err, fs.ErrExist):
		return CodeAlreadyExists
	case stderrors.Is(err, fs.ErrPermission):
		return CodePermission
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Code()
	}
	return CodeIO
}

// WrapFS wraps a filesystem error using the code chosen by CodeForFS.
//
// Returns nil if err is nil.
func WrapFS(err error, message string) PlatformError {
	if err == nil {
		return nil
	}
	return Wrap(err, CodeForFS(err), message)
}
