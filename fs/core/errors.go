package core

import (
	"errors"
	"io/fs"
	"syscall"
)

// Providers return errors that match these with errors.Is. They alias the
// io/fs sentinels, so either name works.
var (
	ErrNotExist   = fs.ErrNotExist
	ErrExist      = fs.ErrExist
	ErrPermission = fs.ErrPermission
)

// IsMissing reports whether err means the path is absent: it does not
// exist, or one of its parents is not a directory.
func IsMissing(err error) bool {
	return errors.Is(err, ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
