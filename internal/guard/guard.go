// Package guard converts errors and panics into fallback values at the
// public service boundary.
package guard

import (
	"github.com/jmgilman/go/stridepack/errors"
	"github.com/jmgilman/go/stridepack/internal/logging"
)

// Run calls fn and returns its result. If fn returns an error or panics,
// the cause is logged against op and fallback is returned instead.
func Run[T any](logger *logging.Logger, op string, fallback T, fn func() (T, error)) (result T) {
	log := logger.WithOperation(op)
	defer func() {
		if r := recover(); r != nil {
			log.Failure(errors.Newf(errors.CodeInternal, "recovered panic: %v", r))
			result = fallback
		}
	}()

	v, err := fn()
	if err != nil {
		log.Failure(err)
		return fallback
	}
	return v
}
