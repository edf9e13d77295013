package cue

import (
	"context"
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
)

// ValidationIssue is a single validation error.
type ValidationIssue struct {
	// Path is the field path where the error occurred (e.g., ["presets", "name"]).
	Path []string

	// Message is the human-readable error message.
	Message string
}

// Validate unifies data with schema and requires the result to be concrete.
// On success it returns the unified value, which carries any defaults the
// schema supplies.
//
// Returns CodeSchemaFailed on validation failure. The error context holds
// the CUE error details and the extracted issues.
func Validate(ctx context.Context, schema cue.Value, data cue.Value) (cue.Value, error) {
	if err := ctx.Err(); err != nil {
		return cue.Value{}, wrapSchemaErrorWithContext(err, "context cancelled", nil)
	}

	if err := schema.Err(); err != nil {
		return cue.Value{}, wrapSchemaErrorWithContext(
			err,
			"schema is invalid",
			makeContext("details", cueerrors.Details(err, nil)),
		)
	}

	if err := data.Err(); err != nil {
		return cue.Value{}, wrapSchemaErrorWithContext(
			err,
			"data is invalid",
			makeContext("details", cueerrors.Details(err, nil)),
		)
	}

	unified := schema.Unify(data)

	// Skip unified.Err() so that cue.All() can collect every error at once.
	if err := unified.Validate(cue.Concrete(true), cue.Final(), cue.All()); err != nil {
		return cue.Value{}, wrapSchemaErrorWithContext(
			err,
			"validation failed",
			makeContext(
				"details", cueerrors.Details(err, nil),
				"issues", Issues(err),
			),
		)
	}

	return unified, nil
}

// Issues extracts structured validation issues from a CUE error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}

	var issues []ValidationIssue
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		issues = append(issues, ValidationIssue{
			Path:    e.Path(),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return issues
}
