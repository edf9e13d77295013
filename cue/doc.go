/*
Package cue provides CUE loading, validation, decoding and encoding with
platform error handling.

# Overview

This package wraps cuelang.org/go for the configuration and settings layers.
It is schema-agnostic: callers supply the schema as a cue.Value, usually
compiled from an embedded .cue file, and any Go struct as a decode target.

# Components

  - Loader: compile CUE or YAML sources read through fs/core.ReadFS
  - Validate: unify data with a schema and require concrete values
  - Decode: decode a validated value into a Go struct
  - EncodeJSON / EncodeYAML: render concrete values

# Example

	loader := cue.NewLoader(billy.NewLocal())

	schema, err := loader.LoadBytes(ctx, schemaSource, "schema.cue")
	if err != nil {
		return err
	}

	data, err := loader.LoadFile(ctx, "/home/me/.stridepack/config.cue")
	if err != nil {
		return err
	}

	unified, err := cue.Validate(ctx, schema, data)
	if err != nil {
		return err
	}

	var cfg Config
	if err := cue.Decode(ctx, unified, &cfg); err != nil {
		return err
	}

# Error Handling

Every function returns errors from the errors package:

  - CodeLoadFailed: the source could not be read
  - CodeSchemaFailed: compilation or schema validation failed
  - CodeDecodeFailed: the value could not be decoded into the target
  - CodeEncodeFailed: the value could not be rendered

Validation errors carry the CUE error details in their context under the
"details" key.
*/
package cue
