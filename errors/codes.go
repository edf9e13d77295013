package errors

// ErrorCode identifies the failure condition behind an error.
// Codes are strings so they read naturally in structured logs.
type ErrorCode string

const (
	// Input errors.

	// CodeInvalidInput indicates an argument was empty or otherwise unusable.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidPath indicates a path contains characters the host filesystem rejects.
	CodeInvalidPath ErrorCode = "INVALID_PATH"

	// CodeOutsideBoundary indicates a path resolves outside its containment directory.
	CodeOutsideBoundary ErrorCode = "OUTSIDE_BOUNDARY"

	// Resource errors.

	// CodeNotFound indicates a file or directory does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates a file or directory already exists.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodeNotAFile indicates a path names a directory where a file was expected.
	CodeNotAFile ErrorCode = "NOT_A_FILE"

	// CodeNotADirectory indicates a path names a file where a directory was expected.
	CodeNotADirectory ErrorCode = "NOT_A_DIRECTORY"

	// Environment errors.

	// CodePermission indicates the operating system denied access.
	CodePermission ErrorCode = "PERMISSION_DENIED"

	// CodeIO indicates a read, write or rename failed for environmental
	// reasons such as a locked file or a full disk.
	CodeIO ErrorCode = "IO_ERROR"

	// Configuration errors.

	// CodeInvalidConfig indicates a configuration file could not be used.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeSchemaFailed indicates a record failed schema validation.
	CodeSchemaFailed ErrorCode = "SCHEMA_VALIDATION_FAILED"

	// CodeLoadFailed indicates a CUE or YAML document could not be loaded.
	CodeLoadFailed ErrorCode = "LOAD_FAILED"

	// CodeDecodeFailed indicates a validated value could not be decoded into a Go type.
	CodeDecodeFailed ErrorCode = "DECODE_FAILED"

	// CodeEncodeFailed indicates a Go value could not be encoded.
	CodeEncodeFailed ErrorCode = "ENCODE_FAILED"

	// System errors.

	// CodeInternal indicates an unexpected internal failure, including recovered panics.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unclassified error.
	CodeUnknown ErrorCode = "UNKNOWN"
)
