package errors

// ErrorClassification indicates whether repeating an operation may succeed.
type ErrorClassification string

const (
	// ClassificationRetryable marks transient failures, e.g. a file locked by another process.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent marks failures that repeat until the input changes.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// defaultClassifications maps error codes to their default classification.
var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeIO: ClassificationRetryable,

	CodeInvalidInput:    ClassificationPermanent,
	CodeInvalidPath:     ClassificationPermanent,
	CodeOutsideBoundary: ClassificationPermanent,
	CodeNotFound:        ClassificationPermanent,
	CodeAlreadyExists:   ClassificationPermanent,
	CodeNotAFile:        ClassificationPermanent,
	CodeNotADirectory:   ClassificationPermanent,
	CodePermission:      ClassificationPermanent,
	CodeInvalidConfig:   ClassificationPermanent,
	CodeSchemaFailed:    ClassificationPermanent,
	CodeLoadFailed:      ClassificationPermanent,
	CodeDecodeFailed:    ClassificationPermanent,
	CodeEncodeFailed:    ClassificationPermanent,
	CodeInternal:        ClassificationPermanent,
	CodeUnknown:         ClassificationPermanent,
}

// getDefaultClassification returns the default classification for an error code.
// Unknown codes are permanent.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
