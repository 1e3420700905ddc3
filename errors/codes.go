package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeUnknownStrategy indicates a strategy name that no provider implements.
	ErrCodeUnknownStrategy ErrorCode = "UNKNOWN_STRATEGY"
)

// Registry errors
const (
	// ErrCodeNotFound indicates the requested registration was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the registration already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	// ErrCodeTypeMismatch indicates a resolved value has an unexpected type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// ErrCodeInternal indicates an unexpected failure.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var inputCodes = map[ErrorCode]bool{
	ErrCodeInvalidInput:    true,
	ErrCodeMissingField:    true,
	ErrCodeUnknownStrategy: true,
}

// IsInputCode reports whether code describes a caller mistake rather than
// a failure inside accountkit.
func IsInputCode(code ErrorCode) bool {
	return inputCodes[code]
}
