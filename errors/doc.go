// Package errors provides the structured error type used across accountkit.
// Every AppError carries a machine-readable ErrorCode, a human-readable
// message, optional details and an optional wrapped cause.
package errors
