package validation

import (
	"errors"
	"fmt"
)

// Code identifies the precondition a request violated.
type Code string

const (
	CodeEmptyJobDescription Code = "EMPTY_JOB_DESCRIPTION"
	CodeTooManyFiles        Code = "TOO_MANY_FILES"
	CodeFileTooLarge        Code = "FILE_TOO_LARGE"
	CodeUnsupportedFormat   Code = "UNSUPPORTED_FORMAT"
)

// Error reports an input that violates a precondition of a ranking run.
// It is raised before any document is parsed.
type Error struct {
	Code    Code   `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed [%s]: %s", e.Code, e.Message)
}

// As reports whether err is, or wraps, a validation error.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func EmptyJobDescription() *Error {
	return &Error{
		Code:    CodeEmptyJobDescription,
		Field:   "job_description",
		Message: "job description must not be empty",
	}
}

func TooManyFiles(count, limit int) *Error {
	return &Error{
		Code:    CodeTooManyFiles,
		Field:   "resumes",
		Message: fmt.Sprintf("maximum %d resumes allowed, got %d", limit, count),
	}
}

func FileTooLarge(name string, size, limit int64) *Error {
	return &Error{
		Code:    CodeFileTooLarge,
		Field:   name,
		Message: fmt.Sprintf("%s exceeds %s limit (%d bytes)", name, humanSize(limit), size),
	}
}

func UnsupportedFormat(name string) *Error {
	return &Error{
		Code:    CodeUnsupportedFormat,
		Field:   name,
		Message: fmt.Sprintf("%s is not a PDF file", name),
	}
}

func humanSize(n int64) string {
	const mib = 1024 * 1024
	if n >= mib && n%mib == 0 {
		return fmt.Sprintf("%dMB", n/mib)
	}
	return fmt.Sprintf("%d bytes", n)
}
