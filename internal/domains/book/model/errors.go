package model

import (
	"errors"
	"fmt"
)

var (
	ErrBookNotFound       = errors.New("book not found")
	ErrInvalidBookID      = errors.New("invalid book id")
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")
	ErrUploadNotSupported = errors.New("image upload is not enabled")
)

// RequestError wraps a failure from an external collaborator
// (database, object storage) together with its detail.
type RequestError struct {
	Op     string // "list", "insert", "update", "delete", "upload"
	Detail error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Op, e.Detail)
}

func (e *RequestError) Unwrap() error {
	return e.Detail
}

// NewRequestError builds a RequestError for the given operation.
func NewRequestError(op string, detail error) *RequestError {
	return &RequestError{Op: op, Detail: detail}
}

// ValidationError marks a form field that could not be mapped to the record.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a form/field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
