// Package apperr carries the error taxonomy shared by the file service and
// the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindBadRequest   Kind = "bad_request"
	KindStorage      Kind = "storage"
	KindUnauthorized Kind = "unauthorized"
)

type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(reason string) error {
	return &Error{Kind: KindValidation, Reason: reason}
}

func NotFound(reason string) error {
	return &Error{Kind: KindNotFound, Reason: reason}
}

func BadRequest(reason string, err error) error {
	return &Error{Kind: KindBadRequest, Reason: reason, Err: err}
}

func Storage(reason string, err error) error {
	return &Error{Kind: KindStorage, Reason: reason, Err: err}
}

func Unauthorized(reason string) error {
	return &Error{Kind: KindUnauthorized, Reason: reason}
}

// KindOf reports the kind of the first *Error in err's chain. Errors outside
// the taxonomy are treated as storage failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// ReasonOf returns the caller-facing reason of err.
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return "internal error"
}
