// Package failure carries HTTP status codes alongside domain errors so the
// transport layer can answer without knowing which service raised them.
package failure

import (
	"errors"
	"net/http"
)

// Failure is an error with the HTTP status it should be reported as.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	InvalidDateParam = &Failure{Code: http.StatusBadRequest, Message: "invalid date parameter, expected RFC3339 or YYYY-MM-DD"}
	InvalidBoolParam = &Failure{Code: http.StatusBadRequest, Message: "invalid boolean parameter"}
	ForbiddenError   = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
)

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest turns a decoding or validation error into a 400. A nil error stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

// NotFound reports a missing contact, booking, form or similar record.
func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

// Conflict reports a write that clashes with existing rows, e.g. a duplicate
// SKU or deleting a contact that still has bookings.
func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

func TooManyRequests(msg string) error {
	return newFailure(http.StatusTooManyRequests, msg)
}

// GetCode returns the status carried by err, or 500 for anything that is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsClientError reports whether err is a Failure in the 4xx range. Such
// errors are expected outcomes of bad input rather than server faults.
func IsClientError(err error) bool {
	code := GetCode(err)

	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}
