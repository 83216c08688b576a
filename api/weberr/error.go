package weberr

import (
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return e.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

func NewError(err error, msg string, status int, opts ...Opt) error {
	e := &RequestError{Err: err}
	opts = append(opts, WithResponse(&ErrorResponse{msg}, status))

	return Wrap(e, opts...)
}

func NotFound(err error, opts ...Opt) error {
	return NewError(err, "the resource could not be found", http.StatusNotFound, opts...)
}

// BadRequest exposes err's message to the client, so err must be safe to show.
func BadRequest(err error, opts ...Opt) error {
	return NewError(err, err.Error(), http.StatusBadRequest, opts...)
}

func Conflict(err error, opts ...Opt) error {
	return NewError(err, err.Error(), http.StatusConflict, opts...)
}

func Unprocessable(err error, opts ...Opt) error {
	return NewError(err, err.Error(), http.StatusUnprocessableEntity, opts...)
}

func TooManyRequests(err error, opts ...Opt) error {
	return NewError(err, "too many requests, slow down", http.StatusTooManyRequests, opts...)
}

// InternalError answers with the same generic body the error middleware
// uses for undecorated errors.
func InternalError(err error, opts ...Opt) error {
	return NewError(err, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError, opts...)
}
