// Package httperr carries an HTTP status alongside an error so the error
// boundary can render it without knowing where it came from.
package httperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// PublicMessage is the text safe to return to clients.
func (e *Error) PublicMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func New(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

func Wrap(status int, err error) *Error {
	return &Error{Status: status, Err: err}
}

func BadRequest(err error) *Error { return Wrap(http.StatusBadRequest, err) }

func NotFound(msg string) *Error { return New(http.StatusNotFound, msg) }

// StatusOf returns the status carried by err, or 500.
func StatusOf(err error) int {
	var he *Error
	if errors.As(err, &he) && he.Status != 0 {
		return he.Status
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var he *Error
	if errors.As(err, &he) {
		return he.PublicMessage()
	}
	return err.Error()
}
