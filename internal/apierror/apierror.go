// Package apierror holds the client-facing failures raised by the stores.
// An Error carries the HTTP status and the message sent back verbatim.
package apierror

import (
	"errors"
	"net/http"
)

const MsgBadRequest = "Bad request"

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest() *Error {
	return New(http.StatusBadRequest, MsgBadRequest)
}

// NotFound builds a 404 such as "Article not found".
func NotFound(entity string) *Error {
	return New(http.StatusNotFound, entity+" not found")
}

// As reports whether err carries both a status and a message.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr == nil {
		return nil, false
	}

	if apiErr.Status == 0 || apiErr.Message == "" {
		return nil, false
	}

	return apiErr, true
}
