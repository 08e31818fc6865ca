package http

import (
	"fmt"
	"net/http"
)

// Error carries the http status sent to the client.
type Error interface {
	error
	StatusCode() int
}

type statusError struct {
	status int
	msg    string
}

func (err *statusError) StatusCode() int {
	return err.status
}

func (err *statusError) Error() string {
	return err.msg
}

func InternalError(msg string, args ...interface{}) error {
	return &statusError{status: http.StatusInternalServerError, msg: fmt.Sprintf(msg, args...)}
}

func ClientError(msg string, args ...interface{}) error {
	return &statusError{status: http.StatusBadRequest, msg: fmt.Sprintf(msg, args...)}
}

func NotFoundError(msg string, args ...interface{}) error {
	return &statusError{status: http.StatusNotFound, msg: fmt.Sprintf(msg, args...)}
}
