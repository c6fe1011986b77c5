package apperr

import (
	"errors"
	"net/http"
)

// E carries an HTTP-mappable code plus a client-safe message. The wrapped
// cause stays server-side; handlers log it and return only Msg.
type E struct {
	Code int
	Msg  string
	Err  error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "error"
}

func (e *E) Unwrap() error { return e.Err }

func Validation(msg string) error       { return &E{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error     { return &E{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error        { return &E{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error         { return &E{Code: http.StatusNotFound, Msg: msg} }
func MethodNotAllowed(msg string) error { return &E{Code: http.StatusMethodNotAllowed, Msg: msg} }
func Conflict(msg string) error         { return &E{Code: http.StatusConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &E{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// Status maps any error to the response status. Unclassified errors are
// treated as internal failures.
func Status(err error) int {
	var ae *E
	if errors.As(err, &ae) {
		return ae.Code
	}
	return http.StatusInternalServerError
}

func IsCode(err error, code int) bool {
	var ae *E
	return errors.As(err, &ae) && ae.Code == code
}
