package types

import (
	"net/http"

	appErr "github.com/ev-charging/api/pkg/errors"
)

const (
	MsgServerError   = "Server error"
	MsgPanic         = "Something went wrong!"
	MsgRouteNotFound = "Route not found"
)

// StatusFor maps an error code to its HTTP status.
func StatusFor(code appErr.Code) int {
	switch code {
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeForbidden:
		return http.StatusForbidden
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeConflict:
		return http.StatusConflict
	case appErr.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromError builds the status and body for err. Server errors carry the
// underlying error text unless hideDetails is set, in which case the error
// field is an empty object.
func FromError(err error, hideDetails bool) (int, ErrorResponse) {
	e, ok := appErr.As(err)
	if !ok {
		return http.StatusInternalServerError, ErrorResponse{Message: MsgServerError, Error: ErrorDetail(err, hideDetails)}
	}

	status := StatusFor(e.Code)
	if status >= http.StatusInternalServerError {
		return status, ErrorResponse{Message: MsgServerError, Error: ErrorDetail(err, hideDetails)}
	}
	return status, ErrorResponse{Message: e.Message, Errors: e.Fields}
}

// ErrorDetail is the value of the error field in a 500 body.
func ErrorDetail(err error, hide bool) any {
	if hide || err == nil {
		return struct{}{}
	}
	return err.Error()
}
