package resp

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadConfig       = errors.New("bad config")
	ErrDone            = errors.New("request ctx done")
	ErrFinalized       = errors.New("builder already finalized")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)

// A StatusError pairs an error with the HTTP status code to respond with.
type StatusError struct {
	Code int
	Err  error
}

// NewStatusError wraps err, asking the Responder to respond with code.
func NewStatusError(code int, err error) *StatusError {
	return &StatusError{Code: code, Err: err}
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	}

	return fmt.Sprintf("%d %s: %s", e.Code, http.StatusText(e.Code), e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }
