package reactive

import "errors"

var (
	ErrNoElements      = errors.New("publisher completed without an element")
	ErrTooManyElements = errors.New("publisher emitted more than one element")
	ErrUnsupportedType = errors.New("unsupported producer type")
)
