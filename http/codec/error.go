package codec

import "errors"

var (
	ErrNoWriter      = errors.New("no writer for media type")
	ErrNotAcceptable = errors.New("not acceptable")
)
