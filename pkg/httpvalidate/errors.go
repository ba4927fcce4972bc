package httpvalidate

import "errors"

var (
	ErrBodyTooLarge    = errors.New("request body too large")
	ErrInvalidJSON     = errors.New("request body is not valid JSON")
	ErrUnsupportedMIME = errors.New("unsupported content type")
)
