package documents

import "errors"

var (
	ErrNotFound       = errors.New("document not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDisallowedType = errors.New("file type not allowed")
)
