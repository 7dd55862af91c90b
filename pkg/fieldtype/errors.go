package fieldtype

import "errors"

var (
	ErrTypeAlreadyRegistered = errors.New("field type already registered")
	ErrInvalidType           = errors.New("invalid field type")
)
