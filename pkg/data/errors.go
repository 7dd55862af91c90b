package data

import "errors"

var (
	ErrInvalidJSON  = errors.New("invalid JSON document")
	ErrInvalidYAML  = errors.New("invalid YAML document")
	ErrInvalidQuery = errors.New("invalid query string")
	ErrNotObject    = errors.New("document root is not an object")
)
