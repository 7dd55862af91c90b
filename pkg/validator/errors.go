package validator

import "errors"

var (
	// ErrValidationFailed is matched by ValidationErrors.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidPattern is returned by PatternString for an unparsable expression.
	ErrInvalidPattern = errors.New("invalid pattern")
)
