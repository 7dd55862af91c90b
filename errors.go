package blueprint

import (
	"errors"
	"fmt"
)

var (
	// ErrValidationFailed matches any ValidationError via errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUndefinedInBlueprint is wrapped by SchemaViolationError.
	ErrUndefinedInBlueprint = errors.New("not defined in blueprints")

	// ErrMaxDepthExceeded is returned when data nests deeper than the schema allows.
	ErrMaxDepthExceeded = errors.New("data nesting exceeds maximum depth")

	// ErrCyclicData is returned when a map contains itself.
	ErrCyclicData = errors.New("data contains a reference cycle")

	ErrInvalidRuleTree = errors.New("invalid rule tree")
)

// SchemaViolationError reports a key that a strict blueprint level does not
// declare. It aborts validation immediately.
type SchemaViolationError struct {
	// Key is the offending data key.
	Key string
	// Path is the dotted path of the key from the root of the data.
	Path string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("%s is not defined in blueprints", e.Key)
}

func (e *SchemaViolationError) Unwrap() error {
	return ErrUndefinedInBlueprint
}
