package blueprint

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError maps field names to the messages collected for them.
// It's based on url.Values to leverage built-in string slice handling.
type ValidationError url.Values

// Error implements the error interface.
// Fields are listed in lexical order with their first message.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, field := range e.Fields() {
		if messages := e[field]; len(messages) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, messages[0]))
		}
	}

	return fmt.Sprintf("validation failed: %s", strings.Join(parts, ", "))
}

// Is makes errors.Is(err, ErrValidationFailed) true for any ValidationError.
func (e ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationError creates an empty report.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Add appends a message for a field.
func (e ValidationError) Add(field string, messages ...string) {
	if len(messages) == 0 {
		return
	}
	e[field] = append(e[field], messages...)
}

// Get returns the first message for a field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

// Messages returns all messages for a field.
func (e ValidationError) Messages(field string) []string {
	return e[field]
}

// Has checks if a field has any errors.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// Fields returns the fields with messages in lexical order.
func (e ValidationError) Fields() []string {
	fields := make([]string, 0, len(e))
	for field, messages := range e {
		if len(messages) > 0 {
			fields = append(fields, field)
		}
	}
	slices.Sort(fields)
	return fields
}

// Merge appends every message of other to e.
func (e ValidationError) Merge(other ValidationError) {
	for field, messages := range other {
		e.Add(field, messages...)
	}
}

// IsEmpty returns true if there are no validation errors.
func (e ValidationError) IsEmpty() bool {
	for _, messages := range e {
		if len(messages) > 0 {
			return false
		}
	}
	return true
}
