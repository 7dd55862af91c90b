package validator

import (
	"errors"
	"strings"
)

// ValidationError is one failed rule. TranslationKey and TranslationValues
// let callers render Message in another language.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors is returned by Apply. It matches ErrValidationFailed.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidationFailed.Error())
	for i, e := range ve {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(e.Field + ": " + e.Message)
	}
	return b.String()
}

func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// ByField groups the messages per field, keeping their order.
func (ve ValidationErrors) ByField() map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, e := range ve {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// Messages lists every message in order.
func (ve ValidationErrors) Messages() []string {
	out := make([]string, len(ve))
	for i, e := range ve {
		out[i] = e.Message
	}
	return out
}

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs every rule and returns the failures as ValidationErrors, or nil.
func Apply(rules ...Rule) error {
	var failed ValidationErrors
	for _, r := range rules {
		if !r.Check() {
			failed = append(failed, r.Error)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return failed
}

// ExtractValidationErrors unwraps the ValidationErrors in err, if any.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

func IsValidationError(err error) bool {
	return ExtractValidationErrors(err) != nil
}

func newError(field, message, key string, values map[string]any) ValidationError {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = field
	return ValidationError{Field: field, Message: message, TranslationKey: key, TranslationValues: values}
}
