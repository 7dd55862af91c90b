package validator

import (
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dmitrymomot/blueprint/pkg/sanitizer"
)

// DateLayouts are the layouts Date accepts when none are given.
var DateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04",
}

// formats is safe for concurrent use and caches its tag parsing.
var formats = playground.New()

func Email(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			return checkVar(value, "email")
		},
		Error: newError(field, "must be a valid email address", "validation.email", nil),
	}
}

// URL accepts absolute URLs with a scheme and host.
func URL(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			return checkVar(value, "url")
		},
		Error: newError(field, "must be a valid URL", "validation.url", nil),
	}
}

func UUID(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			s, ok := sanitizer.ToString(value)
			if !ok || len(strings.TrimSpace(s)) != 36 {
				return false
			}
			_, err := uuid.Parse(s)
			return err == nil
		},
		Error: newError(field, "must be a valid UUID", "validation.uuid", nil),
	}
}

// Date checks that value parses with one of layouts, DateLayouts when empty.
func Date(field string, value any, layouts ...string) Rule {
	if len(layouts) == 0 {
		layouts = DateLayouts
	}
	return Rule{
		Check: func() bool {
			_, ok := ParseDate(value, layouts...)
			return ok
		},
		Error: newError(field, "must be a valid date", "validation.date",
			map[string]any{"format": layouts[0]},
		),
	}
}

// ParseDate parses the string form of value with the first matching layout.
func ParseDate(value any, layouts ...string) (time.Time, bool) {
	if len(layouts) == 0 {
		layouts = DateLayouts
	}
	s, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func checkVar(value any, tag string) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return formats.Var(strings.TrimSpace(s), tag) == nil
}
