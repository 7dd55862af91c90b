package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/blueprint/pkg/data"
	"github.com/dmitrymomot/blueprint/pkg/sanitizer"
)

// IsBlank reports whether v carries no value: nil, a whitespace-only string
// or an empty container.
func IsBlank(v any) bool {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return data.IsEmpty(v)
}

func Required(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			return !IsBlank(value)
		},
		Error: newError(field, "is required", "validation.required", nil),
	}
}

// MinLength checks the number of characters of a string value.
func MinLength(field string, value any, min int) Rule {
	return Rule{
		Check: func() bool {
			s, ok := sanitizer.ToString(value)
			return !ok || utf8.RuneCountInString(s) >= min
		},
		Error: newError(field,
			fmt.Sprintf("must be at least %d characters long", min),
			"validation.min_length",
			map[string]any{"min": min},
		),
	}
}

func MaxLength(field string, value any, max int) Rule {
	return Rule{
		Check: func() bool {
			s, ok := sanitizer.ToString(value)
			return !ok || utf8.RuneCountInString(s) <= max
		},
		Error: newError(field,
			fmt.Sprintf("must be at most %d characters long", max),
			"validation.max_length",
			map[string]any{"max": max},
		),
	}
}

// Pattern checks that the string form of value matches re.
func Pattern(field string, value any, re *regexp.Regexp) Rule {
	return Rule{
		Check: func() bool {
			s, ok := sanitizer.ToString(value)
			return ok && re.MatchString(s)
		},
		Error: newError(field, "has an invalid format", "validation.pattern",
			map[string]any{"pattern": re.String()},
		),
	}
}

// PatternString compiles expr and returns a Pattern rule.
func PatternString(field string, value any, expr string) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, expr, err)
	}
	return Pattern(field, value, re), nil
}

// Min checks a numeric lower bound. Non-numeric values are left to Numeric.
func Min(field string, value any, min float64) Rule {
	return Rule{
		Check: func() bool {
			f, ok := sanitizer.ToFloat(value)
			return !ok || f >= min
		},
		Error: newError(field,
			fmt.Sprintf("must be at least %s", formatNumber(min)),
			"validation.min",
			map[string]any{"min": min},
		),
	}
}

// Max checks a numeric upper bound. Non-numeric values are left to Numeric.
func Max(field string, value any, max float64) Rule {
	return Rule{
		Check: func() bool {
			f, ok := sanitizer.ToFloat(value)
			return !ok || f <= max
		},
		Error: newError(field,
			fmt.Sprintf("must be at most %s", formatNumber(max)),
			"validation.max",
			map[string]any{"max": max},
		),
	}
}

func Numeric(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			_, ok := sanitizer.ToFloat(value)
			return ok
		},
		Error: newError(field, "must be a number", "validation.numeric", nil),
	}
}

func Integer(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			_, ok := sanitizer.ToInt(value)
			return ok
		},
		Error: newError(field, "must be a whole number", "validation.integer", nil),
	}
}

func Boolean(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			_, ok := sanitizer.ToBool(value)
			return ok
		},
		Error: newError(field, "must be true or false", "validation.boolean", nil),
	}
}

// OneOf checks that value, or every element of a sequence value, is one of
// allowed.
func OneOf(field string, value any, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			values, ok := sanitizer.ToStrings(value)
			if !ok {
				return false
			}
			for _, v := range values {
				if !slices.Contains(allowed, v) {
					return false
				}
			}
			return true
		},
		Error: newError(field, "contains an invalid option", "validation.one_of",
			map[string]any{"options": strings.Join(allowed, ", ")},
		),
	}
}

// MinItems checks the number of elements of a container. Scalars count as
// one element, nil as none.
func MinItems(field string, value any, min int) Rule {
	return Rule{
		Check: func() bool {
			return countItems(value) >= min
		},
		Error: newError(field,
			fmt.Sprintf("must have at least %d items", min),
			"validation.min_items",
			map[string]any{"min": min},
		),
	}
}

func MaxItems(field string, value any, max int) Rule {
	return Rule{
		Check: func() bool {
			return countItems(value) <= max
		},
		Error: newError(field,
			fmt.Sprintf("must have at most %d items", max),
			"validation.max_items",
			map[string]any{"max": max},
		),
	}
}

func countItems(v any) int {
	switch val := v.(type) {
	case nil:
		return 0
	case []any:
		return len(val)
	case *data.Map:
		return val.Len()
	default:
		return 1
	}
}

// Single rejects sequences for fields that accept one value.
func Single(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			return !data.IsContainer(value)
		},
		Error: newError(field, "must be a single value", "validation.single", nil),
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
