package blueprint

import "github.com/dmitrymomot/blueprint/pkg/data"

// Rule is the definition of a single blueprint field.
type Rule struct {
	// Name is the canonical field name, usually the full dotted path.
	Name  string
	Type  string
	Label string

	Default any
	// Options lists the accepted values of choice fields (value -> label).
	Options  *data.Map
	Multiple bool

	Validate Validation

	// Extra keeps type specific properties that have no dedicated field.
	Extra map[string]any
}

// Validation holds the "validate" section of a field.
// Min and Max apply to string length, numeric value or item count depending
// on the field type.
type Validation struct {
	Required bool
	Ignore   bool
	// Type overrides Rule.Type for validation and filtering.
	Type    string
	Min     *float64
	Max     *float64
	Pattern string
	// Message replaces the type specific failure message.
	Message string
}

// Required reports whether the field must be present.
func (r *Rule) Required() bool {
	return r != nil && r.Validate.Required
}

// Ignored reports whether the field is excluded from validation and filtering.
func (r *Rule) Ignored() bool {
	return r != nil && r.Validate.Ignore
}

// ValidationType returns the type used for validation: validate.type when
// set, otherwise the field type.
func (r *Rule) ValidationType() string {
	if r == nil {
		return ""
	}
	if r.Validate.Type != "" {
		return r.Validate.Type
	}
	return r.Type
}

// DisplayName returns the label, falling back to the name.
func (r *Rule) DisplayName() string {
	if r == nil {
		return ""
	}
	if r.Label != "" {
		return r.Label
	}
	return r.Name
}

// RuleIndex maps rule paths to rule definitions.
type RuleIndex map[string]*Rule

// Lookup returns the rule stored under path. A nil entry counts as absent.
func (ix RuleIndex) Lookup(path string) (*Rule, bool) {
	r, ok := ix[path]
	if !ok || r == nil {
		return nil, false
	}
	return r, true
}
