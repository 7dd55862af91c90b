package blueprint

// FieldOperator performs type specific work on a single field value.
// Implementations must treat unknown rule types as "no constraint" and
// must not modify the value they receive.
type FieldOperator interface {
	// ValidateField returns the failure messages for value, none when valid.
	ValidateField(value any, rule *Rule) []string
	// FilterField returns the canonical form of value. Returning nil drops
	// the field from filtered output.
	FilterField(value any, rule *Rule) any
}

// Labeler resolves the human readable label of a field.
type Labeler interface {
	Label(rule *Rule) string
}

// MessageFormatter renders the message reported for a missing required field.
type MessageFormatter interface {
	MissingField(label string) string
}

// LabelerFunc adapts a function to Labeler.
type LabelerFunc func(rule *Rule) string

func (f LabelerFunc) Label(rule *Rule) string { return f(rule) }

// MessageFormatterFunc adapts a function to MessageFormatter.
type MessageFormatterFunc func(label string) string

func (f MessageFormatterFunc) MissingField(label string) string { return f(label) }

// DefaultMissingFieldTemplate is the untranslated missing-field prefix.
const DefaultMissingFieldTemplate = "Missing required field:"

// PassThrough is a FieldOperator that accepts every value unchanged.
type PassThrough struct{}

func (PassThrough) ValidateField(any, *Rule) []string { return nil }

func (PassThrough) FilterField(value any, _ *Rule) any { return value }

var (
	defaultLabeler   = LabelerFunc((*Rule).DisplayName)
	defaultFormatter = MessageFormatterFunc(func(label string) string {
		return DefaultMissingFieldTemplate + " " + label
	})
)
