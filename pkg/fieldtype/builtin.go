package fieldtype

import (
	"math"
	"strings"

	"github.com/dmitrymomot/blueprint"
	"github.com/dmitrymomot/blueprint/pkg/data"
	"github.com/dmitrymomot/blueprint/pkg/sanitizer"
	"github.com/dmitrymomot/blueprint/pkg/validator"
)

var (
	singleLine = sanitizer.Compose(sanitizer.StripControlChars, sanitizer.SingleLine, sanitizer.Trim)
	multiLine  = sanitizer.Compose(sanitizer.StripControlChars, sanitizer.Trim)
)

func builtinTypes() map[string]Type {
	types := []Type{
		{Name: "text", Rules: textRules, Filter: stringFilter(singleLine)},
		{Name: "textarea", Rules: textRules, Filter: stringFilter(multiLine)},
		{Name: "password", Rules: textRules, Filter: stringFilter(nil)},
		{Name: "hidden", Rules: textRules, Filter: stringFilter(sanitizer.Trim)},
		{Name: "email", Rules: formatRules(validator.Email), Filter: stringFilter(sanitizer.TrimToLower)},
		{Name: "url", Rules: formatRules(validator.URL), Filter: stringFilter(sanitizer.Trim)},
		{Name: "uuid", Rules: formatRules(validator.UUID), Filter: stringFilter(sanitizer.TrimToLower)},
		{Name: "date", Rules: dateRules, Filter: stringFilter(sanitizer.Trim)},
		{Name: "number", Rules: numberRules(validator.Numeric), Filter: filterFloat},
		{Name: "range", Rules: numberRules(validator.Numeric), Filter: filterFloat},
		{Name: "int", Rules: numberRules(validator.Integer), Filter: filterInt},
		{Name: "select", Rules: choiceRules, Filter: filterChoice},
		{Name: "radio", Rules: choiceRules, Filter: filterChoice},
		{Name: "checkboxes", Rules: listRules, Filter: filterStringList},
		{Name: "list", Rules: listRules, Filter: filterList},
		{Name: "array", Rules: listRules, Filter: filterList},
		{Name: blueprint.FileType},
		{Name: "ignore", Filter: func(any, *blueprint.Rule) any { return nil }},
	}
	for _, name := range []string{"toggle", "checkbox", "bool"} {
		types = append(types, Type{Name: name, Rules: boolRules, Filter: filterBool, Toggle: true})
	}

	out := make(map[string]Type, len(types))
	for _, t := range types {
		out[t.Name] = t
	}
	return out
}

// isEmpty reports whether a value counts as not given.
func isEmpty(value any, t Type) bool {
	if t.Toggle {
		if b, ok := value.(bool); ok && !b {
			return true
		}
	}
	return validator.IsBlank(value)
}

func textRules(field string, value any, rule *blueprint.Rule) []validator.Rule {
	rules := singleRule(field, value, rule)
	if min := rule.Validate.Min; min != nil {
		rules = append(rules, validator.MinLength(field, value, int(*min)))
	}
	if max := rule.Validate.Max; max != nil {
		rules = append(rules, validator.MaxLength(field, value, int(*max)))
	}
	return rules
}

// formatRules checks a single value, or every element of a multiple field.
func formatRules(check func(string, any) validator.Rule) RulesFunc {
	return func(field string, value any, rule *blueprint.Rule) []validator.Rule {
		if items, ok := value.([]any); ok && rule.Multiple {
			rules := make([]validator.Rule, 0, len(items))
			for _, item := range items {
				rules = append(rules, check(field, item))
			}
			return rules
		}
		return append(singleRule(field, value, rule), check(field, value))
	}
}

func dateRules(field string, value any, rule *blueprint.Rule) []validator.Rule {
	var layouts []string
	if format, ok := rule.Extra["format"].(string); ok && format != "" {
		layouts = append(layouts, format)
	}
	return append(singleRule(field, value, rule), validator.Date(field, value, layouts...))
}

func numberRules(kind func(string, any) validator.Rule) RulesFunc {
	return func(field string, value any, rule *blueprint.Rule) []validator.Rule {
		rules := []validator.Rule{validator.Single(field, value), kind(field, value)}
		if min := rule.Validate.Min; min != nil {
			rules = append(rules, validator.Min(field, value, *min))
		}
		if max := rule.Validate.Max; max != nil {
			rules = append(rules, validator.Max(field, value, *max))
		}
		return rules
	}
}

func boolRules(field string, value any, _ *blueprint.Rule) []validator.Rule {
	return []validator.Rule{validator.Boolean(field, value)}
}

func choiceRules(field string, value any, rule *blueprint.Rule) []validator.Rule {
	rules := singleRule(field, value, rule)
	if rule.Options.Len() > 0 {
		rules = append(rules, validator.OneOf(field, value, rule.Options.Keys()))
	}
	if rule.Multiple {
		rules = append(rules, itemRules(field, value, rule)...)
	}
	return rules
}

func listRules(field string, value any, rule *blueprint.Rule) []validator.Rule {
	var rules []validator.Rule
	if rule.Options.Len() > 0 {
		rules = append(rules, validator.OneOf(field, value, rule.Options.Keys()))
	}
	return append(rules, itemRules(field, value, rule)...)
}

func itemRules(field string, value any, rule *blueprint.Rule) []validator.Rule {
	var rules []validator.Rule
	if min := rule.Validate.Min; min != nil {
		rules = append(rules, validator.MinItems(field, value, int(*min)))
	}
	if max := rule.Validate.Max; max != nil {
		rules = append(rules, validator.MaxItems(field, value, int(*max)))
	}
	return rules
}

func singleRule(field string, value any, rule *blueprint.Rule) []validator.Rule {
	if rule.Multiple {
		return nil
	}
	return []validator.Rule{validator.Single(field, value)}
}

// stringFilter converts scalars to strings and cleans them with clean.
// Multiple fields are filtered element by element.
func stringFilter(clean func(string) string) FilterFunc {
	one := func(v any) any {
		s, ok := sanitizer.ToString(v)
		if !ok {
			return nil
		}
		if clean != nil {
			s = clean(s)
		}
		return s
	}
	return func(value any, rule *blueprint.Rule) any {
		if items, ok := value.([]any); ok && rule.Multiple {
			return mapItems(items, one)
		}
		if data.IsContainer(value) {
			return nil
		}
		return one(value)
	}
}

func filterFloat(value any, _ *blueprint.Rule) any {
	f, ok := sanitizer.ToFloat(value)
	if !ok {
		return nil
	}
	return f
}

func filterInt(value any, _ *blueprint.Rule) any {
	if i, ok := sanitizer.ToInt(value); ok {
		return i
	}
	if f, ok := sanitizer.ToFloat(value); ok && sanitizer.InInt64Range(math.Round(f)) {
		return int64(math.Round(f))
	}
	return nil
}

func filterBool(value any, _ *blueprint.Rule) any {
	b, ok := sanitizer.ToBool(value)
	if !ok {
		return nil
	}
	return b
}

func filterChoice(value any, rule *blueprint.Rule) any {
	if rule.Multiple {
		return filterStringList(value, rule)
	}
	if data.IsContainer(value) {
		return nil
	}
	s, ok := sanitizer.ToString(value)
	if !ok {
		return nil
	}
	return strings.TrimSpace(s)
}

// filterStringList keeps a list of option values. Checkbox groups posted as
// a map of value => bool keep the checked keys.
func filterStringList(value any, _ *blueprint.Rule) any {
	if m, ok := value.(*data.Map); ok {
		var checked []any
		for k, v := range m.All() {
			if b, ok := sanitizer.ToBool(v); ok && b {
				checked = append(checked, k)
			}
		}
		return checked
	}

	values, ok := sanitizer.ToStrings(value)
	if !ok {
		return nil
	}
	out := make([]any, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// filterList keeps containers and wraps a scalar into a one element list.
func filterList(value any, _ *blueprint.Rule) any {
	if data.IsContainer(value) {
		return value
	}
	return []any{value}
}

func mapItems(items []any, fn func(any) any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		if v := fn(item); v != nil {
			out = append(out, v)
		}
	}
	return out
}
