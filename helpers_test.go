package blueprint_test

import (
	"strings"

	"github.com/dmitrymomot/blueprint"
)

// trimOperator rejects the literal value "bad" and trims strings when filtering.
type trimOperator struct{}

func (trimOperator) ValidateField(value any, rule *blueprint.Rule) []string {
	if s, ok := value.(string); ok && s == "bad" {
		return []string{"invalid " + rule.DisplayName()}
	}
	return nil
}

func (trimOperator) FilterField(value any, _ *blueprint.Rule) any {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return value
}

func rule(name string, mods ...func(*blueprint.Rule)) *blueprint.Rule {
	r := &blueprint.Rule{Name: name, Type: "text"}
	for _, m := range mods {
		m(r)
	}
	return r
}

func required(r *blueprint.Rule) { r.Validate.Required = true }

func ignored(r *blueprint.Rule) { r.Validate.Ignore = true }

func labeled(label string) func(*blueprint.Rule) {
	return func(r *blueprint.Rule) { r.Label = label }
}

func typed(t string) func(*blueprint.Rule) {
	return func(r *blueprint.Rule) { r.Type = t }
}

func newSchema(index blueprint.RuleIndex, tree *blueprint.RuleTree, opts ...blueprint.Option) *blueprint.Schema {
	opts = append([]blueprint.Option{blueprint.WithFieldOperator(trimOperator{})}, opts...)
	return blueprint.New(index, tree, opts...)
}
