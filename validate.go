package blueprint

import (
	"strings"

	"github.com/dmitrymomot/blueprint/pkg/data"
)

// validate walks one data level. Field messages go to report; a schema
// violation or structural error stops the walk and is returned.
func (w *walker) validate(node any, rules *RuleTree, path []string, report ValidationError) error {
	if err := w.enter(node, path); err != nil {
		return err
	}
	defer w.leave(node)

	w.checkRequired(node, rules, path, report)

	for key, value := range data.Entries(node) {
		entry, wildcard, ok := rules.Resolve(key)
		fieldPath := appendPath(path, key)

		if rule, defined := w.leafRule(entry); ok && defined {
			if rule.Ignored() {
				continue
			}
			if messages := w.schema.operator.ValidateField(value, rule); len(messages) > 0 {
				report.Add(fieldName(rule, fieldPath, wildcard), messages...)
			}
			continue
		}

		if ok && !entry.IsLeaf() {
			if data.IsContainer(value) {
				if err := w.validate(value, entry.Tree, fieldPath, report); err != nil {
					return err
				}
				continue
			}
			// null for a declared subtree means "no data", not an undeclared key
			if value == nil {
				continue
			}
			w.scalarForSubtree(fieldPath, value)
		}

		if rules.Strict() {
			return &SchemaViolationError{Key: key, Path: dotted(fieldPath)}
		}
	}

	return nil
}

// fieldName picks the report key for a leaf: the rule name for explicit
// entries, the data path for anything reached through a wildcard so sibling
// items stay apart.
func fieldName(rule *Rule, path []string, wildcard bool) string {
	if wildcard || rule.Name == "" || strings.Contains(rule.Name, Wildcard) {
		return dotted(path)
	}
	return rule.Name
}
