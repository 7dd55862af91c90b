package blueprint

import "github.com/dmitrymomot/blueprint/pkg/data"

// FileType is the field type whose uploads satisfy a required check through
// the data.name.<field> entry of the payload.
const FileType = "file"

// checkRequired reports required fields missing from a single data level.
// Nested trees are checked when the walk reaches them.
func (w *walker) checkRequired(node any, rules *RuleTree, path []string, report ValidationError) {
	for key, entry := range rules.All() {
		if key == Wildcard {
			continue
		}
		rule, ok := w.leafRule(entry)
		if !ok || rule.Ignored() || !rule.Required() {
			continue
		}

		if v, present := child(node, key); present && v != nil {
			continue
		}
		if rule.Type == FileType && fileUploaded(node, key) {
			continue
		}

		field := fieldName(rule, appendPath(path, key), false)
		label := w.schema.labeler.Label(rule)
		report.Add(field, w.schema.formatter.MissingField(label))
	}
}

func fileUploaded(node any, key string) bool {
	m, ok := node.(*data.Map)
	if !ok {
		return false
	}
	v, ok := m.Lookup("data", "name", key)
	return ok && v != nil
}
