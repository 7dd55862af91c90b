package blueprint

import "github.com/dmitrymomot/blueprint/pkg/data"

// filter rebuilds one data level. Maps come back as *data.Map, sequences as
// []any holding the kept elements in order.
func (w *walker) filter(node any, rules *RuleTree, path []string, missingAsNull bool) (any, error) {
	if err := w.enter(node, path); err != nil {
		return nil, err
	}
	defer w.leave(node)

	_, isSequence := node.([]any)
	result := data.NewMap()

	if missingAsNull && !isSequence {
		for key, entry := range rules.All() {
			if key == Wildcard || !w.declared(entry) {
				continue
			}
			result.Set(key, nil)
		}
	}

	for key, value := range data.Entries(node) {
		entry, _, ok := rules.Resolve(key)
		fieldPath := appendPath(path, key)
		out := value

		rule, defined := w.leafRule(entry)
		switch {
		case ok && defined:
			if rule.Ignored() {
				continue
			}
			out = w.schema.operator.FilterField(value, rule)

		case ok && !entry.IsLeaf() && data.IsContainer(value):
			filtered, err := w.filter(value, entry.Tree, fieldPath, missingAsNull)
			if err != nil {
				return nil, err
			}
			out = filtered

		default:
			if ok && !entry.IsLeaf() && value != nil {
				w.scalarForSubtree(fieldPath, value)
			}
			if rules.Strict() {
				out = nil
			}
		}

		if out == nil || (data.IsContainer(out) && data.IsEmpty(out)) {
			continue
		}
		result.Set(key, out)
	}

	if isSequence {
		items := make([]any, 0, result.Len())
		for _, v := range result.All() {
			items = append(items, v)
		}
		return items, nil
	}
	return result, nil
}

// declared reports whether a tree entry is seeded by missingAsNull: defined
// leaves that are not ignored, and nested trees.
func (w *walker) declared(entry RuleNode) bool {
	if !entry.IsLeaf() {
		return true
	}
	rule, ok := w.leafRule(entry)
	return ok && !rule.Ignored()
}
