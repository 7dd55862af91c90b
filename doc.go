// Package blueprint validates and filters nested form data against a
// declarative schema.
//
// A schema is a pair of structures built once and reused for many calls:
//
//   - RuleIndex maps a rule path ("header.title") to its Rule definition
//     (type, label, validate options, type specific options).
//   - RuleTree mirrors the shape of the data. Each leaf names a rule path,
//     each interior node is a nested RuleTree. The "*" key is a wildcard used
//     for any data key without an explicit entry, and a level may be strict,
//     which rejects (Validate) or drops (Filter) undeclared keys.
//
// The engine walks data and rules in lock-step. Leaf work is delegated to a
// FieldOperator (see pkg/fieldtype for the registry of field types); labels
// and the missing-field message come from a Labeler and a MessageFormatter.
//
// # Usage
//
//	schema := blueprint.New(index, tree,
//		blueprint.WithFieldOperator(fieldtype.New()),
//	)
//
//	if err := schema.Validate(payload); err != nil {
//		var verr blueprint.ValidationError
//		var violation *blueprint.SchemaViolationError
//		switch {
//		case errors.As(err, &verr):
//			// field -> messages, show them next to the form inputs
//		case errors.As(err, &violation):
//			// the client sent a field the blueprint never declared
//		}
//	}
//
//	clean, err := schema.Filter(payload, true)
//
// # Validate vs Filter
//
// Validate is strict and loud: an undeclared key under a strict level aborts
// the walk with a *SchemaViolationError. Filter is strict and silent: the
// same key is dropped from the output. Per-field problems never abort
// validation; they are collected into a ValidationError returned once the
// whole tree has been visited.
//
// # Message keys
//
// ValidationError is keyed by the rule name ("header.title") for fields
// declared explicitly. Values matched through a "*" wildcard are keyed by
// their data path instead ("items.0.sku", "items.1.sku"), so messages of
// sibling items stay apart and do not collapse onto the shared rule name.
//
// # Concurrency
//
// A Schema holds no mutable state. It is safe for concurrent use as long as
// the RuleIndex and RuleTree it was built from are not modified.
package blueprint
