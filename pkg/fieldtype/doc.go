// Package fieldtype implements per-field validation and filtering for
// blueprint field types.
//
// A Registry maps type names ("text", "email", "select", ...) to a Type
// holding the type's validation rules and filter. It implements
// blueprint.FieldOperator, so it is handed to the schema directly:
//
//	types := fieldtype.New()
//	schema := blueprint.New(index, tree, blueprint.WithFieldOperator(types))
//
// The type used for a field is validate.type when set, otherwise the field
// type. Unknown types impose no constraint and filter values unchanged.
//
// Messages are rendered from the validator translation keys. Without a
// Translator they read "<label> <message>"; WithTranslator returns a copy
// that renders them in another language while sharing the type table.
package fieldtype
