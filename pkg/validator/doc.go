// Package validator provides small validation rules for loosely-typed field
// values such as those decoded from JSON, YAML or HTML forms.
//
// A Rule pairs a Check function with translation-friendly error metadata.
// Rules are evaluated with Apply, which aggregates failures into a
// ValidationErrors value that satisfies the error interface:
//
//	err := validator.Apply(
//	    validator.Required("email", v),
//	    validator.Email("email", v),
//	)
//	for _, e := range validator.ExtractValidationErrors(err) {
//	    fmt.Println(e.TranslationKey, e.TranslationValues)
//	}
//
// Type rules (Numeric, Email, UUID, ...) only judge values that are present;
// pair them with Required when emptiness must fail. Values are coerced with
// the sanitizer package, so "42" and json.Number("42") are both numeric.
package validator
