// Package sanitizer coerces loosely-typed field values into canonical Go
// values and cleans up strings.
//
// Decoded payloads carry numbers as json.Number, form values as strings and
// YAML scalars as native types. The To* helpers accept any of these and
// report whether the conversion succeeded, so field types can decide what to
// do with values that do not fit.
//
//	n, ok := sanitizer.ToInt(json.Number("42"))    // 42, true
//	b, ok := sanitizer.ToBool("on")                // true, true
//	s := sanitizer.Apply(" Foo ", sanitizer.TrimToLower)
//
// Apply and Compose build transformation pipelines for any value type.
package sanitizer
