// Package data provides the loosely-typed tree used for submitted payloads and
// blueprint sources: a tagged union of scalars, sequences ([]any) and ordered
// string-keyed maps (*Map).
//
// Go maps do not keep insertion order, while blueprint validation and
// filtering depend on it (filtered output follows schema order, then data
// order). Map keeps keys in insertion order and serialises them in that order.
//
// # Kinds
//
//   - KindScalar   – any value that is not a container (string, bool, number, nil, …)
//   - KindSequence – []any; elements are addressed by their decimal index
//   - KindMap      – *Map
//
// Sequences and maps are both containers and are walked the same way by
// Entries, which yields index keys ("0", "1", …) for sequences.
//
// # Decoding
//
//	m, err := data.FromJSON(body)          // key order preserved (gjson)
//	m, err := data.FromYAML(content)       // key order preserved (yaml.Node)
//	m, err := data.FromQuery(r.Form.Encode()) // bracket notation: a[b][]=1
//
// JSON numbers are kept as json.Number so integers survive a round trip
// without float conversion.
package data
