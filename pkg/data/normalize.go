package data

import (
	"fmt"
	"reflect"
	"slices"
)

// Normalize converts native Go containers into tree values: maps become *Map
// (keys sorted, since Go maps carry no order) and slices other than []byte
// become []any. An existing *Map is copied with its children normalised.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case *Map:
		if val == nil {
			return nil
		}
		out := NewMap()
		for k, child := range val.All() {
			out.Set(k, Normalize(child))
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = Normalize(child)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := NewMap()
		for _, k := range keys {
			out.Set(k, Normalize(val[k]))
		}
		return out
	case []byte:
		return string(val)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]reflect.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, k)
			byKey[k] = iter.Value()
		}
		slices.Sort(keys)
		out := NewMap()
		for _, k := range keys {
			out.Set(k, Normalize(byKey[k].Interface()))
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	default:
		return v
	}
}

// NormalizeMap is Normalize for a map root.
func NormalizeMap(m map[string]any) *Map {
	return Normalize(m).(*Map)
}
