package data

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strconv"
)

// Map is a string-keyed map that remembers insertion order.
// Setting an existing key replaces its value and keeps its position.
// The zero value is not usable; create maps with NewMap or MapOf.
// A nil *Map behaves as an empty, read-only map.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// MapOf builds a map from alternating key/value arguments.
// It panics if a key is not a string or a value is missing, so it is meant
// for literals in code and tests.
//
//	m := data.MapOf("name", "John", "tags", []any{"a", "b"})
func MapOf(kv ...any) *Map {
	if len(kv)%2 != 0 {
		panic("data: MapOf requires an even number of arguments")
	}
	m := &Map{
		keys:   make([]string, 0, len(kv)/2),
		values: make(map[string]any, len(kv)/2),
	}
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("data: MapOf key at position %d is %T, not string", i, kv[i]))
		}
		m.Set(key, kv[i+1])
	}
	return m
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Set stores value under key and returns m to allow chaining.
func (m *Map) Set(key string, value any) *Map {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	if i := slices.Index(m.keys, key); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
}

// All iterates over entries in insertion order.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Lookup walks nested containers. Sequence elements are addressed by their
// decimal index.
//
//	v, ok := m.Lookup("data", "name", "avatar")
func (m *Map) Lookup(path ...string) (any, bool) {
	var current any = m
	for _, seg := range path {
		switch c := current.(type) {
		case *Map:
			v, ok := c.Get(seg)
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(c) {
				return nil, false
			}
			current = c[i]
		default:
			return nil, false
		}
	}
	return current, true
}

// Clone returns a deep copy of the map. Scalars are copied by value.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	return cloneValue(m).(*Map)
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Map:
		out := &Map{
			keys:   slices.Clone(val.keys),
			values: make(map[string]any, len(val.values)),
		}
		for k, child := range val.values {
			out.values[k] = cloneValue(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = cloneValue(child)
		}
		return out
	default:
		return v
	}
}

// Equal reports whether two tree values are deeply equal. Map key order is
// significant.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		if av.Len() == 0 {
			return true
		}
		if !slices.Equal(av.keys, bv.keys) {
			return false
		}
		for _, k := range av.keys {
			if !Equal(av.values[k], bv.values[k]) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}
