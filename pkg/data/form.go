package data

import (
	"errors"
	"net/url"
	"slices"
	"strings"
)

// FromQuery decodes an application/x-www-form-urlencoded string keeping the
// order in which fields appear. Bracket notation builds nested containers:
//
//	user[name]=John&user[roles][]=admin&user[roles][]=dev
//
// yields {"user": {"name": "John", "roles": ["admin", "dev"]}}.
// A repeated plain key keeps the last value.
func FromQuery(raw string) (*Map, error) {
	m := NewMap()
	for pair := range strings.SplitSeq(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			return nil, errors.Join(ErrInvalidQuery, err)
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			return nil, errors.Join(ErrInvalidQuery, err)
		}
		if k == "" {
			continue
		}
		Insert(m, k, v)
	}
	return m, nil
}

// FromValues converts url.Values using the same bracket notation as FromQuery.
// url.Values has no order, so fields are inserted sorted by name; values of a
// multi-valued plain key become a sequence.
func FromValues(values url.Values) *Map {
	m := NewMap()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		vals := values[k]
		if len(vals) > 1 && !strings.Contains(k, "[") {
			items := make([]any, len(vals))
			for i, v := range vals {
				items[i] = v
			}
			m.Set(k, items)
			continue
		}
		for _, v := range vals {
			Insert(m, k, v)
		}
	}
	return m
}

// Insert stores value in m under a bracket-notation field name.
func Insert(m *Map, field string, value any) {
	segs := splitField(field)
	insertPath(m, segs, value)
}

func insertPath(container any, segs []string, value any) any {
	seg := segs[0]
	if seg == "" {
		list, _ := container.([]any)
		if len(segs) == 1 {
			return append(list, value)
		}
		return append(list, insertPath(nil, segs[1:], value))
	}

	m, ok := container.(*Map)
	if !ok {
		m = NewMap()
	}
	if len(segs) == 1 {
		m.Set(seg, value)
		return m
	}
	child, _ := m.Get(seg)
	m.Set(seg, insertPath(child, segs[1:], value))
	return m
}

// splitField splits "a[b][]" into ["a", "b", ""]. Malformed names are kept
// as a single literal segment.
func splitField(field string) []string {
	i := strings.IndexByte(field, '[')
	if i <= 0 {
		return []string{field}
	}

	segs := []string{field[:i]}
	rest := field[i:]
	for rest != "" {
		if rest[0] != '[' {
			return []string{field}
		}
		j := strings.IndexByte(rest, ']')
		if j < 0 {
			return []string{field}
		}
		segs = append(segs, rest[1:j])
		rest = rest[j+1:]
	}
	return segs
}
