package data

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// FromJSON decodes a JSON object keeping the document key order.
// Numbers are returned as json.Number, nulls as nil.
func FromJSON(b []byte) (*Map, error) {
	if !gjson.ValidBytes(b) {
		return nil, ErrInvalidJSON
	}
	res := gjson.ParseBytes(b)
	if !res.IsObject() {
		return nil, ErrNotObject
	}
	return fromResult(res).(*Map), nil
}

// FromJSONValue decodes any JSON document (object, array or scalar).
func FromJSONValue(b []byte) (any, error) {
	if !gjson.ValidBytes(b) {
		return nil, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(b)), nil
}

func fromResult(r gjson.Result) any {
	switch {
	case r.IsObject():
		m := NewMap()
		r.ForEach(func(k, v gjson.Result) bool {
			m.Set(k.String(), fromResult(v))
			return true
		})
		return m
	case r.IsArray():
		items := make([]any, 0)
		r.ForEach(func(_, v gjson.Result) bool {
			items = append(items, fromResult(v))
			return true
		})
		return items
	}

	switch r.Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		return json.Number(r.Raw)
	case gjson.String:
		return r.String()
	default:
		return nil
	}
}

// MarshalJSON writes the entries in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the contents of m with the decoded object.
func (m *Map) UnmarshalJSON(b []byte) error {
	decoded, err := FromJSON(b)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}
