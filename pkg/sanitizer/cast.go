package sanitizer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToString converts scalars to their string form. Containers and nil are
// rejected.
func ToString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case []byte:
		return string(val), true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case int32, int16, int8, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return "", false
	}
}

// ToFloat converts numbers and numeric strings to float64. Blank strings,
// NaN and infinities are rejected.
func ToFloat(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case int32:
		f = float64(val)
	case int16:
		f = float64(val)
	case int8:
		f = float64(val)
	case uint:
		f = float64(val)
	case uint64:
		f = float64(val)
	case uint32:
		f = float64(val)
	case uint16:
		f = float64(val)
	case uint8:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToInt converts integral numbers and strings to int64. Floats are accepted
// only when they carry no fraction.
func ToInt(v any) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int64:
		return val, true
	case int32:
		return int64(val), true
	case int16:
		return int64(val), true
	case int8:
		return int64(val), true
	case uint8:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint32:
		return int64(val), true
	case uint:
		if uint64(val) <= math.MaxInt64 {
			return int64(val), true
		}
		return 0, false
	case uint64:
		if val <= math.MaxInt64 {
			return int64(val), true
		}
		return 0, false
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, true
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64); err == nil {
			return i, true
		}
	}

	f, ok := ToFloat(v)
	if !ok || f != math.Trunc(f) || !InInt64Range(f) {
		return 0, false
	}
	return int64(f), true
}

// InInt64Range reports whether f converts to int64 without overflow.
// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
func InInt64Range(f float64) bool {
	return f >= math.MinInt64 && f < 1<<63
}

// ToBool understands the values HTML forms and config files use for
// switches: true/false, 1/0, on/off, yes/no.
func ToBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "true", "on", "yes", "y":
			return true, true
		case "0", "false", "off", "no", "n", "":
			return false, true
		}
		return false, false
	}

	if f, ok := ToFloat(v); ok {
		switch f {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return false, false
}

// ToStrings converts a value to a list of strings. A scalar becomes a single
// element list; a sequence must hold scalars only. A comma separated string
// is not split.
func ToStrings(v any) ([]string, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case []string:
		return val, true
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := ToString(item)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}

	s, ok := ToString(v)
	if !ok {
		return nil, false
	}
	return []string{s}, true
}
