package data

import (
	"iter"
	"strconv"
)

// Kind classifies a tree value.
type Kind uint8

const (
	KindScalar Kind = iota
	KindSequence
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindMap:
		return "map"
	default:
		return "scalar"
	}
}

// KindOf reports the kind of v. Only *Map and []any are containers; use
// Normalize to convert native Go maps and typed slices first.
func KindOf(v any) Kind {
	switch v.(type) {
	case *Map:
		return KindMap
	case []any:
		return KindSequence
	default:
		return KindScalar
	}
}

// IsContainer reports whether v is a sequence or a map.
func IsContainer(v any) bool {
	return KindOf(v) != KindScalar
}

// IsEmpty reports whether v is nil or an empty container.
func IsEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case *Map:
		return val.Len() == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}

// Entries iterates over the children of a container. Map entries are yielded
// in insertion order, sequence entries with their decimal index as the key.
// Scalars yield nothing.
func Entries(v any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		switch val := v.(type) {
		case *Map:
			for k, child := range val.All() {
				if !yield(k, child) {
					return
				}
			}
		case []any:
			for i, child := range val {
				if !yield(strconv.Itoa(i), child) {
					return
				}
			}
		}
	}
}
