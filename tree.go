package blueprint

import (
	"fmt"
	"iter"
	"slices"

	"github.com/dmitrymomot/blueprint/pkg/data"
)

const (
	// Wildcard is the fallback key of a rule tree level.
	Wildcard = "*"
	// ValidationKey marks the strictness of a level in the map form of a tree.
	ValidationKey = "validation"
	// StrictValidation is the ValidationKey value that enables strict mode.
	StrictValidation = "strict"
)

// RuleNode is an entry of a RuleTree: either a leaf naming a rule path or a
// nested tree.
type RuleNode struct {
	Path string
	Tree *RuleTree
}

// IsLeaf reports whether the node names a rule path.
func (n RuleNode) IsLeaf() bool {
	return n.Tree == nil
}

// RuleTree is an ordered mapping mirroring the shape of the data.
// Build it once per schema; it must not change while a schema uses it.
type RuleTree struct {
	keys   []string
	nodes  map[string]RuleNode
	strict bool
}

func NewRuleTree() *RuleTree {
	return &RuleTree{nodes: make(map[string]RuleNode)}
}

// Leaf adds a key resolved through the rule index.
func (t *RuleTree) Leaf(key, path string) *RuleTree {
	return t.set(key, RuleNode{Path: path})
}

// Nest adds a key whose value is validated by a nested tree.
func (t *RuleTree) Nest(key string, sub *RuleTree) *RuleTree {
	if sub == nil {
		sub = NewRuleTree()
	}
	return t.set(key, RuleNode{Tree: sub})
}

func (t *RuleTree) set(key string, node RuleNode) *RuleTree {
	if _, ok := t.nodes[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.nodes[key] = node
	return t
}

// SetStrict toggles strict mode for this level only.
func (t *RuleTree) SetStrict(strict bool) *RuleTree {
	t.strict = strict
	return t
}

func (t *RuleTree) Strict() bool {
	return t != nil && t.strict
}

func (t *RuleTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

func (t *RuleTree) Keys() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.keys)
}

func (t *RuleTree) Get(key string) (RuleNode, bool) {
	if t == nil {
		return RuleNode{}, false
	}
	n, ok := t.nodes[key]
	return n, ok
}

// Resolve returns the entry for key, falling back to the wildcard entry.
// wildcard is true when the fallback was used.
func (t *RuleTree) Resolve(key string) (node RuleNode, wildcard bool, ok bool) {
	if n, found := t.Get(key); found {
		return n, false, true
	}
	if n, found := t.Get(Wildcard); found {
		return n, true, true
	}
	return RuleNode{}, false, false
}

// All iterates over the entries in declaration order.
func (t *RuleTree) All() iter.Seq2[string, RuleNode] {
	return func(yield func(string, RuleNode) bool) {
		if t == nil {
			return
		}
		for _, k := range t.keys {
			if !yield(k, t.nodes[k]) {
				return
			}
		}
	}
}

// Paths returns every leaf rule path, depth first in declaration order.
func (t *RuleTree) Paths() []string {
	var paths []string
	for _, node := range t.All() {
		if node.IsLeaf() {
			paths = append(paths, node.Path)
			continue
		}
		paths = append(paths, node.Tree.Paths()...)
	}
	return paths
}

// RuleTreeFromMap builds a tree from its map form, where string values are
// rule paths, nested maps are subtrees and "validation: strict" marks a
// strict level. In this form "validation" is reserved and cannot name a field.
func RuleTreeFromMap(m *data.Map) (*RuleTree, error) {
	return ruleTreeFromMap(m, "")
}

func ruleTreeFromMap(m *data.Map, prefix string) (*RuleTree, error) {
	t := NewRuleTree()
	for key, value := range m.All() {
		if key == ValidationKey {
			if s, ok := value.(string); ok {
				t.strict = s == StrictValidation
				continue
			}
		}

		switch v := value.(type) {
		case string:
			t.Leaf(key, v)
		case *data.Map:
			sub, err := ruleTreeFromMap(v, joinPath(prefix, key))
			if err != nil {
				return nil, err
			}
			t.Nest(key, sub)
		default:
			return nil, fmt.Errorf("%w: %q must be a rule path or a nested map, got %T", ErrInvalidRuleTree, joinPath(prefix, key), value)
		}
	}
	return t, nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
