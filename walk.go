package blueprint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrymomot/blueprint/pkg/data"
)

// walker carries the per-call state of a traversal.
type walker struct {
	schema   *Schema
	depth    int
	visiting map[*data.Map]struct{}
}

func (s *Schema) newWalker() *walker {
	return &walker{
		schema:   s,
		visiting: make(map[*data.Map]struct{}),
	}
}

// enter guards recursion depth and map cycles. Every successful enter must be
// paired with leave.
func (w *walker) enter(node any, path []string) error {
	if w.depth >= w.schema.maxDepth {
		return fmt.Errorf("%w (%d) at %q", ErrMaxDepthExceeded, w.schema.maxDepth, dotted(path))
	}
	if m, ok := node.(*data.Map); ok {
		if _, seen := w.visiting[m]; seen {
			return fmt.Errorf("%w at %q", ErrCyclicData, dotted(path))
		}
		w.visiting[m] = struct{}{}
	}
	w.depth++
	return nil
}

func (w *walker) leave(node any) {
	w.depth--
	if m, ok := node.(*data.Map); ok {
		delete(w.visiting, m)
	}
}

// leafRule resolves a tree entry to a defined rule.
func (w *walker) leafRule(node RuleNode) (*Rule, bool) {
	if !node.IsLeaf() {
		return nil, false
	}
	return w.schema.index.Lookup(node.Path)
}

// scalarForSubtree records data that holds a scalar where the blueprint
// declares a nested structure. The value is not recursed into.
func (w *walker) scalarForSubtree(path []string, value any) {
	w.schema.logger.Warn("scalar value for nested blueprint field",
		"field", dotted(path),
		"type", fmt.Sprintf("%T", value),
	)
}

// child returns the value stored under key in a container.
func child(node any, key string) (any, bool) {
	switch c := node.(type) {
	case *data.Map:
		return c.Get(key)
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	default:
		return nil, false
	}
}

func appendPath(path []string, key string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = key
	return out
}

func dotted(path []string) string {
	return strings.Join(path, ".")
}
