package data

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML decodes a YAML mapping keeping the document key order.
// An empty document yields an empty map.
func FromYAML(b []byte) (*Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, errors.Join(ErrInvalidYAML, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewMap(), nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.AliasNode {
		root = root.Alias
	}
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotObject
	}

	v, err := FromYAMLNode(root)
	if err != nil {
		return nil, err
	}
	return v.(*Map), nil
}

// FromYAMLNode converts a decoded yaml.Node into a tree value.
// Mapping keys are used as strings; merge keys ("<<") are expanded in place.
func FromYAMLNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return FromYAMLNode(node.Content[0])

	case yaml.AliasNode:
		return FromYAMLNode(node.Alias)

	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			if keyNode.Tag == "!!merge" {
				if err := mergeYAML(m, valNode); err != nil {
					return nil, err
				}
				continue
			}
			val, err := FromYAMLNode(valNode)
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, val)
		}
		return m, nil

	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := FromYAMLNode(child)
			if err != nil {
				return nil, err
			}
			items = append(items, val)
		}
		return items, nil

	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, errors.Join(ErrInvalidYAML, err)
		}
		return v, nil

	default:
		return nil, fmt.Errorf("%w: unsupported node kind %d at line %d", ErrInvalidYAML, node.Kind, node.Line)
	}
}

// mergeYAML copies entries of a merge source into m without overriding keys
// that are already present.
func mergeYAML(m *Map, src *yaml.Node) error {
	sources := []*yaml.Node{src}
	if src.Kind == yaml.SequenceNode {
		sources = src.Content
	}
	for _, s := range sources {
		v, err := FromYAMLNode(s)
		if err != nil {
			return err
		}
		sm, ok := v.(*Map)
		if !ok {
			return fmt.Errorf("%w: merge value at line %d is not a mapping", ErrInvalidYAML, s.Line)
		}
		for k, child := range sm.All() {
			if !m.Has(k) {
				m.Set(k, child)
			}
		}
	}
	return nil
}

// UnmarshalYAML replaces the contents of m with the decoded mapping.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	v, err := FromYAMLNode(node)
	if err != nil {
		return err
	}
	decoded, ok := v.(*Map)
	if !ok {
		return ErrNotObject
	}
	*m = *decoded
	return nil
}
