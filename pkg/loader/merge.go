package loader

import (
	"fmt"
	"maps"

	"dario.cat/mergo"
)

// mergeDef fills the properties child leaves unset from parent. Children of
// both are merged by name, parent declarations first.
func mergeDef(child, parent FieldDef) (FieldDef, error) {
	fields, err := mergeFields(child.Fields, parent.Fields)
	if err != nil {
		return FieldDef{}, err
	}

	base := parent.clone()
	base.Fields = nil
	child.Fields = nil

	if err := mergo.Merge(&child, base, mergo.WithoutDereference); err != nil {
		return FieldDef{}, err
	}
	child.Fields = fields
	return child, nil
}

func mergeFields(child, parent Fields) (Fields, error) {
	if len(parent) == 0 {
		return child, nil
	}

	out := make(Fields, 0, len(parent)+len(child))
	for _, p := range parent {
		def := p.Def.clone()
		if c, ok := child.Lookup(p.Name); ok {
			merged, err := mergeDef(c, p.Def)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", p.Name, err)
			}
			def = merged
		}
		out = append(out, Field{Name: p.Name, Def: def})
	}
	for _, c := range child {
		if _, ok := parent.Lookup(c.Name); !ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// Extend returns child with every declaration of parent merged beneath it.
func Extend(child, parent *Blueprint) (*Blueprint, error) {
	out := *child
	out.Extends = ""
	if out.Title == "" {
		out.Title = parent.Title
	}
	if out.Validation == "" {
		out.Validation = parent.Validation
	}
	if out.Form.Validation == "" {
		out.Form.Validation = parent.Form.Validation
	}

	types := maps.Clone(parent.Types)
	if types == nil {
		types = make(map[string]FieldDef, len(child.Types))
	}
	for name, def := range child.Types {
		if base, ok := parent.Types[name]; ok {
			merged, err := mergeDef(def, base)
			if err != nil {
				return nil, &FileError{Name: child.Name, Err: fmt.Errorf("type %q: %w", name, err)}
			}
			def = merged
		}
		types[name] = def
	}
	out.Types = types

	fields, err := mergeFields(child.Form.Fields, parent.Form.Fields)
	if err != nil {
		return nil, &FileError{Name: child.Name, Err: err}
	}
	out.Form.Fields = fields
	return &out, nil
}
