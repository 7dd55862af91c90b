package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/blueprint"
	"github.com/dmitrymomot/blueprint/pkg/data"
)

// Blueprint is the parsed form of a blueprint file.
type Blueprint struct {
	// Name is derived from the file path, without extension.
	Name       string              `yaml:"-"`
	Title      string              `yaml:"title"`
	Extends    string              `yaml:"extends"`
	Validation string              `yaml:"validation"`
	Types      map[string]FieldDef `yaml:"types"`
	Form       Form                `yaml:"form"`
}

type Form struct {
	Validation string `yaml:"validation"`
	Fields     Fields `yaml:"fields"`
}

// Strict reports whether undeclared top level keys are rejected.
func (b *Blueprint) Strict() bool {
	return b.Validation == blueprint.StrictValidation || b.Form.Validation == blueprint.StrictValidation
}

// FieldDef is a field as written in a blueprint. Pointer fields tell an
// unset property from an explicit zero, so merges never override "false".
type FieldDef struct {
	Type       string      `yaml:"type"`
	Label      string      `yaml:"label"`
	Default    any         `yaml:"default"`
	Options    *data.Map   `yaml:"options"`
	Multiple   *bool       `yaml:"multiple"`
	Validation string      `yaml:"validation"`
	Validate   ValidateDef `yaml:"validate"`
	Fields     Fields      `yaml:"fields"`
	// Extra holds every other property, including config-<property>@ keys.
	Extra map[string]any `yaml:",inline"`
}

type ValidateDef struct {
	Required *bool    `yaml:"required"`
	Ignore   *bool    `yaml:"ignore"`
	Type     string   `yaml:"type"`
	Min      *float64 `yaml:"min"`
	Max      *float64 `yaml:"max"`
	Pattern  string   `yaml:"pattern"`
	Message  string   `yaml:"message"`
}

// Field is a named entry of a "fields" mapping.
type Field struct {
	Name string
	Def  FieldDef
}

// Fields keeps the declaration order of a "fields" mapping.
type Fields []Field

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Fields) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: fields must be a mapping (line %d)", ErrInvalidBlueprint, node.Line)
	}

	fields := make(Fields, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var def FieldDef
		if err := value.Decode(&def); err != nil {
			return fmt.Errorf("field %q: %w", key.Value, err)
		}
		fields = append(fields, Field{Name: key.Value, Def: def})
	}
	*f = fields
	return nil
}

// Lookup returns the field declared under name at this level.
func (f Fields) Lookup(name string) (FieldDef, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Def, true
		}
	}
	return FieldDef{}, false
}

// Parse decodes a blueprint document.
func Parse(name string, b []byte) (*Blueprint, error) {
	var bp Blueprint
	if err := yaml.Unmarshal(b, &bp); err != nil {
		return nil, &FileError{Name: name, Err: fmt.Errorf("%w: %w", ErrInvalidBlueprint, err)}
	}
	bp.Name = name
	return &bp, nil
}

func (d FieldDef) clone() FieldDef {
	out := d
	out.Default = cloneAny(d.Default)
	if d.Options != nil {
		out.Options = d.Options.Clone()
	}
	if d.Multiple != nil {
		m := *d.Multiple
		out.Multiple = &m
	}
	out.Validate = d.Validate.clone()
	if d.Extra != nil {
		out.Extra = cloneAny(d.Extra).(map[string]any)
	}
	if d.Fields != nil {
		out.Fields = make(Fields, len(d.Fields))
		for i, f := range d.Fields {
			out.Fields[i] = Field{Name: f.Name, Def: f.Def.clone()}
		}
	}
	return out
}

func (v ValidateDef) clone() ValidateDef {
	out := v
	out.Required = clonePtr(v.Required)
	out.Ignore = clonePtr(v.Ignore)
	out.Min = clonePtr(v.Min)
	out.Max = clonePtr(v.Max)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneAny(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = cloneAny(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = cloneAny(child)
		}
		return out
	case *data.Map:
		return val.Clone()
	default:
		return v
	}
}
