package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/blueprint/pkg/data"
	"github.com/dmitrymomot/blueprint/pkg/sanitizer"
)

// ConfigSource resolves dotted configuration paths for dynamic field
// properties.
type ConfigSource interface {
	Get(path string) (any, bool)
}

// ConfigFunc adapts a function to ConfigSource.
type ConfigFunc func(path string) (any, bool)

func (f ConfigFunc) Get(path string) (any, bool) { return f(path) }

// MapConfig is a ConfigSource over a data tree.
type MapConfig struct {
	root *data.Map
}

func NewMapConfig(root *data.Map) *MapConfig {
	return &MapConfig{root: root}
}

// LoadConfigFile reads a YAML or JSON site config.
func LoadConfigFile(path string) (*MapConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var root *data.Map
	if strings.EqualFold(filepath.Ext(path), ".json") {
		root, err = data.FromJSON(b)
	} else {
		root, err = data.FromYAML(b)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return NewMapConfig(root), nil
}

// Get returns the value stored under a dotted path.
func (c *MapConfig) Get(path string) (any, bool) {
	if c == nil || path == "" {
		return nil, false
	}
	return c.root.Lookup(strings.Split(path, ".")...)
}

const (
	dynamicPrefix = "config-"
	dynamicSuffix = "@"
)

// resolveDynamic applies config-<property>@ keys of def. The parameter is a
// config path or a [path, default] pair. A property keeps its declared value
// when the lookup yields nothing.
func resolveDynamic(def FieldDef, cfg ConfigSource) (FieldDef, error) {
	for key, param := range def.Extra {
		if !strings.HasPrefix(key, dynamicPrefix) || !strings.HasSuffix(key, dynamicSuffix) {
			continue
		}
		delete(def.Extra, key)
		prop := strings.TrimSuffix(strings.TrimPrefix(key, dynamicPrefix), dynamicSuffix)

		path, fallback, err := dynamicParam(param)
		if err != nil {
			return def, fmt.Errorf("%s: %w", key, err)
		}

		var value any
		if cfg != nil {
			value, _ = cfg.Get(path)
		}
		if value == nil {
			value = fallback
		}
		if value == nil {
			continue
		}
		if err := setProperty(&def, prop, value); err != nil {
			return def, fmt.Errorf("%s: %w", key, err)
		}
	}
	return def, nil
}

func dynamicParam(param any) (path string, fallback any, err error) {
	switch p := param.(type) {
	case string:
		return p, nil, nil
	case []any:
		if len(p) > 0 {
			if s, ok := p[0].(string); ok {
				if len(p) > 1 {
					fallback = p[1]
				}
				return s, fallback, nil
			}
		}
	}
	return "", nil, fmt.Errorf("%w: expected a config path or [path, default], got %v", ErrInvalidBlueprint, param)
}

func setProperty(def *FieldDef, prop string, value any) error {
	switch prop {
	case "type", "label", "validation",
		"validate.type", "validate.pattern", "validate.message":
		s, ok := sanitizer.ToString(value)
		if !ok {
			return fmt.Errorf("%w: %s must be a string", ErrInvalidBlueprint, prop)
		}
		switch prop {
		case "type":
			def.Type = s
		case "label":
			def.Label = s
		case "validation":
			def.Validation = s
		case "validate.type":
			def.Validate.Type = s
		case "validate.pattern":
			def.Validate.Pattern = s
		default:
			def.Validate.Message = s
		}
	case "multiple", "validate.required", "validate.ignore":
		b, ok := sanitizer.ToBool(value)
		if !ok {
			return fmt.Errorf("%w: %s must be a boolean", ErrInvalidBlueprint, prop)
		}
		switch prop {
		case "multiple":
			def.Multiple = &b
		case "validate.required":
			def.Validate.Required = &b
		default:
			def.Validate.Ignore = &b
		}
	case "validate.min", "validate.max":
		f, ok := sanitizer.ToFloat(value)
		if !ok {
			return fmt.Errorf("%w: %s must be a number", ErrInvalidBlueprint, prop)
		}
		if prop == "validate.min" {
			def.Validate.Min = &f
		} else {
			def.Validate.Max = &f
		}
	case "default":
		def.Default = value
	case "options":
		m, ok := data.Normalize(value).(*data.Map)
		if !ok {
			return fmt.Errorf("%w: options must be a mapping", ErrInvalidBlueprint)
		}
		def.Options = m
	default:
		if def.Extra == nil {
			def.Extra = make(map[string]any)
		}
		def.Extra[prop] = value
	}
	return nil
}
