package loader

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrymomot/blueprint"
	"github.com/dmitrymomot/blueprint/pkg/data"
	"github.com/dmitrymomot/blueprint/pkg/fieldtype"
)

var (
	// LayoutTypes only group fields and add no data level.
	LayoutTypes = []string{"section", "fieldset", "tabs", "tab", "columns", "column"}
	// ListTypes hold a sequence of elements described by their children.
	ListTypes = []string{"list", "array"}

	// presentation-only properties that never reach the rule index
	ignoredFormKeys = []string{"title", "help", "placeholder", "placeholder_key", "placeholder_value", "fields"}
)

// Option configures compilation and stores.
type Option func(*options)

type options struct {
	config     ConfigSource
	operator   blueprint.FieldOperator
	schemaOpts []blueprint.Option
	logger     *slog.Logger
	onReload   func(err error)
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.operator == nil {
		o.operator = fieldtype.New(fieldtype.WithLogger(o.logger))
	}
	return o
}

// WithConfig sets the source of config-<property>@ values.
func WithConfig(cfg ConfigSource) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithFieldOperator sets the operator of compiled schemas. A fieldtype
// registry with the built-in types is used by default.
func WithFieldOperator(op blueprint.FieldOperator) Option {
	return func(o *options) {
		if op != nil {
			o.operator = op
		}
	}
}

// WithSchemaOptions passes extra options to every compiled schema.
func WithSchemaOptions(opts ...blueprint.Option) Option {
	return func(o *options) {
		o.schemaOpts = append(o.schemaOpts, opts...)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithReloadHook registers a callback invoked after every Store load with
// its result.
func WithReloadHook(fn func(err error)) Option {
	return func(o *options) {
		o.onReload = fn
	}
}

// Compile builds a schema from a blueprint whose extends chain has already
// been resolved.
func Compile(bp *Blueprint, opts ...Option) (*blueprint.Schema, error) {
	return compile(bp, newOptions(opts))
}

func compile(bp *Blueprint, o *options) (*blueprint.Schema, error) {
	c := &compiler{
		bp:    bp,
		cfg:   o.config,
		index: blueprint.RuleIndex{},
	}

	tree := blueprint.NewRuleTree().SetStrict(bp.Strict())
	if err := c.fields(bp.Form.Fields, tree, ""); err != nil {
		return nil, &FileError{Name: bp.Name, Err: err}
	}

	types := make(map[string]*blueprint.Rule, len(bp.Types))
	for name, def := range bp.Types {
		def, err := resolveDynamic(def.clone(), c.cfg)
		if err != nil {
			return nil, &FileError{Name: bp.Name, Err: fmt.Errorf("type %q: %w", name, err)}
		}
		types[name] = toRule(name, def)
	}

	schemaOpts := append([]blueprint.Option{
		blueprint.WithFieldOperator(o.operator),
		blueprint.WithTypes(types),
		blueprint.WithLogger(o.logger.With(slog.String("blueprint", bp.Name))),
	}, o.schemaOpts...)

	return blueprint.New(c.index, tree, schemaOpts...), nil
}

type compiler struct {
	bp    *Blueprint
	cfg   ConfigSource
	index blueprint.RuleIndex
}

// fields declares fields on tree, the level of the data path prefix.
func (c *compiler) fields(fields Fields, tree *blueprint.RuleTree, prefix string) error {
	for _, f := range fields {
		name := strings.TrimPrefix(f.Name, ".")
		if name == "" || strings.Contains(name, "..") || strings.HasSuffix(name, ".") {
			return fmt.Errorf("%w: invalid field name %q", ErrInvalidBlueprint, f.Name)
		}

		def, err := c.prepare(f.Def)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}

		if slices.Contains(LayoutTypes, def.Type) {
			if err := c.fields(def.Fields, tree, prefix); err != nil {
				return err
			}
			continue
		}

		path := joinPath(prefix, name)
		segs := strings.Split(name, ".")
		parentPath := prefix
		for _, seg := range segs[:len(segs)-1] {
			parentPath = joinPath(parentPath, seg)
		}
		parent, err := descend(tree, segs[:len(segs)-1], prefix)
		if err != nil {
			return err
		}
		last := segs[len(segs)-1]

		if len(def.Fields) == 0 {
			if node, ok := parent.Get(last); ok && !node.IsLeaf() {
				return fmt.Errorf("%w: %s", ErrPathConflict, path)
			}
			parent.Leaf(last, path)
			c.index[path] = toRule(path, def)
			continue
		}

		// data container
		c.index[path] = toRule(path, def)
		level, err := descend(parent, []string{last}, parentPath)
		if err != nil {
			return err
		}
		childPrefix := path
		if slices.Contains(ListTypes, def.Type) {
			level, err = descend(level, []string{blueprint.Wildcard}, path)
			if err != nil {
				return err
			}
			childPrefix = joinPath(path, blueprint.Wildcard)
		}
		if def.Validation != "" {
			level.SetStrict(def.Validation == blueprint.StrictValidation)
		}
		if err := c.fields(def.Fields, level, childPrefix); err != nil {
			return err
		}
	}
	return nil
}

// prepare merges the blueprint's type defaults beneath the field and then
// resolves dynamic properties.
func (c *compiler) prepare(def FieldDef) (FieldDef, error) {
	def = def.clone()
	if base, ok := c.bp.Types[def.Type]; ok {
		children := def.Fields
		def.Fields = nil
		merged, err := mergeDef(def, base)
		if err != nil {
			return FieldDef{}, err
		}
		def = merged
		def.Fields = children
	}
	return resolveDynamic(def, c.cfg)
}

// descend returns the nested level reached through segs, creating missing
// levels.
func descend(tree *blueprint.RuleTree, segs []string, prefix string) (*blueprint.RuleTree, error) {
	for _, seg := range segs {
		prefix = joinPath(prefix, seg)
		node, ok := tree.Get(seg)
		switch {
		case !ok:
			sub := blueprint.NewRuleTree()
			tree.Nest(seg, sub)
			tree = sub
		case node.IsLeaf():
			return nil, fmt.Errorf("%w: %s", ErrPathConflict, prefix)
		default:
			tree = node.Tree
		}
	}
	return tree, nil
}

func toRule(name string, def FieldDef) *blueprint.Rule {
	r := &blueprint.Rule{
		Name:    name,
		Type:    def.Type,
		Label:   def.Label,
		Default: data.Normalize(def.Default),
		Options: def.Options,
		Validate: blueprint.Validation{
			Required: deref(def.Validate.Required),
			Ignore:   deref(def.Validate.Ignore),
			Type:     def.Validate.Type,
			Min:      def.Validate.Min,
			Max:      def.Validate.Max,
			Pattern:  def.Validate.Pattern,
			Message:  def.Validate.Message,
		},
	}
	if def.Multiple != nil {
		r.Multiple = *def.Multiple
	}

	extra := maps.Clone(def.Extra)
	for _, key := range ignoredFormKeys {
		delete(extra, key)
	}
	if len(extra) > 0 {
		r.Extra = make(map[string]any, len(extra))
		for k, v := range extra {
			r.Extra[k] = data.Normalize(v)
		}
	}
	return r
}

func deref(b *bool) bool {
	return b != nil && *b
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
