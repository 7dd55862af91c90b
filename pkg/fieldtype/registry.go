package fieldtype

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"sync"

	"github.com/dmitrymomot/blueprint"
	"github.com/dmitrymomot/blueprint/pkg/data"
	"github.com/dmitrymomot/blueprint/pkg/validator"
)

// Translator renders a message key with its parameters. fallback is returned
// for unknown keys.
type Translator interface {
	Translate(key string, values map[string]any, fallback string) string
}

// RulesFunc returns the validation rules for a present value of a field.
// field is the report name used in the returned rules.
type RulesFunc func(field string, value any, rule *blueprint.Rule) []validator.Rule

// FilterFunc returns the canonical form of a value. Returning nil drops it.
type FilterFunc func(value any, rule *blueprint.Rule) any

// Type describes how one field type is validated and filtered. A nil Rules
// or Filter means no constraint and pass-through respectively.
type Type struct {
	Name   string
	Rules  RulesFunc
	Filter FilterFunc
	// Toggle marks boolean types whose false value counts as empty.
	Toggle bool
}

type table struct {
	mu       sync.RWMutex
	types    map[string]Type
	patterns sync.Map // pattern string -> *regexp.Regexp or error
}

// Registry is a blueprint.FieldOperator backed by registered field types.
// It is safe for concurrent use.
type Registry struct {
	table      *table
	translator Translator
	logger     *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for blueprint configuration problems found while
// validating, such as invalid patterns.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTypes registers additional types, replacing built-ins of the same name.
func WithTypes(types ...Type) Option {
	return func(r *Registry) {
		for _, t := range types {
			if t.Name != "" {
				r.table.types[t.Name] = t
			}
		}
	}
}

// New creates a registry holding the built-in types.
func New(opts ...Option) *Registry {
	r := &Registry{
		table:  &table{types: builtinTypes()},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a type. Registering a name twice fails.
func (r *Registry) Register(t Type) error {
	if t.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidType)
	}

	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	if _, ok := r.table.types[t.Name]; ok {
		return fmt.Errorf("%w: %s", ErrTypeAlreadyRegistered, t.Name)
	}
	r.table.types[t.Name] = t
	return nil
}

func (r *Registry) Lookup(name string) (Type, bool) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()
	t, ok := r.table.types[name]
	return t, ok
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.table.types))
}

// WithTranslator returns a copy rendering messages through tr. The copy
// shares the type table with r.
func (r *Registry) WithTranslator(tr Translator) *Registry {
	clone := *r
	clone.translator = tr
	return &clone
}

// ValidateField implements blueprint.FieldOperator.
func (r *Registry) ValidateField(value any, rule *blueprint.Rule) []string {
	t, known := r.Lookup(rule.ValidationType())
	label := r.label(rule)

	if isEmpty(value, t) {
		if !rule.Required() {
			return nil
		}
		return r.render(rule, label, validator.ExtractValidationErrors(
			validator.Apply(validator.Required(rule.Name, nil)),
		))
	}
	if !known || t.Rules == nil {
		return nil
	}

	rules := t.Rules(rule.Name, value, rule)
	if rule.Validate.Pattern != "" && !data.IsContainer(value) {
		if re, ok := r.pattern(rule); ok {
			rules = append(rules, validator.Pattern(rule.Name, value, re))
		}
	}
	return r.render(rule, label, validator.ExtractValidationErrors(validator.Apply(rules...)))
}

// FilterField implements blueprint.FieldOperator.
func (r *Registry) FilterField(value any, rule *blueprint.Rule) any {
	t, ok := r.Lookup(rule.ValidationType())
	if !ok || t.Filter == nil {
		return value
	}
	if value == nil {
		return nil
	}
	return t.Filter(value, rule)
}

func (r *Registry) label(rule *blueprint.Rule) string {
	label := rule.DisplayName()
	if r.translator == nil {
		return label
	}
	return r.translator.Translate(label, nil, label)
}

// render turns failures into messages. A custom validate.message replaces
// all of them with a single message.
func (r *Registry) render(rule *blueprint.Rule, label string, errs validator.ValidationErrors) []string {
	if len(errs) == 0 {
		return nil
	}
	if msg := rule.Validate.Message; msg != "" {
		return []string{r.translate(msg, map[string]any{"label": label}, msg)}
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		values := maps.Clone(e.TranslationValues)
		if values == nil {
			values = make(map[string]any, 1)
		}
		values["label"] = label
		messages = append(messages, r.translate(e.TranslationKey, values, label+" "+e.Message))
	}
	return messages
}

func (r *Registry) translate(key string, values map[string]any, fallback string) string {
	if r.translator == nil {
		return fallback
	}
	return r.translator.Translate(key, values, fallback)
}

func (r *Registry) pattern(rule *blueprint.Rule) (*regexp.Regexp, bool) {
	expr := "^(?:" + rule.Validate.Pattern + ")$"
	if cached, ok := r.table.patterns.Load(expr); ok {
		re, ok := cached.(*regexp.Regexp)
		return re, ok
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		r.logger.Warn("invalid field pattern", "field", rule.Name, "pattern", rule.Validate.Pattern, "error", err)
		r.table.patterns.Store(expr, err)
		return nil, false
	}
	r.table.patterns.Store(expr, re)
	return re, true
}

var _ blueprint.FieldOperator = (*Registry)(nil)
