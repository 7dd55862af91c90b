package blueprint

import (
	"errors"
	"io"
	"log/slog"
	"maps"

	"github.com/dmitrymomot/blueprint/pkg/data"
)

// DefaultMaxDepth bounds how deep Validate and Filter descend into data.
const DefaultMaxDepth = 128

// Schema validates and filters data against a rule tree and rule index.
type Schema struct {
	index     RuleIndex
	tree      *RuleTree
	types     map[string]*Rule
	operator  FieldOperator
	labeler   Labeler
	formatter MessageFormatter
	maxDepth  int
	logger    *slog.Logger
}

// Option configures a Schema.
type Option func(*Schema)

// WithFieldOperator sets the per-field validator and filter.
// Without it every value is accepted and passed through unchanged.
func WithFieldOperator(op FieldOperator) Option {
	return func(s *Schema) {
		if op != nil {
			s.operator = op
		}
	}
}

// WithLabeler sets how field labels are resolved for required-field messages.
func WithLabeler(l Labeler) Option {
	return func(s *Schema) {
		if l != nil {
			s.labeler = l
		}
	}
}

// WithMessageFormatter sets the missing-field message renderer.
func WithMessageFormatter(f MessageFormatter) Option {
	return func(s *Schema) {
		if f != nil {
			s.formatter = f
		}
	}
}

// WithMaxDepth bounds data nesting. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(s *Schema) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithTypes attaches the field type definitions the blueprint was built with.
func WithTypes(types map[string]*Rule) Option {
	return func(s *Schema) {
		s.types = maps.Clone(types)
	}
}

// WithLogger sets the logger used for diagnostics. A discard logger is used by default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Schema) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a schema. A nil index or tree is treated as empty.
func New(index RuleIndex, tree *RuleTree, opts ...Option) *Schema {
	if index == nil {
		index = RuleIndex{}
	}
	if tree == nil {
		tree = NewRuleTree()
	}

	s := &Schema{
		index:     index,
		tree:      tree,
		operator:  PassThrough{},
		labeler:   defaultLabeler,
		formatter: defaultFormatter,
		maxDepth:  DefaultMaxDepth,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// With returns a copy of the schema with opts applied. The rule index, tree
// and types are shared. Use it to bind per-request collaborators such as a
// localized labeler.
func (s *Schema) With(opts ...Option) *Schema {
	clone := *s
	for _, opt := range opts {
		opt(&clone)
	}
	return &clone
}

func (s *Schema) Index() RuleIndex { return s.index }

func (s *Schema) Tree() *RuleTree { return s.tree }

// Types returns the field type definitions of the blueprint.
func (s *Schema) Types() map[string]*Rule {
	return maps.Clone(s.types)
}

// Type returns the definition of a single field type.
func (s *Schema) Type(name string) (*Rule, bool) {
	t, ok := s.types[name]
	return t, ok && t != nil
}

// Validate checks d against the schema. It returns nil when the data is
// valid, a ValidationError with every collected message, a
// *SchemaViolationError when a strict level meets an undeclared key, or a
// structural error (ErrMaxDepthExceeded, ErrCyclicData).
func (s *Schema) Validate(d *data.Map) error {
	return s.Check(d).Err()
}

// Check is Validate in result form.
func (s *Schema) Check(d *data.Map) Result {
	report := NewValidationError()
	w := s.newWalker()

	if err := w.validate(dataRoot(d), s.tree, nil, report); err != nil {
		var violation *SchemaViolationError
		if errors.As(err, &violation) {
			return Result{Outcome: OutcomeSchemaViolation, Violation: violation}
		}
		return Result{Outcome: OutcomeMalformed, err: err}
	}

	if !report.IsEmpty() {
		return Result{Outcome: OutcomeInvalid, Messages: report}
	}
	return Result{Outcome: OutcomeValid}
}

// Filter returns a new map holding the schema-conformant form of d.
// With includeMissingAsNull every declared, non-ignored field is present in
// schema order, nil when the input omits it. Filter never fails on
// undeclared keys; it only fails on structurally broken data.
func (s *Schema) Filter(d *data.Map, includeMissingAsNull bool) (*data.Map, error) {
	w := s.newWalker()
	out, err := w.filter(dataRoot(d), s.tree, nil, includeMissingAsNull)
	if err != nil {
		return nil, err
	}
	return out.(*data.Map), nil
}

func dataRoot(d *data.Map) *data.Map {
	if d == nil {
		return data.NewMap()
	}
	return d
}
