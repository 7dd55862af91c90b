package blueprint_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blueprint"
	"github.com/dmitrymomot/blueprint/pkg/data"
)

func articleSchema(strict bool, opts ...blueprint.Option) *blueprint.Schema {
	index := blueprint.RuleIndex{
		"title":       rule("title", required, labeled("Title")),
		"body":        rule("body"),
		"meta.author": rule("meta.author", required),
		"meta.tags":   rule("meta.tags"),
		"secret":      rule("secret", ignored, required),
	}
	tree := blueprint.NewRuleTree().
		Leaf("title", "title").
		Leaf("body", "body").
		Nest("meta", blueprint.NewRuleTree().
			Leaf("author", "meta.author").
			Leaf("tags", "meta.tags")).
		Leaf("secret", "secret").
		SetStrict(strict)
	return newSchema(index, tree, opts...)
}

func TestSchema_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid data", func(t *testing.T) {
		s := articleSchema(false)
		err := s.Validate(data.MapOf(
			"title", "Hello",
			"body", "World",
			"meta", data.MapOf("author", "ann"),
		))
		assert.NoError(t, err)
	})

	t.Run("missing required fields at the root only", func(t *testing.T) {
		s := articleSchema(false)
		err := s.Validate(data.MapOf("body", "x"))

		var report blueprint.ValidationError
		require.ErrorAs(t, err, &report)
		assert.Equal(t, []string{"Missing required field: Title"}, report.Messages("title"))
		assert.False(t, report.Has("meta.author"), "nested trees are checked only when data reaches them")
		assert.False(t, report.Has("secret"), "ignored fields are never required")
	})

	t.Run("missing required nested field", func(t *testing.T) {
		s := articleSchema(false)
		err := s.Validate(data.MapOf("title", "t", "meta", data.MapOf("tags", "go")))

		var report blueprint.ValidationError
		require.ErrorAs(t, err, &report)
		assert.Equal(t, []string{"Missing required field: meta.author"}, report.Messages("meta.author"))
	})

	t.Run("null counts as missing", func(t *testing.T) {
		s := articleSchema(false)
		err := s.Validate(data.MapOf("title", nil))

		var report blueprint.ValidationError
		require.ErrorAs(t, err, &report)
		assert.True(t, report.Has("title"))
	})

	t.Run("empty string is present", func(t *testing.T) {
		s := articleSchema(false)
		assert.NoError(t, s.Validate(data.MapOf("title", "")))
	})

	t.Run("field messages are keyed by rule name", func(t *testing.T) {
		s := articleSchema(false)
		err := s.Validate(data.MapOf("title", "bad", "meta", data.MapOf("author", "bad")))

		var report blueprint.ValidationError
		require.ErrorAs(t, err, &report)
		assert.Equal(t, []string{"invalid Title"}, report.Messages("title"))
		assert.Equal(t, []string{"invalid meta.author"}, report.Messages("meta.author"))
	})

	t.Run("ignored fields are not validated", func(t *testing.T) {
		s := articleSchema(false)
		assert.NoError(t, s.Validate(data.MapOf("title", "t", "secret", "bad")))
	})

	t.Run("undeclared keys are accepted when not strict", func(t *testing.T) {
		s := articleSchema(false)
		assert.NoError(t, s.Validate(data.MapOf("title", "t", "extra", "bad", "meta", data.MapOf("x", 1))))
	})

	t.Run("nil data is an empty map", func(t *testing.T) {
		s := blueprint.New(nil, nil)
		assert.NoError(t, s.Validate(nil))
	})

	t.Run("scalar where a subtree is declared is ignored", func(t *testing.T) {
		s := articleSchema(false)
		assert.NoError(t, s.Validate(data.MapOf("title", "t", "meta", "bad")))
	})
}

func TestSchema_Validate_Strict(t *testing.T) {
	t.Parallel()

	t.Run("undeclared key is a violation", func(t *testing.T) {
		s := articleSchema(true)
		err := s.Validate(data.MapOf("title", "t", "extra", 1))

		var violation *blueprint.SchemaViolationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, "extra", violation.Key)
		assert.Equal(t, "extra", violation.Path)
		assert.True(t, errors.Is(err, blueprint.ErrUndefinedInBlueprint))
		assert.Equal(t, "extra is not defined in blueprints", err.Error())
	})

	t.Run("violation wins over collected messages", func(t *testing.T) {
		s := articleSchema(true)
		res := s.Check(data.MapOf("title", "bad", "extra", 1))
		assert.Equal(t, blueprint.OutcomeSchemaViolation, res.Outcome)
		assert.Nil(t, res.Messages)
	})

	t.Run("strictness applies per level", func(t *testing.T) {
		s := articleSchema(true)
		assert.NoError(t, s.Validate(data.MapOf("title", "t", "meta", data.MapOf("author", "a", "x", 1))))
	})

	t.Run("nested strict level reports the full path", func(t *testing.T) {
		index := blueprint.RuleIndex{"meta.author": rule("meta.author")}
		tree := blueprint.NewRuleTree().
			Nest("meta", blueprint.NewRuleTree().Leaf("author", "meta.author").SetStrict(true))
		s := newSchema(index, tree)

		err := s.Validate(data.MapOf("extra", 1, "meta", data.MapOf("author", "a", "x", 1)))

		var violation *blueprint.SchemaViolationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, "x", violation.Key)
		assert.Equal(t, "meta.x", violation.Path)
	})

	t.Run("tree entry without a defined rule counts as undeclared", func(t *testing.T) {
		tree := blueprint.NewRuleTree().Leaf("ghost", "ghost").SetStrict(true)
		s := newSchema(blueprint.RuleIndex{}, tree)

		var violation *blueprint.SchemaViolationError
		require.ErrorAs(t, s.Validate(data.MapOf("ghost", 1)), &violation)
		assert.Equal(t, "ghost", violation.Key)
	})

	t.Run("scalar where a subtree is declared is a violation", func(t *testing.T) {
		s := articleSchema(true)

		var violation *blueprint.SchemaViolationError
		require.ErrorAs(t, s.Validate(data.MapOf("title", "t", "meta", "x")), &violation)
		assert.Equal(t, "meta", violation.Key)
	})

	t.Run("ignored fields are declared", func(t *testing.T) {
		s := articleSchema(true)
		assert.NoError(t, s.Validate(data.MapOf("title", "t", "secret", 1)))
	})

	t.Run("null for a declared subtree is skipped", func(t *testing.T) {
		s := articleSchema(true)
		res := s.Check(data.MapOf("title", "t", "meta", nil))
		assert.Equal(t, blueprint.OutcomeValid, res.Outcome)
	})
}

func TestSchema_Validate_Wildcard(t *testing.T) {
	t.Parallel()

	index := blueprint.RuleIndex{
		"items.*.sku": rule("items.*.sku", required),
		"items.*.qty": rule("items.*.qty"),
	}
	tree := blueprint.NewRuleTree().
		Nest("items", blueprint.NewRuleTree().
			Nest(blueprint.Wildcard, blueprint.NewRuleTree().
				Leaf("sku", "items.*.sku").
				Leaf("qty", "items.*.qty").
				SetStrict(true)))
	s := newSchema(index, tree)

	t.Run("every element is checked", func(t *testing.T) {
		err := s.Validate(data.MapOf("items", []any{
			data.MapOf("sku", "a", "qty", "1"),
			data.MapOf("qty", "bad"),
		}))

		var report blueprint.ValidationError
		require.ErrorAs(t, err, &report)
		assert.Equal(t, []string{"Missing required field: items.*.sku"}, report.Messages("items.1.sku"))
		assert.Equal(t, []string{"invalid items.*.qty"}, report.Messages("items.1.qty"))
	})

	t.Run("strict element level", func(t *testing.T) {
		err := s.Validate(data.MapOf("items", []any{data.MapOf("sku", "a", "color", "red")}))

		var violation *blueprint.SchemaViolationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, "items.0.color", violation.Path)
	})

	t.Run("wildcard leaf uses the data path", func(t *testing.T) {
		index := blueprint.RuleIndex{"tags.*": rule("tags.*", required)}
		tree := blueprint.NewRuleTree().Nest("tags", blueprint.NewRuleTree().Leaf(blueprint.Wildcard, "tags.*"))
		s := newSchema(index, tree)

		err := s.Validate(data.MapOf("tags", []any{"ok", "bad", "bad"}))

		var report blueprint.ValidationError
		require.ErrorAs(t, err, &report)
		assert.Equal(t, []string{"tags.1", "tags.2"}, report.Fields())
		assert.False(t, report.Has("tags.*"), "required wildcard rules are not reported as missing")
	})
}

func TestSchema_Validate_FileUploads(t *testing.T) {
	t.Parallel()

	index := blueprint.RuleIndex{
		"avatar": rule("avatar", required, typed(blueprint.FileType)),
		"data":   rule("data", ignored),
	}
	tree := blueprint.NewRuleTree().Leaf("avatar", "avatar").Leaf("data", "data")
	s := newSchema(index, tree)

	t.Run("uploaded file satisfies required", func(t *testing.T) {
		d := data.MapOf("data", data.MapOf("name", data.MapOf("avatar", "me.png")))
		assert.NoError(t, s.Validate(d))
	})

	t.Run("no upload is missing", func(t *testing.T) {
		var report blueprint.ValidationError
		require.ErrorAs(t, s.Validate(data.NewMap()), &report)
		assert.True(t, report.Has("avatar"))
	})

	t.Run("exemption applies to file fields only", func(t *testing.T) {
		index := blueprint.RuleIndex{"doc": rule("doc", required)}
		s := newSchema(index, blueprint.NewRuleTree().Leaf("doc", "doc"))

		d := data.MapOf("data", data.MapOf("name", data.MapOf("doc", "x.pdf")))
		var report blueprint.ValidationError
		require.ErrorAs(t, s.Validate(d), &report)
		assert.True(t, report.Has("doc"))
	})
}

func TestSchema_Validate_Messages(t *testing.T) {
	t.Parallel()

	s := articleSchema(false,
		blueprint.WithLabeler(blueprint.LabelerFunc(func(r *blueprint.Rule) string {
			return "<" + r.Name + ">"
		})),
		blueprint.WithMessageFormatter(blueprint.MessageFormatterFunc(func(label string) string {
			return "need " + label
		})),
	)

	var report blueprint.ValidationError
	require.ErrorAs(t, s.Validate(data.NewMap()), &report)
	assert.Equal(t, "need <title>", report.Get("title"))
}

func TestSchema_Validate_Malformed(t *testing.T) {
	t.Parallel()

	t.Run("depth limit", func(t *testing.T) {
		tree := blueprint.NewRuleTree().Nest("a", blueprint.NewRuleTree().
			Nest("b", blueprint.NewRuleTree().
				Nest("c", blueprint.NewRuleTree())))
		s := newSchema(nil, tree, blueprint.WithMaxDepth(2))

		res := s.Check(data.MapOf("a", data.MapOf("b", data.MapOf("c", data.MapOf()))))
		assert.Equal(t, blueprint.OutcomeMalformed, res.Outcome)
		assert.ErrorIs(t, res.Err(), blueprint.ErrMaxDepthExceeded)
	})

	t.Run("cycles", func(t *testing.T) {
		tree := blueprint.NewRuleTree()
		tree.Nest("self", tree)
		s := newSchema(nil, tree)

		d := data.NewMap()
		d.Set("self", d)

		assert.ErrorIs(t, s.Validate(d), blueprint.ErrCyclicData)
	})

	t.Run("shared subtrees are not cycles", func(t *testing.T) {
		sub := blueprint.NewRuleTree()
		tree := blueprint.NewRuleTree().Nest("a", sub).Nest("b", sub)
		s := newSchema(nil, tree)

		shared := data.MapOf("x", 1)
		assert.NoError(t, s.Validate(data.MapOf("a", shared, "b", shared)))
	})
}

func TestSchema_Check(t *testing.T) {
	t.Parallel()

	s := articleSchema(false)

	res := s.Check(data.MapOf("title", "t"))
	assert.True(t, res.Valid())
	assert.Equal(t, "valid", res.Outcome.String())
	assert.NoError(t, res.Err())

	res = s.Check(data.MapOf("title", "bad"))
	assert.False(t, res.Valid())
	assert.Equal(t, blueprint.OutcomeInvalid, res.Outcome)
	assert.Equal(t, "invalid", res.Outcome.String())
	assert.ErrorIs(t, res.Err(), blueprint.ErrValidationFailed)

	assert.Equal(t, "schema_violation", blueprint.OutcomeSchemaViolation.String())
	assert.Equal(t, "malformed", blueprint.OutcomeMalformed.String())
}
