package blueprint_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/blueprint"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	t.Run("empty report", func(t *testing.T) {
		e := blueprint.NewValidationError()
		assert.True(t, e.IsEmpty())
		assert.Equal(t, "validation failed", e.Error())
	})

	t.Run("appends messages per field", func(t *testing.T) {
		e := blueprint.NewValidationError()
		e.Add("name", "too short")
		e.Add("name", "not allowed")
		e.Add("age")

		assert.Equal(t, []string{"too short", "not allowed"}, e.Messages("name"))
		assert.Equal(t, "too short", e.Get("name"))
		assert.True(t, e.Has("name"))
		assert.False(t, e.Has("age"))
		assert.Equal(t, []string{"name"}, e.Fields())
	})

	t.Run("error lists fields in order", func(t *testing.T) {
		e := blueprint.NewValidationError()
		e.Add("b", "second")
		e.Add("a", "first")
		assert.Equal(t, "validation failed: a: first, b: second", e.Error())
	})

	t.Run("merge concatenates", func(t *testing.T) {
		e := blueprint.NewValidationError()
		e.Add("a", "one")
		other := blueprint.NewValidationError()
		other.Add("a", "two")
		other.Add("b", "three")

		e.Merge(other)
		assert.Equal(t, []string{"one", "two"}, e.Messages("a"))
		assert.Equal(t, []string{"three"}, e.Messages("b"))
	})

	t.Run("matches sentinel", func(t *testing.T) {
		e := blueprint.NewValidationError()
		e.Add("a", "x")
		var err error = e
		assert.True(t, errors.Is(err, blueprint.ErrValidationFailed))

		var target blueprint.ValidationError
		assert.True(t, errors.As(err, &target))
	})
}

func TestSchemaViolationError(t *testing.T) {
	t.Parallel()

	err := &blueprint.SchemaViolationError{Key: "extra", Path: "user.extra"}
	assert.Equal(t, "extra is not defined in blueprints", err.Error())
	assert.ErrorIs(t, err, blueprint.ErrUndefinedInBlueprint)
	assert.NotErrorIs(t, err, blueprint.ErrValidationFailed)
}
