package validator_test

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blueprint/pkg/data"
	"github.com/dmitrymomot/blueprint/pkg/validator"
)

func TestRequired(t *testing.T) {
	t.Parallel()

	for _, v := range []any{"x", 0, false, json.Number("0"), []any{""}, data.MapOf("a", 1)} {
		assert.True(t, validator.Required("f", v).Check(), "%#v", v)
	}
	for _, v := range []any{nil, "", "  ", []any{}, data.NewMap()} {
		assert.False(t, validator.Required("f", v).Check(), "%#v", v)
	}
}

func TestLengthRules(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.MinLength("f", "héllo", 5).Check())
	assert.False(t, validator.MinLength("f", "héll", 5).Check())
	assert.True(t, validator.MaxLength("f", "héllo", 5).Check())
	assert.False(t, validator.MaxLength("f", "hello!", 5).Check())
	assert.True(t, validator.MaxLength("f", []any{"long value"}, 1).Check(), "non-strings are not measured")

	rule := validator.MinLength("name", "a", 3)
	assert.Equal(t, "must be at least 3 characters long", rule.Error.Message)
	assert.Equal(t, 3, rule.Error.TranslationValues["min"])
}

func TestPattern(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^[a-z]+$`)
	assert.True(t, validator.Pattern("f", "abc", re).Check())
	assert.False(t, validator.Pattern("f", "ab1", re).Check())
	assert.False(t, validator.Pattern("f", nil, re).Check())

	rule, err := validator.PatternString("f", "42", `^\d+$`)
	require.NoError(t, err)
	assert.True(t, rule.Check())

	_, err = validator.PatternString("f", "x", `(`)
	assert.ErrorIs(t, err, validator.ErrInvalidPattern)
}

func TestNumericRules(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.Numeric("f", json.Number("1.5")).Check())
	assert.True(t, validator.Numeric("f", "2").Check())
	assert.False(t, validator.Numeric("f", "two").Check())

	assert.True(t, validator.Integer("f", "10").Check())
	assert.False(t, validator.Integer("f", 1.5).Check())

	assert.True(t, validator.Min("f", "18", 18).Check())
	assert.False(t, validator.Min("f", 17.9, 18).Check())
	assert.True(t, validator.Min("f", "abc", 18).Check(), "left to Numeric")
	assert.True(t, validator.Max("f", json.Number("5"), 5).Check())
	assert.False(t, validator.Max("f", 6, 5).Check())

	assert.Equal(t, "must be at most 2.5", validator.Max("f", 3, 2.5).Error.Message)
}

func TestBoolean(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.Boolean("f", "on").Check())
	assert.True(t, validator.Boolean("f", false).Check())
	assert.False(t, validator.Boolean("f", "perhaps").Check())
}

func TestOneOf(t *testing.T) {
	t.Parallel()

	allowed := []string{"red", "green", "1"}
	assert.True(t, validator.OneOf("f", "red", allowed).Check())
	assert.True(t, validator.OneOf("f", json.Number("1"), allowed).Check())
	assert.True(t, validator.OneOf("f", []any{"red", "green"}, allowed).Check())
	assert.False(t, validator.OneOf("f", []any{"red", "blue"}, allowed).Check())
	assert.False(t, validator.OneOf("f", data.MapOf("a", "red"), allowed).Check())
	assert.Equal(t, "red, green, 1", validator.OneOf("f", "x", allowed).Error.TranslationValues["options"])
}

func TestItemRules(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.MinItems("f", []any{1, 2}, 2).Check())
	assert.False(t, validator.MinItems("f", []any{1}, 2).Check())
	assert.False(t, validator.MinItems("f", nil, 1).Check())
	assert.True(t, validator.MinItems("f", "one", 1).Check())
	assert.True(t, validator.MaxItems("f", data.MapOf("a", 1), 1).Check())
	assert.False(t, validator.MaxItems("f", []any{1, 2, 3}, 2).Check())
	assert.Equal(t, "must have at most 2 items", validator.MaxItems("f", nil, 2).Error.Message)
}

func TestSingle(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.Single("f", "a").Check())
	assert.False(t, validator.Single("f", []any{"a"}).Check())
}
