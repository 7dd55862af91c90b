package loader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blueprint/pkg/loader"
)

func TestExtend(t *testing.T) {
	t.Parallel()

	parent, err := loader.Parse("parent", []byte(`
title: Parent
validation: strict
types:
  text:
    validate:
      max: 10
      pattern: "[a-z]+"
form:
  fields:
    address:
      type: object
      attrs:
        class: wide
      fields:
        .street:
          type: text
          label: Street
        .city:
          type: text
    phone:
      type: text
`))
	require.NoError(t, err)

	child, err := loader.Parse("child", []byte(`
validation: loose
types:
  text:
    validate:
      max: 50
form:
  fields:
    address:
      attrs:
        id: addr
      fields:
        .city:
          label: City
        .zip:
          type: text
    email:
      type: email
`))
	require.NoError(t, err)

	merged, err := loader.Extend(child, parent)
	require.NoError(t, err)

	assert.Equal(t, "Parent", merged.Title)
	assert.Equal(t, "loose", merged.Validation)
	assert.False(t, merged.Strict())

	text := merged.Types["text"]
	require.NotNil(t, text.Validate.Max)
	assert.InDelta(t, 50, *text.Validate.Max, 0)
	assert.Equal(t, "[a-z]+", text.Validate.Pattern)

	names := make([]string, 0, len(merged.Form.Fields))
	for _, f := range merged.Form.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"address", "phone", "email"}, names)

	address, ok := merged.Form.Fields.Lookup("address")
	require.True(t, ok)
	assert.Equal(t, "object", address.Type)
	assert.Equal(t, map[string]any{"class": "wide", "id": "addr"}, address.Extra["attrs"])

	city, ok := address.Fields.Lookup(".city")
	require.True(t, ok)
	assert.Equal(t, "City", city.Label)
	assert.Equal(t, "text", city.Type)

	_, ok = address.Fields.Lookup(".zip")
	assert.True(t, ok)

	t.Run("parent is not modified", func(t *testing.T) {
		t.Parallel()

		address, _ := parent.Form.Fields.Lookup("address")
		assert.Equal(t, map[string]any{"class": "wide"}, address.Extra["attrs"])
		assert.Len(t, address.Fields, 2)
		city, _ := address.Fields.Lookup(".city")
		assert.Empty(t, city.Label)
		assert.InDelta(t, 10, *parent.Types["text"].Validate.Max, 0)
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	bp, err := loader.Parse("contact", []byte(`
title: Contact
form:
  validation: strict
  fields:
    zeta:
      type: text
    alpha:
      type: select
      multiple: false
      options:
        b: Bee
        a: Ay
`))
	require.NoError(t, err)

	assert.Equal(t, "contact", bp.Name)
	assert.True(t, bp.Strict())
	require.Len(t, bp.Form.Fields, 2)
	assert.Equal(t, "zeta", bp.Form.Fields[0].Name)

	alpha := bp.Form.Fields[1].Def
	require.NotNil(t, alpha.Multiple)
	assert.False(t, *alpha.Multiple)
	require.NotNil(t, alpha.Options)
	assert.Equal(t, []string{"b", "a"}, alpha.Options.Keys())
}
