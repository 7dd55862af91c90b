package data_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/blueprint/pkg/data"
)

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("preserves key order", func(t *testing.T) {
		m, err := data.FromYAML([]byte("zeta: 1\nalpha:\n  second: two\n  first: [a, b]\nempty:\n"))
		require.NoError(t, err)

		assert.Equal(t, []string{"zeta", "alpha", "empty"}, m.Keys())

		alpha, _ := m.Get("alpha")
		assert.Equal(t, []string{"second", "first"}, alpha.(*data.Map).Keys())

		first, _ := m.Lookup("alpha", "first")
		assert.Equal(t, []any{"a", "b"}, first)

		empty, ok := m.Get("empty")
		assert.True(t, ok)
		assert.Nil(t, empty)
	})

	t.Run("expands merge keys", func(t *testing.T) {
		src := "base: &base\n  type: text\n  label: Base\nfield:\n  <<: *base\n  label: Field\n"
		m, err := data.FromYAML([]byte(src))
		require.NoError(t, err)

		label, _ := m.Lookup("field", "label")
		assert.Equal(t, "Field", label)
		typ, _ := m.Lookup("field", "type")
		assert.Equal(t, "text", typ)
	})

	t.Run("empty document", func(t *testing.T) {
		m, err := data.FromYAML(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())
	})

	t.Run("non-mapping root", func(t *testing.T) {
		_, err := data.FromYAML([]byte("- a\n- b\n"))
		assert.ErrorIs(t, err, data.ErrNotObject)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := data.FromYAML([]byte("a: [b\n"))
		assert.ErrorIs(t, err, data.ErrInvalidYAML)
	})
}

func TestMap_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	var doc struct {
		Options *data.Map `yaml:"options"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("options:\n  z: Zed\n  a: Ay\n"), &doc))
	require.NotNil(t, doc.Options)
	assert.Equal(t, []string{"z", "a"}, doc.Options.Keys())

	err := yaml.Unmarshal([]byte("options: [a, b]\n"), &doc)
	assert.ErrorIs(t, err, data.ErrNotObject)
}
