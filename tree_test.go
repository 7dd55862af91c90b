package blueprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blueprint"
	"github.com/dmitrymomot/blueprint/pkg/data"
)

func TestRuleTree_Resolve(t *testing.T) {
	t.Parallel()

	tree := blueprint.NewRuleTree().
		Leaf("title", "title").
		Leaf(blueprint.Wildcard, "any")

	node, wildcard, ok := tree.Resolve("title")
	require.True(t, ok)
	assert.False(t, wildcard)
	assert.Equal(t, "title", node.Path)

	node, wildcard, ok = tree.Resolve("other")
	require.True(t, ok)
	assert.True(t, wildcard)
	assert.Equal(t, "any", node.Path)

	_, _, ok = blueprint.NewRuleTree().Resolve("x")
	assert.False(t, ok)
}

func TestRuleTree_OrderAndPaths(t *testing.T) {
	t.Parallel()

	tree := blueprint.NewRuleTree().
		Leaf("b", "b").
		Nest("a", blueprint.NewRuleTree().Leaf("x", "a.x").Leaf("y", "a.y")).
		Leaf("c", "c")

	assert.Equal(t, []string{"b", "a", "c"}, tree.Keys())
	assert.Equal(t, []string{"b", "a.x", "a.y", "c"}, tree.Paths())
	assert.Equal(t, 3, tree.Len())

	var nilTree *blueprint.RuleTree
	assert.Equal(t, 0, nilTree.Len())
	assert.False(t, nilTree.Strict())
}

func TestRuleTreeFromMap(t *testing.T) {
	t.Parallel()

	t.Run("builds leaves, subtrees and strict flags", func(t *testing.T) {
		tree, err := blueprint.RuleTreeFromMap(data.MapOf(
			"validation", "strict",
			"title", "title",
			"header", data.MapOf(
				"validation", "loose",
				"author", "header.author",
			),
		))
		require.NoError(t, err)

		assert.True(t, tree.Strict())
		assert.Equal(t, []string{"title", "header"}, tree.Keys())

		header, ok := tree.Get("header")
		require.True(t, ok)
		require.False(t, header.IsLeaf())
		assert.False(t, header.Tree.Strict())
		assert.Equal(t, []string{"author"}, header.Tree.Keys())
	})

	t.Run("rejects other values", func(t *testing.T) {
		_, err := blueprint.RuleTreeFromMap(data.MapOf("a", data.MapOf("b", 5)))
		require.ErrorIs(t, err, blueprint.ErrInvalidRuleTree)
		assert.Contains(t, err.Error(), `"a.b"`)
	})
}

func TestRuleIndex_Lookup(t *testing.T) {
	t.Parallel()

	ix := blueprint.RuleIndex{"a": rule("a"), "nil": nil}

	r, ok := ix.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "a", r.Name)

	_, ok = ix.Lookup("nil")
	assert.False(t, ok)
	_, ok = ix.Lookup("missing")
	assert.False(t, ok)
}

func TestRule_Accessors(t *testing.T) {
	t.Parallel()

	r := &blueprint.Rule{Name: "email", Type: "text", Validate: blueprint.Validation{Type: "email"}}
	assert.Equal(t, "email", r.ValidationType())
	assert.Equal(t, "email", r.DisplayName())

	r.Label = "E-mail"
	assert.Equal(t, "E-mail", r.DisplayName())

	var nilRule *blueprint.Rule
	assert.False(t, nilRule.Required())
	assert.False(t, nilRule.Ignored())
	assert.Empty(t, nilRule.ValidationType())
}
