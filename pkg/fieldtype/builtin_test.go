package fieldtype_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/blueprint"
	"github.com/dmitrymomot/blueprint/pkg/data"
	"github.com/dmitrymomot/blueprint/pkg/fieldtype"
)

func multiple(r *blueprint.Rule) { r.Multiple = true }

func options(keys ...string) func(*blueprint.Rule) {
	return func(r *blueprint.Rule) {
		m := data.NewMap()
		for _, k := range keys {
			m.Set(k, k)
		}
		r.Options = m
	}
}

func minMax(min, max float64) func(*blueprint.Rule) {
	return func(r *blueprint.Rule) {
		r.Validate.Min = ptr(min)
		r.Validate.Max = ptr(max)
	}
}

func TestBuiltin_Validate(t *testing.T) {
	t.Parallel()

	r := fieldtype.New()

	tests := []struct {
		name  string
		rule  *blueprint.Rule
		value any
		want  []string
	}{
		{"text ok", field("text", minMax(2, 5)), "abc", nil},
		{"text too short", field("text", minMax(2, 5)), "a", []string{"Field must be at least 2 characters long"}},
		{"text too long", field("text", minMax(2, 5)), "abcdef", []string{"Field must be at most 5 characters long"}},
		{"text rejects lists", field("text"), []any{"a"}, []string{"Field must be a single value"}},
		{"multiple text accepts lists", field("text", multiple), []any{"a"}, nil},
		{"email", field("email"), "user@example.com", nil},
		{"bad email", field("email"), "user@", []string{"Field must be a valid email address"}},
		{"multiple emails", field("email", multiple), []any{"a@b.co", "bad"}, []string{"Field must be a valid email address"}},
		{"url", field("url"), "https://example.com", nil},
		{"uuid", field("uuid"), "not-a-uuid", []string{"Field must be a valid UUID"}},
		{"number", field("number", minMax(1, 10)), json.Number("5.5"), nil},
		{"number not numeric", field("number"), "five", []string{"Field must be a number"}},
		{"number out of range", field("range", minMax(1, 10)), 11, []string{"Field must be at most 10"}},
		{"int", field("int"), "12", nil},
		{"int with fraction", field("int"), 1.5, []string{"Field must be a whole number"}},
		{"int above int64", field("int"), "9223372036854775808", []string{"Field must be a whole number"}},
		{"int uint64 above int64", field("int"), uint64(1 << 63), []string{"Field must be a whole number"}},
		{"int max int64", field("int"), "9223372036854775807", nil},
		{"toggle", field("toggle"), "on", nil},
		{"toggle garbage", field("toggle"), "maybe", []string{"Field must be true or false"}},
		{"select option", field("select", options("a", "b")), "a", nil},
		{"select unknown option", field("select", options("a", "b")), "c", []string{"Field contains an invalid option"}},
		{"select without options", field("select"), "anything", nil},
		{"multi select", field("select", multiple, options("a", "b")), []any{"a", "b"}, nil},
		{"multi select count", field("select", multiple, options("a", "b"), minMax(0, 1)), []any{"a", "b"}, []string{"Field must have at most 1 items"}},
		{"checkboxes", field("checkboxes", options("x", "y")), []any{"x", "z"}, []string{"Field contains an invalid option"}},
		{"list count", field("list", minMax(2, 3)), []any{data.MapOf("a", 1)}, []string{"Field must have at least 2 items"}},
		{"date", field("date"), "2024-01-31", nil},
		{"date custom format", field("date", func(r *blueprint.Rule) { r.Extra = map[string]any{"format": "02.01.2006"} }), "31.01.2024", nil},
		{"bad date", field("date"), "31.01.2024", []string{"Field must be a valid date"}},
		{"file has no value constraint", field("file"), data.MapOf("name", "a.png"), nil},
		{"ignore", field("ignore"), []any{1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := r.ValidateField(tt.value, tt.rule)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuiltin_Filter(t *testing.T) {
	t.Parallel()

	r := fieldtype.New()

	tests := []struct {
		name  string
		rule  *blueprint.Rule
		value any
		want  any
	}{
		{"text trims", field("text"), "  hello\nworld\x00 ", "hello world"},
		{"text from number", field("text"), json.Number("42"), "42"},
		{"text drops containers", field("text"), data.MapOf("a", 1), nil},
		{"multiple text", field("text", multiple), []any{" a ", data.NewMap(), "b"}, []any{"a", "b"}},
		{"textarea keeps lines", field("textarea"), " line1\nline2 ", "line1\nline2"},
		{"password untouched", field("password"), " secret ", " secret "},
		{"email lowercased", field("email"), " John@Example.COM ", "john@example.com"},
		{"number", field("number"), "3.25", 3.25},
		{"number invalid", field("number"), "abc", nil},
		{"int", field("int"), json.Number("7"), int64(7)},
		{"int rounds", field("int"), "7.6", int64(8)},
		{"int above int64", field("int"), "9223372036854775808", nil},
		{"int fraction at int64 bound", field("int"), "9223372036854775807.4", nil},
		{"int uint64 above int64", field("int"), uint64(1 << 63), nil},
		{"int max int64", field("int"), "9223372036854775807", int64(math.MaxInt64)},
		{"int min int64", field("int"), float64(math.MinInt64), int64(math.MinInt64)},
		{"checkbox", field("checkbox"), "on", true},
		{"checkbox off", field("checkbox"), "0", false},
		{"select", field("select"), " a ", "a"},
		{"multi select", field("select", multiple), []any{"a", " b "}, []any{"a", "b"}},
		{"multi select scalar", field("select", multiple), "a", []any{"a"}},
		{"checkbox map", field("checkboxes"), data.MapOf("x", true, "y", false, "z", "1"), []any{"x", "z"}},
		{"list keeps containers", field("list"), []any{data.MapOf("a", 1)}, []any{data.MapOf("a", 1)}},
		{"list wraps scalars", field("array"), "one", []any{"one"}},
		{"file passes through", field("file"), data.MapOf("name", "a.png"), data.MapOf("name", "a.png")},
		{"ignore drops", field("ignore"), "x", nil},
		{"nil stays nil", field("text"), nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := r.FilterField(tt.value, tt.rule)
			assert.True(t, data.Equal(tt.want, got), "want %#v, got %#v", tt.want, got)
		})
	}
}

func TestBuiltin_FilterIdempotent(t *testing.T) {
	t.Parallel()

	r := fieldtype.New()
	cases := []struct {
		rule  *blueprint.Rule
		value any
	}{
		{field("text"), "  a\tb "},
		{field("email"), " X@Y.Z "},
		{field("number"), json.Number("1e2")},
		{field("int"), "9.4"},
		{field("toggle"), "yes"},
		{field("select", multiple), []any{" a ", 1}},
		{field("checkboxes"), data.MapOf("a", "on")},
	}
	for _, c := range cases {
		once := r.FilterField(c.value, c.rule)
		twice := r.FilterField(once, c.rule)
		assert.True(t, data.Equal(once, twice), "%s: %#v vs %#v", c.rule.Type, once, twice)
	}
}
